package server

import (
	"context"
	"net/http"

	_ "orderapi/docs"
	"orderapi/internal/config"
	"orderapi/internal/handler"

	"github.com/labstack/echo/v4"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Handlers は /api 配下に登録するハンドラ一式
type Handlers struct {
	Category  *handler.CategoryHandler
	Product   *handler.ProductHandler
	Client    *handler.ClientHandler
	Order     *handler.OrderHandler
	OrderItem *handler.OrderItemHandler
}

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers, ping Pinger) {
	e.GET("/healthz", healthz(ping))

	// swaggerは開発環境のみ
	if cfg.IsDevelopment() {
		e.GET("/swagger/*", echo.WrapHandler(httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		)))
	}

	api := e.Group("/api")
	h.Category.RegisterRoutes(api)
	h.Product.RegisterRoutes(api)
	h.Client.RegisterRoutes(api)
	h.Order.RegisterRoutes(api)
	h.OrderItem.RegisterRoutes(api)
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthz(ping Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()

		if err := ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		}
		return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
	}
}
