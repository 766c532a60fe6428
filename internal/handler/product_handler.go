package handler

import (
	"net/http"

	"orderapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	uc   *usecase.ProductUsecase
	errs *ErrorWriter
}

func NewProductHandler(uc *usecase.ProductUsecase, errs *ErrorWriter) *ProductHandler {
	return &ProductHandler{uc: uc, errs: errs}
}

func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/product", h.list)
	g.GET("/product/:id", h.get)
	g.POST("/product", h.create)
	g.PUT("/product/:id", h.update)
	g.DELETE("/product/:id", h.delete)
}

//	@Summary	List active products
//	@Tags		product
//	@Produce	json
//	@Success	200	{array}	model.Product
//	@Router		/product [get]
func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

//	@Summary	Get a product
//	@Tags		product
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	model.Product
//	@Failure	404	{object}	ErrorResponse
//	@Router		/product/{id} [get]
func (h *ProductHandler) get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// priceは "19.90" のような文字列でも数値でも受け付ける
//
//	@Summary	Create a product
//	@Tags		product
//	@Accept		json
//	@Produce	json
//	@Param		body	body		usecase.ProductRequest	true	"Product"
//	@Success	201		{object}	model.Product
//	@Failure	400		{object}	ValidationErrorResponse
//	@Router		/product [post]
func (h *ProductHandler) create(c echo.Context) error {
	var req usecase.ProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return created(c, out.ID, out)
}

//	@Summary	Replace a product
//	@Tags		product
//	@Accept		json
//	@Param		id		path	int						true	"Product ID"
//	@Param		body	body	usecase.ProductRequest	true	"Product"
//	@Success	204
//	@Failure	400	{object}	ValidationErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/product/{id} [put]
func (h *ProductHandler) update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	var req usecase.ProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	if err := h.uc.Update(c.Request().Context(), id, req); err != nil {
		return h.errs.Write(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

//	@Summary	Soft delete a product
//	@Tags		product
//	@Param		id	path	int	true	"Product ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/product/{id} [delete]
func (h *ProductHandler) delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return h.errs.Write(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
