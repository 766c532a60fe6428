package handler

import (
	"net/http"

	"orderapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ClientHandler struct {
	uc   *usecase.ClientUsecase
	errs *ErrorWriter
}

func NewClientHandler(uc *usecase.ClientUsecase, errs *ErrorWriter) *ClientHandler {
	return &ClientHandler{uc: uc, errs: errs}
}

func (h *ClientHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/client", h.list)
	g.GET("/client/:id", h.get)
	g.GET("/client/:id/orders", h.orders)
	g.POST("/client", h.create)
	g.PUT("/client/:id", h.update)
	g.DELETE("/client/:id", h.delete)
}

//	@Summary	List active clients
//	@Tags		client
//	@Produce	json
//	@Success	200	{array}	model.Client
//	@Router		/client [get]
func (h *ClientHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

//	@Summary	Get a client
//	@Tags		client
//	@Produce	json
//	@Param		id	path		int	true	"Client ID"
//	@Success	200	{object}	model.Client
//	@Failure	404	{object}	ErrorResponse
//	@Router		/client/{id} [get]
func (h *ClientHandler) get(c echo.Context) error {
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

//	@Summary	List active orders of a client
//	@Tags		client
//	@Produce	json
//	@Param		id	path	int	true	"Client ID"
//	@Success	200	{array}		model.Order
//	@Failure	404	{object}	ErrorResponse
//	@Router		/client/{id}/orders [get]
func (h *ClientHandler) orders(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	out, err := h.uc.ListOrders(c.Request().Context(), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

//	@Summary	Create a client
//	@Tags		client
//	@Accept		json
//	@Produce	json
//	@Param		body	body		usecase.ClientRequest	true	"Client"
//	@Success	201		{object}	model.Client
//	@Failure	400		{object}	ValidationErrorResponse
//	@Router		/client [post]
func (h *ClientHandler) create(c echo.Context) error {
	var req usecase.ClientRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return created(c, out.ID, out)
}

//	@Summary	Replace a client
//	@Tags		client
//	@Accept		json
//	@Param		id		path	int						true	"Client ID"
//	@Param		body	body	usecase.ClientRequest	true	"Client"
//	@Success	204
//	@Failure	400	{object}	ValidationErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/client/{id} [put]
func (h *ClientHandler) update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	var req usecase.ClientRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	if err := h.uc.Update(c.Request().Context(), id, req); err != nil {
		return h.errs.Write(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

//	@Summary	Soft delete a client
//	@Tags		client
//	@Param		id	path	int	true	"Client ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/client/{id} [delete]
func (h *ClientHandler) delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return h.errs.Write(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
