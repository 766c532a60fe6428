package handler

import (
	"net/http"

	"orderapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderItemHandler struct {
	uc   *usecase.OrderItemUsecase
	errs *ErrorWriter
}

func NewOrderItemHandler(uc *usecase.OrderItemUsecase, errs *ErrorWriter) *OrderItemHandler {
	return &OrderItemHandler{uc: uc, errs: errs}
}

func (h *OrderItemHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orderitem", h.list)
	g.GET("/orderitem/:id", h.get)
	g.POST("/orderitem", h.create)
	g.PUT("/orderitem/:id", h.update)
	g.DELETE("/orderitem/:id", h.delete)
}

//	@Summary	List active order items
//	@Tags		orderitem
//	@Produce	json
//	@Success	200	{array}	model.OrderItem
//	@Router		/orderitem [get]
func (h *OrderItemHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

//	@Summary	Get an order item
//	@Tags		orderitem
//	@Produce	json
//	@Param		id	path		int	true	"Order item ID"
//	@Success	200	{object}	model.OrderItem
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orderitem/{id} [get]
func (h *OrderItemHandler) get(c echo.Context) error {
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

//	@Summary	Add an item to a pending order
//	@Tags		orderitem
//	@Accept		json
//	@Produce	json
//	@Param		body	body		usecase.OrderItemRequest	true	"Order item"
//	@Success	201		{object}	model.OrderItem
//	@Failure	400		{object}	ValidationErrorResponse
//	@Router		/orderitem [post]
func (h *OrderItemHandler) create(c echo.Context) error {
	var req usecase.OrderItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return created(c, out.ID, out)
}

//	@Summary	Replace an order item
//	@Tags		orderitem
//	@Accept		json
//	@Param		id		path	int							true	"Order item ID"
//	@Param		body	body	usecase.OrderItemRequest	true	"Order item"
//	@Success	204
//	@Failure	400	{object}	ValidationErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orderitem/{id} [put]
func (h *OrderItemHandler) update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	var req usecase.OrderItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	if err := h.uc.Update(c.Request().Context(), id, req); err != nil {
		return h.errs.Write(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

//	@Summary	Soft delete an order item
//	@Tags		orderitem
//	@Param		id	path	int	true	"Order item ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orderitem/{id} [delete]
func (h *OrderItemHandler) delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return h.errs.Write(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
