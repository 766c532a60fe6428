package handler

import (
	"net/http"
	"strconv"

	"orderapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc   *usecase.OrderUsecase
	errs *ErrorWriter
}

func NewOrderHandler(uc *usecase.OrderUsecase, errs *ErrorWriter) *OrderHandler {
	return &OrderHandler{uc: uc, errs: errs}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/order", h.list)
	g.GET("/order/:id", h.get)
	g.GET("/order/:id/items", h.items)
	g.GET("/order/:id/history", h.history)
	g.POST("/order", h.create)
	g.PUT("/order/:id", h.update)
	g.DELETE("/order/:id", h.delete)
}

//	@Summary	List active orders
//	@Tags		order
//	@Produce	json
//	@Success	200	{array}	model.Order
//	@Router		/order [get]
func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 明細つき
//
//	@Summary	Get an order with its items
//	@Tags		order
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	model.Order
//	@Failure	404	{object}	ErrorResponse
//	@Router		/order/{id} [get]
func (h *OrderHandler) get(c echo.Context) error {
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

//	@Summary	List active items of an order
//	@Tags		order
//	@Produce	json
//	@Param		id	path	int	true	"Order ID"
//	@Success	200	{array}		model.OrderItem
//	@Failure	404	{object}	ErrorResponse
//	@Router		/order/{id}/items [get]
func (h *OrderHandler) items(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	out, err := h.uc.ListItems(c.Request().Context(), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ステータス変更と削除の履歴（新しい順）
//
//	@Summary	Audit history of an order
//	@Tags		order
//	@Produce	json
//	@Param		id		path	int	true	"Order ID"
//	@Param		limit	query	int	false	"max rows (default 50, up to 200)"
//	@Param		offset	query	int	false	"rows to skip"
//	@Success	200		{array}		model.AuditLog
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/order/{id}/history [get]
func (h *OrderHandler) history(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		offset = o
	}

	out, err := h.uc.History(c.Request().Context(), id, limit, offset)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 明細を同時に渡すと同じトランザクションで在庫を引き当てる
//
//	@Summary	Create an order
//	@Tags		order
//	@Accept		json
//	@Produce	json
//	@Param		body	body		usecase.OrderRequest	true	"Order"
//	@Success	201		{object}	model.Order
//	@Failure	400		{object}	ValidationErrorResponse
//	@Router		/order [post]
func (h *OrderHandler) create(c echo.Context) error {
	var req usecase.OrderRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return created(c, out.ID, out)
}

//	@Summary	Update client, status or date of an order
//	@Tags		order
//	@Accept		json
//	@Param		id		path	int						true	"Order ID"
//	@Param		body	body	usecase.OrderRequest	true	"Order"
//	@Success	204
//	@Failure	400	{object}	ValidationErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/order/{id} [put]
func (h *OrderHandler) update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	var req usecase.OrderRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	if err := h.uc.Update(c.Request().Context(), id, req); err != nil {
		return h.errs.Write(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

//	@Summary	Soft delete an order and its items
//	@Tags		order
//	@Param		id	path	int	true	"Order ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/order/{id} [delete]
func (h *OrderHandler) delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return h.errs.Write(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
