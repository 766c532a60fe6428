package handler

import (
	"net/http"

	"orderapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/category
type CategoryHandler struct {
	uc   *usecase.CategoryUsecase
	errs *ErrorWriter
}

func NewCategoryHandler(uc *usecase.CategoryUsecase, errs *ErrorWriter) *CategoryHandler {
	return &CategoryHandler{uc: uc, errs: errs}
}

func (h *CategoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/category", h.list)
	g.GET("/category/:id", h.get)
	g.GET("/category/:id/products", h.products)
	g.POST("/category", h.create)
	g.PUT("/category/:id", h.update)
	g.DELETE("/category/:id", h.delete)
}

// list
//
//	@Summary	List active categories
//	@Tags		category
//	@Produce	json
//	@Success	200	{array}		model.Category
//	@Failure	500	{object}	ErrorResponse
//	@Router		/category [get]
func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// get
//
//	@Summary	Get a category
//	@Tags		category
//	@Produce	json
//	@Param		id	path		int	true	"Category ID"
//	@Success	200	{object}	model.Category
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/category/{id} [get]
func (h *CategoryHandler) get(c echo.Context) error {
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

// products
//
//	@Summary	List active products of a category
//	@Tags		category
//	@Produce	json
//	@Param		id	path	int	true	"Category ID"
//	@Success	200	{array}		model.Product
//	@Failure	404	{object}	ErrorResponse
//	@Router		/category/{id}/products [get]
func (h *CategoryHandler) products(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	out, err := h.uc.ListProducts(c.Request().Context(), id)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// create
//
//	@Summary	Create a category
//	@Tags		category
//	@Accept		json
//	@Produce	json
//	@Param		body	body		usecase.CategoryRequest	true	"Category"
//	@Success	201		{object}	model.Category
//	@Failure	400		{object}	ValidationErrorResponse
//	@Router		/category [post]
func (h *CategoryHandler) create(c echo.Context) error {
	var req usecase.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return created(c, out.ID, out)
}

// update
//
//	@Summary	Replace a category
//	@Tags		category
//	@Accept		json
//	@Param		id		path	int						true	"Category ID"
//	@Param		body	body	usecase.CategoryRequest	true	"Category"
//	@Success	204
//	@Failure	400	{object}	ValidationErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/category/{id} [put]
func (h *CategoryHandler) update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	var req usecase.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	if err := h.uc.Update(c.Request().Context(), id, req); err != nil {
		return h.errs.Write(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// delete
//
//	@Summary	Soft delete a category
//	@Tags		category
//	@Param		id	path	int	true	"Category ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/category/{id} [delete]
func (h *CategoryHandler) delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return h.errs.Write(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
