package handler

import (
	"manero/internal/delivery/api/response"
	"manero/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CategoryHandlerParams holds dependencies for CategoryHandler, injected by Fx.
type CategoryHandlerParams struct {
	fx.In

	CategoryUC usecase.CategoryUsecase
}

// CategoryHandler serves product categories.
type CategoryHandler struct {
	categoryUC usecase.CategoryUsecase
}

// NewCategoryHandler is the constructor for CategoryHandler.
func NewCategoryHandler(params CategoryHandlerParams) *CategoryHandler {
	return &CategoryHandler{categoryUC: params.CategoryUC}
}

// CategoryRequest represents the request body for creating a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Create adds a category.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	return response.FromService(c, h.categoryUC.Create(c.Request().Context(), &usecase.CategoryInput{Name: req.Name}), categoryView)
}

// GetAll lists every category.
func (h *CategoryHandler) GetAll(c echo.Context) error {
	return response.FromService(c, h.categoryUC.GetAll(c.Request().Context()), newCategoryViews)
}

// Get returns a category by id.
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	return response.FromService(c, h.categoryUC.GetByID(c.Request().Context(), id), categoryView)
}

// Search returns the first category whose name contains the term.
func (h *CategoryHandler) Search(c echo.Context) error {
	return response.FromService(c, h.categoryUC.Search(c.Request().Context(), c.QueryParam("term")), categoryView)
}
