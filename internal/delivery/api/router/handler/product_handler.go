package handler

import (
	"net/http"

	"manero/internal/delivery/api/response"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC  usecase.ProductUsecase
	CategoryUC usecase.CategoryUsecase
}

// ProductHandler serves the product catalog.
type ProductHandler struct {
	productUC  usecase.ProductUsecase
	categoryUC usecase.CategoryUsecase
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC:  params.ProductUC,
		categoryUC: params.CategoryUC,
	}
}

// ProductRequest represents the request body for creating or replacing a product.
type ProductRequest struct {
	Name                  string          `json:"name" validate:"required,max=200"`
	SupplierArticleNumber string          `json:"supplierArticleNumber" validate:"max=100"`
	Description           string          `json:"description" validate:"max=4000"`
	Price                 decimal.Decimal `json:"price"`
	ImageURL              string          `json:"imageUrl" validate:"omitempty,url"`
	CategoryName          string          `json:"categoryName" validate:"required,max=100"`
}

func (r *ProductRequest) input() *usecase.ProductInput {
	return &usecase.ProductInput{
		Name:                  r.Name,
		SupplierArticleNumber: r.SupplierArticleNumber,
		Description:           r.Description,
		Price:                 r.Price,
		ImageURL:              r.ImageURL,
		CategoryName:          r.CategoryName,
	}
}

// Create adds a product, creating its category when needed.
func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	return response.FromService(c, h.productUC.Create(c.Request().Context(), req.input()), productView)
}

// GetAll lists every product.
func (h *ProductHandler) GetAll(c echo.Context) error {
	return response.FromService(c, h.productUC.GetAll(c.Request().Context()), newProductViews)
}

// Get returns a product by article number.
func (h *ProductHandler) Get(c echo.Context) error {
	articleNumber, err := int64Param(c, "articleNumber")
	if err != nil {
		return err
	}

	return response.FromService(c, h.productUC.GetByArticleNumber(c.Request().Context(), articleNumber), productView)
}

// Update replaces a product.
func (h *ProductHandler) Update(c echo.Context) error {
	articleNumber, err := int64Param(c, "articleNumber")
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	return response.FromService(c, h.productUC.Update(c.Request().Context(), articleNumber, req.input()), productView)
}

// Delete removes a product.
func (h *ProductHandler) Delete(c echo.Context) error {
	articleNumber, err := int64Param(c, "articleNumber")
	if err != nil {
		return err
	}

	return response.FromService(c, h.productUC.Delete(c.Request().Context(), articleNumber), nil)
}

// ByCategory lists the products of a category.
func (h *ProductHandler) ByCategory(c echo.Context) error {
	categoryID, err := int64Param(c, "categoryId")
	if err != nil {
		return err
	}

	return response.FromService(c, h.categoryUC.GetProductsByCategory(c.Request().Context(), categoryID), newProductViews)
}

// Search finds a product and a category matching the term.
func (h *ProductHandler) Search(c echo.Context) error {
	return response.FromService(c, h.productUC.Search(c.Request().Context(), c.QueryParam("term")), newSearchResponse)
}

// SearchByName lists the products whose names contain the name parameter.
func (h *ProductHandler) SearchByName(c echo.Context) error {
	return response.FromService(c, h.productUC.SearchByName(c.Request().Context(), c.QueryParam("name")), newProductViews)
}

// SearchByPrice lists the products priced within [minPrice, maxPrice].
func (h *ProductHandler) SearchByPrice(c echo.Context) error {
	minPrice, err := decimal.NewFromString(c.QueryParam("minPrice"))
	if err != nil {
		return domainerrors.ErrInvalidPriceRange.WithMessage("minPrice must be a number.")
	}
	maxPrice, err := decimal.NewFromString(c.QueryParam("maxPrice"))
	if err != nil {
		return domainerrors.ErrInvalidPriceRange.WithMessage("maxPrice must be a number.")
	}

	return response.FromService(c, h.productUC.FilterByPrice(c.Request().Context(), minPrice, maxPrice), newProductViews)
}

// QRCode returns a PNG QR code linking to the product page.
func (h *ProductHandler) QRCode(c echo.Context) error {
	articleNumber, err := int64Param(c, "articleNumber")
	if err != nil {
		return err
	}

	result := h.productUC.QRCode(c.Request().Context(), articleNumber)
	if !result.Succeeded() {
		return response.FromService(c, result, nil)
	}

	return c.Blob(http.StatusOK, "image/png", result.Content)
}

// UploadImage stores the raw request body as the product image.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	articleNumber, err := int64Param(c, "articleNumber")
	if err != nil {
		return err
	}

	result := h.productUC.UploadImage(c.Request().Context(), articleNumber, &usecase.ImageUpload{
		ContentType: c.Request().Header.Get(echo.HeaderContentType),
		Body:        c.Request().Body,
	})

	return response.FromService(c, result, productView)
}
