package handler

import (
	"time"

	"manero/internal/domain/entity"
	"manero/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserView is the public shape of an account. The password hash and sign-in
// state are never exposed.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSummary is the short user form returned on login.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
}

// AuthResponse is returned when an account is created or signed in.
type AuthResponse struct {
	User         *UserView `json:"user"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// LoginResponse is returned by the login endpoints.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	User         *UserSummary `json:"user"`
}

// CategoryView is the public shape of a category.
type CategoryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductView is the public shape of a product.
type ProductView struct {
	ArticleNumber         int64           `json:"articleNumber"`
	Name                  string          `json:"name"`
	SupplierArticleNumber string          `json:"supplierArticleNumber,omitempty"`
	Description           string          `json:"description,omitempty"`
	Price                 decimal.Decimal `json:"price"`
	ImageURL              string          `json:"imageUrl,omitempty"`
	CategoryID            int64           `json:"categoryId"`
	Category              *CategoryView   `json:"category,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// SearchResponse holds the independent product and category matches.
type SearchResponse struct {
	Product  *ProductView  `json:"product"`
	Category *CategoryView `json:"category"`
}

func newUserView(user *entity.User) *UserView {
	if user == nil {
		return nil
	}

	return &UserView{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.DisplayName(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Provider:  user.OAuthProvider.String(),
		CreatedAt: user.CreatedAt,
	}
}

func newUserViews(users []*entity.User) any {
	views := make([]*UserView, 0, len(users))
	for _, user := range users {
		views = append(views, newUserView(user))
	}

	return views
}

func newUserSummary(user *entity.User) *UserSummary {
	if user == nil {
		return nil
	}

	return &UserSummary{ID: user.ID, Email: user.Email, FullName: user.DisplayName()}
}

func newAuthResponse(out *usecase.AuthOutput) any {
	return &AuthResponse{
		User:         newUserView(out.User),
		Token:        out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    out.ExpiresAt,
	}
}

func newLoginResponse(out *usecase.LoginOutput) any {
	return &LoginResponse{
		Token:        out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    out.ExpiresAt,
		User:         newUserSummary(out.User),
	}
}

func newTokenResponse(out *usecase.TokenOutput) any {
	return &LoginResponse{
		Token:        out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    out.ExpiresAt,
		User:         newUserSummary(out.User),
	}
}

func newCategoryView(category *entity.Category) *CategoryView {
	if category == nil {
		return nil
	}

	return &CategoryView{ID: category.ID, Name: category.Name}
}

func newCategoryViews(categories []*entity.Category) any {
	views := make([]*CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, newCategoryView(category))
	}

	return views
}

func newProductView(product *entity.Product) *ProductView {
	if product == nil {
		return nil
	}

	return &ProductView{
		ArticleNumber:         product.ArticleNumber,
		Name:                  product.Name,
		SupplierArticleNumber: product.SupplierArticleNumber,
		Description:           product.Description,
		Price:                 product.Price,
		ImageURL:              product.ImageURL,
		CategoryID:            product.CategoryID,
		Category:              newCategoryView(product.Category),
		CreatedAt:             product.CreatedAt,
	}
}

func newProductViews(products []*entity.Product) any {
	views := make([]*ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, newProductView(product))
	}

	return views
}

func productView(product *entity.Product) any {
	return newProductView(product)
}

func categoryView(category *entity.Category) any {
	return newCategoryView(category)
}

func userView(user *entity.User) any {
	return newUserView(user)
}

func newSearchResponse(result *usecase.SearchResult) any {
	return &SearchResponse{
		Product:  newProductView(result.Product),
		Category: newCategoryView(result.Category),
	}
}
