package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item keyed by its article number. The name is used as
// the conflict key on creation.
type Product struct {
	ArticleNumber         int64
	Name                  string
	SupplierArticleNumber string
	Description           string
	Price                 decimal.Decimal
	ImageURL              string
	CreatedAt             time.Time
	CategoryID            int64
	Category              *Category // Populated when the query preloads it.
}

// InPriceRange reports whether the price lies within [min, max].
func (p *Product) InPriceRange(minPrice, maxPrice decimal.Decimal) bool {
	return p.Price.GreaterThanOrEqual(minPrice) && p.Price.LessThanOrEqual(maxPrice)
}

// Category groups products. Names are unique by convention; the service
// looks a name up before creating it.
type Category struct {
	ID       int64
	Name     string
	Products []*Product
}
