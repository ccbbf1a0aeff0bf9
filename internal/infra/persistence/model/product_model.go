package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID       int64          `gorm:"primaryKey;autoIncrement"`
	Name     string         `gorm:"type:varchar(100);not null;index"`
	Products []ProductModel `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel mirrors the 'products' table. Price is a fixed point numeric.
type ProductModel struct {
	ArticleNumber         int64           `gorm:"primaryKey;autoIncrement"`
	Name                  string          `gorm:"type:varchar(200);not null;index"`
	SupplierArticleNumber string          `gorm:"type:varchar(100)"`
	Description           string          `gorm:"type:text"`
	Price                 decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	ImageURL              string          `gorm:"column:image_url;type:varchar(1024)"`
	CreatedAt             time.Time       `gorm:"not null"`
	CategoryID            int64           `gorm:"not null;index"`
	Category              *CategoryModel  `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
