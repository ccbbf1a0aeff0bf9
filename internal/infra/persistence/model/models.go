// Package model holds the GORM table mappings of the persistence layer.
package model

// All lists every table model in dependency order, for migrations.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&CategoryModel{},
		&ProductModel{},
	}
}
