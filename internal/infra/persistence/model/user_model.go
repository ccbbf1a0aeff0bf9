package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName          string    `gorm:"type:varchar(200)"`
	FirstName         string    `gorm:"type:varchar(100)"`
	LastName          string    `gorm:"type:varchar(100)"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	OAuthProvider     string    `gorm:"column:oauth_provider;type:varchar(50)"`
	OAuthID           string    `gorm:"column:oauth_id;type:varchar(255)"`
	AccessFailedCount int       `gorm:"not null;default:0"`
	LockoutEnd        *time.Time
	TwoFactorEnabled  bool `gorm:"not null;default:false"`
	LoginDisabled     bool `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
