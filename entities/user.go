package entities

import (
	"github.com/google/uuid"
	"time"
)

type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name       string     `json:"name"`
	Email      string     `gorm:"uniqueIndex" json:"email"`
	Password   string     `json:"-"`
	Role       string     `json:"role"`
	AvatarURL  string     `json:"avatar_url,omitempty"`
	IsVerified bool       `json:"is_verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`

	Stats *UserStats `gorm:"foreignKey:UserID"`
	Timestamp
}
