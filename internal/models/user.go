package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can sign in with a password, with Google, or both.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"size:255" json:"name"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash *string        `gorm:"size:255" json:"-"`
	ExternalID   *string        `gorm:"size:255;uniqueIndex" json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasPassword reports whether password login is available for the account.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// IsLinked reports whether the account is linked to a Google identity.
func (u *User) IsLinked() bool {
	return u.ExternalID != nil && *u.ExternalID != ""
}
