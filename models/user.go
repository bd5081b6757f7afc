package models

import (
	"time"

	"github.com/google/uuid"
)

// Role of an authenticated principal.
type Role string

const (
	RoleReader     Role = "READER"
	RoleJournalist Role = "JOURNALIST"
	RoleEditor     Role = "EDITOR"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleJournalist, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// User is an account in the publication. The core only consumes its id and
// role; credentials are handled by the user service.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name         string    `json:"name" gorm:"type:text;not null"`
	Email        string    `json:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:text;not null;column:password_hash"`
	Role         Role      `json:"role" gorm:"type:text;not null;default:'READER';index"`
	CreatedAt    time.Time `json:"createdAt" gorm:"type:timestamptz;not null"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"type:timestamptz;not null"`
}
