package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named section articles are filed under. Its lifecycle is
// independent of articles; articles reference it by id.
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Slug      string    `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt" gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"type:timestamptz;not null"`
}
