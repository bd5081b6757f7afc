package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ArticleStatus is the lifecycle state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPublished ArticleStatus = "PUBLISHED"
	StatusArchived  ArticleStatus = "ARCHIVED"
)

// Valid reports whether s is one of the declared statuses.
func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Article represents a news article with its embedded images
type Article struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string                      `json:"title" gorm:"type:text;not null"`
	Content     string                      `json:"content" gorm:"type:text;not null"`
	Summary     string                      `json:"summary" gorm:"type:text;not null"`
	Slug        string                      `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Status      ArticleStatus               `json:"status" gorm:"type:text;not null;default:'DRAFT';index"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty" gorm:"type:jsonb"`
	CategoryID  uuid.UUID                   `json:"categoryId" gorm:"type:uuid;not null;index"`
	AuthorID    uuid.UUID                   `json:"authorId" gorm:"type:uuid;not null;index"`
	WordCount   int                         `json:"wordCount" gorm:"not null;default:0"`
	Images      []ArticleImage              `json:"images" gorm:"foreignKey:ArticleID;references:ID;constraint:OnDelete:CASCADE"`
	PublishDate *time.Time                  `json:"publishDate,omitempty" gorm:"type:timestamptz"`
	CreatedAt   time.Time                   `json:"createdAt" gorm:"type:timestamptz;not null;index"`
	UpdatedAt   time.Time                   `json:"updatedAt" gorm:"type:timestamptz;not null"`
}

// ArticleImage is one entry of an article's ordered image list.
type ArticleImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	ArticleID uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	IsMain    bool      `json:"isMain" gorm:"not null;default:false"`
	Caption   string    `json:"caption,omitempty" gorm:"type:text"`
	AltText   string    `json:"altText,omitempty" gorm:"type:text"`
	Credit    string    `json:"credit,omitempty" gorm:"type:text"`
	Position  int       `json:"-" gorm:"not null;default:0"`
}

// MainImage returns the image marked as main, or nil if the list is
// in an invalid state.
func (a *Article) MainImage() *ArticleImage {
	for i := range a.Images {
		if a.Images[i].IsMain {
			return &a.Images[i]
		}
	}
	return nil
}
