package services

import (
	"github.com/google/uuid"

	"github.com/rpupo63/newsroom-backend/models"
)

// ArticleStore is the persistence surface the article lifecycle drives.
// *database.ArticleRepo satisfies it; tests substitute fakes.
type ArticleStore interface {
	FindByID(id uuid.UUID) (*models.Article, error)
	FindBySlug(slug string) (*models.Article, error)
	SlugExists(slug string, excludeID uuid.UUID) (bool, error)
	Add(article *models.Article) error
	Update(article *models.Article) error
	Delete(id uuid.UUID) error
	List(filter models.ArticleFilter, sort models.ArticleSort, limit, offset int) (*models.ArticleList, error)
	Search(query string, filter models.ArticleFilter, limit, offset int) (*models.ArticleList, error)
}

// CategoryStore is satisfied by *database.CategoryRepo.
type CategoryStore interface {
	FindAll() ([]*models.Category, error)
	FindByID(id uuid.UUID) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	Exists(id uuid.UUID) (bool, error)
	Add(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uuid.UUID) error
}

// UserStore is satisfied by *database.UserRepo.
type UserStore interface {
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Add(user *models.User) error
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}
