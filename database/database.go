package database

import (
	"gorm.io/gorm"

	"github.com/rpupo63/newsroom-backend/models"
)

type Database struct {
	articleRepo  *ArticleRepo
	categoryRepo *CategoryRepo
	userRepo     *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		articleRepo:  NewArticleRepo(db),
		categoryRepo: NewCategoryRepo(db),
		userRepo:     NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ArticleRepo() *ArticleRepo {
	return d.articleRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Migrate creates or updates the schema for every entity. The unique index
// on articles.slug is the fallback that keeps concurrent slug assignment
// correct, so migration failure is fatal to startup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Article{},
		&models.ArticleImage{},
	)
}
