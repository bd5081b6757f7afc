package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/newsroom-backend/auth"
	"github.com/rpupo63/newsroom-backend/errs"
	"github.com/rpupo63/newsroom-backend/models"
)

// CategoryService covers category record management. Categories are plain
// records: unique name, slug derived from it.
type CategoryService struct {
	categories CategoryStore
	logger     zerolog.Logger
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     log.With().Str("serviceName", "categoryService").Logger(),
	}
}

// List returns all categories ordered by name.
func (s *CategoryService) List() ([]*models.Category, error) {
	categories, err := s.categories.FindAll()
	if err != nil {
		return nil, errs.FromDatabase("list", "categories", err)
	}
	return categories, nil
}

// Get resolves a category by id.
func (s *CategoryService) Get(id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindByID(id)
	if err != nil {
		return nil, errs.FromDatabase("find", "category", err)
	}
	if category == nil {
		return nil, errs.NewNotFoundError("category")
	}
	return category, nil
}

// Create adds a category with a unique name; the slug is derived from it.
func (s *CategoryService) Create(name string, principal *auth.Principal) (*models.Category, error) {
	if principal == nil {
		return nil, errs.NewAuthenticationRequiredError()
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewInvalidFieldError("name", "category name is required")
	}
	categorySlug := slug.Make(name)
	if categorySlug == "" {
		return nil, errs.NewInvalidFieldError("name", "category name does not reduce to a valid slug")
	}

	existing, err := s.categories.FindByName(name)
	if err != nil {
		return nil, errs.FromDatabase("find", "category", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError("category already exists")
	}

	category := &models.Category{
		ID:   uuid.New(),
		Name: name,
		Slug: categorySlug,
	}
	if err := s.categories.Add(category); err != nil {
		return nil, errs.FromDatabase("create", "category", err)
	}
	return category, nil
}

// Update renames a category; the slug is re-derived from the new name.
func (s *CategoryService) Update(id uuid.UUID, name string, principal *auth.Principal) (*models.Category, error) {
	if principal == nil {
		return nil, errs.NewAuthenticationRequiredError()
	}

	category, err := s.categories.FindByID(id)
	if err != nil {
		return nil, errs.FromDatabase("find", "category", err)
	}
	if category == nil {
		return nil, errs.NewNotFoundError("category")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewInvalidFieldError("name", "category name is required")
	}
	categorySlug := slug.Make(name)
	if categorySlug == "" {
		return nil, errs.NewInvalidFieldError("name", "category name does not reduce to a valid slug")
	}

	other, err := s.categories.FindByName(name)
	if err != nil {
		return nil, errs.FromDatabase("find", "category", err)
	}
	if other != nil && other.ID != id {
		return nil, errs.NewConflictError("category already exists")
	}

	category.Name = name
	category.Slug = categorySlug
	if err := s.categories.Update(category); err != nil {
		return nil, errs.FromDatabase("update", "category", err)
	}
	return category, nil
}

// Delete removes a category. Article references are not checked here;
// existing articles keep their category id.
func (s *CategoryService) Delete(id uuid.UUID, principal *auth.Principal) error {
	if principal == nil {
		return errs.NewAuthenticationRequiredError()
	}

	category, err := s.categories.FindByID(id)
	if err != nil {
		return errs.FromDatabase("find", "category", err)
	}
	if category == nil {
		return errs.NewNotFoundError("category")
	}

	if err := s.categories.Delete(id); err != nil {
		return errs.FromDatabase("delete", "category", err)
	}
	return nil
}
