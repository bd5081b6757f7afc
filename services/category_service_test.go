package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/newsroom-backend/auth"
	"github.com/rpupo63/newsroom-backend/errs"
	"github.com/rpupo63/newsroom-backend/models"
	"github.com/rpupo63/newsroom-backend/services"
)

func TestCategoryCreate(t *testing.T) {
	editor := &auth.Principal{ID: uuid.New(), Role: models.RoleEditor}

	t.Run("creates with derived slug", func(t *testing.T) {
		store := newFakeCategoryStore()
		svc := services.NewCategoryService(store)

		category, err := svc.Create("Arts & Culture", editor)
		require.NoError(t, err)
		assert.Equal(t, "Arts & Culture", category.Name)
		assert.Equal(t, "arts-and-culture", category.Slug)
		assert.NotEqual(t, uuid.Nil, category.ID)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		store := newFakeCategoryStore()
		store.seed(&models.Category{ID: uuid.New(), Name: "World", Slug: "world"})
		svc := services.NewCategoryService(store)

		_, err := svc.Create("World", editor)
		assert.True(t, errs.IsConflict(err))
	})

	t.Run("blank name is invalid", func(t *testing.T) {
		svc := services.NewCategoryService(newFakeCategoryStore())
		_, err := svc.Create("   ", editor)
		assert.True(t, errs.IsInvalidInput(err))
	})

	t.Run("anonymous denied", func(t *testing.T) {
		svc := services.NewCategoryService(newFakeCategoryStore())
		_, err := svc.Create("World", nil)
		assert.True(t, errs.IsAuthenticationRequired(err))
	})
}

func TestCategoryUpdate(t *testing.T) {
	editor := &auth.Principal{ID: uuid.New(), Role: models.RoleEditor}

	t.Run("rename re-derives the slug", func(t *testing.T) {
		store := newFakeCategoryStore()
		existing := &models.Category{ID: uuid.New(), Name: "Tech", Slug: "tech"}
		store.seed(existing)
		svc := services.NewCategoryService(store)

		updated, err := svc.Update(existing.ID, "Science & Technology", editor)
		require.NoError(t, err)
		assert.Equal(t, "science-and-technology", updated.Slug)
	})

	t.Run("renaming onto another category conflicts", func(t *testing.T) {
		store := newFakeCategoryStore()
		a := &models.Category{ID: uuid.New(), Name: "Tech", Slug: "tech"}
		b := &models.Category{ID: uuid.New(), Name: "World", Slug: "world"}
		store.seed(a)
		store.seed(b)
		svc := services.NewCategoryService(store)

		_, err := svc.Update(a.ID, "World", editor)
		assert.True(t, errs.IsConflict(err))
	})

	t.Run("renaming to its own name is allowed", func(t *testing.T) {
		store := newFakeCategoryStore()
		existing := &models.Category{ID: uuid.New(), Name: "Tech", Slug: "tech"}
		store.seed(existing)
		svc := services.NewCategoryService(store)

		_, err := svc.Update(existing.ID, "Tech", editor)
		assert.NoError(t, err)
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		svc := services.NewCategoryService(newFakeCategoryStore())
		_, err := svc.Update(uuid.New(), "Tech", editor)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestCategoryDelete(t *testing.T) {
	editor := &auth.Principal{ID: uuid.New(), Role: models.RoleEditor}

	t.Run("delete removes the record", func(t *testing.T) {
		store := newFakeCategoryStore()
		existing := &models.Category{ID: uuid.New(), Name: "Tech", Slug: "tech"}
		store.seed(existing)
		svc := services.NewCategoryService(store)

		require.NoError(t, svc.Delete(existing.ID, editor))

		_, err := svc.Get(existing.ID)
		assert.True(t, errs.IsNotFound(err))
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		svc := services.NewCategoryService(newFakeCategoryStore())
		assert.True(t, errs.IsNotFound(svc.Delete(uuid.New(), editor)))
	})
}

func TestCategoryGetAndList(t *testing.T) {
	store := newFakeCategoryStore()
	existing := &models.Category{ID: uuid.New(), Name: "Tech", Slug: "tech"}
	store.seed(existing)
	svc := services.NewCategoryService(store)

	got, err := svc.Get(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech", got.Name)

	all, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
