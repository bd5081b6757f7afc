package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/newsroom-backend/models"
)

type ArticleRepo struct {
	db *gorm.DB
}

func NewArticleRepo(db *gorm.DB) *ArticleRepo {
	return &ArticleRepo{db}
}

// FindByID returns an article with its ordered images, or nil when the id
// does not resolve.
func (r *ArticleRepo) FindByID(id uuid.UUID) (*models.Article, error) {
	var article models.Article
	err := r.db.
		Preload("Images", orderedImages).
		First(&article, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// FindBySlug returns an article by its slug, or nil when no article carries
// it.
func (r *ArticleRepo) FindBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.
		Preload("Images", orderedImages).
		First(&article, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// SlugExists probes whether any article other than excludeID already holds
// slug. Pass uuid.Nil when creating.
func (r *ArticleRepo) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	query := r.db.Model(&models.Article{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a new article with its images
func (r *ArticleRepo) Add(article *models.Article) error {
	return r.db.Create(article).Error
}

// Update persists an article and replaces its image rows atomically.
func (r *ArticleRepo) Update(article *models.Article) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleImage{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(article).Error
	})
}

// Delete removes an article; image rows go with it via the cascade
// constraint.
func (r *ArticleRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Article{}, "id = ?", id).Error
}

// List returns one page of articles under filter and sort. It fetches
// limit+1 rows to compute hasMore without a second scan; total comes from
// an independent count against the same filter and may skew slightly under
// concurrent writes.
func (r *ArticleRepo) List(filter models.ArticleFilter, sort models.ArticleSort, limit, offset int) (*models.ArticleList, error) {
	var total int64
	if err := applyFilter(r.db.Model(&models.Article{}), filter).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []*models.Article
	err := applyFilter(r.db.Model(&models.Article{}), filter).
		Preload("Images", orderedImages).
		Order(orderClause(sort)).
		Limit(limit + 1).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return paginate(items, total, limit), nil
}

// Search restricts to articles matching query in title, summary, tags or
// content, ranked by a weighted match score, with the same filter and
// pagination machinery as List.
func (r *ArticleRepo) Search(query string, filter models.ArticleFilter, limit, offset int) (*models.ArticleList, error) {
	pattern := likePattern(query)
	match := "title ILIKE @q OR summary ILIKE @q OR tags::text ILIKE @q OR content ILIKE @q"
	args := map[string]interface{}{"q": pattern}

	var total int64
	err := applyFilter(r.db.Model(&models.Article{}), filter).
		Where(match, args).
		Count(&total).Error
	if err != nil {
		return nil, err
	}

	rank := clause.OrderBy{Expression: clause.Expr{
		SQL: "(CASE WHEN title ILIKE ? THEN 4 ELSE 0 END + " +
			"CASE WHEN summary ILIKE ? THEN 3 ELSE 0 END + " +
			"CASE WHEN tags::text ILIKE ? THEN 2 ELSE 0 END + " +
			"CASE WHEN content ILIKE ? THEN 1 ELSE 0 END) DESC, created_at DESC",
		Vars: []interface{}{pattern, pattern, pattern, pattern},
	}}

	var items []*models.Article
	err = applyFilter(r.db.Model(&models.Article{}), filter).
		Where(match, args).
		Preload("Images", orderedImages).
		Clauses(rank).
		Limit(limit + 1).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return paginate(items, total, limit), nil
}

func paginate(items []*models.Article, total int64, limit int) *models.ArticleList {
	hasMore := false
	if len(items) > limit {
		hasMore = true
		items = items[:limit]
	}
	if items == nil {
		items = []*models.Article{}
	}
	return &models.ArticleList{Items: items, Total: total, HasMore: hasMore}
}

// applyFilter ANDs every set dimension onto query; absent dimensions impose
// no constraint.
func applyFilter(query *gorm.DB, filter models.ArticleFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if len(filter.Tags) > 0 {
		query = query.Where(tagsMatchAny(query.Session(&gorm.Session{NewDB: true}), filter.Tags))
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}
	return query
}

// tagsMatchAny builds an OR group of jsonb containment checks, one per tag.
func tagsMatchAny(db *gorm.DB, tags []string) *gorm.DB {
	cond := db.Where("tags @> ?", jsonTag(tags[0]))
	for _, tag := range tags[1:] {
		cond = cond.Or("tags @> ?", jsonTag(tag))
	}
	return cond
}

func jsonTag(tag string) string {
	// jsonb containment against a single-element array; tags never contain
	// raw quotes after input validation, but escape anyway
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(tag)
	return `["` + escaped + `"]`
}

func orderClause(sort models.ArticleSort) string {
	column := map[models.SortField]string{
		models.SortByCreatedAt: "created_at",
		models.SortByUpdatedAt: "updated_at",
		models.SortByTitle:     "title",
		models.SortByStatus:    "status",
	}[sort.Field]
	if column == "" {
		column = "created_at"
	}

	direction := "DESC"
	if sort.Order == models.OrderAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

// likePattern wraps query for a substring ILIKE match, escaping the LIKE
// metacharacters in user input.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
