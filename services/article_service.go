package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/rpupo63/newsroom-backend/assets"
	"github.com/rpupo63/newsroom-backend/auth"
	"github.com/rpupo63/newsroom-backend/content"
	"github.com/rpupo63/newsroom-backend/errs"
	"github.com/rpupo63/newsroom-backend/models"
)

const assetCleanupTimeout = 30 * time.Second

// ArticleService orchestrates the article lifecycle: authorization,
// sanitization, invariant checks, slug assignment, status/timestamp rules
// and persistence, as one visible sequence per mutation.
type ArticleService struct {
	articles   ArticleStore
	categories CategoryStore
	assets     assets.Store
	sanitizer  *content.Sanitizer
	logger     zerolog.Logger
}

func NewArticleService(articles ArticleStore, categories CategoryStore, assetStore assets.Store, sanitizer *content.Sanitizer) *ArticleService {
	return &ArticleService{
		articles:   articles,
		categories: categories,
		assets:     assetStore,
		sanitizer:  sanitizer,
		logger:     log.With().Str("serviceName", "articleService").Logger(),
	}
}

// CreateArticleInput is the shape of a create mutation.
type CreateArticleInput struct {
	Title      string                `json:"title"`
	Content    string                `json:"content"`
	Summary    string                `json:"summary"`
	CategoryID uuid.UUID             `json:"categoryId"`
	Tags       []string              `json:"tags"`
	Images     []models.ArticleImage `json:"images"`
	Status     models.ArticleStatus  `json:"status"`
}

func (in CreateArticleInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error("title is required")),
		validation.Field(&in.Content, validation.Required.Error("content is required")),
		validation.Field(&in.CategoryID, validation.Required.Error("categoryId is required")),
		validation.Field(&in.Status, validation.In(
			models.StatusDraft, models.StatusPublished, models.StatusArchived,
		).Error("invalid status")),
	)
}

// UpdateArticleInput carries a partial update; nil fields are left
// untouched. Images distinguishes "omitted" (nil) from "set to empty"
// (non-nil empty slice), which is an invariant violation.
type UpdateArticleInput struct {
	Title      *string                `json:"title"`
	Content    *string                `json:"content"`
	Summary    *string                `json:"summary"`
	CategoryID *uuid.UUID             `json:"categoryId"`
	Tags       *[]string              `json:"tags"`
	Images     *[]models.ArticleImage `json:"images"`
	Status     *models.ArticleStatus  `json:"status"`
}

// Create runs the full creation sequence. Authorization is evaluated before
// any content work so a denied caller learns nothing about validation.
func (s *ArticleService) Create(ctx context.Context, input CreateArticleInput, principal *auth.Principal) (*models.Article, error) {
	if decision := auth.CanMutateArticle(principal, nil, auth.ActionCreate); !decision.Allowed() {
		return nil, decision.Err()
	}

	if err := input.Validate(); err != nil {
		return nil, errs.NewInvalidInputError(err.Error())
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}

	exists, err := s.categories.Exists(input.CategoryID)
	if err != nil {
		return nil, errs.FromDatabase("check", "category", err)
	}
	if !exists {
		return nil, errs.NewNotFoundError("category")
	}

	safe := s.sanitizer.Sanitize(input.Content)
	summary := strings.TrimSpace(input.Summary)
	if summary == "" {
		summary = content.Summarize(safe, content.SummaryMaxLen)
	}

	if err := validateImages(input.Images); err != nil {
		return nil, err
	}
	if err := s.validateTrusted(safe, input.Images); err != nil {
		return nil, err
	}

	article := &models.Article{
		ID:         uuid.New(),
		Title:      strings.TrimSpace(input.Title),
		Content:    safe,
		Summary:    summary,
		Status:     status,
		Tags:       normalizeTags(input.Tags),
		CategoryID: input.CategoryID,
		AuthorID:   principal.ID,
		WordCount:  content.WordCount(safe),
	}
	article.Images = buildImages(article.ID, input.Images)
	if status == models.StatusPublished {
		now := time.Now()
		article.PublishDate = &now
	}

	// The probe-then-insert pair can lose a race against a concurrent
	// creation with the same title; the unique index reports that as a
	// duplicate key and the probe is re-entered.
	for attempt := 0; attempt < slugRetryBudget; attempt++ {
		articleSlug, err := s.assignSlug(article.Title, uuid.Nil)
		if err != nil {
			return nil, err
		}
		article.Slug = articleSlug

		err = s.articles.Add(article)
		if err == nil {
			return article, nil
		}
		apiErr := errs.FromDatabase("create", "article", err)
		if !errs.IsConflict(apiErr) {
			return nil, apiErr
		}
		s.logger.Debug().Str("slug", articleSlug).Msg("lost slug race, retrying")
	}
	return nil, errs.NewConflictError("could not assign a unique slug")
}

// Update applies a partial patch. Unset fields keep their stored values;
// title changes reassign the slug excluding the article itself; the first
// transition to PUBLISHED stamps the publish date, which is never reset.
func (s *ArticleService) Update(ctx context.Context, id uuid.UUID, input UpdateArticleInput, principal *auth.Principal) (*models.Article, error) {
	existing, err := s.articles.FindByID(id)
	if err != nil {
		return nil, errs.FromDatabase("find", "article", err)
	}
	if existing == nil {
		return nil, errs.NewNotFoundError("article")
	}

	if decision := auth.CanMutateArticle(principal, existing, auth.ActionUpdate); !decision.Allowed() {
		return nil, decision.Err()
	}

	titleChanged := false
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errs.NewInvalidFieldError("title", "title must not be empty")
		}
		titleChanged = title != existing.Title
		existing.Title = title
	}

	if input.CategoryID != nil && *input.CategoryID != existing.CategoryID {
		exists, err := s.categories.Exists(*input.CategoryID)
		if err != nil {
			return nil, errs.FromDatabase("check", "category", err)
		}
		if !exists {
			return nil, errs.NewNotFoundError("category")
		}
		existing.CategoryID = *input.CategoryID
	}

	contentChanged := false
	if input.Content != nil {
		safe := s.sanitizer.Sanitize(*input.Content)
		contentChanged = safe != existing.Content
		existing.Content = safe
		existing.WordCount = content.WordCount(safe)
	}
	if input.Summary != nil {
		existing.Summary = strings.TrimSpace(*input.Summary)
	} else if contentChanged {
		existing.Summary = content.Summarize(existing.Content, content.SummaryMaxLen)
	}

	if input.Tags != nil {
		existing.Tags = normalizeTags(*input.Tags)
	}

	var removed []string
	if input.Images != nil {
		if err := validateImages(*input.Images); err != nil {
			return nil, err
		}
		removed = assets.DiffRemoved(existing.Images, *input.Images)
		existing.Images = buildImages(existing.ID, *input.Images)
	}
	if contentChanged || input.Images != nil {
		if err := s.validateTrusted(existing.Content, existing.Images); err != nil {
			return nil, err
		}
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, errs.NewInvalidFieldError("status", fmt.Sprintf("invalid status %q", *input.Status))
		}
		if *input.Status == models.StatusPublished && existing.PublishDate == nil {
			now := time.Now()
			existing.PublishDate = &now
		}
		existing.Status = *input.Status
	}

	persisted := false
	for attempt := 0; attempt < slugRetryBudget && !persisted; attempt++ {
		if titleChanged {
			articleSlug, err := s.assignSlug(existing.Title, existing.ID)
			if err != nil {
				return nil, err
			}
			existing.Slug = articleSlug
		}

		err := s.articles.Update(existing)
		if err == nil {
			persisted = true
			break
		}
		apiErr := errs.FromDatabase("update", "article", err)
		if !titleChanged || !errs.IsConflict(apiErr) {
			return nil, apiErr
		}
		s.logger.Debug().Str("slug", existing.Slug).Msg("lost slug race, retrying")
	}
	if !persisted {
		return nil, errs.NewConflictError("could not assign a unique slug")
	}

	if len(removed) > 0 {
		s.cleanupAssets(removed)
	}
	return existing, nil
}

// Delete removes the article and fires a best-effort cleanup of every
// asset it referenced.
func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID, principal *auth.Principal) error {
	existing, err := s.articles.FindByID(id)
	if err != nil {
		return errs.FromDatabase("find", "article", err)
	}
	if existing == nil {
		return errs.NewNotFoundError("article")
	}

	if decision := auth.CanMutateArticle(principal, existing, auth.ActionDelete); !decision.Allowed() {
		return decision.Err()
	}

	urls := referencedAssets(existing)
	if err := s.articles.Delete(id); err != nil {
		return errs.FromDatabase("delete", "article", err)
	}

	s.cleanupAssets(urls)
	return nil
}

// Get resolves a single article by id.
func (s *ArticleService) Get(id uuid.UUID) (*models.Article, error) {
	article, err := s.articles.FindByID(id)
	if err != nil {
		return nil, errs.FromDatabase("find", "article", err)
	}
	if article == nil {
		return nil, errs.NewNotFoundError("article")
	}
	return article, nil
}

// GetBySlug resolves a single article by its slug.
func (s *ArticleService) GetBySlug(slug string) (*models.Article, error) {
	article, err := s.articles.FindBySlug(slug)
	if err != nil {
		return nil, errs.FromDatabase("find", "article", err)
	}
	if article == nil {
		return nil, errs.NewNotFoundError("article")
	}
	return article, nil
}

// List returns one page of articles under filter and sort.
func (s *ArticleService) List(filter models.ArticleFilter, sort models.ArticleSort, limit, offset int) (*models.ArticleList, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	sort, err := normalizeSort(sort)
	if err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset)

	list, err := s.articles.List(filter, sort, limit, offset)
	if err != nil {
		return nil, errs.FromDatabase("list", "articles", err)
	}
	return list, nil
}

// Search runs a free-text query ranked by relevance, with the same filter
// and pagination behavior as List.
func (s *ArticleService) Search(query string, filter models.ArticleFilter, limit, offset int) (*models.ArticleList, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errs.NewInvalidFieldError("q", "search query is required")
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset)

	list, err := s.articles.Search(query, filter, limit, offset)
	if err != nil {
		return nil, errs.FromDatabase("search", "articles", err)
	}
	return list, nil
}

// cleanupAssets deletes orphaned assets without blocking or failing the
// mutation that orphaned them. Failures are logged only.
func (s *ArticleService) cleanupAssets(urls []string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), assetCleanupTimeout)
		defer cancel()

		group, ctx := errgroup.WithContext(ctx)
		for _, rawURL := range urls {
			group.Go(func() error {
				return s.assets.Delete(ctx, rawURL)
			})
		}
		if err := group.Wait(); err != nil {
			s.logger.Warn().Err(err).Int("assets", len(urls)).Msg("asset cleanup incomplete")
		}
	}()
}

// validateImages enforces the image invariants: at least one entry, every
// entry carrying a url, exactly one marked main.
func validateImages(images []models.ArticleImage) error {
	if len(images) == 0 {
		return errs.NewInvalidFieldError("images", "article must have at least one image")
	}
	mainCount := 0
	for _, img := range images {
		if strings.TrimSpace(img.URL) == "" {
			return errs.NewInvalidFieldError("images", "image url is required")
		}
		if img.IsMain {
			mainCount++
		}
	}
	if mainCount != 1 {
		return errs.NewInvalidFieldError("images", "exactly one image must be marked as main")
	}
	return nil
}

// validateTrusted rejects the write if any image entry or inline content
// reference points outside the trusted asset store.
func (s *ArticleService) validateTrusted(safeContent string, images []models.ArticleImage) error {
	for _, img := range images {
		if !s.assets.Trusted(img.URL) {
			return errs.NewInvalidFieldError("images", fmt.Sprintf("image url %q is not from the trusted asset store", img.URL))
		}
	}
	for _, ref := range content.ExtractImageRefs(safeContent) {
		if !s.assets.Trusted(ref) {
			return errs.NewInvalidFieldError("content", fmt.Sprintf("inline image %q is not from the trusted asset store", ref))
		}
	}
	return nil
}

// buildImages assigns fresh ids, the owning article and list positions.
func buildImages(articleID uuid.UUID, images []models.ArticleImage) []models.ArticleImage {
	built := make([]models.ArticleImage, len(images))
	for i, img := range images {
		img.ID = uuid.New()
		img.ArticleID = articleID
		img.Position = i
		built[i] = img
	}
	return built
}

// normalizeTags trims entries, drops empties and deduplicates while
// preserving first-seen order for display.
func normalizeTags(tags []string) datatypes.JSONSlice[string] {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return datatypes.NewJSONSlice(normalized)
}

func validateFilter(filter models.ArticleFilter) error {
	if filter.Status != nil && !filter.Status.Valid() {
		return errs.NewInvalidFieldError("status", fmt.Sprintf("invalid status %q", *filter.Status))
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return errs.NewInvalidFieldError("fromDate", "fromDate must not be after toDate")
	}
	return nil
}

func normalizeSort(sort models.ArticleSort) (models.ArticleSort, error) {
	if sort.Field == "" && sort.Order == "" {
		return models.DefaultSort(), nil
	}
	if sort.Field == "" {
		sort.Field = models.SortByCreatedAt
	}
	if sort.Order == "" {
		sort.Order = models.OrderDesc
	}
	if !sort.Field.Valid() {
		return sort, errs.NewInvalidFieldError("sort", fmt.Sprintf("invalid sort field %q", sort.Field))
	}
	if !sort.Order.Valid() {
		return sort, errs.NewInvalidFieldError("order", fmt.Sprintf("invalid sort order %q", sort.Order))
	}
	return sort, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// referencedAssets collects every distinct asset URL an article points at,
// both from the images list and inline in the content.
func referencedAssets(article *models.Article) []string {
	seen := make(map[string]struct{})
	var urls []string
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	for _, img := range article.Images {
		add(img.URL)
	}
	for _, ref := range content.ExtractImageRefs(article.Content) {
		add(ref)
	}
	return urls
}
