package services_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/newsroom-backend/assets"
	"github.com/rpupo63/newsroom-backend/models"
)

// fakeArticleStore is an in-memory ArticleStore. failDuplicates makes the
// next N writes lose the slug race: the write fails with a duplicate key
// error and the contested slug becomes taken, as if a concurrent writer won.
type fakeArticleStore struct {
	mu             sync.Mutex
	articles       map[uuid.UUID]*models.Article
	slugs          map[string]uuid.UUID
	failDuplicates int
	addCalls       int

	listFn   func(filter models.ArticleFilter, sort models.ArticleSort, limit, offset int) (*models.ArticleList, error)
	searchFn func(query string, filter models.ArticleFilter, limit, offset int) (*models.ArticleList, error)
}

func newFakeArticleStore() *fakeArticleStore {
	return &fakeArticleStore{
		articles: make(map[uuid.UUID]*models.Article),
		slugs:    make(map[string]uuid.UUID),
	}
}

func (f *fakeArticleStore) seed(article *models.Article) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *article
	f.articles[article.ID] = &copied
	if article.Slug != "" {
		f.slugs[article.Slug] = article.ID
	}
}

func (f *fakeArticleStore) takeSlug(slug string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slugs[slug] = uuid.New()
}

func (f *fakeArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	article, ok := f.articles[id]
	if !ok {
		return nil, nil
	}
	copied := *article
	return &copied, nil
}

func (f *fakeArticleStore) FindBySlug(slug string) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.slugs[slug]
	if !ok {
		return nil, nil
	}
	article, ok := f.articles[id]
	if !ok {
		return nil, nil
	}
	copied := *article
	return &copied, nil
}

func (f *fakeArticleStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.slugs[slug]
	return ok && id != excludeID, nil
}

func (f *fakeArticleStore) Add(article *models.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.failDuplicates > 0 {
		f.failDuplicates--
		f.slugs[article.Slug] = uuid.New()
		return gorm.ErrDuplicatedKey
	}
	copied := *article
	f.articles[article.ID] = &copied
	f.slugs[article.Slug] = article.ID
	return nil
}

func (f *fakeArticleStore) Update(article *models.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDuplicates > 0 {
		f.failDuplicates--
		f.slugs[article.Slug] = uuid.New()
		return gorm.ErrDuplicatedKey
	}
	if previous, ok := f.articles[article.ID]; ok && previous.Slug != article.Slug {
		delete(f.slugs, previous.Slug)
	}
	copied := *article
	f.articles[article.ID] = &copied
	f.slugs[article.Slug] = article.ID
	return nil
}

func (f *fakeArticleStore) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if article, ok := f.articles[id]; ok {
		delete(f.slugs, article.Slug)
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeArticleStore) List(filter models.ArticleFilter, sort models.ArticleSort, limit, offset int) (*models.ArticleList, error) {
	if f.listFn != nil {
		return f.listFn(filter, sort, limit, offset)
	}
	return &models.ArticleList{}, nil
}

func (f *fakeArticleStore) Search(query string, filter models.ArticleFilter, limit, offset int) (*models.ArticleList, error) {
	if f.searchFn != nil {
		return f.searchFn(query, filter, limit, offset)
	}
	return &models.ArticleList{}, nil
}

func (f *fakeArticleStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addCalls
}

type fakeCategoryStore struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[uuid.UUID]*models.Category)}
}

func (f *fakeCategoryStore) seed(category *models.Category) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *category
	f.categories[category.ID] = &copied
}

func (f *fakeCategoryStore) FindAll() ([]*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*models.Category, 0, len(f.categories))
	for _, category := range f.categories {
		copied := *category
		all = append(all, &copied)
	}
	return all, nil
}

func (f *fakeCategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *category
	return &copied, nil
}

func (f *fakeCategoryStore) FindByName(name string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, category := range f.categories {
		if category.Name == name {
			copied := *category
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryStore) Exists(id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.categories[id]
	return ok, nil
}

func (f *fakeCategoryStore) Add(category *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *category
	f.categories[category.ID] = &copied
	return nil
}

func (f *fakeCategoryStore) Update(category *models.Category) error {
	return f.Add(category)
}

func (f *fakeCategoryStore) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.categories, id)
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) seed(user *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
}

func (f *fakeUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Add(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) Update(user *models.User) error {
	return f.Add(user)
}

func (f *fakeUserStore) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

// fakeAssetStore trusts a fixed host list and records deletions so tests can
// observe the asynchronous cleanup.
type fakeAssetStore struct {
	mu           sync.Mutex
	trustedHosts []string
	deleted      []string
}

func newFakeAssetStore(hosts ...string) *fakeAssetStore {
	if len(hosts) == 0 {
		hosts = []string{"cdn.example.com"}
	}
	return &fakeAssetStore{trustedHosts: hosts}
}

func (f *fakeAssetStore) Trusted(rawURL string) bool {
	return assets.TrustedHost(rawURL, f.trustedHosts)
}

func (f *fakeAssetStore) Delete(ctx context.Context, rawURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, rawURL)
	return nil
}

func (f *fakeAssetStore) deletedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.deleted))
	copy(out, f.deleted)
	return out
}
