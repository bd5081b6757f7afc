package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/newsroom-backend/auth"
	"github.com/rpupo63/newsroom-backend/models"
)

type stubUserStore struct {
	users map[uuid.UUID]*models.User
}

func (s *stubUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	return s.users[id], nil
}

func (s *stubUserStore) FindByEmail(email string) (*models.User, error) { return nil, nil }
func (s *stubUserStore) Add(user *models.User) error                    { return nil }
func (s *stubUserStore) Update(user *models.User) error                 { return nil }
func (s *stubUserStore) Delete(id uuid.UUID) error                      { return nil }

func TestResolvePrincipal(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.RoleEditor}
	store := &stubUserStore{users: map[uuid.UUID]*models.User{user.ID: user}}
	middleware := newAuthMiddleware(issuer, store)

	captured := func(out **auth.Principal) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*out = principalFromCtx(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("no credential passes through with nil principal", func(t *testing.T) {
		var principal *auth.Principal
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/articles", nil)

		middleware.resolvePrincipal(captured(&principal)).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, principal)
	})

	t.Run("valid token resolves id and role", func(t *testing.T) {
		token, err := issuer.Issue(user.ID)
		require.NoError(t, err)

		var principal *auth.Principal
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/articles", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		middleware.resolvePrincipal(captured(&principal)).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, principal)
		assert.Equal(t, user.ID, principal.ID)
		assert.Equal(t, models.RoleEditor, principal.Role)
	})

	t.Run("garbage token is rejected with 401", func(t *testing.T) {
		var principal *auth.Principal
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/articles", nil)
		r.Header.Set("Authorization", "Bearer garbage")

		middleware.resolvePrincipal(captured(&principal)).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, principal)
	})

	t.Run("token for a deleted user is rejected", func(t *testing.T) {
		token, err := issuer.Issue(uuid.New())
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/articles", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		var principal *auth.Principal
		middleware.resolvePrincipal(captured(&principal)).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLogInternalServerErrors(t *testing.T) {
	t.Run("recovers from panics with a 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler := LogInternalServerErrors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/articles", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("passes successful responses through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler := LogInternalServerErrors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/article", nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}
