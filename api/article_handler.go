package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/newsroom-backend/errs"
	"github.com/rpupo63/newsroom-backend/services"
)

type articleHandler struct {
	responder Responder
	logger    zerolog.Logger
	articles  *services.ArticleService
}

func newArticleHandler(articles *services.ArticleService) articleHandler {
	logger := log.With().Str("handlerName", "articleHandler").Logger()

	return articleHandler{
		responder: NewResponder(logger),
		logger:    logger,
		articles:  articles,
	}
}

// listArticles returns one page of articles under the query's filter, sort
// and pagination parameters.
func (h articleHandler) listArticles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseArticleFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		limit, offset, err := parsePage(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		list, err := h.articles.List(filter, parseSort(r), limit, offset)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, list)
	}
}

// searchArticles ranks articles against the q parameter and applies the
// same filter and pagination machinery as listArticles.
func (h articleHandler) searchArticles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseArticleFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		limit, offset, err := parsePage(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		list, err := h.articles.Search(r.URL.Query().Get("q"), filter, limit, offset)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, list)
	}
}

// getArticle retrieves a single article by id
func (h articleHandler) getArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("articleID", "invalid articleID"))
			return
		}

		article, err := h.articles.Get(articleID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, article)
	}
}

// getArticleBySlug retrieves a single article by its slug
func (h articleHandler) getArticleBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewInvalidFieldError("slug", "missing slug"))
			return
		}

		article, err := h.articles.GetBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, article)
	}
}

// createArticle creates a new article for the resolved principal
func (h articleHandler) createArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.CreateArticleInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode article request body")
			h.responder.WriteError(w, errs.NewInvalidInputError("malformed request body"))
			return
		}

		article, err := h.articles.Create(r.Context(), input, principalFromCtx(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, article)
	}
}

// updateArticle applies a partial patch to an existing article
func (h articleHandler) updateArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("articleID", "invalid articleID"))
			return
		}

		var input services.UpdateArticleInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode article request body")
			h.responder.WriteError(w, errs.NewInvalidInputError("malformed request body"))
			return
		}

		article, err := h.articles.Update(r.Context(), articleID, input, principalFromCtx(r.Context()))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, article)
	}
}

// deleteArticle removes an article by id
func (h articleHandler) deleteArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("articleID", "invalid articleID"))
			return
		}

		if err := h.articles.Delete(r.Context(), articleID, principalFromCtx(r.Context())); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "article deleted successfully",
		})
	}
}
