package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/newsroom-backend/errs"
	"github.com/rpupo63/newsroom-backend/models"
)

// dateFormats accepted in from/to filter parameters.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

// parseArticleFilter reads the optional filter dimensions from query
// parameters. Enum validity is checked by the service; malformed ids and
// dates are rejected here.
func parseArticleFilter(r *http.Request) (models.ArticleFilter, error) {
	var filter models.ArticleFilter
	query := r.URL.Query()

	if status := query.Get("status"); status != "" {
		s := models.ArticleStatus(strings.ToUpper(status))
		filter.Status = &s
	}

	if categoryID := query.Get("categoryId"); categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			return filter, errs.NewInvalidFieldError("categoryId", "invalid categoryId")
		}
		filter.CategoryID = &id
	}

	if authorID := query.Get("authorId"); authorID != "" {
		id, err := uuid.Parse(authorID)
		if err != nil {
			return filter, errs.NewInvalidFieldError("authorId", "invalid authorId")
		}
		filter.AuthorID = &id
	}

	if tags := query.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				filter.Tags = append(filter.Tags, trimmed)
			}
		}
	}

	if from := query.Get("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return filter, errs.NewInvalidFieldError("from", "invalid from date")
		}
		filter.FromDate = &t
	}

	if to := query.Get("to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			return filter, errs.NewInvalidFieldError("to", "invalid to date")
		}
		filter.ToDate = &t
	}

	return filter, nil
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, format := range dateFormats {
		t, err := time.Parse(format, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseSort(r *http.Request) models.ArticleSort {
	return models.ArticleSort{
		Field: models.SortField(r.URL.Query().Get("sort")),
		Order: models.SortOrder(strings.ToLower(r.URL.Query().Get("order"))),
	}
}

// parsePage reads limit/offset. Absent parameters yield zero values, which
// the service normalizes to its defaults; non-numeric values are rejected
// like malformed filter values.
func parsePage(r *http.Request) (limit, offset int, err error) {
	query := r.URL.Query()

	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errs.NewInvalidFieldError("limit", "invalid limit")
		}
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errs.NewInvalidFieldError("offset", "invalid offset")
		}
	}
	return limit, offset, nil
}
