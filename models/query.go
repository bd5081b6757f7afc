package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleFilter narrows a listing. Nil/empty dimensions impose no constraint;
// set dimensions are combined with AND. Tags match any.
type ArticleFilter struct {
	Status     *ArticleStatus
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
	Tags       []string
	FromDate   *time.Time
	ToDate     *time.Time
}

// SortField enumerates the sortable article columns.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByTitle     SortField = "title"
	SortByStatus    SortField = "status"
)

// Valid reports whether f is a declared sort field.
func (f SortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByUpdatedAt, SortByTitle, SortByStatus:
		return true
	}
	return false
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Valid reports whether o is a declared sort order.
func (o SortOrder) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}

// ArticleSort pairs a sortable field with a direction.
type ArticleSort struct {
	Field SortField
	Order SortOrder
}

// DefaultSort is newest-created-first.
func DefaultSort() ArticleSort {
	return ArticleSort{Field: SortByCreatedAt, Order: OrderDesc}
}

// ArticleList is one page of a listing or search.
//
// Total comes from a count query issued independently of the page fetch, so
// it can lag HasMore slightly under concurrent writes.
type ArticleList struct {
	Items   []*Article `json:"items"`
	Total   int64      `json:"total"`
	HasMore bool       `json:"hasMore"`
}
