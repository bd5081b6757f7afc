// Package auth holds the single decision function for every mutation in the
// system. Policy lives here and nowhere else; handlers and services only ask.
package auth

import (
	"github.com/google/uuid"
	"github.com/rpupo63/newsroom-backend/errs"
	"github.com/rpupo63/newsroom-backend/models"
)

// Action is a mutation verb the matrix rules on.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Principal is the resolved caller identity: who they are and what role
// they hold. A nil *Principal means the request carried no usable
// credential.
type Principal struct {
	ID   uuid.UUID
	Role models.Role
}

// Decision is a tagged allow/deny result. Err returns nil when allowed and
// the matching error kind when denied, so callers can propagate it directly.
type Decision struct {
	allowed bool
	err     error
}

func Allow() Decision {
	return Decision{allowed: true}
}

func DenyUnauthenticated() Decision {
	return Decision{err: errs.NewAuthenticationRequiredError()}
}

func Deny(reason string) Decision {
	return Decision{err: errs.NewForbiddenError(reason)}
}

func (d Decision) Allowed() bool {
	return d.allowed
}

func (d Decision) Err() error {
	return d.err
}

// CanMutateArticle evaluates the article mutation rules in order:
// authentication, then role for create, then ownership-or-admin for
// update/delete. article is nil for create.
func CanMutateArticle(principal *Principal, article *models.Article, action Action) Decision {
	if principal == nil {
		return DenyUnauthenticated()
	}

	if action == ActionCreate {
		switch principal.Role {
		case models.RoleJournalist, models.RoleEditor, models.RoleAdmin:
			return Allow()
		}
		return Deny("not authorized to create articles")
	}

	if article == nil {
		return Deny("no article to authorize against")
	}
	if principal.ID == article.AuthorID || principal.Role == models.RoleAdmin {
		return Allow()
	}

	switch action {
	case ActionUpdate:
		return Deny("not authorized to update this article")
	case ActionDelete:
		return Deny("not authorized to delete this article")
	}
	return Deny("unknown article action")
}

// CanUpdateUser rules on profile updates. A non-admin may update only their
// own profile, and may not change their own role; the role change is denied
// as a field-level violation independent of the rest of the update.
func CanUpdateUser(principal *Principal, targetID uuid.UUID, changesRole bool) Decision {
	if principal == nil {
		return DenyUnauthenticated()
	}
	if principal.Role == models.RoleAdmin {
		return Allow()
	}
	if principal.ID != targetID {
		return Deny("not authorized to update this user")
	}
	if changesRole {
		return Deny("not authorized to update role")
	}
	return Allow()
}

// CanDeleteUser allows self-deletion for everyone and cross-account
// deletion for admins only.
func CanDeleteUser(principal *Principal, targetID uuid.UUID) Decision {
	if principal == nil {
		return DenyUnauthenticated()
	}
	if principal.ID == targetID || principal.Role == models.RoleAdmin {
		return Allow()
	}
	return Deny("not authorized to delete this user")
}
