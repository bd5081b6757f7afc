package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/rpupo63/newsroom-backend/errs"
)

const (
	// slugRetryBudget bounds how often a write is retried after losing a
	// slug race to a concurrent creation.
	slugRetryBudget = 5

	// maxSlugProbes bounds the candidate loop itself.
	maxSlugProbes = 1000
)

// assignSlug derives a collision-free slug from title. It probes base,
// base-1, base-2, ... against every article except excludeID and returns
// the first free candidate. The probe is only a fast path; the unique index
// on articles.slug is what makes concurrent assignment safe, and callers
// retry this function when a write hits it.
func (s *ArticleService) assignSlug(title string, excludeID uuid.UUID) (string, error) {
	base := slug.Make(title)
	if base == "" {
		return "", errs.NewInvalidFieldError("title", "title does not reduce to a valid slug")
	}

	candidate := base
	for counter := 1; counter <= maxSlugProbes; counter++ {
		exists, err := s.articles.SlugExists(candidate, excludeID)
		if err != nil {
			return "", errs.FromDatabase("probe slug for", "article", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
	return "", errs.NewConflictError(fmt.Sprintf("no free slug found for %q", base))
}
