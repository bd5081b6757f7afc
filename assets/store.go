// Package assets guards which image origins an article may reference and
// removes objects from the backing store when articles stop referencing
// them.
package assets

import (
	"context"
	"net/url"
	"strings"

	"github.com/rpupo63/newsroom-backend/models"
)

// Store is the trusted asset store contract. Delete is best-effort: callers
// may discard its result, and a failure must never fail the content
// mutation that triggered it.
type Store interface {
	Trusted(rawURL string) bool
	Delete(ctx context.Context, rawURL string) error
}

// TrustedHost reports whether rawURL points at one of the given hosts,
// either exactly or as a subdomain.
func TrustedHost(rawURL string, hosts []string) bool {
	if rawURL == "" {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, trusted := range hosts {
		trusted = strings.ToLower(trusted)
		if host == trusted || strings.HasSuffix(host, "."+trusted) {
			return true
		}
	}
	return false
}

// DiffRemoved returns the URLs present in old but absent from new, in
// their old order. These are the assets an update has orphaned.
func DiffRemoved(old, new []models.ArticleImage) []string {
	kept := make(map[string]struct{}, len(new))
	for _, img := range new {
		kept[img.URL] = struct{}{}
	}

	var removed []string
	for _, img := range old {
		if _, ok := kept[img.URL]; !ok {
			removed = append(removed, img.URL)
		}
	}
	return removed
}
