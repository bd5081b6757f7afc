// Package content validates and normalizes rich-text article bodies before
// they are persisted.
package content

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// SummaryMaxLen is the default budget for derived summaries.
const SummaryMaxLen = 160

// DefaultAllowedTags is the structural/formatting/media allow-list applied
// when no override is configured.
var DefaultAllowedTags = []string{
	"p", "br", "b", "i", "em", "strong", "a", "ul", "ol", "li",
	"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "img",
	"figure", "figcaption", "pre", "code",
}

// DefaultAllowedAttrs is the attribute allow-list applied when no override
// is configured. Event-handler attributes are never allowed.
var DefaultAllowedAttrs = []string{
	"href", "target", "rel", "src", "alt", "class", "title",
	"width", "height", "data-caption",
}

// Config carries the sanitizer allow-lists. Zero values fall back to the
// defaults above.
type Config struct {
	AllowedTags  []string
	AllowedAttrs []string
}

// Sanitizer strips unsafe markup from rich-text input. Sanitize is
// idempotent: applying it to already-sanitized markup is a no-op.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer(cfg Config) *Sanitizer {
	tags := cfg.AllowedTags
	if len(tags) == 0 {
		tags = DefaultAllowedTags
	}
	attrs := cfg.AllowedAttrs
	if len(attrs) == 0 {
		attrs = DefaultAllowedAttrs
	}

	policy := bluemonday.NewPolicy()
	policy.AllowElements(tags...)
	policy.AllowAttrs(attrs...).Globally()
	policy.AllowStandardURLs()
	policy.RequireParseableURLs(true)

	return &Sanitizer{policy: policy}
}

// Sanitize removes every tag and attribute outside the allow-list,
// including script/style/form content and event handlers.
func (s *Sanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}

// ExtractImageRefs returns the src of every inline <img> in markup, in
// document order. Malformed markup yields whatever the tolerant parser can
// recover.
func ExtractImageRefs(markup string) []string {
	var refs []string
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			return refs
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}
		token := tokenizer.Token()
		if token.Data != "img" {
			continue
		}
		for _, attr := range token.Attr {
			if attr.Key == "src" && attr.Val != "" {
				refs = append(refs, attr.Val)
				break
			}
		}
	}
}

// PlainText strips all markup and collapses whitespace runs to single
// spaces.
func PlainText(markup string) string {
	var builder strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}
		if tokenType == html.TextToken {
			builder.WriteString(tokenizer.Token().Data)
			builder.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}

// Summarize derives a plain-text summary from markup, truncated to maxLen
// runes. Truncation prefers the last sentence boundary within the budget,
// then the last word boundary, and appends an ellipsis marker.
func Summarize(markup string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = SummaryMaxLen
	}

	text := PlainText(markup)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	truncated := string(runes[:maxLen])
	lastPeriod := strings.LastIndex(truncated, ".")
	lastSpace := strings.LastIndex(truncated, " ")

	breakPoint := lastSpace
	if lastPeriod > 0 {
		breakPoint = lastPeriod + 1
	}
	if breakPoint <= 0 {
		breakPoint = len(truncated)
	}
	return strings.TrimRight(truncated[:breakPoint], " ") + "..."
}

// WordCount counts whitespace-separated words in the text content of markup.
func WordCount(markup string) int {
	return len(strings.Fields(PlainText(markup)))
}
