package catalog

import (
	"regexp"
	"strings"
)

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a label and collapses every non-alphanumeric run into
// a single hyphen, producing the stable field name posted back by the
// storefront.
func Slugify(label string) string {
	slug := strings.ToLower(strings.TrimSpace(label))
	slug = slugStripRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Humanize reverses Slugify well enough for display: separators become
// spaces and each word is capitalized.
func Humanize(slug string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	words := strings.Split(cleaned, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
