package beanid

import "strings"

// MaxSlugLength is the cap on a bean's optional slug field.
const MaxSlugLength = 50

// Slug derives a filename-safe slug from a title: lowercase; replace each
// run of non-alphanumerics with a single hyphen; trim hyphens; truncate to
// MaxSlugLength without a trailing hyphen. Deterministic given the title:
// no stop-word stripping, no priority-prefix stripping — a bean slug is a
// filename fragment, not a semantic identifier component.
func Slug(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	inRun := false
	for _, r := range lower {
		if isAlnum(r) {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun && b.Len() > 0 {
			b.WriteByte('-')
			inRun = true
		}
	}
	slug := strings.Trim(b.String(), "-")

	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
		slug = strings.TrimRight(slug, "-")
	}
	return slug
}

func isAlnum(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	default:
		return false
	}
}
