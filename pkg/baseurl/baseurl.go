// Package baseurl derives the canonical store API base URL.
package baseurl

import (
	"regexp"
	"strings"
)

// Suffix every resolved base ends with
const Suffix = "/api"

var (
	insecureScheme = regexp.MustCompile(`(?i)^http://`)
	apiSuffix      = regexp.MustCompile(`(?i)/api$`)
	apiTail        = regexp.MustCompile(`/api/?$`)
)

// Options are the inputs of Resolve
type Options struct {
	Override   string // environment or config override, may be empty
	Default    string // compiled-in fallback
	PageOrigin string // origin the dashboard itself is served from, may be empty
}

// Resolve picks the override (or default), upgrades http to https when the
// page origin is secure, strips trailing slashes and ensures the /api suffix.
func Resolve(opts Options) string {
	raw := opts.Override
	if raw == "" {
		raw = opts.Default
	}
	raw = strings.TrimSpace(raw)

	if isSecure(opts.PageOrigin) && strings.HasPrefix(raw, "http://") {
		raw = insecureScheme.ReplaceAllString(raw, "https://")
	}

	base := strings.TrimRight(raw, "/")
	if apiSuffix.MatchString(base) {
		return base
	}
	return base + Suffix
}

// Candidates returns base followed by base without a trailing /api when
// that differs and is non-empty, for APIs mounted with or without the prefix.
func Candidates(base string) []string {
	candidates := []string{base}
	if trimmed := apiTail.ReplaceAllString(base, ""); trimmed != "" && trimmed != base {
		candidates = append(candidates, trimmed)
	}
	return candidates
}

func isSecure(origin string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(origin)), "https:")
}
