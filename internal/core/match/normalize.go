package match

import "strings"

// Normalize is the single normalization applied to every string
// comparison in the matching pipeline: trim surrounding whitespace and
// lower-case. All set membership and price-key lookups go through it so
// the filters cannot drift apart.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeSet builds a membership set of normalized values, dropping
// entries that normalize to the empty string.
func normalizeSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if n := Normalize(v); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// intersects reports whether any value in a, once normalized, is present
// in the normalized set of b.
func intersects(a, b []string) bool {
	set := normalizeSet(b)
	for _, v := range a {
		if _, ok := set[Normalize(v)]; ok {
			return true
		}
	}
	return false
}
