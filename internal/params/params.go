package params

import (
	"net/url"
	"strconv"
	"strings"
)

// Limit bounds a ?limit= query parameter.
type Limit struct {
	Default int
	Max     int
}

// URL: /render-results?searchQuery=Seattle&limit=15
// → Limit{Default: 12, Max: 20}.Parse(q) → 15
// missing, unparsable or non-positive values fall back to Default, values
// above Max are clamped.
func (l Limit) Parse(q url.Values) int {
	limitStr := strings.TrimSpace(q.Get("limit"))
	if limitStr == "" {
		return l.Default
	}

	limit, err := strconv.Atoi(limitStr)
	switch {
	case err != nil, limit <= 0:
		return l.Default
	case limit > l.Max:
		return l.Max
	default:
		return limit
	}
}
