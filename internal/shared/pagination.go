package shared

import (
	"net/http"
	"strconv"
)

// DefaultPageLimit bounds list responses when the caller does not ask for one.
const DefaultPageLimit = 100

// ParsePagination reads skip/limit query parameters. Negative or unparsable
// values fall back to the defaults.
func ParsePagination(r *http.Request) (skip, limit int) {
	skip = 0
	limit = DefaultPageLimit
	if raw := r.URL.Query().Get("skip"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			skip = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	return skip, limit
}
