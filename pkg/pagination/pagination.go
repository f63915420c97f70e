package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	apperrors "github.com/Pavlo-fo95/ls-resort-backend/pkg/errors"
)

// Bounds describes an accepted limit range and its default.
type Bounds struct {
	Default int
	Max     int
}

// Limit reads the "limit" query parameter. A missing value yields the
// default; a value that is not an integer in [1, Max] is rejected.
func Limit(q url.Values, b Bounds) (int, error) {
	raw := q.Get("limit")
	if raw == "" {
		return b.Default, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > b.Max {
		return 0, apperrors.InvalidInput(fmt.Sprintf("limit must be an integer between 1 and %d", b.Max))
	}
	return v, nil
}

// Bool reads a boolean query parameter, falling back to def when absent.
func Bool(q url.Values, key string, def bool) (bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.InvalidInput(fmt.Sprintf("%s must be a boolean", key))
	}
	return v, nil
}
