package util

import "strconv"

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ParseLimitOffset clamps the limit/offset query params to the listing
// contract: limit in [1, 100] defaulting to 25, offset >= 0.
func ParseLimitOffset(limitParam, offsetParam string) (limit, offset int) {
	limit = ParseIntDefault(limitParam, DefaultLimit)
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	offset = ParseIntDefault(offsetParam, 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
