package utils

import (
	"strconv"
)

// StringToUint parses a form value as an id, returning 0 on garbage.
func StringToUint(s string) uint {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(i)
}
