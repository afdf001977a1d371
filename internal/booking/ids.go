package booking

import (
	"strconv"
	"strings"
)

// ParseID parses a caller-supplied identifier.  Only a positive base-10
// integer is accepted; surrounding whitespace is tolerated.
func ParseID(raw string) (uint64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
