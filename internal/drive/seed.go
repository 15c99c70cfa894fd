package drive

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ParseSeed accepts a decimal seed or any other string, which is hashed.
// An empty string yields ok=false.
func ParseSeed(s string) (seed uint64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v, true
	}
	return xxhash.Sum64String(s), true
}
