package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns a random (v4) UUID as exactly 32 lowercase hex characters.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsID32 reports whether s has the shape produced by NewID32.
func IsID32(s string) bool {
	if len(s) != 32 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return strings.ReplaceAll(u.String(), "-", "") == s
}
