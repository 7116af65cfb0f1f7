package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh identifier for menu items and messages.
func NewID() string {
	return uuid.New().String()
}

// Blank reports whether any of the values is empty after trimming.
func Blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
