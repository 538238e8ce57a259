package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for request validation.
var (
	ErrMissingImagePath = errors.New("image_path is required")
	ErrInvalidThreshold = errors.New("threshold must be in (0, 1]")
	ErrInvalidDepth     = errors.New("depth must be between 1 and 5")
	ErrInvalidLimit     = errors.New("limit must be positive")
	ErrInvalidMaxNodes  = errors.New("max_nodes must be positive")
)

// Sentinel errors for node lookups and request validation.
var ErrNodeNotFound = errors.New("node not found")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
