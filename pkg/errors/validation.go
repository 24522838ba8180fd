package errors

import (
	"strings"
	"unicode"
)

// ValidateDimensions validates a canvas width and height in cells.
// Zero values are allowed (they select defaults downstream); negative or
// absurdly large values are configuration mistakes.
func ValidateDimensions(width, height int) error {
	const maxDim = 10000
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidSize, "dimensions cannot be negative: %dx%d", width, height)
	}
	if width > maxDim || height > maxDim {
		return New(ErrCodeInvalidSize, "dimensions too large (max %d): %dx%d", maxDim, width, height)
	}
	return nil
}

// ValidateFieldName validates a data field name used in an aesthetic mapping
// or a facet/stratify spec. Referencing a field that rows do not carry is a
// data condition, not an error, so this only rejects names that cannot be a
// field at all.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSpec, "field name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidSpec, "field name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSpec, "field name contains invalid control characters")
		}
	}
	return nil
}

// ValidateOutputPath validates a file path used for plot output or history
// storage. It prevents path traversal and ensures reasonable length.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidSpec, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidSpec, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidSpec, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidSpec, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
