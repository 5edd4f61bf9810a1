package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidatePath validates a path relative to a scan root. Such paths come
// from the command line (query endpoints, highlight lists) and are resolved
// against an already scanned tree, so they must never leave it.
//
// Validation rules:
//   - Path cannot be empty ("." names the root)
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No ".." segments
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative to the scanned directory: %q", path)
	}

	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain parent directory segments (..)")
		}
	}

	return nil
}

// ValidateIgnorePattern checks that pattern is a well-formed filepath.Match
// glob and names a single path element.
func ValidateIgnorePattern(pattern string) error {
	if pattern == "" {
		return New(ErrCodeInvalidInput, "ignore pattern cannot be empty")
	}
	if strings.ContainsRune(pattern, '/') {
		return New(ErrCodeInvalidInput, "ignore pattern %q must match a single name, not a path", pattern)
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed ignore pattern %q", pattern)
	}
	return nil
}
