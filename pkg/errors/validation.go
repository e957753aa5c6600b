package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateOutputPath validates a user-supplied output path for safety.
//
// The validation rules are intentionally conservative:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// formatRegex matches output format slugs such as "obj" or "atlas-svg".
var formatRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateFormat validates an output format slug. The set of formats the
// pipeline actually supports is checked later; this only rejects strings
// that cannot be a format at all.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !formatRegex.MatchString(format) {
		return New(ErrCodeInvalidFormat, "invalid format: %q", format)
	}
	return nil
}

// ValidateFaceList validates a face selection list: indices must be
// non-negative and free of duplicates. An empty list is valid and means
// "select everything".
func ValidateFaceList(faces []int) error {
	seen := make(map[int]struct{}, len(faces))
	for _, f := range faces {
		if f < 0 {
			return New(ErrCodeInvalidInput, "face index cannot be negative: %d", f)
		}
		if _, dup := seen[f]; dup {
			return New(ErrCodeInvalidInput, "duplicate face index: %d", f)
		}
		seen[f] = struct{}{}
	}
	return nil
}
