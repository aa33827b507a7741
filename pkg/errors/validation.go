package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateIdentifier validates a generic identifier for safety.
// It rejects values that could be used for path traversal or injection.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
//
// Domain-specific validation should be layered on top by the callers.
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "identifier too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "identifier contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// facetIDRegex matches valid facet identifiers: lowercase slug segments
// separated by dashes or underscores, optionally dotted.
var facetIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateFacetID validates a facet identifier.
func ValidateFacetID(id string) error {
	if err := ValidateIdentifier(id); err != nil {
		return err
	}

	if !facetIDRegex.MatchString(id) {
		return New(ErrCodeInvalidAxis, "invalid facet id: %q", id)
	}

	return nil
}

// canvasIDRegex matches valid canvas identifiers. Canvas IDs come from the
// document store and may be hex object IDs or UUIDs.
var canvasIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// ValidateCanvasID validates a canvas identifier.
func ValidateCanvasID(id string) error {
	if err := ValidateIdentifier(id); err != nil {
		return err
	}

	if !canvasIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid canvas id: %q", id)
	}

	return nil
}

// ValidateViewName validates a named-view name. View names are user-facing
// labels, so spaces are allowed but path separators are not.
func ValidateViewName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "view name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "view name too long (max 128 characters)")
	}

	if strings.ContainsAny(name, "/\\\x00") {
		return New(ErrCodeInvalidInput, "view name cannot contain path separators")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "view name contains invalid control characters")
		}
	}

	return nil
}

// ValidateSlotName validates an axis slot name. Only the three spatial
// slots are addressable.
func ValidateSlotName(slot string) error {
	switch slot {
	case "x", "y", "z":
		return nil
	case "":
		return New(ErrCodeInvalidAxis, "slot cannot be empty")
	default:
		return New(ErrCodeInvalidAxis, "invalid slot: %q (must be x, y, or z)", slot)
	}
}

// ValidatePath validates a file path within a workspace for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
