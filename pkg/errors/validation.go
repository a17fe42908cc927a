package errors

import (
	"strings"
	"unicode"
)

// maxTypeNameLength bounds work-item type names accepted from configuration.
const maxTypeNameLength = 128

// ValidateWorkItemID rejects identifiers that cannot name a real work item.
// Zero is reserved for the virtual root and negative IDs never occur in
// tracker data.
func ValidateWorkItemID(id int) error {
	if id < 0 {
		return New(ErrCodeInvalidInput, "work item id must not be negative: %d", id)
	}
	if id == 0 {
		return New(ErrCodeInvalidInput, "work item id 0 is reserved for the virtual root")
	}
	return nil
}

// ValidateLinkEndpoint rejects negative link endpoints. Zero is allowed and
// resolves to the virtual root.
func ValidateLinkEndpoint(id int) error {
	if id < 0 {
		return New(ErrCodeInvalidInput, "link endpoint must not be negative: %d", id)
	}
	return nil
}

// ValidateTypeName validates a work-item type name from a backlog
// configuration.
//
// Validation rules:
//   - Name cannot be empty or whitespace only
//   - Maximum length of 128 characters
//   - No control characters
func ValidateTypeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidBacklog, "work item type name cannot be empty")
	}
	if len(name) > maxTypeNameLength {
		return New(ErrCodeInvalidBacklog, "work item type name too long (max %d characters)", maxTypeNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidBacklog, "work item type name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
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
	return nil
}
