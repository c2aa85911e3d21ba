package util

import (
	"errors"
	"strings"
)

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName rejects traversal patterns and flattens path separators
// so uploaded names cannot escape their storage directory.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errInvalidFileName
	}
	return s, nil
}
