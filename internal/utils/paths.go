// Package utils contains general helper functions used across the dump tool.
package utils

import (
	"path/filepath"
	"strings"
)

// RelativeWithinRoot computes the forward-slash relative path from root to fullPath.
// The second return value is false when the relative form cannot be computed or
// the path escapes root; callers skip such entries.
func RelativeWithinRoot(fullPath string, root string) (string, bool) {
	cleanedPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return "", false
	}
	cleanedRoot := filepath.Clean(absoluteRoot)

	if cleanedPath == cleanedRoot {
		return ".", true
	}

	relativePath, relativeError := filepath.Rel(cleanedRoot, cleanedPath)
	if relativeError != nil {
		return "", false
	}
	normalizedPath := filepath.ToSlash(relativePath)
	if normalizedPath == ".." || strings.HasPrefix(normalizedPath, "../") {
		return "", false
	}
	return normalizedPath, true
}
