// Package filter implements the directory exclusion and file selection rules.
//
// Both checks are pure functions of a forward-slash relative path and the
// injected configuration tables. Neither touches the filesystem.
package filter

import (
	"strings"

	"github.com/dkorolev/repodump/internal/config"
)

const pathSegmentSeparator = "/"

// PathFilter evaluates candidate paths against an immutable rule set.
type PathFilter struct {
	excludedDirectoryNames map[string]struct{}
	includedFileNames      map[string]struct{}
	includedExtensions     map[string]struct{}
	configNameFragments    []string
}

// NewPathFilter builds a PathFilter from the provided configuration tables.
func NewPathFilter(configuration config.FilterConfiguration) *PathFilter {
	return &PathFilter{
		excludedDirectoryNames: stringSet(configuration.ExcludedDirectoryNames),
		includedFileNames:      stringSet(configuration.IncludedFileNames),
		includedExtensions:     stringSet(configuration.IncludedExtensions),
		configNameFragments:    append([]string{}, configuration.ConfigNameFragments...),
	}
}

// IsDirectoryExcluded reports whether any segment of relativePath belongs to
// the exclusion set. Every segment is checked, so a nested match such as
// foo/node_modules/bar is excluded even though bar itself is an ordinary name.
// An empty path cannot be classified and is treated as excluded.
func (pathFilter *PathFilter) IsDirectoryExcluded(relativePath string) bool {
	normalizedPath := normalizePath(relativePath)
	if normalizedPath == "" {
		return true
	}
	if normalizedPath == "." {
		return false
	}
	for _, pathSegment := range strings.Split(normalizedPath, pathSegmentSeparator) {
		if _, isExcluded := pathFilter.excludedDirectoryNames[pathSegment]; isExcluded {
			return true
		}
	}
	return false
}

// IsFileIncluded reports whether the file at relativePath belongs in the dump.
// A file qualifies through exactly one of three independent rules: its name is
// on the filename allow-list, its final dot-delimited suffix is on the
// extension allow-list, or its name contains one of the configuration-file
// fragments.
func (pathFilter *PathFilter) IsFileIncluded(relativePath string) bool {
	fileName := finalPathSegment(relativePath)
	if fileName == "" {
		return false
	}

	if _, isAllowedName := pathFilter.includedFileNames[fileName]; isAllowedName {
		return true
	}

	if extension := fileExtension(fileName); extension != "" {
		if _, isAllowedExtension := pathFilter.includedExtensions[extension]; isAllowedExtension {
			return true
		}
	}

	for _, fragment := range pathFilter.configNameFragments {
		if strings.Contains(fileName, fragment) {
			return true
		}
	}
	return false
}

func normalizePath(relativePath string) string {
	return strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator)
}

func finalPathSegment(relativePath string) string {
	normalizedPath := normalizePath(relativePath)
	pathSegments := strings.Split(normalizedPath, pathSegmentSeparator)
	if len(pathSegments) == 0 {
		return ""
	}
	return pathSegments[len(pathSegments)-1]
}

// fileExtension returns the final dot-delimited suffix of fileName including
// the dot, or the empty string for names without an interior dot. A leading
// dot alone ("dotfile" names such as .bashrc) does not constitute an extension.
func fileExtension(fileName string) string {
	dotIndex := strings.LastIndex(fileName, ".")
	if dotIndex <= 0 {
		return ""
	}
	return fileName[dotIndex:]
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
