// Package collect walks the root directory and produces the ordered file list.
package collect

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/dkorolev/repodump/internal/filter"
	"github.com/dkorolev/repodump/internal/utils"
)

// Collector enumerates every selected file under a root directory.
type Collector struct {
	pathFilter *filter.PathFilter
}

// NewCollector constructs a Collector using the provided path filter.
func NewCollector(pathFilter *filter.PathFilter) *Collector {
	return &Collector{pathFilter: pathFilter}
}

// CollectFilePaths recursively enumerates rootPath and returns the relative
// paths of every regular file that passes the exclusion and selection rules,
// sorted lexicographically in forward-slash form. Traversal order before the
// sort is platform-dependent; the sort gives the contract its determinism.
//
// Unreadable directory entries are skipped with a warning rather than
// aborting the traversal. A missing root directory is the one fatal error.
func (collector *Collector) CollectFilePaths(rootPath string) ([]string, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", rootPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	rootInfo, rootStatError := os.Stat(cleanedRootPath)
	if rootStatError != nil {
		return nil, fmt.Errorf("root directory %s is not accessible: %w", cleanedRootPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", cleanedRootPath)
	}

	var relativePaths []string

	directoryWalkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry os.DirEntry, accessError error) error {
		if accessError != nil {
			fmt.Fprintf(os.Stderr, "Warning: error accessing path %s: %v\n", walkedPath, accessError)
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath, withinRoot := utils.RelativeWithinRoot(walkedPath, cleanedRootPath)
		if !withinRoot {
			return nil
		}
		if relativePath == "." {
			return nil
		}

		if directoryEntry.IsDir() {
			if collector.pathFilter.IsDirectoryExcluded(relativePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !directoryEntry.Type().IsRegular() {
			return nil
		}
		if parentDirectory := path.Dir(relativePath); parentDirectory != "." {
			if collector.pathFilter.IsDirectoryExcluded(parentDirectory) {
				return nil
			}
		}
		if !collector.pathFilter.IsFileIncluded(relativePath) {
			return nil
		}

		relativePaths = append(relativePaths, relativePath)
		return nil
	})
	if directoryWalkError != nil {
		return nil, fmt.Errorf("walking %s: %w", cleanedRootPath, directoryWalkError)
	}

	sort.Strings(relativePaths)
	return relativePaths, nil
}
