package collect

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dkorolev/repodump/internal/config"
	"github.com/dkorolev/repodump/internal/filter"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if directoryError := os.MkdirAll(filepath.Dir(filePath), 0o755); directoryError != nil {
		testingHandle.Fatalf("failed to create directory for %s: %v", filePath, directoryError)
	}
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// newDefaultCollector builds a Collector over the compiled-in filter tables.
func newDefaultCollector() *Collector {
	return NewCollector(filter.NewPathFilter(config.DefaultFilterConfiguration()))
}

// TestCollectFilePathsSelection verifies exclusion, inclusion, and ordering on a mixed tree.
func TestCollectFilePathsSelection(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "src", "app.ts"), "const x = 1\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "node_modules", "pkg", "index.js"), "module.exports = {}\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "README.md"), "# readme\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "image.png"), "\x89PNG\x00")

	collectedPaths, collectError := newDefaultCollector().CollectFilePaths(rootDirectory)
	if collectError != nil {
		testingHandle.Fatalf("CollectFilePaths failed: %v", collectError)
	}

	expectedPaths := []string{"README.md", "src/app.ts"}
	if !reflect.DeepEqual(collectedPaths, expectedPaths) {
		testingHandle.Fatalf("unexpected paths: got %v want %v", collectedPaths, expectedPaths)
	}
}

// TestCollectFilePathsNestedExclusion verifies that an excluded directory prunes descendants at any depth.
func TestCollectFilePathsNestedExclusion(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "foo", "node_modules", "bar", "kept.go"), "package bar\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "foo", "kept.go"), "package foo\n")

	collectedPaths, collectError := newDefaultCollector().CollectFilePaths(rootDirectory)
	if collectError != nil {
		testingHandle.Fatalf("CollectFilePaths failed: %v", collectError)
	}

	expectedPaths := []string{"foo/kept.go"}
	if !reflect.DeepEqual(collectedPaths, expectedPaths) {
		testingHandle.Fatalf("unexpected paths: got %v want %v", collectedPaths, expectedPaths)
	}
}

// TestCollectFilePathsDeterministicOrder verifies lexicographic ordering and run-to-run stability.
func TestCollectFilePathsDeterministicOrder(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "zz.go"), "package zz\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a", "b.go"), "package a\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "ab.go"), "package ab\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "myconfig.txt"), "key=value\n")

	collector := newDefaultCollector()
	firstRun, firstError := collector.CollectFilePaths(rootDirectory)
	if firstError != nil {
		testingHandle.Fatalf("first CollectFilePaths failed: %v", firstError)
	}
	secondRun, secondError := collector.CollectFilePaths(rootDirectory)
	if secondError != nil {
		testingHandle.Fatalf("second CollectFilePaths failed: %v", secondError)
	}

	expectedPaths := []string{"a/b.go", "ab.go", "myconfig.txt", "zz.go"}
	if !reflect.DeepEqual(firstRun, expectedPaths) {
		testingHandle.Fatalf("unexpected paths: got %v want %v", firstRun, expectedPaths)
	}
	if !reflect.DeepEqual(firstRun, secondRun) {
		testingHandle.Fatalf("runs differ: first %v second %v", firstRun, secondRun)
	}
}

// TestCollectFilePathsMissingRoot verifies that a missing root directory is a fatal error.
func TestCollectFilePathsMissingRoot(testingHandle *testing.T) {
	missingRoot := filepath.Join(testingHandle.TempDir(), "does-not-exist")
	if _, collectError := newDefaultCollector().CollectFilePaths(missingRoot); collectError == nil {
		testingHandle.Fatalf("expected error for missing root directory")
	}
}

// TestCollectFilePathsSkipsIrregularEntries verifies that symlinks are not collected.
func TestCollectFilePathsSkipsIrregularEntries(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	targetPath := filepath.Join(rootDirectory, "real.go")
	writeTestFile(testingHandle, targetPath, "package real\n")

	linkPath := filepath.Join(rootDirectory, "link.go")
	if symlinkError := os.Symlink(targetPath, linkPath); symlinkError != nil {
		testingHandle.Skipf("symlinks unavailable: %v", symlinkError)
	}

	collectedPaths, collectError := newDefaultCollector().CollectFilePaths(rootDirectory)
	if collectError != nil {
		testingHandle.Fatalf("CollectFilePaths failed: %v", collectError)
	}

	expectedPaths := []string{"real.go"}
	if !reflect.DeepEqual(collectedPaths, expectedPaths) {
		testingHandle.Fatalf("unexpected paths: got %v want %v", collectedPaths, expectedPaths)
	}
}
