package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
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

// runRootCommand executes the root command with the provided arguments.
func runRootCommand(testingHandle *testing.T, arguments ...string) error {
	testingHandle.Helper()
	rootCommand := createRootCommand(zap.NewNop())
	rootCommand.SetArgs(arguments)
	return rootCommand.Execute()
}

// TestRunDumpEndToEnd verifies the full collect-then-write pipeline through the CLI.
func TestRunDumpEndToEnd(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "README.md"), "# readme\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "src", "app.ts"), "const x = 1\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "node_modules", "pkg", "index.js"), "ignored\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "image.png"), "\x89PNG\x00")

	outputPath := filepath.Join(testingHandle.TempDir(), "dump.txt")
	if executeError := runRootCommand(testingHandle, "--root", rootDirectory, "--output", outputPath); executeError != nil {
		testingHandle.Fatalf("command failed: %v", executeError)
	}

	documentBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		testingHandle.Fatalf("failed to read document: %v", readError)
	}

	expectedDocument := "<README.md>\n\n# readme\n\n" +
		"<src/app.ts>\n\nconst x = 1\n\n"
	if string(documentBytes) != expectedDocument {
		testingHandle.Fatalf("unexpected document: got %q want %q", string(documentBytes), expectedDocument)
	}
}

// TestRunDumpDeterministic verifies that two runs over an unchanged tree produce identical bytes.
func TestRunDumpDeterministic(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b.go"), "package b\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "a", "a.go"), "package a\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "Makefile"), "all:\n\ttrue\n")

	outputPath := filepath.Join(testingHandle.TempDir(), "dump.txt")
	if executeError := runRootCommand(testingHandle, "--root", rootDirectory, "--output", outputPath); executeError != nil {
		testingHandle.Fatalf("first run failed: %v", executeError)
	}
	firstDocument, firstReadError := os.ReadFile(outputPath)
	if firstReadError != nil {
		testingHandle.Fatalf("failed to read first document: %v", firstReadError)
	}

	if executeError := runRootCommand(testingHandle, "--root", rootDirectory, "--output", outputPath); executeError != nil {
		testingHandle.Fatalf("second run failed: %v", executeError)
	}
	secondDocument, secondReadError := os.ReadFile(outputPath)
	if secondReadError != nil {
		testingHandle.Fatalf("failed to read second document: %v", secondReadError)
	}

	if string(firstDocument) != string(secondDocument) {
		testingHandle.Fatalf("documents differ between runs")
	}
}

// TestRunDumpMissingRoot verifies that a missing root directory fails the command.
func TestRunDumpMissingRoot(testingHandle *testing.T) {
	missingRoot := filepath.Join(testingHandle.TempDir(), "does-not-exist")
	outputPath := filepath.Join(testingHandle.TempDir(), "dump.txt")

	executeError := runRootCommand(testingHandle, "--root", missingRoot, "--output", outputPath)
	if executeError == nil {
		testingHandle.Fatalf("expected error for missing root directory")
	}
	if !strings.Contains(executeError.Error(), "collecting files") {
		testingHandle.Fatalf("unexpected error: %v", executeError)
	}
}

// TestRunDumpRejectsPositionalArguments verifies the no-argument invocation contract.
func TestRunDumpRejectsPositionalArguments(testingHandle *testing.T) {
	if executeError := runRootCommand(testingHandle, "unexpected-argument"); executeError == nil {
		testingHandle.Fatalf("expected error for positional argument")
	}
}

// TestRunDumpConfigOverlay verifies that an explicit overlay file reshapes the selection rules.
func TestRunDumpConfigOverlay(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "keep.special"), "kept\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "drop.go"), "package drop\n")

	configPath := filepath.Join(testingHandle.TempDir(), "overlay.yaml")
	writeTestFile(testingHandle, configPath, "filter:\n  included_extensions:\n    - .special\n")

	outputPath := filepath.Join(testingHandle.TempDir(), "dump.txt")
	executeError := runRootCommand(testingHandle,
		"--root", rootDirectory,
		"--output", outputPath,
		"--config", configPath,
	)
	if executeError != nil {
		testingHandle.Fatalf("command failed: %v", executeError)
	}

	documentBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		testingHandle.Fatalf("failed to read document: %v", readError)
	}
	document := string(documentBytes)
	if !strings.Contains(document, "<keep.special>") {
		testingHandle.Fatalf("expected overlay extension to be included: %q", document)
	}
	if strings.Contains(document, "<drop.go>") {
		testingHandle.Fatalf("expected default extension to be replaced by overlay: %q", document)
	}
}
