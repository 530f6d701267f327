// Package dump writes the concatenated output document.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/dkorolev/repodump/internal/types"
	"github.com/dkorolev/repodump/internal/utils"
)

const (
	headerLineFormat       = "<%s>\n\n"
	binaryPlaceholderLine  = "[Binary file - skipped]"
	errorPlaceholderFormat = "[Error reading file: %s]"
	recordSeparator        = "\n"
	progressLineFormat     = "Processed %s"
	summaryLineFormat      = "Dumped %d files (%s) to %s"
)

// Writer produces the output document from an ordered list of relative paths.
type Writer struct {
	rootPath string
	logger   *zap.Logger
}

// NewWriter constructs a Writer reading files below rootPath.
func NewWriter(rootPath string, logger *zap.Logger) *Writer {
	return &Writer{rootPath: rootPath, logger: logger}
}

// WriteDocument creates or truncates outputPath and writes one record per
// relative path, in the order given. Per-file read failures become inline
// placeholders and never abort the run; only output I/O errors are fatal.
func (writer *Writer) WriteDocument(outputPath string, relativePaths []string) (types.DumpSummary, error) {
	var summary types.DumpSummary

	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return summary, fmt.Errorf("create output document %s: %w", outputPath, createError)
	}
	defer func() {
		if closeError := outputFile.Close(); closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", outputPath, closeError)
		}
	}()

	bufferedWriter := bufio.NewWriter(outputFile)
	for _, relativePath := range relativePaths {
		readResult := writer.readFileContent(relativePath)
		if recordError := writeRecord(bufferedWriter, relativePath, readResult); recordError != nil {
			return summary, fmt.Errorf("write record for %s: %w", relativePath, recordError)
		}

		summary.TotalFiles++
		switch readResult.Status {
		case types.ReadStatusText:
			summary.TextFiles++
			summary.TotalSizeBytes += int64(len(readResult.Content))
		case types.ReadStatusBinary:
			summary.BinaryFiles++
		case types.ReadStatusError:
			summary.ErrorFiles++
		}
		if writer.logger != nil {
			writer.logger.Info(fmt.Sprintf(progressLineFormat, relativePath))
		}
	}
	if flushError := bufferedWriter.Flush(); flushError != nil {
		return summary, fmt.Errorf("flush output document %s: %w", outputPath, flushError)
	}

	summary.TotalSize = utils.FormatFileSize(summary.TotalSizeBytes)
	if writer.logger != nil {
		writer.logger.Info(fmt.Sprintf(summaryLineFormat, summary.TotalFiles, summary.TotalSize, outputPath))
	}
	return summary, nil
}

// readFileContent reads the file behind relativePath and classifies the
// outcome as text, binary, or unreadable. The relative path arrives in
// forward-slash form and is mapped back to the platform separator here.
func (writer *Writer) readFileContent(relativePath string) types.FileReadResult {
	filePath := filepath.Join(writer.rootPath, filepath.FromSlash(relativePath))
	fileBytes, fileReadError := os.ReadFile(filePath)
	if fileReadError != nil {
		return types.FileReadResult{Status: types.ReadStatusError, Message: fileReadError.Error()}
	}
	if utils.IsBinary(fileBytes) {
		return types.FileReadResult{Status: types.ReadStatusBinary}
	}
	return types.FileReadResult{Status: types.ReadStatusText, Content: string(fileBytes)}
}

// writeRecord emits one record: the delimited header, the body or a
// placeholder line, and the blank separator line. Text content is written
// verbatim; a newline is appended only when the content lacks a trailing one.
func writeRecord(destination io.Writer, relativePath string, readResult types.FileReadResult) error {
	if _, headerError := fmt.Fprintf(destination, headerLineFormat, relativePath); headerError != nil {
		return headerError
	}

	switch readResult.Status {
	case types.ReadStatusText:
		if _, contentError := io.WriteString(destination, readResult.Content); contentError != nil {
			return contentError
		}
		if !strings.HasSuffix(readResult.Content, "\n") {
			if _, newlineError := io.WriteString(destination, "\n"); newlineError != nil {
				return newlineError
			}
		}
	case types.ReadStatusBinary:
		if _, placeholderError := io.WriteString(destination, binaryPlaceholderLine+"\n"); placeholderError != nil {
			return placeholderError
		}
	case types.ReadStatusError:
		if _, placeholderError := fmt.Fprintf(destination, errorPlaceholderFormat+"\n", readResult.Message); placeholderError != nil {
			return placeholderError
		}
	default:
		return fmt.Errorf("unknown read status %q", readResult.Status)
	}

	_, separatorError := io.WriteString(destination, recordSeparator)
	return separatorError
}
