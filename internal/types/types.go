// Package types defines the cross-package data structures used by the repodump CLI.
package types

const (
	// ReadStatusText marks content that decoded as UTF-8 text.
	ReadStatusText = "text"
	// ReadStatusBinary marks content that failed the text decode attempt.
	ReadStatusBinary = "binary"
	// ReadStatusError marks a file that could not be read at all.
	ReadStatusError = "error"
)

// FileReadResult captures the outcome of reading one selected file.
// Exactly one of Content or Message is meaningful depending on Status.
type FileReadResult struct {
	Status  string
	Content string
	Message string
}

// DumpSummary captures aggregate information about a completed run.
type DumpSummary struct {
	TotalFiles     int
	TextFiles      int
	BinaryFiles    int
	ErrorFiles     int
	TotalSizeBytes int64
	TotalSize      string
	Tokens         int
	Model          string
}
