// Package ingest validates uploaded text files and turns them into
// file-analysis prompts.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// MaxFileSize is the upload cap, checked before any read.
	MaxFileSize = 10 * 1024 * 1024

	// MaxContentChars bounds the decoded text embedded into a prompt.
	MaxContentChars = 15000

	// TruncationNotice is appended whenever content was cut.
	TruncationNotice = "\n\n[File truncated; only the first part is shown.]"
)

var (
	ErrTooLarge        = errors.New("file exceeds the 10MB size limit")
	ErrUnsupportedType = errors.New("unsupported file type; only text files are accepted")
	ErrUnreadable      = errors.New("file could not be read as text")
)

var supportedMIMETypes = map[string]bool{
	"text/plain":       true,
	"text/markdown":    true,
	"application/json": true,
}

var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".json": true,
	".js":   true,
	".ts":   true,
	".jsx":  true,
	".tsx":  true,
	".css":  true,
	".html": true,
}

// Selection is one picked file. Size must be known up front so the cap
// applies before the reader is touched.
type Selection struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Result is an accepted, decoded and possibly truncated file.
type Result struct {
	Name      string
	Content   string
	Truncated bool
}

// Supported reports whether the declared media type or the filename
// extension is on the plain-text allow-list.
func Supported(name, contentType string) bool {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if supportedMIMETypes[contentType] {
		return true
	}
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Ingest validates and decodes one selection. The size cap is enforced
// before any byte is read; validation failures leave the reader untouched.
func Ingest(sel Selection) (*Result, error) {
	if sel.Size > MaxFileSize {
		return nil, ErrTooLarge
	}
	if !Supported(sel.Name, sel.ContentType) {
		return nil, ErrUnsupportedType
	}

	raw, err := io.ReadAll(io.LimitReader(sel.Reader, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if int64(len(raw)) > MaxFileSize {
		return nil, ErrTooLarge
	}
	if !utf8.Valid(raw) {
		return nil, ErrUnreadable
	}

	content := string(raw)
	truncated := false
	if runes := []rune(content); len(runes) > MaxContentChars {
		content = string(runes[:MaxContentChars]) + TruncationNotice
		truncated = true
	}

	return &Result{Name: sel.Name, Content: content, Truncated: truncated}, nil
}

// AnalysisPrompt is the synthesized request sent to the completion proxy.
// It carries the marker tokens the proxy classifies on.
func (r *Result) AnalysisPrompt() string {
	return fmt.Sprintf("Filename: %s\n\nFile content:\n%s\n\nPlease analyze the file above.", r.Name, r.Content)
}

// Label is the short filename marker shown in the conversation instead of
// the file content.
func (r *Result) Label() string {
	return "\U0001F4CE " + r.Name
}
