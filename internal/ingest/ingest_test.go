package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxgpt/maxgpt/internal/chat"
)

// failReader proves validation happens before any read attempt.
type failReader struct{}

func (failReader) Read([]byte) (int, error) {
	return 0, errors.New("read must not be attempted")
}

func TestIngest_SizeCapBeforeRead(t *testing.T) {
	_, err := Ingest(Selection{
		Name:        "big.txt",
		ContentType: "text/plain",
		Size:        MaxFileSize + 1,
		Reader:      failReader{},
	})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestIngest_TypeCheckBeforeRead(t *testing.T) {
	_, err := Ingest(Selection{
		Name:        "binary.pdf",
		ContentType: "application/pdf",
		Size:        100,
		Reader:      failReader{},
	})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSupported(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		want        bool
	}{
		{"notes.txt", "", true},
		{"readme.md", "", true},
		{"data.json", "", true},
		{"app.js", "", true},
		{"app.ts", "", true},
		{"App.jsx", "", true},
		{"App.tsx", "", true},
		{"style.css", "", true},
		{"page.html", "", true},
		{"noext", "text/plain", true},
		{"noext", "text/plain; charset=utf-8", true},
		{"noext", "text/markdown", true},
		{"noext", "application/json", true},
		{"image.png", "image/png", false},
		{"doc.pdf", "application/pdf", false},
		{"noext", "", false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, Supported(tc.name, tc.contentType), "Supported(%q, %q)", tc.name, tc.contentType)
	}
}

func TestIngest_NoTruncationUnderLimit(t *testing.T) {
	content := strings.Repeat("a", MaxContentChars)
	res, err := Ingest(Selection{
		Name:        "ok.txt",
		ContentType: "text/plain",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	})
	require.NoError(t, err)
	assert.False(t, res.Truncated)
	assert.Equal(t, content, res.Content)
}

func TestIngest_TruncatesToExactLimit(t *testing.T) {
	content := strings.Repeat("a", MaxContentChars+500)
	res, err := Ingest(Selection{
		Name:        "long.txt",
		ContentType: "text/plain",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	})
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Equal(t, strings.Repeat("a", MaxContentChars)+TruncationNotice, res.Content)
}

func TestIngest_TruncationCountsRunes(t *testing.T) {
	content := strings.Repeat("가", MaxContentChars+1)
	res, err := Ingest(Selection{
		Name:        "hangul.txt",
		ContentType: "text/plain",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	})
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Equal(t, MaxContentChars, len([]rune(strings.TrimSuffix(res.Content, TruncationNotice))))
}

func TestIngest_RejectsInvalidUTF8(t *testing.T) {
	_, err := Ingest(Selection{
		Name:        "garbled.txt",
		ContentType: "text/plain",
		Size:        4,
		Reader:      strings.NewReader("\xff\xfe\xfd\xfc"),
	})
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestAnalysisPrompt_ClassifiesAsFileAnalysis(t *testing.T) {
	res := &Result{Name: "notes.txt", Content: "hello"}
	prompt := res.AnalysisPrompt()
	assert.True(t, chat.IsFileAnalysis(prompt), "analysis prompt must carry both marker tokens")
	assert.Contains(t, prompt, "notes.txt")
	assert.Contains(t, prompt, "hello")
}

func TestLabel(t *testing.T) {
	res := &Result{Name: "notes.txt"}
	assert.Equal(t, "\U0001F4CE notes.txt", res.Label())
}
