package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"txt", FormatText},
		{".TXT", FormatText},
		{"markdown", FormatMarkdown},
		{".md", FormatMarkdown},
		{"htm", FormatHTML},
		{"xhtml", FormatHTML},
		{"epub", FormatEPUB},
		{" pdf ", FormatPDF},
		{"docx", FormatDOCX},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat_Unsupported(t *testing.T) {
	for _, in := range []string{"", "mobi", ".azw3", "doc"} {
		_, err := ParseFormat(in)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, in)
	}
}

func TestForFile(t *testing.T) {
	ex, format, err := ForFile("library/Dune.EPUB")
	require.NoError(t, err)
	assert.Equal(t, FormatEPUB, format)
	assert.IsType(t, &EPUBExtractor{}, ex)

	_, _, err = ForFile("notes")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestForFormat(t *testing.T) {
	for _, f := range SupportedFormats() {
		ex, err := ForFormat(string(f))
		require.NoError(t, err)
		assert.NotNil(t, ex)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf", "one\r\ntwo\r\n\r\nthree", "one\ntwo\n\nthree"},
		{"bare cr", "one\rtwo", "one\ntwo"},
		{"bom", "\ufeffHello", "Hello"},
		{"form feed", "page one\fpage two", "page one\n\npage two"},
		{"nfc", "Cafe\u0301", "Caf\u00e9"},
		{"trim", "\n\n  body  \n\n", "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
