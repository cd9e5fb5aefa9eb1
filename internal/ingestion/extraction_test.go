package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{"resume.pdf", FormatPDF, false},
		{"Resume.PDF", FormatPDF, false},
		{"resume.docx", FormatDOCX, false},
		{"resume.doc", FormatDOCX, false},
		{"resume.txt", FormatText, false},
		{"resume.odt", "", true},
		{"resume", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectFormat(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromMIME(t *testing.T) {
	tests := []struct {
		mime    string
		want    Format
		wantErr bool
	}{
		{"application/pdf", FormatPDF, false},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", FormatDOCX, false},
		{"application/msword", FormatDOCX, false},
		{"text/plain", FormatText, false},
		{"image/png", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			got, err := FormatFromMIME(tt.mime)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractText_PlainPassthrough(t *testing.T) {
	text, err := ExtractText([]byte("plain resume text"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, "plain resume text", text)
}

func TestExtractText_UnknownFormat(t *testing.T) {
	_, err := ExtractText([]byte("x"), Format("rtf"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText([]byte("not a pdf"), FormatPDF)
	assert.Error(t, err)
}

func TestExtractText_CorruptDOCX(t *testing.T) {
	_, err := ExtractText([]byte("not a zip archive"), FormatDOCX)
	assert.Error(t, err)
}

func TestFlattenDocxContent(t *testing.T) {
	input := `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Engineer</w:t></w:r></w:p>`
	got := flattenDocxContent(input)
	assert.Equal(t, "Jane Doe\nEngineer\n", got)
}
