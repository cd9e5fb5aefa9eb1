package ingestion

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies a supported resume document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// ErrUnsupportedFormat is returned when a file's extension or MIME type
// does not map to a supported resume format.
var ErrUnsupportedFormat = fmt.Errorf("unsupported file format")

// DetectFormat maps a filename (by extension) to a resume format.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx", ".doc":
		return FormatDOCX, nil
	case ".txt", ".text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

// FormatFromMIME maps an upload's Content-Type to a resume format.
func FormatFromMIME(mime string) (Format, error) {
	switch mime {
	case "application/pdf":
		return FormatPDF, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword":
		return FormatDOCX, nil
	case "text/plain":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
}

// ExtractText pulls plain text out of an uploaded resume document.
func ExtractText(data []byte, format Format) (string, error) {
	switch format {
	case FormatPDF:
		return extractPDFText(data)
	case FormatDOCX:
		return extractDocxText(data)
	case FormatText:
		return string(data), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return flattenDocxContent(doc.Editable().GetContent()), nil
}

// flattenDocxContent strips the WordprocessingML markup GetContent leaves
// behind, turning paragraph and break tags into newlines.
func flattenDocxContent(content string) string {
	replacer := strings.NewReplacer(
		"</w:p>", "\n",
		"<w:br/>", "\n",
		"<w:br>", "\n",
		"<w:tab/>", "\t",
	)
	content = replacer.Replace(content)

	var sb strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
