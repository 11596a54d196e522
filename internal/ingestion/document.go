// Package ingestion turns document references (local files, job posting URLs,
// S3 objects) into the plain text the analyzer works on.
package ingestion

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"golang.org/x/text/encoding/unicode"
)

// Format identifies how a document's bytes are decoded.
type Format string

const (
	// FormatPDF is a PDF document; text is taken page by page.
	FormatPDF Format = "pdf"
	// FormatDOCX is an Office Open XML word processing document.
	FormatDOCX Format = "docx"
	// FormatText is anything else, read as UTF-8.
	FormatText Format = "text"
	// FormatHTML is a fetched web page.
	FormatHTML Format = "html"
)

// FormatFromName picks the decoder for a file name by its extension.
// Unknown extensions are treated as plain text.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return FormatText
	}
}

// RequireExtension returns an UnsupportedFormatError unless name ends in one of exts.
// Extensions are given with their leading dot and compared case-insensitively.
func RequireExtension(name string, exts ...string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if slices.Contains(exts, ext) {
		return nil
	}
	return &UnsupportedFormatError{Source: name, Format: strings.TrimPrefix(ext, ".")}
}

// ExtractText reads the file at path and returns its text.
func ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &SourceError{Source: path, Message: "file not found", Cause: err}
		}
		return "", &SourceError{Source: path, Message: "failed to read file", Cause: err}
	}
	return ExtractFromBytes(path, data)
}

// ExtractFromBytes decodes data according to the extension of name.
func ExtractFromBytes(name string, data []byte) (string, error) {
	switch FormatFromName(name) {
	case FormatPDF:
		return extractPDF(name, data)
	case FormatDOCX:
		return extractDOCX(name, data)
	default:
		return decodeText(name, data)
	}
}

// extractPDF joins the plain text of every page with newlines. Pages that
// cannot be read contribute an empty string.
func extractPDF(source string, data []byte) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Source: source, Format: FormatPDF, Message: fmt.Sprintf("malformed PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Source: source, Format: FormatPDF, Message: "failed to open PDF", Cause: err}
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			pageText = ""
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}

// extractDOCX returns the document's paragraphs joined by newlines.
func extractDOCX(source string, data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Source: source, Format: FormatDOCX, Message: "failed to open DOCX", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	text, err := paragraphText(doc.Editable().GetContent())
	if err != nil {
		return "", &ExtractionError{Source: source, Format: FormatDOCX, Message: "failed to parse document.xml", Cause: err}
	}
	return text, nil
}

// paragraphText walks WordprocessingML and collects the text runs of each <w:p>.
// Tabs and breaks inside a paragraph are kept as \t and \n.
func paragraphText(documentXML string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var paragraphs []string
	var current strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(el)
			}
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

// decodeText reads data as UTF-8, dropping a leading byte order mark.
func decodeText(source string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &ExtractionError{Source: source, Format: FormatText, Message: "content is not valid UTF-8"}
	}
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", &ExtractionError{Source: source, Format: FormatText, Message: "failed to decode UTF-8", Cause: err}
	}
	return string(decoded), nil
}
