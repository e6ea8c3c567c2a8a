// Package ingestion turns uploaded documents and job posting pages into plain text.
package ingestion

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported document MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

// Document is an uploaded file awaiting text extraction.
type Document struct {
	Filename string
	MIMEType string
	Data     []byte
}

// ReadFile loads a document from disk, detecting its type from the extension and content.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(path)
	return &Document{
		Filename: name,
		MIMEType: DetectType(name, "", data),
		Data:     data,
	}, nil
}

// DetectType resolves a document's MIME type. A recognized declared type wins,
// then the file extension, then content sniffing.
func DetectType(filename, declared string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && isSupported(mt) {
		return mt
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDOCX
	case ".txt", ".md", ".text":
		return MIMEText
	}

	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return sniffed
}

func isSupported(mimeType string) bool {
	switch mimeType {
	case MIMEPDF, MIMEDOCX, MIMEText:
		return true
	}
	return false
}

// ExtractText returns the plain text of a document with line endings normalized.
func ExtractText(doc *Document) (string, error) {
	if doc == nil || len(doc.Data) == 0 {
		return "", &ParseError{Format: "document", Cause: errors.New("empty document")}
	}

	mimeType := doc.MIMEType
	if !isSupported(mimeType) {
		mimeType = DetectType(doc.Filename, doc.MIMEType, doc.Data)
	}

	var (
		text string
		err  error
	)
	switch mimeType {
	case MIMEText:
		text = string(doc.Data)
	case MIMEPDF:
		text, err = extractPDFText(doc.Data)
	case MIMEDOCX:
		text, err = extractDocxText(doc.Data)
	default:
		return "", &UnsupportedTypeError{Filename: doc.Filename, MIMEType: doc.MIMEType}
	}
	if err != nil {
		return "", err
	}

	return NormalizeLineEndings(text), nil
}

func extractPDFText(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = &ParseError{Format: "pdf", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{Format: "pdf", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ParseError{Format: "pdf", Cause: fmt.Errorf("page %d: %w", i, err)}
		}
		sb.WriteString(pageText)
		if !strings.HasSuffix(pageText, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{Format: "docx", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	text, err := wordXMLText(doc.Editable().GetContent())
	if err != nil {
		return "", &ParseError{Format: "docx", Cause: err}
	}
	return text, nil
}

// wordXMLText flattens WordprocessingML into text: one line per paragraph,
// tabs and breaks preserved.
func wordXMLText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
