package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	MediaTypePlain = "text/plain"
	MediaTypePDF   = "application/pdf"
	MediaTypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrExtraction wraps any failure to pull text out of a document the caller
// declared as a supported type. Unsupported types are not an error.
var ErrExtraction = errors.New("text extraction failed")

// Text converts an uploaded document into a flat string based on its declared
// media type. Plain text is returned as-is, PDF pages and DOCX paragraphs are
// concatenated in document order, and any other media type yields an empty
// string with no error.
func Text(data []byte, mediaType string) (string, error) {
	switch normalizeMediaType(mediaType) {
	case MediaTypePlain:
		return string(data), nil
	case MediaTypePDF:
		text, err := pdfText(data)
		if err != nil {
			return "", fmt.Errorf("%w: pdf: %v", ErrExtraction, err)
		}
		return text, nil
	case MediaTypeDOCX:
		text, err := docxText(data)
		if err != nil {
			return "", fmt.Errorf("%w: docx: %v", ErrExtraction, err)
		}
		return text, nil
	default:
		return "", nil
	}
}

// media types often arrive with a charset suffix, e.g. "text/plain; charset=utf-8".
func normalizeMediaType(mediaType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mediaType, ";")[0]))
}

func pdfText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}
	readerAt := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}
	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func docxText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return paragraphText(raw)
}

// paragraphText walks the OOXML body collecting character data and emitting a
// newline after every paragraph.
func paragraphText(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				buf.WriteString("\n")
			}
		}
	}
	return buf.String(), nil
}
