package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPlain(t *testing.T) {
	text, err := Text([]byte("hello world"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestTextPlainWithCharsetSuffix(t *testing.T) {
	text, err := Text([]byte("hello"), "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestTextUnsupportedTypeIsNotAnError(t *testing.T) {
	text, err := Text([]byte{0x89, 0x50, 0x4e, 0x47}, "image/png")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestTextDocx(t *testing.T) {
	docx := buildDocx(t, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
<w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
</w:body>
</w:document>`)

	text, err := Text(docx, MediaTypeDOCX)
	require.NoError(t, err)
	assert.Contains(t, text, "First paragraph.")
	assert.Contains(t, text, "Second paragraph.")
}

func TestTextDocxMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Text(buf.Bytes(), MediaTypeDOCX)
	assert.True(t, errors.Is(err, ErrExtraction))
}

func TestTextDocxNotAZip(t *testing.T) {
	_, err := Text([]byte("definitely not a zip archive"), MediaTypeDOCX)
	assert.True(t, errors.Is(err, ErrExtraction))
}

func TestTextMalformedPDF(t *testing.T) {
	_, err := Text([]byte("not a pdf at all"), MediaTypePDF)
	assert.True(t, errors.Is(err, ErrExtraction))
}

func TestTextEmptyPDF(t *testing.T) {
	_, err := Text(nil, MediaTypePDF)
	assert.True(t, errors.Is(err, ErrExtraction))
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
