package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF")

// fileHeader builds a *multipart.FileHeader the way Fiber would hand it to
// the store, by round-tripping a multipart form through an http request.
func fileHeader(t *testing.T, fieldName, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	_, header, err := req.FormFile(fieldName)
	require.NoError(t, err)
	return header
}

func TestLocalStoreSavePDF(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	header := fileHeader(t, "bankSlip", "slip.pdf", pdfBytes)
	stored, err := store.Save(header, 42, "bankSlip")
	require.NoError(t, err)

	assert.Equal(t, "slip.pdf", stored.OriginalName)
	assert.Equal(t, "application/pdf", stored.FileType)
	assert.Equal(t, int64(len(pdfBytes)), stored.FileSize)
	assert.True(t, strings.HasPrefix(stored.FileName, "bankSlip_"))
	assert.True(t, strings.HasSuffix(stored.FileName, ".pdf"))
	assert.Equal(t, filepath.Join("students", "42", stored.FileName), stored.FilePath)

	// File really exists under the store root
	onDisk, err := os.ReadFile(filepath.Join(store.Root, stored.FilePath))
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, onDisk)
}

func TestLocalStoreSaveRejectsOversize(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	big := bytes.Repeat([]byte("a"), MaxFileSize+1)
	header := fileHeader(t, "idCard", "id.pdf", big)

	_, err := store.Save(header, 7, "idCard")
	assert.ErrorIs(t, err, ErrFileTooLarge)

	// Nothing was written
	entries, err := os.ReadDir(store.Root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStoreSaveRejectsDisallowedType(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	header := fileHeader(t, "marksheets", "sheet.txt", []byte("just some text, not a document"))

	_, err := store.Save(header, 7, "marksheets")
	assert.ErrorIs(t, err, ErrDisallowedType)

	entries, err := os.ReadDir(store.Root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStoreSaveAcceptsImages(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x10}, 64)...)
	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}, bytes.Repeat([]byte{0x10}, 64)...)

	stored, err := store.Save(fileHeader(t, "idCard", "id.jpg", jpeg), 1, "idCard")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", stored.FileType)

	stored, err = store.Save(fileHeader(t, "idCard", "id.png", png), 1, "idCard")
	require.NoError(t, err)
	assert.Equal(t, "image/png", stored.FileType)
}

func TestLocalStoreDeleteManyBestEffort(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	header := fileHeader(t, "bankSlip", "slip.pdf", pdfBytes)
	stored, err := store.Save(header, 3, "bankSlip")
	require.NoError(t, err)

	report := store.DeleteMany([]string{stored.FilePath, "students/3/does_not_exist.pdf", ""})

	assert.Equal(t, 1, report.FilesDeleted())
	assert.Equal(t, 1, report.FilesFailed())
	assert.Contains(t, report.Failed, "students/3/does_not_exist.pdf")

	_, err = os.Stat(filepath.Join(store.Root, stored.FilePath))
	assert.True(t, os.IsNotExist(err))
}
