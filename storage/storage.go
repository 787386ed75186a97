package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"
)

// MaxFileSize is the upload limit for a single document (5MB)
const MaxFileSize = 5 * 1024 * 1024

// AllowedMimeTypes are the sniffed content types accepted for documents
var AllowedMimeTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
}

var (
	ErrFileTooLarge    = errors.New("file exceeds the 5MB size limit")
	ErrDisallowedType  = errors.New("file type not allowed: only PDF, JPEG and PNG are accepted")
	ErrInvalidDocument = errors.New("unknown document type")
)

// Stored describes a persisted document
type Stored struct {
	OriginalName string
	FileName     string
	FilePath     string // relative path under the store root
	FileSize     int64
	FileType     string // sniffed MIME type
	UploadedAt   time.Time
}

// DeleteReport is the per-file outcome of a best-effort batch deletion
type DeleteReport struct {
	Deleted []string
	Failed  map[string]string // path -> error message
}

// FilesDeleted returns the count of successful deletions
func (r DeleteReport) FilesDeleted() int { return len(r.Deleted) }

// FilesFailed returns the count of failed deletions
func (r DeleteReport) FilesFailed() int { return len(r.Failed) }

// Store abstracts document persistence so the backing medium (local disk,
// object store) is swappable. The addressing contract is fixed: files are
// keyed by owner id, document type and a collision-resistant generated name.
type Store interface {
	// Save validates and persists one uploaded file for the owner. On any
	// validation or write failure no partial file is left behind.
	Save(file *multipart.FileHeader, ownerID uint, documentType string) (*Stored, error)

	// DeleteMany removes the given relative paths best-effort. Per-file
	// failures are reported, never aborted on.
	DeleteMany(paths []string) DeleteReport
}

// PublicURL maps a stored relative path to its statically served URL
func PublicURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/uploads/documents/" + filePath
}

// generateFileName builds the collision-resistant stored name:
// {documentType}_{timestamp}_{uuid}{ext}
func generateFileName(documentType, ext, id string) string {
	return fmt.Sprintf("%s_%s_%s%s", documentType, time.Now().Format("20060102150405"), id, ext)
}
