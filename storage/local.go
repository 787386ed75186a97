package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// LocalStore persists documents on the local filesystem under root,
// one directory per student: {root}/students/{ownerId}/{fileName}
type LocalStore struct {
	Root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

// Save validates and writes one uploaded file. Validation happens before
// anything touches the disk; a failed copy removes the partial file.
func (s *LocalStore) Save(file *multipart.FileHeader, ownerID uint, documentType string) (*Stored, error) {
	if file.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// Sniff the real content type rather than trusting the header
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("detect type: %w", err)
	}
	if !isAllowedType(mtype.String()) {
		return nil, ErrDisallowedType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = mtype.Extension()
	}
	fileName := generateFileName(documentType, ext, uuid.NewString())
	relPath := filepath.Join("students", fmt.Sprintf("%d", ownerID), fileName)
	absPath := filepath.Join(s.Root, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("create owner directory: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(absPath)
		return nil, fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(absPath)
		return nil, fmt.Errorf("close file: %w", err)
	}

	return &Stored{
		OriginalName: file.Filename,
		FileName:     fileName,
		FilePath:     relPath,
		FileSize:     file.Size,
		FileType:     mtype.String(),
		UploadedAt:   time.Now().UTC(),
	}, nil
}

// DeleteMany removes each path best-effort and reports per-file outcomes.
// A missing file counts as a failure but does not stop the batch.
func (s *LocalStore) DeleteMany(paths []string) DeleteReport {
	report := DeleteReport{Failed: make(map[string]string)}

	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(filepath.Join(s.Root, p)); err != nil {
			report.Failed[p] = err.Error()
			continue
		}
		report.Deleted = append(report.Deleted, p)
	}

	return report
}

func isAllowedType(mime string) bool {
	for _, allowed := range AllowedMimeTypes {
		if mime == allowed {
			return true
		}
	}
	return false
}
