package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive/internal/apperror"
)

type Category string

const (
	CategoryProfile  Category = "profile"
	CategoryDocument Category = "document"
)

const (
	MaxProfileSize  = 5 << 20
	MaxDocumentSize = 50 << 20
)

// AnonOwner is the owner segment used before a user record exists,
// e.g. the profile image accepted during registration.
const AnonOwner = "anon"

// extContentTypes maps an allowed extension to the content types a client
// may declare for it. Extension and declared type must both pass; a
// mismatch is rejected even when each would be allowed on its own.
var extContentTypes = map[Category]map[string][]string{
	CategoryProfile: {
		".jpeg": {"image/jpeg"},
		".jpg":  {"image/jpeg"},
		".png":  {"image/png"},
		".gif":  {"image/gif"},
		".webp": {"image/webp"},
	},
	CategoryDocument: {
		".pdf":  {"application/pdf"},
		".doc":  {"application/msword"},
		".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		".txt":  {"text/plain"},
		".ppt":  {"application/vnd.ms-powerpoint"},
		".pptx": {"application/vnd.openxmlformats-officedocument.presentationml.presentation"},
	},
}

func maxSize(category Category) int64 {
	if category == CategoryProfile {
		return MaxProfileSize
	}
	return MaxDocumentSize
}

// Validate checks extension, declared content type and size against the
// category rules.
func Validate(category Category, filename, contentType string, size int64) error {
	allowed, ok := extContentTypes[category]
	if !ok {
		return fmt.Errorf("unknown storage category %q", category)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	types, ok := allowed[ext]
	if !ok {
		return apperror.ErrInvalidFileType
	}

	declared := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	match := false
	for _, t := range types {
		if declared == t {
			match = true
			break
		}
	}
	if !match {
		return apperror.ErrInvalidFileType
	}

	if size > maxSize(category) {
		return apperror.ErrFileTooLarge
	}
	return nil
}

func sanitizeBase(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// BuildStoragePath derives the relative path a file is stored under. It
// never reuses user input verbatim, so uploaded names cannot traverse
// outside the category directory.
func BuildStoragePath(category Category, ownerID, originalName string) string {
	owner := ownerID
	if owner == "" {
		owner = AnonOwner
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	ext := strings.ToLower(filepath.Ext(originalName))

	name := fmt.Sprintf("%s-%d-%s-%s%s", owner, time.Now().UnixNano(), suffix, sanitizeBase(originalName), ext)
	return filepath.Join(string(category), name)
}

type Store struct {
	baseDir string
}

func New(baseDir string) (*Store, error) {
	for _, c := range []Category{CategoryProfile, CategoryDocument} {
		if err := os.MkdirAll(filepath.Join(baseDir, string(c)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
	}
	return &Store{baseDir: baseDir}, nil
}

func (s *Store) BaseDir() string {
	return s.baseDir
}

// Save validates and persists one uploaded file, returning the relative
// path to record on the owning row.
func (s *Store) Save(category Category, ownerID string, fh *multipart.FileHeader) (string, error) {
	if err := Validate(category, fh.Filename, fh.Header.Get("Content-Type"), fh.Size); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	relPath := BuildStoragePath(category, ownerID, fh.Filename)
	dstPath := filepath.Join(s.baseDir, relPath)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return relPath, nil
}

// Open returns the stored file for reading.
func (s *Store) Open(relPath string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.baseDir, relPath))
}

// Delete removes a stored file. Deleting a missing path returns the error
// so the caller can log it; it never panics and is safe to retry.
func (s *Store) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.baseDir, relPath))
}
