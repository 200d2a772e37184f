package document

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/config"
	"github.com/studyhive/studyhive/internal/storage"
)

// MaxBatchSize bounds how many documents one upload request may carry.
const MaxBatchSize = 10

// maxExtractBytes caps how much document text is fed to generation.
const maxExtractBytes = 64 << 10

type FileStore interface {
	Save(category storage.Category, ownerID string, fh *multipart.FileHeader) (string, error)
	Open(relPath string) (io.ReadCloser, error)
	Delete(relPath string) error
}

type DocumentService interface {
	Upload(ctx context.Context, userID string, files []*multipart.FileHeader) ([]*Document, error)
	FindAllByUser(ctx context.Context, userID string) ([]*Document, error)
	FindByID(ctx context.Context, userID, id string) (*Document, error)
	Update(ctx context.Context, userID, id string, in UpdateDocumentInput) (*Document, error)
	Delete(ctx context.Context, userID, id string) error
	ExtractText(ctx context.Context, userID, id string) (string, error)
}

type documentService struct {
	repo  DocumentRepository
	files FileStore
}

func NewService(repo DocumentRepository, files FileStore) DocumentService {
	return &documentService{repo: repo, files: files}
}

func parseIDs(userID, id string) (uuid.UUID, uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.ErrInvalidToken
	}
	docID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.Validation("id", "must be a valid uuid")
	}
	return uid, docID, nil
}

func (s *documentService) Upload(ctx context.Context, userID string, files []*multipart.FileHeader) ([]*Document, error) {
	log := config.WithContext(ctx)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	if len(files) == 0 {
		return nil, apperror.Validation("documents", "at least one file is required")
	}
	if len(files) > MaxBatchSize {
		return nil, apperror.Validation("documents", fmt.Sprintf("at most %d files per upload", MaxBatchSize))
	}

	var saved []string
	cleanup := func() {
		for _, p := range saved {
			if err := s.files.Delete(p); err != nil {
				log.WithError(err).Warnf("Failed to clean up file %s", p)
			}
		}
	}

	docs := make([]*Document, 0, len(files))
	for _, fh := range files {
		path, err := s.files.Save(storage.CategoryDocument, userID, fh)
		if err != nil {
			cleanup()
			return nil, err
		}
		saved = append(saved, path)

		title := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
		docs = append(docs, &Document{
			ID:           uuid.New(),
			UserID:       uid,
			Title:        title,
			OriginalName: fh.Filename,
			StoragePath:  path,
			ContentType:  fh.Header.Get("Content-Type"),
			SizeBytes:    fh.Size,
		})
	}

	// Files are written before rows are persisted; a failed insert must
	// leave zero files behind.
	if err := s.repo.CreateBatch(docs); err != nil {
		log.WithError(err).Error("Failed to persist uploaded documents")
		cleanup()
		return nil, err
	}

	log.Infof("Uploaded %d document(s) for user %s", len(docs), userID)
	return docs, nil
}

func (s *documentService) FindAllByUser(ctx context.Context, userID string) ([]*Document, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return s.repo.FindAllByUserID(uid)
}

// findOwned fetches a document and hides its existence from anyone but
// the owner.
func (s *documentService) findOwned(userID, id string) (*Document, error) {
	uid, docID, err := parseIDs(userID, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.repo.FindByID(docID)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.UserID != uid {
		return nil, apperror.ErrNotFound
	}
	return doc, nil
}

func (s *documentService) FindByID(ctx context.Context, userID, id string) (*Document, error) {
	return s.findOwned(userID, id)
}

func (s *documentService) Update(ctx context.Context, userID, id string, in UpdateDocumentInput) (*Document, error) {
	log := config.WithContext(ctx)

	doc, err := s.findOwned(userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperror.Validation("title", "must not be empty")
		}
		doc.Title = *in.Title
	}
	if in.Description != nil {
		doc.Description = *in.Description
	}

	if err := s.repo.Update(doc); err != nil {
		log.WithError(err).Error("Failed to update document")
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, userID, id string) error {
	log := config.WithContext(ctx)

	doc, err := s.findOwned(userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(doc.ID); err != nil {
		log.WithError(err).Error("Failed to delete document")
		return err
	}

	if err := s.files.Delete(doc.StoragePath); err != nil {
		log.WithError(err).Warnf("Failed to delete file %s", doc.StoragePath)
	}
	return nil
}

// ExtractText returns the document content for generation. Plain-text
// files are read directly; binary formats fall back to a metadata stub
// so generation still has something to anchor on.
func (s *documentService) ExtractText(ctx context.Context, userID, id string) (string, error) {
	doc, err := s.findOwned(userID, id)
	if err != nil {
		return "", err
	}

	if strings.EqualFold(filepath.Ext(doc.OriginalName), ".txt") {
		f, err := s.files.Open(doc.StoragePath)
		if err != nil {
			return "", fmt.Errorf("failed to open document: %w", err)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxExtractBytes))
		if err != nil {
			return "", fmt.Errorf("failed to read document: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if text != "" {
			return text, nil
		}
	}

	return fmt.Sprintf("Document titled %q (original file %s, %s).", doc.Title, doc.OriginalName, doc.ContentType), nil
}
