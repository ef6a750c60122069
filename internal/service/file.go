package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
	"vaultapi/internal/storage"
)

var (
	ErrFileRequired = errors.New("file payload is required")
	ErrFileNotFound = errors.New("file not found")
)

// FileService defines the use cases for handling vault files.
type FileService interface {
	// Upload writes the content to blob storage under a generated stored
	// name, then persists a FileRecord referencing it. The two writes are
	// sequential and non-transactional: a metadata failure after the blob
	// write leaves an orphaned blob behind.
	Upload(ctx context.Context, r io.Reader, originalName string, contentType string, size int64) (*model.FileRecord, error)

	// List returns all file records, most recent first. Full snapshot per
	// call; no pagination.
	List(ctx context.Context) ([]model.FileRecord, error)

	// Open resolves a stored name to its record and a content stream.
	// Returns ErrFileNotFound when no record or blob matches.
	Open(ctx context.Context, storedName string) (io.ReadCloser, *model.FileRecord, error)
}

type fileService struct {
	store storage.Storage
	repo  repository.FileRepository
	now   func() time.Time
}

// NewFileService constructs a new FileService.
func NewFileService(store storage.Storage, repo repository.FileRepository) FileService {
	return &fileService{store: store, repo: repo, now: time.Now}
}

// newStoredName generates a collision-resistant blob name of the form
// <unix-millis>-<9-digit random><original extension>.
func newStoredName(now time.Time, originalName string) string {
	return fmt.Sprintf("%d-%09d%s", now.UnixMilli(), rand.Int64N(1_000_000_000), filepath.Ext(originalName))
}

func (s *fileService) Upload(ctx context.Context, r io.Reader, originalName string, contentType string, size int64) (*model.FileRecord, error) {
	if r == nil || size <= 0 {
		return nil, ErrFileRequired
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := s.now().UTC()
	storedName := newStoredName(now, originalName)

	objInfo, err := s.store.Put(ctx, storedName, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("write blob: %w", err)
	}

	rec := &model.FileRecord{
		ID:           uuid.New().String(),
		OriginalName: originalName,
		MimeType:     contentType,
		StoredName:   storedName,
		StoragePath:  objInfo.Key,
		SizeBytes:    objInfo.Size,
		CreatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		// The blob written above is left in place. Upload is not
		// transactional and there is no compensating delete.
		trace.SpanFromContext(ctx).RecordError(err)
		return nil, fmt.Errorf("save metadata: %w", err)
	}
	return stored, nil
}

func (s *fileService) List(ctx context.Context) ([]model.FileRecord, error) {
	return s.repo.List(ctx)
}

func (s *fileService) Open(ctx context.Context, storedName string) (io.ReadCloser, *model.FileRecord, error) {
	if storedName == "" {
		return nil, nil, ErrFileNotFound
	}
	rec, err := s.repo.FindByStoredName(ctx, storedName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, rec.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("open blob: %w", err)
	}
	return rc, rec, nil
}
