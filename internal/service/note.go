package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

var (
	ErrNoteInvalid  = errors.New("title and content are required")
	ErrNoteNotFound = errors.New("note not found")
)

// NoteService defines the use cases for handling notes.
type NoteService interface {
	// Create stores a note with a server-assigned ID and timestamp.
	// Title and content are trimmed; if either is empty afterwards the
	// call fails with ErrNoteInvalid.
	Create(ctx context.Context, title, content string) (*model.Note, error)

	// List returns all notes, most recent first. Full snapshot per call.
	List(ctx context.Context) ([]model.Note, error)

	// Delete removes a note by ID. Returns ErrNoteNotFound when no note
	// with that ID exists; otherwise the delete is unconditional.
	Delete(ctx context.Context, id string) error
}

type noteService struct {
	repo repository.NoteRepository
	now  func() time.Time
}

// NewNoteService constructs a new NoteService.
func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteService{repo: repo, now: time.Now}
}

func (s *noteService) Create(ctx context.Context, title, content string) (*model.Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrNoteInvalid
	}

	note := &model.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	return s.repo.Create(ctx, note)
}

func (s *noteService) List(ctx context.Context) ([]model.Note, error) {
	return s.repo.List(ctx)
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrNoteNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoteNotFound
		}
		return err
	}
	return nil
}
