package repository

import (
	"context"

	"vaultapi/internal/model"
)

// NoteRepository defines data access for notes using SQL queries only.
type NoteRepository interface {
	// Create inserts a new note row and returns the stored record.
	Create(ctx context.Context, note *model.Note) (*model.Note, error)

	// List returns all notes sorted by created_at descending.
	// There is no pagination; each call is a full snapshot.
	List(ctx context.Context) ([]model.Note, error)

	// Delete removes a note by ID. Returns sql.ErrNoRows when no row with
	// that ID exists, so callers can surface a not-found condition.
	Delete(ctx context.Context, id string) error
}
