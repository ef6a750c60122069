package repository

import (
	"context"

	"vaultapi/internal/model"
)

// FileRepository defines metadata access for stored files using SQL queries only.
// No business logic here — strictly persistence operations.
type FileRepository interface {
	// Create inserts a new file record.
	// The caller provides required fields (ID, StoredName, CreatedAt, ...).
	// Returns the stored record (may include values set by the DB).
	Create(ctx context.Context, rec *model.FileRecord) (*model.FileRecord, error)

	// List returns all file records sorted by created_at descending.
	// There is no pagination; each call is a full snapshot.
	List(ctx context.Context) ([]model.FileRecord, error)

	// FindByStoredName returns the record whose stored_name matches exactly.
	// Returns sql.ErrNoRows if no such record exists.
	FindByStoredName(ctx context.Context, storedName string) (*model.FileRecord, error)
}
