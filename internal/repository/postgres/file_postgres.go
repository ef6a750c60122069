package postgres

import (
	"context"
	"database/sql"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

// Create inserts a new file row and returns the stored record.
func (r *FilePostgres) Create(ctx context.Context, rec *model.FileRecord) (*model.FileRecord, error) {
	const q = `
		INSERT INTO files (id, original_name, mime_type, stored_name, storage_path, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, original_name, mime_type, stored_name, storage_path, size_bytes, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.OriginalName,
		rec.MimeType,
		rec.StoredName,
		rec.StoragePath,
		rec.SizeBytes,
		rec.CreatedAt,
	)
	var out model.FileRecord
	if err := row.Scan(
		&out.ID,
		&out.OriginalName,
		&out.MimeType,
		&out.StoredName,
		&out.StoragePath,
		&out.SizeBytes,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every file record, most recent first. The id tiebreak keeps
// the ordering stable for records created within the same timestamp.
func (r *FilePostgres) List(ctx context.Context) ([]model.FileRecord, error) {
	const q = `
		SELECT id, original_name, mime_type, stored_name, storage_path, size_bytes, created_at
		FROM files
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FileRecord, 0)
	for rows.Next() {
		var rec model.FileRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.OriginalName,
			&rec.MimeType,
			&rec.StoredName,
			&rec.StoragePath,
			&rec.SizeBytes,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByStoredName fetches a single record by its unique stored name.
func (r *FilePostgres) FindByStoredName(ctx context.Context, storedName string) (*model.FileRecord, error) {
	const q = `
		SELECT id, original_name, mime_type, stored_name, storage_path, size_bytes, created_at
		FROM files
		WHERE stored_name = $1
	`
	row := r.db.QueryRowContext(ctx, q, storedName)
	var rec model.FileRecord
	if err := row.Scan(
		&rec.ID,
		&rec.OriginalName,
		&rec.MimeType,
		&rec.StoredName,
		&rec.StoragePath,
		&rec.SizeBytes,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}
