package postgres

import (
	"context"
	"database/sql"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

// Create inserts a new note row and returns the stored record.
func (r *NotePostgres) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (id, title, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, content, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		note.ID,
		note.Title,
		note.Content,
		note.CreatedAt,
	)
	var out model.Note
	if err := row.Scan(
		&out.ID,
		&out.Title,
		&out.Content,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every note, most recent first.
func (r *NotePostgres) List(ctx context.Context) ([]model.Note, error) {
	const q = `
		SELECT id, title, content, created_at
		FROM notes
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a note by ID. Returns sql.ErrNoRows when the row did not
// exist so the service can map it to a not-found error.
func (r *NotePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM notes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
