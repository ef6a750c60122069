package model

import "time"

// FileRecord describes one stored blob in the vault.
// This is a pure domain model with no database-specific dependencies or tags.
// StoragePath is the backend-internal location of the blob and is never
// serialized to clients.
type FileRecord struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	StoredName   string    `json:"storedName"`
	StoragePath  string    `json:"-"`
	SizeBytes    int64     `json:"sizeBytes"`
	CreatedAt    time.Time `json:"createdAt"`
}
