package model

import "time"

// Note is a title/content pair with a server-assigned creation timestamp.
// Title and content are guaranteed non-empty at creation time; notes are
// never updated, only created and deleted.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
