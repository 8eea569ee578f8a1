package model

import "time"

// File is one uploaded artifact attached to a project. Title is the
// user-supplied display name; OriginalName is the client-side filename.
// StorageKey resolves the blob through the storage adapter and changes on
// every replacement. UserID duplicates the project owner for direct
// ownership checks on file mutations.
//
// Version increments on every replace; concurrent mutations of the same
// file are detected through it instead of silently last-write-wins.
type File struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	OriginalName string    `json:"original_name"`
	StorageKey   string    `json:"storage_key"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	ProjectID    string    `json:"project_id"`
	UserID       string    `json:"user_id"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
