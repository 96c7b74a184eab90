package models

import "time"

// Counter kinds accepted by the document repository.
const (
	CounterDownloads = "downloads"
	CounterViews     = "views"
)

// Document describes one uploaded file. The blob itself lives in object
// storage under StorageKey; the key is unique per file and never exposed
// over the API. Uploader is the uploader's username, linked informally
// (no foreign key).
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Uploader    string    `json:"uploader"`
	StorageKey  string    `json:"-"`
	UploadDate  time.Time `json:"upload_date"`
	Downloads   int64     `json:"downloads"`
	Views       int64     `json:"views"`
}
