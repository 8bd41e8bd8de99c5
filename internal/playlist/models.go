package playlist

import "io"

// Track is one row of the playlist table. Tracks are ordered by Position,
// which is neither unique nor contiguous.
type Track struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Path     string `json:"path"`
	Position int    `json:"position"`
}

// NewTrack holds the caller-supplied columns of a track about to be inserted.
type NewTrack struct {
	Title    string `json:"title"`
	Path     string `json:"path"`
	Position int    `json:"position"`
}

// Upload is an audio file on its way into the file store.
type Upload struct {
	Filename string
	Content  io.Reader
	Size     int64 // -1 when unknown
}

// Stream is an open track body. Body must be closed by the reader.
type Stream struct {
	Path        string
	ContentType string
	Body        io.ReadCloser
}
