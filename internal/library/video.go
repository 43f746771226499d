// Package library defines the video library records persisted by the
// settings store.
package library

import (
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
)

// VideoFile is one library entry. ID is stable for the entry's lifetime;
// Path is the absolute filesystem path to the user-chosen video file.
type VideoFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// NewVideoFile creates a library entry for a video at path. The display name
// defaults to the file's base name.
func NewVideoFile(path string) VideoFile {
	return VideoFile{
		ID:   uuid.NewString(),
		Name: filepath.Base(path),
		Path: path,
	}
}

// URL returns the file URL for the entry's path.
func (v VideoFile) URL() string {
	u := url.URL{Scheme: "file", Path: v.Path}
	return u.String()
}
