// Package storage lists company documents kept in blob storage.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotConfigured is returned by every call when no bucket is configured.
var ErrNotConfigured = errors.New("blob storage not configured")

// BlobInfo describes one stored file.
type BlobInfo struct {
	Name         string    `json:"name"`
	FullPath     string    `json:"fullPath"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"contentType"`
	LastModified time.Time `json:"lastModified"`
	URL          string    `json:"url"`
}

// Lister returns the files directly inside a folder.
type Lister interface {
	List(ctx context.Context, folderPath string) ([]BlobInfo, error)
}

// folderPrefix turns a folder path into an object name prefix.
func folderPrefix(folderPath string) string {
	p := strings.Trim(strings.TrimSpace(folderPath), "/")
	if p == "" {
		return ""
	}
	return p + "/"
}
