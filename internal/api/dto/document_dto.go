package dto

import "github.com/spec-kit/hris-service/internal/storage"

// ListFolderRequest asks for the files inside a storage folder.
type ListFolderRequest struct {
	FolderPath string `json:"folderPath"`
}

// ListFolderResponse is the folder listing envelope.
type ListFolderResponse struct {
	Success bool               `json:"success"`
	Files   []storage.BlobInfo `json:"files"`
}

// ListFolderError reports a failed listing.
type ListFolderError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
