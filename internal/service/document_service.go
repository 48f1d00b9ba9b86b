package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/hris-service/internal/domain"
	"github.com/spec-kit/hris-service/internal/repository"
	"github.com/spec-kit/hris-service/internal/storage"
)

// ErrFolderPathRequired is returned when a listing names no folder.
var ErrFolderPathRequired = errors.New("folderPath is required")

// DocumentService manages document metadata and lists stored files.
type DocumentService struct {
	*Records[*domain.DocumentFile]
	lister storage.Lister
}

// NewDocumentService constructs the service.
func NewDocumentService(documents repository.Provider[*domain.DocumentFile], lister storage.Lister) *DocumentService {
	return &DocumentService{Records: NewRecords(repository.Documents, documents), lister: lister}
}

// ListFolder returns the files stored directly inside folderPath.
func (s *DocumentService) ListFolder(ctx context.Context, folderPath string) ([]storage.BlobInfo, error) {
	if strings.TrimSpace(folderPath) == "" {
		return nil, ErrFolderPathRequired
	}
	if s.lister == nil {
		return nil, storage.ErrNotConfigured
	}
	files, err := s.lister.List(ctx, folderPath)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []storage.BlobInfo{}
	}
	return files, nil
}
