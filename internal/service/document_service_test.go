package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hris-service/internal/repository"
	"github.com/spec-kit/hris-service/internal/storage"
)

type stubLister struct {
	files  []storage.BlobInfo
	err    error
	folder string
}

func (l *stubLister) List(ctx context.Context, folderPath string) ([]storage.BlobInfo, error) {
	l.folder = folderPath
	return l.files, l.err
}

func TestListFolder(t *testing.T) {
	ctx := context.Background()
	lister := &stubLister{files: []storage.BlobInfo{{Name: "handbook.pdf", Size: 2048}}}
	svc := NewDocumentService(memory(repository.Documents), lister)

	files, err := svc.ListFolder(ctx, "acme/policies")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "handbook.pdf", files[0].Name)
	assert.Equal(t, "acme/policies", lister.folder)

	_, err = svc.ListFolder(ctx, "  ")
	assert.ErrorIs(t, err, ErrFolderPathRequired)
}

func TestListFolderEmptyAndFailing(t *testing.T) {
	ctx := context.Background()

	files, err := NewDocumentService(memory(repository.Documents), &stubLister{}).ListFolder(ctx, "acme")
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)

	boom := errors.New("bucket gone")
	_, err = NewDocumentService(memory(repository.Documents), &stubLister{err: boom}).ListFolder(ctx, "acme")
	assert.ErrorIs(t, err, boom)

	_, err = NewDocumentService(memory(repository.Documents), nil).ListFolder(ctx, "acme")
	assert.ErrorIs(t, err, storage.ErrNotConfigured)
}
