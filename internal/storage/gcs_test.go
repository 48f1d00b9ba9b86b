package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hris-service/internal/config"
)

func TestFolderPrefix(t *testing.T) {
	assert.Equal(t, "", folderPrefix(""))
	assert.Equal(t, "", folderPrefix(" / "))
	assert.Equal(t, "companies/acme/contracts/", folderPrefix("/companies/acme/contracts/"))
	assert.Equal(t, "policies/", folderPrefix("policies"))
}

func TestUnconfiguredListerFails(t *testing.T) {
	l, err := NewGCSLister(context.Background(), config.StorageConfig{Bucket: "your-bucket-name"}, nil)
	require.NoError(t, err)

	_, err = l.List(context.Background(), "policies")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NoError(t, l.Close())
}

func TestObjectURLEscapesSegments(t *testing.T) {
	l := &GCSLister{bucket: "hris-docs", baseURL: "https://storage.googleapis.com"}
	assert.Equal(t,
		"https://storage.googleapis.com/hris-docs/companies/acme/Offer%20Letter.pdf",
		l.objectURL("companies/acme/Offer Letter.pdf"))
}
