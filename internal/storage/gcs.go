package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/spec-kit/hris-service/internal/config"
)

// GCSLister lists objects of one Google Cloud Storage bucket.
type GCSLister struct {
	client  *gcs.Client
	bucket  string
	baseURL string
	logger  *zap.Logger
}

// NewGCSLister connects to the configured bucket. Without a bucket the lister
// is still usable but every call fails with ErrNotConfigured.
func NewGCSLister(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*GCSLister, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &GCSLister{bucket: cfg.Bucket, baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"), logger: logger}
	if !cfg.Configured() {
		logger.Warn("GCS_BUCKET not set; document listing disabled")
		return l, nil
	}

	var opts []option.ClientOption
	if !config.IsPlaceholder(cfg.CredentialsJSON) {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	l.client = client
	logger.Info("document storage ready", zap.String("bucket", cfg.Bucket))
	return l, nil
}

// List returns the files directly inside folderPath. Sub-folders are not descended.
func (l *GCSLister) List(ctx context.Context, folderPath string) ([]BlobInfo, error) {
	if l == nil || l.client == nil {
		return nil, ErrNotConfigured
	}
	prefix := folderPrefix(folderPath)
	it := l.client.Bucket(l.bucket).Objects(ctx, &gcs.Query{Prefix: prefix, Delimiter: "/"})

	files := make([]BlobInfo, 0)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			l.logger.Error("list objects failed", zap.String("prefix", prefix), zap.Error(err))
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}
		// Synthetic entries for sub-folders and the folder marker itself.
		if attrs.Name == "" || strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		files = append(files, BlobInfo{
			Name:         path.Base(attrs.Name),
			FullPath:     attrs.Name,
			Size:         attrs.Size,
			ContentType:  attrs.ContentType,
			LastModified: attrs.Updated,
			URL:          l.objectURL(attrs.Name),
		})
	}
	l.logger.Debug("listed objects", zap.String("prefix", prefix), zap.Int("count", len(files)))
	return files, nil
}

func (l *GCSLister) objectURL(name string) string {
	segments := strings.Split(name, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return l.baseURL + "/" + url.PathEscape(l.bucket) + "/" + strings.Join(segments, "/")
}

// Close releases the client.
func (l *GCSLister) Close() error {
	if l == nil || l.client == nil {
		return nil
	}
	return l.client.Close()
}
