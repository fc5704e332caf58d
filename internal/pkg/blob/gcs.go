package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type GCSStore struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
}

// ClientOptions accepts either inline service-account JSON or a path to a credentials file.
func ClientOptions(credentials string) []option.ClientOption {
	creds := strings.TrimSpace(credentials)
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if creds == "" {
		return opts
	}
	if strings.HasPrefix(creds, "{") {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	} else {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	return opts
}

func NewGCSStore(ctx context.Context, bucket, cdnDomain string, opts ...option.ClientOption) (*GCSStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{
		client:    client,
		bucket:    bucket,
		cdnDomain: cdnDomain,
	}, nil
}

func (s *GCSStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	obj := s.client.Bucket(s.bucket).Object(key).If(storage.Conditions{DoesNotExist: true})
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, body); err != nil {
		// Closing a writer commits what was sent. Cancel first so the upload is abandoned instead.
		cancel()
		_ = w.Close()
		if isPreconditionFailed(err) {
			return ErrObjectExists
		}
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		if isPreconditionFailed(err) {
			return ErrObjectExists
		}
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (s *GCSStore) PublicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, escapeKey(key))
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, escapeKey(key))
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

func isPreconditionFailed(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed
}
