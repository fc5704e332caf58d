package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects under a directory. Used in development where the
// directory is served by the HTTP server's static /uploads route.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *LocalStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("blob: key %q escapes storage root", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *LocalStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrObjectExists
		}
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(full)
		return err
	}
	return nil
}

func (s *LocalStore) PublicURL(key string) string {
	return s.baseURL + "/" + escapeKey(key)
}
