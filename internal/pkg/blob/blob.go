// Package blob stores evidence objects with create-only semantics.
package blob

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
)

// ErrObjectExists is returned by Put when the key is already taken. Objects are never overwritten.
var ErrObjectExists = errors.New("blob: object already exists")

type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	PublicURL(key string) string
}

// escapeKey escapes each path segment but keeps the separators.
func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
