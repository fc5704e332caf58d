package blob

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutCreateOnly(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "http://localhost:3000/uploads/")
	ctx := context.Background()
	key := "EVIDENCE_FOLDER/JT.01 - JT.02/DC-OF-SM-48D/1700000000000_42.jpg"

	require.NoError(t, store.Put(ctx, key, "image/jpeg", strings.NewReader("first")))

	err := store.Put(ctx, key, "image/jpeg", strings.NewReader("second"))
	assert.ErrorIs(t, err, ErrObjectExists)

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:3000/uploads")

	err := store.Put(context.Background(), "../outside.jpg", "image/jpeg", strings.NewReader("x"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrObjectExists)
}

func TestPublicURLEscapesSegments(t *testing.T) {
	local := NewLocalStore(t.TempDir(), "http://localhost:3000/uploads")
	gcs := &GCSStore{bucket: "eviden-bot"}
	cdn := &GCSStore{bucket: "eviden-bot", cdnDomain: "cdn.example.com"}
	key := "EVIDENCE_FOLDER/JT.01 - JT.02/DC-OF-SM-48D/1_42.jpg"

	assert.Equal(t,
		"http://localhost:3000/uploads/EVIDENCE_FOLDER/JT.01%20-%20JT.02/DC-OF-SM-48D/1_42.jpg",
		local.PublicURL(key))
	assert.Equal(t,
		"https://storage.googleapis.com/eviden-bot/EVIDENCE_FOLDER/JT.01%20-%20JT.02/DC-OF-SM-48D/1_42.jpg",
		gcs.PublicURL(key))
	assert.Equal(t,
		"https://cdn.example.com/EVIDENCE_FOLDER/JT.01%20-%20JT.02/DC-OF-SM-48D/1_42.jpg",
		cdn.PublicURL(key))
}

func TestClientOptions(t *testing.T) {
	assert.Len(t, ClientOptions(""), 1)
	assert.Len(t, ClientOptions(`{"type":"service_account"}`), 2)
	assert.Len(t, ClientOptions("/etc/gcs.json"), 2)
}

// cancelAtEOF cancels the upload context once its content has been fully read.
type cancelAtEOF struct {
	r      io.Reader
	cancel context.CancelFunc
}

func (c cancelAtEOF) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if err == io.EOF {
		c.cancel()
	}
	return n, err
}

type brokenReader struct{}

func (brokenReader) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestLocalStorePutLeavesNothingOnFailure(t *testing.T) {
	key := "EVIDENCE_FOLDER/JT.01 - JT.02/DC-OF-SM-48D/1_42.jpg"

	t.Run("cancelled before write", func(t *testing.T) {
		root := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewLocalStore(root, "").Put(ctx, key, "image/jpeg", strings.NewReader("photo"))
		assert.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, filepath.Join(root, filepath.FromSlash(key)))
	})

	t.Run("cancelled while writing", func(t *testing.T) {
		root := t.TempDir()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		err := NewLocalStore(root, "").Put(ctx, key, "image/jpeg", cancelAtEOF{r: strings.NewReader("photo"), cancel: cancel})
		assert.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, filepath.Join(root, filepath.FromSlash(key)))
	})

	t.Run("body breaks", func(t *testing.T) {
		root := t.TempDir()

		err := NewLocalStore(root, "").Put(context.Background(), key, "image/jpeg", brokenReader{})
		assert.Error(t, err)
		assert.NoFileExists(t, filepath.Join(root, filepath.FromSlash(key)))
	})
}
