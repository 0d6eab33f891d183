package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "http://localhost:8080/attachments/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Upload(ctx, "tickets/TK-000001/comments/a.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/attachments/tickets/TK-000001/comments/a.png", url)

	data, err := os.ReadFile(filepath.Join(root, "tickets", "TK-000001", "comments", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	require.NoError(t, s.Delete(ctx, "tickets/TK-000001/comments/a.png"))
	require.NoError(t, s.Delete(ctx, "tickets/TK-000001/comments/a.png"), "deleting twice is fine")
}

func TestLocalStorage_KeysStayInsideRoot(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(root, "files"), "/attachments")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "../../escape.txt", []byte("x"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "/attachments/escape.txt", url)
	assert.FileExists(t, filepath.Join(root, "files", "escape.txt"))

	_, err = s.Upload(context.Background(), "", []byte("x"), "text/plain")
	assert.Error(t, err)
}

func TestMinioStorage_RoundTrip(t *testing.T) {
	endpoint := os.Getenv("HELPDESK_TEST_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("HELPDESK_TEST_MINIO_ENDPOINT not set")
	}

	s, err := NewMinioStorage(context.Background(), MinioConfig{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("HELPDESK_TEST_MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("HELPDESK_TEST_MINIO_SECRET_KEY"),
		Bucket:    "helpdesk-test",
	}, logger.NewNop())
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "tickets/TK-000001/comments/t.txt", []byte("hello"), "text/plain")
	require.NoError(t, err)
	assert.Contains(t, url, "/helpdesk-test/tickets/TK-000001/comments/t.txt")
	require.NoError(t, s.Delete(context.Background(), "tickets/TK-000001/comments/t.txt"))
}
