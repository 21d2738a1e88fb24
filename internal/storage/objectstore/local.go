package objectstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded proof images and serves them back by public URL.
type Store interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Remove(ctx context.Context, publicURL string) error
	Dir() string
}

// LocalStore keeps proof images on local disk under a single directory and
// exposes them as <publicBaseURL>/uploads/<key>.
type LocalStore struct {
	dir           string
	publicBaseURL string
	logger        *slog.Logger
}

var unsafeNameChars = regexp.MustCompile(`[^\w\-.]`)

func NewLocalStore(dir, publicBaseURL string, logger *slog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		dir:           dir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Save writes data under a fresh key and returns the public URL. The original
// name contributes only its sanitized basename, so path traversal in an
// uploaded filename cannot escape the directory.
func (s *LocalStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := unsafeNameChars.ReplaceAllString(filepath.Base(name), "_")
	if clean == "" || clean == "." {
		clean = "upload"
	}
	key := uuid.NewString() + "_" + clean

	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	url := s.publicBaseURL + "/uploads/" + key
	s.logger.Debug("stored proof image", "key", key, "bytes", len(data))
	return url, nil
}

// Remove deletes the object a previously returned URL points at. Unknown
// URLs are ignored: removal is best-effort cleanup after a failed attach.
func (s *LocalStore) Remove(ctx context.Context, publicURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	idx := strings.LastIndex(publicURL, "/uploads/")
	if idx < 0 {
		return nil
	}
	key := publicURL[idx+len("/uploads/"):]
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "..") {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// Dir returns the backing directory, used to mount static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}
