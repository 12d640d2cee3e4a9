// Package cvstore persists uploaded CV files on the local filesystem and
// resolves them to public URLs. An orphaned file is tolerated, a missing file
// for a recorded application is not, so callers persist the file before they
// create the record.
package cvstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// Store manages CV files under a single directory.
type Store struct {
	log     *logger.Logger
	dir     string
	baseURL string
}

// New constructs a store rooted at dir. Files are served under baseURL.
func New(log *logger.Logger, dir string, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cv dir: %w", err)
	}

	return &Store{
		log:     log,
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Save writes the file under a random name keeping the original extension and
// returns the public URL.
func (s *Store) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create cv file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write cv file: %w", err)
	}

	url := s.baseURL + "/" + name
	s.log.Info(ctx, "cvstore: saved", "file", name)

	return url, nil
}
