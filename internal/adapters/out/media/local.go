// Package media stores uploaded package-opening videos on the local
// filesystem and serves them from a configured public host.
package media

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"

	"github.com/google/uuid"
)

// maxVideoSize caps uploads at 100 MB.
const maxVideoSize = 100 << 20

// LocalStore implements ports.MediaStore on the local filesystem.
type LocalStore struct {
	baseDir   string
	urlPrefix string
	host      string
}

// NewLocalStore creates a store writing under baseDir and serving files from
// urlPrefix (for example https://media.example.com/videos).
func NewLocalStore(baseDir, urlPrefix string) (*LocalStore, error) {
	parsed, err := url.Parse(urlPrefix)
	if err != nil || parsed.Hostname() == "" {
		return nil, errs.NewValidationError("url_prefix")
	}

	return &LocalStore{
		baseDir:   baseDir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		host:      parsed.Hostname(),
	}, nil
}

// Upload stores the video content under a generated name.
func (s *LocalStore) Upload(ctx context.Context, filename string, content []byte) (ports.StoredMedia, error) {
	if err := ctx.Err(); err != nil {
		return ports.StoredMedia{}, err
	}
	if len(content) == 0 {
		return ports.StoredMedia{}, errs.NewValidationError("content")
	}
	if len(content) > maxVideoSize {
		return ports.StoredMedia{}, errs.NewValidationError("content_size")
	}

	ext := safeExt(filename)
	if ext == "" {
		return ports.StoredMedia{}, errs.NewValidationError("filename")
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return ports.StoredMedia{}, errs.NewPersistenceError("create media dir", err)
	}

	key := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.baseDir, key), content, 0o644); err != nil {
		return ports.StoredMedia{}, errs.NewPersistenceError("write video", err)
	}

	return ports.StoredMedia{
		URL:  fmt.Sprintf("%s/%s", s.urlPrefix, key),
		Size: int64(len(content)),
		// Duration requires probing the container format; not extracted here.
		Duration: time.Duration(0),
	}, nil
}

// Host returns the hostname uploads are served from.
func (s *LocalStore) Host() string {
	return s.host
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mp4", ".mov", ".webm", ".avi", ".mkv":
		return ext
	default:
		return ""
	}
}
