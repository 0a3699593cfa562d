package local

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	pkgerrors "github.com/stocktrail/stocktrail-backend/pkg/errors"
)

var allowedImageTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// Store writes uploaded product images onto the local filesystem.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore builds a store rooted at dir. The directory is created lazily on
// first save so a read-only deployment without uploads still boots.
func NewStore(dir string, maxUploadMB int) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if maxUploadMB < 1 {
		return nil, fmt.Errorf("max upload size must be at least 1MB")
	}
	return &Store{dir: dir, maxBytes: int64(maxUploadMB) << 20}, nil
}

// MaxBytes returns the upload size cap in bytes.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// SaveImage sniffs the payload, rejects non-image uploads, and writes the
// bytes under a random filename. It returns the stored path.
func (s *Store) SaveImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "empty image payload")
	}
	if int64(len(data)) > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "image exceeds upload size limit")
	}

	mtype := mimetype.Detect(data)
	if !isAllowedImage(mtype.String()) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported image type").
			WithDetails(map[string]any{"detected": mtype.String(), "allowed": allowedImageTypes})
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create upload dir")
	}

	name := uuid.NewString() + mtype.Extension()
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write image")
	}
	return path, nil
}

func isAllowedImage(detected string) bool {
	for _, allowed := range allowedImageTypes {
		if detected == allowed {
			return true
		}
	}
	return false
}
