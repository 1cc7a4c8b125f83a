// Package upload stores menu and promotion images on local disk.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"restaurant-ordering/internal/logging"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	BucketMenuImages      = "menu-images"
	BucketPromotionImages = "promotion-images"

	// Placeholder is served whenever an upload cannot be stored.
	Placeholder = "/placeholder.svg"

	maxSize = 10 << 20
)

var (
	ErrUnknownBucket = errors.New("unknown bucket")
	ErrNotImage      = errors.New("file is not an image")
	ErrTooLarge      = errors.New("file too large")
)

// Local writes uploads under dir/<bucket>/ and serves them from baseURL.
type Local struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

func NewLocal(dir, baseURL string, logger *zap.Logger) *Local {
	return &Local{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.OrNop(logger),
	}
}

// Dir is the root directory served under /uploads.
func (l *Local) Dir() string {
	return l.dir
}

// Save sniffs r, rejects anything that is not an image and writes it to
// bucket under a fresh uuid, suffixed with name when given. The sniffed
// extension replaces the client's.
func (l *Local) Save(ctx context.Context, bucket, name string, r io.Reader) (string, error) {
	if bucket != BucketMenuImages && bucket != BucketPromotionImages {
		return "", fmt.Errorf("%w: %s", ErrUnknownBucket, bucket)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxSize {
		return "", ErrTooLarge
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file := uuid.NewString()
	name = filepath.Base(strings.TrimSuffix(name, filepath.Ext(name)))
	if name != "" && name != "." && name != string(filepath.Separator) {
		file += "-" + name
	}
	file += mt.Extension()

	target := filepath.Join(l.dir, bucket)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create bucket dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(target, file), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	l.logger.Info("image stored", zap.String("bucket", bucket), zap.String("file", file), zap.String("mime", mt.String()))
	return l.baseURL + path.Join("/uploads", bucket, file), nil
}

// URLOrPlaceholder stores the image and returns its URL, or Placeholder
// when storing fails for any reason.
func (l *Local) URLOrPlaceholder(ctx context.Context, bucket, name string, r io.Reader) string {
	url, err := l.Save(ctx, bucket, name, r)
	if err != nil {
		l.logger.Warn("image upload failed, using placeholder", zap.String("bucket", bucket), zap.Error(err))
		return Placeholder
	}
	return url
}
