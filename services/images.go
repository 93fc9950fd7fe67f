package services

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/devsearch-app/backend/config"
	"github.com/devsearch-app/backend/errs"
)

const (
	defaultMaxUploadBytes = 10 * 1024 * 1024 // 10 MB
	jpegQuality           = 85
	maxImageWidth         = 1600
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var allowedContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// ImageStore validates uploads and persists compressed copies under
// dated directories.
type ImageStore struct {
	dir      string
	maxBytes int64
}

// NewImageStore reads UPLOAD_DIR and MAX_UPLOAD_BYTES from the config
// map.
func NewImageStore(cfg map[string]string) *ImageStore {
	return &ImageStore{
		dir:      config.GetString(cfg, "UPLOAD_DIR", "./static/images"),
		maxBytes: config.GetInt64(cfg, "MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
	}
}

// MaxBytes returns the configured upload ceiling, for request body
// limits at the HTTP layer.
func (s *ImageStore) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates the upload and writes a compressed JPEG, returning
// the stored path. Rejected uploads never touch the filesystem:
//   - extension outside the allow-list
//   - sniffed content type outside the allow-list
//   - payload over the size limit
//   - bytes that do not decode as an image
func (s *ImageStore) Save(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", errs.NewInvalidImageError("invalid image extension")
	}

	if int64(len(data)) > s.maxBytes {
		return "", errs.NewInvalidImageError(
			fmt.Sprintf("file size exceeds the maximum limit of %d MB", s.maxBytes/(1024*1024)))
	}

	if !allowedContentTypes[http.DetectContentType(data)] {
		return "", errs.NewInvalidImageError("unsupported content type")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", errs.NewInvalidImageError("invalid image file")
	}

	// Downscale wide images, preserving aspect ratio. Height 0 keeps
	// the ratio in imaging.Resize.
	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	dateDir := filepath.Join(s.dir, time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(dateDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	name := uuid.NewString()[:10] + ".jpg"
	path := filepath.Join(dateDir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encode image: %w", err)
	}

	return path, nil
}

// Remove deletes a previously stored image, skipping the shared
// default placeholders.
func (s *ImageStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	base := filepath.Base(path)
	if base == "default.jpg" || base == "user-default.png" {
		return nil
	}
	return os.Remove(path)
}
