// Package storage persists uploaded images to disk.
//
// Persistence is a collaborator of the measurement pipeline, not part of
// it: the pipeline works on the in-memory bytes, and measurement
// correctness never depends on the file having been written. Files are
// kept so mismeasured uploads can be inspected later.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/google/uuid"
)

// thumbnailWidth is the pixel width of generated preview thumbnails.
const thumbnailWidth = 256

// Store writes uploaded images into a single base directory with
// collision-free generated names.
type Store struct {
	dir string
	log *slog.Logger
}

// New creates the base directory if needed and returns a Store using it.
func New(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the base directory uploads are written to.
func (s *Store) Dir() string { return s.dir }

// Save persists raw image bytes under a unique generated filename and
// verifies the write landed on disk. Returns the full path of the file.
func (s *Store) Save(data []byte) (string, error) {
	name := fmt.Sprintf("captured_image_%s.png", strings.ReplaceAll(uuid.NewString(), "-", ""))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing image %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("verifying image %s: %w", path, err)
	}
	if info.Size() != int64(len(data)) {
		return "", fmt.Errorf("verifying image %s: wrote %d bytes, found %d", path, len(data), info.Size())
	}

	s.log.Info("image saved", "path", path, "bytes", len(data))
	return path, nil
}

// SaveThumbnail renders a small PNG preview of a decoded image next to the
// stored original. The thumbnail keeps the source aspect ratio at a fixed
// width. Returns the thumbnail path.
func (s *Store) SaveThumbnail(img image.Image, imagePath string) (string, error) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w > thumbnailWidth {
		h = h * thumbnailWidth / w
		if h < 1 {
			h = 1
		}
		w = thumbnailWidth
	}
	small := transform.Resize(img, w, h, transform.Linear)

	var buf bytes.Buffer
	if err := png.Encode(&buf, small); err != nil {
		return "", fmt.Errorf("encoding thumbnail: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	path := filepath.Join(s.dir, base+"_thumb.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing thumbnail %s: %w", path, err)
	}

	s.log.Debug("thumbnail saved", "path", path, "width", w, "height", h)
	return path, nil
}
