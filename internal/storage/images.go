package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// 2 MiB upload cap, matching what the storefront forms enforce client-side.
const MaxUploadBytes = 2 << 20

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooLarge          = errors.New("image too large")
)

var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ImageStore saves uploaded images under a single directory with UUID
// names. Raster formats are resized to max width 800 and re-encoded as JPEG;
// GIFs are stored as-is to keep animations intact.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save validates, optimizes and writes the upload. It returns the stored
// filename (not the full path).
func (s *ImageStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxUploadBytes {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExts[ext] {
		return "", ErrUnsupportedFormat
	}

	// cap the read as well, the declared size is client-controlled
	limited := io.LimitReader(file, MaxUploadBytes+1)

	if ext == ".gif" {
		return s.savePassthrough(limited, ".gif")
	}

	var img image.Image
	var err error
	if ext == ".png" {
		img, err = png.Decode(limited)
	} else {
		img, err = jpeg.Decode(limited)
	}
	if err != nil {
		return "", ErrUnsupportedFormat
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	filename := uuid.New().String() + ".jpg"
	out, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	return filename, nil
}

func (s *ImageStore) savePassthrough(r io.Reader, ext string) (string, error) {
	// decode to confirm it really is a GIF
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return "", ErrTooLarge
	}
	if _, err := gif.Decode(bytes.NewReader(data)); err != nil {
		return "", ErrUnsupportedFormat
	}

	filename := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return filename, nil
}

// Remove deletes a stored file. Missing files are not an error, the caller
// is cleaning up after a replaced or deleted record.
func (s *ImageStore) Remove(filename string) error {
	if filename == "" {
		return nil
	}
	// refuse anything that escapes the upload dir
	if filepath.Base(filename) != filename {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the directory images are stored in, for static serving.
func (s *ImageStore) Dir() string {
	return s.dir
}
