// Package media loads and checks photos before they are uploaded.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"

	"damagesnap/internal/models"

	_ "golang.org/x/image/webp" // register decoder
)

// MaxPhotoBytes bounds the size of an uploaded photo.
const MaxPhotoBytes = 10 * 1024 * 1024

// ErrUnsupportedPhoto is returned for files that are not a decodable image.
var ErrUnsupportedPhoto = errors.New("photo must be a JPEG, PNG, GIF or WebP image")

// PhotoInfo describes a validated photo.
type PhotoInfo struct {
	Format string
	Width  int
	Height int
}

// Validate checks that u holds a supported image within the size limit.
func Validate(u models.Upload) (PhotoInfo, error) {
	if len(u.Data) == 0 {
		return PhotoInfo{}, errors.New("photo is empty")
	}
	if len(u.Data) > MaxPhotoBytes {
		return PhotoInfo{}, fmt.Errorf("photo is %d bytes, the limit is %d", len(u.Data), MaxPhotoBytes)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(u.Data))
	if err != nil {
		return PhotoInfo{}, ErrUnsupportedPhoto
	}
	return PhotoInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// LoadPhoto reads and validates the photo at path.
func LoadPhoto(path string) (models.Upload, PhotoInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Upload{}, PhotoInfo{}, fmt.Errorf("read photo: %w", err)
	}
	u := models.Upload{Filename: filepath.Base(path), Data: data}
	info, err := Validate(u)
	if err != nil {
		return models.Upload{}, PhotoInfo{}, err
	}
	return u, info, nil
}
