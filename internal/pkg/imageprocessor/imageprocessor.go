package imageprocessor

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Thumbnail bounding box for post list rendering
const (
	ThumbMaxWidth  = 300
	ThumbMaxHeight = 300
)

const postsDir = "posts"
const thumbsDir = "thumbs"

// SavedImage holds the stored locations of an uploaded illustration,
// relative to the uploads root.
type SavedImage struct {
	ImagePath     string
	ThumbnailPath string
}

// SavePostImage stores the uploaded image under a random name below
// baseDir and renders a bounded thumbnail next to it. Formats the imaging
// package cannot decode (e.g. webp) keep the original and simply get no
// thumbnail.
func SavePostImage(r io.Reader, filename, baseDir string) (*SavedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String()
	imageRel := filepath.Join(postsDir, name+ext)

	if err := os.MkdirAll(filepath.Join(baseDir, postsDir), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(baseDir, imageRel), data, 0o644); err != nil {
		return nil, err
	}

	saved := &SavedImage{ImagePath: imageRel}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return saved, nil
	}

	thumb := imaging.Fit(img, ThumbMaxWidth, ThumbMaxHeight, imaging.Lanczos)
	thumbRel := filepath.Join(postsDir, thumbsDir, name+thumbExt(ext))
	if err := os.MkdirAll(filepath.Join(baseDir, postsDir, thumbsDir), 0o755); err != nil {
		return saved, nil
	}
	if err := imaging.Save(thumb, filepath.Join(baseDir, thumbRel)); err != nil {
		return saved, nil
	}

	saved.ThumbnailPath = thumbRel
	return saved, nil
}

// thumbExt maps the original extension to one the imaging encoder supports.
func thumbExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp":
		return ext
	default:
		return ".jpg"
	}
}

// DeletePostImage removes the stored original and thumbnail, ignoring
// files that are already gone.
func DeletePostImage(saved SavedImage, baseDir string) {
	if saved.ImagePath != "" {
		_ = os.Remove(filepath.Join(baseDir, saved.ImagePath))
	}
	if saved.ThumbnailPath != "" {
		_ = os.Remove(filepath.Join(baseDir, saved.ThumbnailPath))
	}
}
