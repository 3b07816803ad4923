// Package imagestore owns the currently loaded image. An Image is immutable
// once loaded and is replaced wholesale by the next successful load.
package imagestore

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrLoad is returned for unreadable, unsupported or empty images.
var ErrLoad = errors.New("imagestore: load failed")

// Source labels for images that do not come from a file.
const (
	SourceClipboard = "clipboard"
	SourceScreen    = "screen"
	SourceSample    = "sample"
)

var supported = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff", ".webp"}

// SupportedFormats lists the accepted file extensions.
func SupportedFormats() []string { return append([]string(nil), supported...) }

// IsSupportedFormat reports whether path has an accepted extension.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range supported {
		if ext == s {
			return true
		}
	}
	return false
}

// Image is a loaded raster in color and in grayscale. Both rasters have
// their origin at (0,0).
type Image struct {
	Gray   *image.Gray
	Color  *image.RGBA
	Source string
}

// Bounds returns the raster bounds.
func (im *Image) Bounds() image.Rectangle {
	if im == nil || im.Gray == nil {
		return image.Rectangle{}
	}
	return im.Gray.Bounds()
}

// Clip intersects r with the image bounds.
func (im *Image) Clip(r image.Rectangle) image.Rectangle {
	return r.Canon().Intersect(im.Bounds())
}

// FromImage converts a decoded image into an Image. Grayscale uses the
// ITU-R 601 luma weights of image/color.GrayModel.
func FromImage(src image.Image, source string) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrLoad)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrLoad, b.Dx(), b.Dy())
	}
	r := image.Rect(0, 0, b.Dx(), b.Dy())
	col := image.NewRGBA(r)
	draw.Draw(col, r, src, b.Min, draw.Src)
	gray := image.NewGray(r)
	draw.Draw(gray, r, col, image.Point{}, draw.Src)
	return &Image{Gray: gray, Color: col, Source: source}, nil
}

// Store holds the current image and notifies listeners on replacement.
type Store struct {
	logger    *slog.Logger
	current   *Image
	listeners []func(*Image)
}

func New(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

// Current returns the loaded image or nil.
func (s *Store) Current() *Image { return s.current }

// OnReplace registers fn to run after every successful load.
func (s *Store) OnReplace(fn func(*Image)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

// LoadFile decodes the file at path.
func (s *Store) LoadFile(path string) (*Image, error) {
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrLoad, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()
	return s.LoadReader(f, path)
}

// LoadReader decodes an encoded image from r.
func (s *Store) LoadReader(r io.Reader, source string) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if s.logger != nil {
		s.logger.Debug("image decoded", "source", source, "format", format)
	}
	return s.LoadImage(img, source)
}

// LoadImage installs an already decoded image.
func (s *Store) LoadImage(img image.Image, source string) (*Image, error) {
	im, err := FromImage(img, source)
	if err != nil {
		return nil, err
	}
	s.current = im
	if s.logger != nil {
		b := im.Bounds()
		s.logger.Info("image loaded", "source", source, "width", b.Dx(), "height", b.Dy())
	}
	for _, fn := range s.listeners {
		fn(im)
	}
	return im, nil
}
