// Package capture snaps the screen as an image source.
package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Screen grabs the primary display.
type Screen struct{}

// Grab returns a capture of the whole primary screen.
func (Screen) Grab() (image.Image, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// GrabRect captures r in screen coordinates.
func (Screen) GrabRect(r image.Rectangle) (image.Image, error) {
	r = r.Canon()
	if r.Empty() {
		return nil, fmt.Errorf("capture rect %v: empty", r)
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture rect %v: %w", r, err)
	}
	return img, nil
}

// Bounds returns the primary screen rectangle.
func (Screen) Bounds() (image.Rectangle, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("screen rect: %w", err)
	}
	return r, nil
}
