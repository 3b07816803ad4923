// Package clipboard exchanges bitmaps with the system clipboard in the
// device independent bitmap (CF_DIB) format: a BMP file without its 14 byte
// file header.
package clipboard

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/bmp"
)

var (
	// ErrUnsupported is returned on platforms without clipboard support.
	ErrUnsupported = errors.New("clipboard: not supported on this platform")
	// ErrNoImage is returned when the clipboard holds no bitmap.
	ErrNoImage = errors.New("clipboard: no image on clipboard")
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	biRGB         = 0
	biBitfields   = 3
)

// EncodeDIB encodes img as an opaque 24-bit CF_DIB payload.
func EncodeDIB(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("clipboard: empty image")
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	for i := 3; i < len(rgba.Pix); i += 4 {
		rgba.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("clipboard: encode: %w", err)
	}
	return buf.Bytes()[fileHeaderLen:], nil
}

// DecodeDIB decodes a CF_DIB payload.
func DecodeDIB(dib []byte) (image.Image, error) {
	if len(dib) < infoHeaderLen {
		return nil, fmt.Errorf("clipboard: short DIB (%d bytes)", len(dib))
	}
	le := binary.LittleEndian
	headerLen := le.Uint32(dib[0:4])
	if headerLen < infoHeaderLen || int(headerLen) > len(dib) {
		return nil, fmt.Errorf("clipboard: bad DIB header size %d", headerLen)
	}
	bpp := le.Uint16(dib[14:16])
	compression := le.Uint32(dib[16:20])
	colorsUsed := le.Uint32(dib[32:36])

	// Screenshots often arrive as 32-bit BI_BITFIELDS with the masks placed
	// after a plain info header. Rewrite the common BGRX layout as BI_RGB.
	if headerLen == infoHeaderLen && compression == biBitfields && bpp == 32 && len(dib) >= infoHeaderLen+12 {
		masks := dib[infoHeaderLen : infoHeaderLen+12]
		if le.Uint32(masks[0:4]) == 0xff0000 && le.Uint32(masks[4:8]) == 0xff00 && le.Uint32(masks[8:12]) == 0xff {
			fixed := make([]byte, 0, len(dib)-12)
			fixed = append(fixed, dib[:infoHeaderLen]...)
			fixed = append(fixed, dib[infoHeaderLen+12:]...)
			le.PutUint32(fixed[16:20], biRGB)
			dib = fixed
		}
	}

	palette := uint32(0)
	if bpp <= 8 {
		palette = colorsUsed
		if palette == 0 {
			palette = 1 << bpp
		}
	}
	offset := fileHeaderLen + headerLen + 4*palette

	file := make([]byte, fileHeaderLen, fileHeaderLen+len(dib))
	file[0], file[1] = 'B', 'M'
	le.PutUint32(file[2:6], uint32(fileHeaderLen+len(dib)))
	le.PutUint32(file[10:14], offset)
	file = append(file, dib...)

	img, err := bmp.Decode(bytes.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("clipboard: decode: %w", err)
	}
	return img, nil
}

// System is the platform clipboard.
type System struct{}

// WriteImage places img on the clipboard.
func (System) WriteImage(img image.Image) error {
	dib, err := EncodeDIB(img)
	if err != nil {
		return err
	}
	return writeDIB(dib)
}

// ReadImage returns the bitmap currently on the clipboard.
func (System) ReadImage() (image.Image, error) {
	dib, err := readDIB()
	if err != nil {
		return nil, err
	}
	return DecodeDIB(dib)
}
