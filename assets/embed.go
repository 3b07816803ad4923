package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
)

// SampleLatticePNG is a 256x256 grayscale hexagonal lattice with a 12 px
// period, shipped for trying the analysis without an image at hand.
//
//go:embed sample_lattice.png
var SampleLatticePNG []byte

// SampleLatticeImage decodes the embedded PNG into an image.Image.
func SampleLatticeImage() (image.Image, error) {
	if len(SampleLatticePNG) == 0 {
		return nil, fmt.Errorf("embedded sample_lattice.png is empty")
	}
	img, err := png.Decode(bytes.NewReader(SampleLatticePNG))
	if err != nil {
		return nil, err
	}
	return img, nil
}
