package clipboard

import (
	"encoding/binary"
	"image"
	"image/color"
	"testing"
)

func sampleImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(40 * x), uint8(80 * y), 200, 255})
		}
	}
	return img
}

func samePixels(t *testing.T, got image.Image, want *image.RGBA) {
	t.Helper()
	if got.Bounds().Dx() != want.Bounds().Dx() || got.Bounds().Dy() != want.Bounds().Dy() {
		t.Fatalf("size %v want %v", got.Bounds(), want.Bounds())
	}
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			r, g, b, _ := got.At(x, y).RGBA()
			w := want.RGBAAt(x, y)
			if uint8(r>>8) != w.R || uint8(g>>8) != w.G || uint8(b>>8) != w.B {
				t.Fatalf("pixel (%d,%d): got %d,%d,%d want %v", x, y, r>>8, g>>8, b>>8, w)
			}
		}
	}
}

func TestEncodeDIB_HasNoFileHeader(t *testing.T) {
	dib, err := EncodeDIB(sampleImage())
	if err != nil {
		t.Fatal(err)
	}
	if string(dib[:2]) == "BM" {
		t.Fatalf("file header not stripped")
	}
	if n := binary.LittleEndian.Uint32(dib[0:4]); n != infoHeaderLen {
		t.Fatalf("info header length %d", n)
	}
	if bpp := binary.LittleEndian.Uint16(dib[14:16]); bpp != 24 {
		t.Fatalf("bits per pixel %d", bpp)
	}
}

func TestDecodeDIB_ReadsEncoded(t *testing.T) {
	src := sampleImage()
	dib, err := EncodeDIB(src)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeDIB(dib)
	if err != nil {
		t.Fatal(err)
	}
	samePixels(t, got, src)
}

func TestDecodeDIB_Bitfields32(t *testing.T) {
	src := sampleImage()
	w, h := 5, 3
	le := binary.LittleEndian
	dib := make([]byte, infoHeaderLen+12+4*w*h)
	le.PutUint32(dib[0:4], infoHeaderLen)
	le.PutUint32(dib[4:8], uint32(w))
	le.PutUint32(dib[8:12], uint32(h)) // bottom-up
	le.PutUint16(dib[12:14], 1)
	le.PutUint16(dib[14:16], 32)
	le.PutUint32(dib[16:20], biBitfields)
	le.PutUint32(dib[40:44], 0xff0000)
	le.PutUint32(dib[44:48], 0xff00)
	le.PutUint32(dib[48:52], 0xff)
	px := dib[infoHeaderLen+12:]
	for y := 0; y < h; y++ {
		row := h - 1 - y
		for x := 0; x < w; x++ {
			c := src.RGBAAt(x, y)
			o := 4 * (row*w + x)
			px[o], px[o+1], px[o+2], px[o+3] = c.B, c.G, c.R, 0
		}
	}
	got, err := DecodeDIB(dib)
	if err != nil {
		t.Fatal(err)
	}
	samePixels(t, got, src)
}

func TestDecodeDIB_RejectsGarbage(t *testing.T) {
	if _, err := DecodeDIB([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short payload")
	}
	bad := make([]byte, 64)
	binary.LittleEndian.PutUint32(bad[0:4], 12)
	if _, err := DecodeDIB(bad); err == nil {
		t.Fatalf("expected error for core header")
	}
}

func TestEncodeDIB_Empty(t *testing.T) {
	if _, err := EncodeDIB(nil); err == nil {
		t.Fatalf("expected error for nil image")
	}
}
