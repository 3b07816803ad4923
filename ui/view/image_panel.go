package view

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/soocke/snapfft-go/domain/viewport"
	"github.com/soocke/snapfft-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// panelInset is the label border plus padding between the widget origin and
// the first image pixel.
const panelInset = 2

// PointerHandlers receive pointer input in panel pixels.
type PointerHandlers struct {
	Press   func(x, y int)
	Release func(x, y int)
	Motion  func(x, y int)
	Wheel   func(x, y int, dir viewport.Direction)
}

// ImagePanel displays one rendered raster and forwards pointer input.
type ImagePanel interface {
	Show(img image.Image)
	Size() (w, h int)
	// Hover returns the last pointer position over the panel, or its
	// center when the pointer never entered it.
	Hover() (x, y int)
}

type imagePanel struct {
	label        *LabelWidget
	photo        *Img // last Tk photo image instance
	w, h         int
	hoverX       int
	hoverY       int
	hoverTracked bool
}

// NewImagePanel creates a w x h panel labelled title inside parent at
// (row, col). The title occupies row and the image row+1.
func NewImagePanel(parent *FrameWidget, row, col, w, h int, title string, bg color.Color, hnd PointerHandlers) ImagePanel {
	placeholder := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(placeholder, placeholder.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	caption := Label(Txt(title), Anchor("w"))
	Grid(caption, In(parent), Row(row), Column(col), Sticky("w"), Padx("0.4m"))
	lbl := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(lbl, In(parent), Row(row+1), Column(col), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	p := &imagePanel{label: lbl, photo: photo, w: w, h: h}
	p.bind(hnd)
	return p
}

func (p *imagePanel) bind(hnd PointerHandlers) {
	at := func(e *Event) (int, int) { return e.X - panelInset, e.Y - panelInset }
	if hnd.Press != nil {
		Bind(p.label, "<ButtonPress-1>", Command(func(e *Event) { hnd.Press(at(e)) }))
	}
	if hnd.Release != nil {
		Bind(p.label, "<ButtonRelease-1>", Command(func(e *Event) { hnd.Release(at(e)) }))
	}
	Bind(p.label, "<B1-Motion>", Command(func(e *Event) {
		p.track(at(e))
		if hnd.Motion != nil {
			hnd.Motion(at(e))
		}
	}))
	Bind(p.label, "<Motion>", Command(func(e *Event) { p.track(at(e)) }))
	if hnd.Wheel != nil {
		Bind(p.label, "<Button-4>", Command(func(e *Event) {
			x, y := at(e)
			hnd.Wheel(x, y, viewport.ZoomIn)
		}))
		Bind(p.label, "<Button-5>", Command(func(e *Event) {
			x, y := at(e)
			hnd.Wheel(x, y, viewport.ZoomOut)
		}))
	}
}

func (p *imagePanel) track(x, y int) {
	p.hoverX, p.hoverY, p.hoverTracked = x, y, true
}

// Show replaces the displayed photo, disposing the previous one.
func (p *imagePanel) Show(img image.Image) {
	if p == nil || p.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if p.photo != nil {
		p.photo.Delete()
	}
	p.photo = NewPhoto(Data(pngBytes))
	p.label.Configure(Image(p.photo))
}

func (p *imagePanel) Size() (int, int) { return p.w, p.h }

func (p *imagePanel) Hover() (int, int) {
	if !p.hoverTracked {
		return p.w / 2, p.h / 2
	}
	return p.hoverX, p.hoverY
}
