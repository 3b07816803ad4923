// Package colormap provides the named colormaps offered for both display
// panels. Each map is a 256-entry table built by interpolating anchor colors.
package colormap

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Gray is the fallback map.
const Gray = "gray"

// Names lists the available maps in menu order.
var Names = []string{Gray, "viridis", "plasma", "inferno", "magma", "cividis", "jet", "hot"}

type stop struct {
	pos float64
	hex string
}

// even spreads hex anchors uniformly over [0,1].
func even(hexes ...string) []stop {
	out := make([]stop, len(hexes))
	for i, h := range hexes {
		out[i] = stop{pos: float64(i) / float64(len(hexes)-1), hex: h}
	}
	return out
}

var anchors = map[string][]stop{
	Gray:      even("#000000", "#ffffff"),
	"viridis": even("#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"),
	"plasma":  even("#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"),
	"inferno": even("#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"),
	"magma":   even("#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"),
	"cividis": even("#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8678", "#a59c74", "#c3b369", "#e1cc55", "#fee838"),
	"jet": {
		{0, "#00007f"}, {0.11, "#0000ff"}, {0.125, "#0000ff"}, {0.34, "#00ddff"},
		{0.35, "#00e5f7"}, {0.375, "#00ffff"}, {0.64, "#ffff00"}, {0.66, "#ffee00"},
		{0.89, "#ff0000"}, {1, "#7f0000"},
	},
	"hot": {{0, "#0b0000"}, {0.365, "#ff0000"}, {0.746, "#ffff00"}, {1, "#ffffff"}},
}

// Colormap is a precomputed lookup table.
type Colormap struct {
	name string
	lut  [256]color.RGBA
}

var registry = map[string]*Colormap{}

func init() {
	for _, n := range Names {
		cm, err := build(n, anchors[n])
		if err != nil {
			panic(err)
		}
		registry[n] = cm
	}
}

func build(name string, stops []stop) (*Colormap, error) {
	cols := make([]colorful.Color, len(stops))
	for i, s := range stops {
		c, err := colorful.Hex(s.hex)
		if err != nil {
			return nil, fmt.Errorf("colormap %s: %w", name, err)
		}
		cols[i] = c
	}
	cm := &Colormap{name: name}
	seg := 0
	for i := range cm.lut {
		t := float64(i) / 255
		for seg < len(stops)-2 && t > stops[seg+1].pos {
			seg++
		}
		a, b := stops[seg], stops[seg+1]
		f := 0.0
		if b.pos > a.pos {
			f = (t - a.pos) / (b.pos - a.pos)
		}
		r, g, bl := cols[seg].BlendRgb(cols[seg+1], f).Clamped().RGB255()
		cm.lut[i] = color.RGBA{R: r, G: g, B: bl, A: 0xff}
	}
	return cm, nil
}

// Lookup returns the named map, or gray for unknown names.
func Lookup(name string) *Colormap {
	if cm, ok := registry[name]; ok {
		return cm
	}
	return registry[Gray]
}

// Known reports whether name is one of Names.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Name returns the map's name.
func (c *Colormap) Name() string { return c.name }

// At returns the color for intensity v.
func (c *Colormap) At(v uint8) color.RGBA { return c.lut[v] }

// Apply colorizes g into a new RGBA raster with origin (0,0).
func (c *Colormap) Apply(g *image.Gray) *image.RGBA {
	if g == nil {
		return nil
	}
	b := g.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := g.PixOffset(b.Min.X, b.Min.Y+y)
		di := dst.PixOffset(0, y)
		for x, v := range g.Pix[si : si+b.Dx()] {
			px := c.lut[v]
			o := di + 4*x
			dst.Pix[o], dst.Pix[o+1], dst.Pix[o+2], dst.Pix[o+3] = px.R, px.G, px.B, px.A
		}
	}
	return dst
}
