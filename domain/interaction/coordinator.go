// Package interaction routes pointer input between the spatial and the
// frequency views and drives region selection and line measurement.
//
// The Coordinator is single threaded: every method must be called from the
// UI event loop.
package interaction

import (
	"image"
	"log/slog"

	"github.com/soocke/snapfft-go/domain/geom"
	"github.com/soocke/snapfft-go/domain/imagestore"
	"github.com/soocke/snapfft-go/domain/measure"
	"github.com/soocke/snapfft-go/domain/spectrum"
	"github.com/soocke/snapfft-go/domain/viewport"
)

// DefaultMinSelectionSpan is the smallest accepted region side in pixels.
const DefaultMinSelectionSpan = 5

// Images provides the current image.
type Images interface {
	Current() *imagestore.Image
}

// SpectrumSource computes and caches spectra.
type SpectrumSource interface {
	Compute(gray *image.Gray, region image.Rectangle) (*spectrum.Spectrum, error)
	Current() *spectrum.Spectrum
	Invalidate()
}

// Measurer converts completed lines into calibrated results.
type Measurer interface {
	MeasureSpatial(p0, p1 geom.Point, cal measure.Calibration) measure.SpatialResult
	MeasureFrequency(p0, p1 geom.Point, regionWidth int, cal measure.Calibration) (measure.FrequencyResult, error)
}

// Sink receives redraw requests and measurement results.
type Sink interface {
	Redraw(view ViewID)
	SpatialMeasured(res measure.SpatialResult)
	FrequencyMeasured(res measure.FrequencyResult, err error)
}

// Options tunes the Coordinator. Zero values select defaults.
type Options struct {
	MinSelectionSpan int
	ZoomFactor       float64
	// Calibration is read at measurement time.
	Calibration func() measure.Calibration
}

// Coordinator owns the current region, the interaction state and the
// per-view viewports.
type Coordinator struct {
	logger   *slog.Logger
	images   Images
	engine   SpectrumSource
	measurer Measurer
	sink     Sink
	opts     Options

	state     State
	listeners []StateListener

	region    image.Rectangle
	hasRegion bool
	cursor    geom.Point // last drag position while BoxSelecting
	lines     map[ViewID]Line
	viewports map[ViewID]*viewport.Viewport
}

func NewCoordinator(images Images, engine SpectrumSource, measurer Measurer, sink Sink, opts Options, logger *slog.Logger) *Coordinator {
	if opts.MinSelectionSpan <= 0 {
		opts.MinSelectionSpan = DefaultMinSelectionSpan
	}
	if !(opts.ZoomFactor > 1) {
		opts.ZoomFactor = viewport.DefaultZoomFactor
	}
	if opts.Calibration == nil {
		opts.Calibration = measure.DefaultCalibration
	}
	c := &Coordinator{
		logger:    logger,
		images:    images,
		engine:    engine,
		measurer:  measurer,
		sink:      sink,
		opts:      opts,
		state:     Idle{},
		lines:     make(map[ViewID]Line),
		viewports: map[ViewID]*viewport.Viewport{ViewSpatial: {}, ViewFrequency: {}},
	}
	if im := images.Current(); im != nil {
		b := im.Bounds()
		*c.viewports[ViewSpatial] = viewport.New(b.Dx(), b.Dy())
	}
	return c
}

// SetSink replaces the sink. The presenter that renders the views is
// usually built after the coordinator.
func (c *Coordinator) SetSink(s Sink) { c.sink = s }

// AddListener registers l for state transitions.
func (c *Coordinator) AddListener(l StateListener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

// State returns the current interaction state.
func (c *Coordinator) State() State { return c.state }

// Region returns the committed region.
func (c *Coordinator) Region() (image.Rectangle, bool) { return c.region, c.hasRegion }

// Selection returns the rubber band rectangle of a drag in progress.
func (c *Coordinator) Selection() (image.Rectangle, bool) {
	s, ok := c.state.(BoxSelecting)
	if !ok || !s.Anchored {
		return image.Rectangle{}, false
	}
	return geom.NormalizedRect(s.Anchor, c.cursor), true
}

// Line returns the last completed line in view.
func (c *Coordinator) Line(view ViewID) (Line, bool) {
	l, ok := c.lines[view]
	return l, ok
}

// Viewport returns a copy of view's viewport.
func (c *Coordinator) Viewport(view ViewID) viewport.Viewport {
	if vp, ok := c.viewports[view]; ok {
		return *vp
	}
	return viewport.Viewport{}
}

// ImageReplaced resets everything derived from the previous image.
func (c *Coordinator) ImageReplaced(im *imagestore.Image) {
	c.engine.Invalidate()
	c.region, c.hasRegion = image.Rectangle{}, false
	clear(c.lines)
	b := im.Bounds()
	*c.viewports[ViewSpatial] = viewport.New(b.Dx(), b.Dy())
	*c.viewports[ViewFrequency] = viewport.Viewport{}
	c.transition(Idle{})
	c.redraw(ViewSpatial)
	c.redraw(ViewFrequency)
}

// RequestBoxSelect arms region selection. It requires an image and the
// Idle state.
func (c *Coordinator) RequestBoxSelect() bool {
	if c.images.Current() == nil {
		return false
	}
	if _, ok := c.state.(Idle); !ok {
		return false
	}
	c.transition(BoxSelecting{})
	return true
}

// RequestLineDraw arms line measurement. It requires an image and the
// Idle state.
func (c *Coordinator) RequestLineDraw() bool {
	if c.images.Current() == nil {
		return false
	}
	if _, ok := c.state.(Idle); !ok {
		return false
	}
	c.transition(LineAwaitingFirst{})
	return true
}

// Cancel abandons any selection or line in progress.
func (c *Coordinator) Cancel() {
	prev := c.state
	c.transition(Idle{})
	switch s := prev.(type) {
	case BoxSelecting:
		if s.Anchored {
			c.redraw(ViewSpatial)
		}
	case LineAwaitingSecond:
		c.redraw(s.View)
	}
}

// Press handles a primary button press at raster position p of view.
func (c *Coordinator) Press(view ViewID, p geom.Point) {
	switch s := c.state.(type) {
	case BoxSelecting:
		if view != ViewSpatial || !c.onContent(view, p) {
			return
		}
		c.cursor = p
		c.transition(BoxSelecting{Anchor: p, Anchored: true})
	case LineAwaitingFirst:
		if !c.onContent(view, p) {
			return
		}
		c.transition(LineAwaitingSecond{Anchor: p, View: view})
		c.redraw(view)
	case LineAwaitingSecond:
		if view != s.View {
			c.debug("press ignored in other view", "view", view.String(), "anchor_view", s.View.String())
			return
		}
		c.completeLine(s.View, s.Anchor, p)
	}
}

// Motion updates the rubber band while a selection is being dragged.
func (c *Coordinator) Motion(view ViewID, p geom.Point) {
	s, ok := c.state.(BoxSelecting)
	if !ok || !s.Anchored || view != ViewSpatial {
		return
	}
	c.cursor = p
	c.redraw(ViewSpatial)
}

// Release commits a dragged selection.
func (c *Coordinator) Release(view ViewID, p geom.Point) {
	s, ok := c.state.(BoxSelecting)
	if !ok || !s.Anchored || view != ViewSpatial {
		return
	}
	c.cursor = p
	c.transition(Idle{})
	c.commitRegion(geom.NormalizedRect(s.Anchor, p))
}

// Wheel zooms view about p. It is accepted in every state.
func (c *Coordinator) Wheel(view ViewID, p geom.Point, dir viewport.Direction) {
	vp, ok := c.viewports[view]
	if !ok || vp.Empty() {
		return
	}
	vp.ZoomAt(p, dir, c.opts.ZoomFactor)
	c.debug("zoom", "view", view.String(), "direction", dir.String(), "zoom", vp.Zoom())
	c.redraw(view)
}

// ResetZoom restores both viewports.
func (c *Coordinator) ResetZoom() {
	for _, v := range Views {
		c.viewports[v].Reset()
		c.redraw(v)
	}
}

func (c *Coordinator) commitRegion(r image.Rectangle) {
	im := c.images.Current()
	if im == nil {
		return
	}
	r = im.Clip(r)
	if r.Dx() < c.opts.MinSelectionSpan || r.Dy() < c.opts.MinSelectionSpan {
		c.debug("selection ignored", "region", r.String(), "min_span", c.opts.MinSelectionSpan)
		c.redraw(ViewSpatial)
		return
	}
	s, err := c.engine.Compute(im.Gray, r)
	if err != nil {
		c.debug("selection ignored", "region", r.String(), "error", err)
		c.redraw(ViewSpatial)
		return
	}
	c.region, c.hasRegion = s.Region, true
	delete(c.lines, ViewFrequency)
	*c.viewports[ViewFrequency] = viewport.New(s.Width(), s.Height())
	c.redraw(ViewSpatial)
	c.redraw(ViewFrequency)
}

func (c *Coordinator) completeLine(view ViewID, a, b geom.Point) {
	c.lines[view] = Line{From: a, To: b}
	c.transition(Idle{})
	cal := c.opts.Calibration()
	switch view {
	case ViewSpatial:
		res := c.measurer.MeasureSpatial(a, b, cal)
		if c.sink != nil {
			c.sink.SpatialMeasured(res)
		}
	case ViewFrequency:
		width := 0
		if s := c.engine.Current(); s != nil {
			width = s.Width()
		}
		res, err := c.measurer.MeasureFrequency(a, b, width, cal)
		if c.sink != nil {
			c.sink.FrequencyMeasured(res, err)
		}
	}
	c.redraw(view)
}

func (c *Coordinator) onContent(view ViewID, p geom.Point) bool {
	vp, ok := c.viewports[view]
	return ok && !vp.Empty() && vp.Contains(p)
}

func (c *Coordinator) transition(next State) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	if c.logger != nil {
		c.logger.Debug("interaction transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range c.listeners {
		l(prev, next)
	}
}

func (c *Coordinator) redraw(view ViewID) {
	if c.sink != nil {
		c.sink.Redraw(view)
	}
}

func (c *Coordinator) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
