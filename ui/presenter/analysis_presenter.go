package presenter

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/soocke/snapfft-go/domain/clipboard"
	"github.com/soocke/snapfft-go/domain/colormap"
	"github.com/soocke/snapfft-go/domain/geom"
	"github.com/soocke/snapfft-go/domain/imagestore"
	"github.com/soocke/snapfft-go/domain/interaction"
	"github.com/soocke/snapfft-go/domain/measure"
	"github.com/soocke/snapfft-go/domain/spectrum"
	"github.com/soocke/snapfft-go/domain/tone"
	"github.com/soocke/snapfft-go/domain/viewport"
	"github.com/soocke/snapfft-go/ui/images"
	"github.com/soocke/snapfft-go/ui/model"
)

// Overlay colors.
var (
	panelBackground = color.RGBA{0x1e, 0x29, 0x3b, 0xff}
	regionColor     = color.RGBA{0xfa, 0xcc, 0x15, 0xff}
	rubberBandColor = color.RGBA{0x22, 0xd3, 0xee, 0xff}
	lineColor       = color.RGBA{0xef, 0x44, 0x44, 0xff}
)

// ImageStore loads and holds the current image.
type ImageStore interface {
	Current() *imagestore.Image
	LoadFile(path string) (*imagestore.Image, error)
	LoadImage(img image.Image, source string) (*imagestore.Image, error)
}

// SpectrumSource exposes the cached spectrum.
type SpectrumSource interface {
	Current() *spectrum.Spectrum
}

// Interaction is the coordinator surface driven by the panels.
type Interaction interface {
	State() interaction.State
	Region() (image.Rectangle, bool)
	Selection() (image.Rectangle, bool)
	Line(view interaction.ViewID) (interaction.Line, bool)
	Viewport(view interaction.ViewID) viewport.Viewport
	RequestBoxSelect() bool
	RequestLineDraw() bool
	Cancel()
	Press(view interaction.ViewID, p geom.Point)
	Release(view interaction.ViewID, p geom.Point)
	Motion(view interaction.ViewID, p geom.Point)
	Wheel(view interaction.ViewID, p geom.Point, dir viewport.Direction)
	ResetZoom()
}

// Clipboard exchanges bitmaps with the system clipboard.
type Clipboard interface {
	WriteImage(img image.Image) error
	ReadImage() (image.Image, error)
}

// ScreenGrabber snaps the whole screen or a rectangle of it.
type ScreenGrabber interface {
	Grab() (image.Image, error)
	GrabRect(r image.Rectangle) (image.Image, error)
}

// SampleSource provides the bundled demo image.
type SampleSource func() (image.Image, error)

// AnalysisView is the subset of the root view the presenter drives.
type AnalysisView interface {
	ShowPanel(view interaction.ViewID, img image.Image)
	PanelSize(view interaction.ViewID) (w, h int)
	SetStatus(text string)
	SetSpatialMeasurement(text string)
	SetFrequencyMeasurement(text string)
	SetLattice(text string)
}

// AnalysisDeps groups the collaborators of an AnalysisPresenter. Clipboard,
// Screen and Sample are optional.
type AnalysisDeps struct {
	Store       ImageStore
	Spectra     SpectrumSource
	Interaction Interaction
	Model       *model.DisplayModel
	View        AnalysisView
	Clipboard   Clipboard
	Screen      ScreenGrabber
	Sample      SampleSource
	Logger      *slog.Logger
}

// renderCache keeps the toned and colorized full raster of one view so that
// overlay-only redraws skip the tone curve.
type renderCache struct {
	source   any
	settings model.ViewSettings
	img      *image.RGBA
}

// AnalysisPresenter renders both panels, turns panel input into raster
// coordinates for the coordinator and reports results to the view. It
// implements interaction.Sink.
type AnalysisPresenter struct {
	d     AnalysisDeps
	cache map[interaction.ViewID]*renderCache
}

var _ interaction.Sink = (*AnalysisPresenter)(nil)

func NewAnalysisPresenter(d AnalysisDeps) *AnalysisPresenter {
	return &AnalysisPresenter{d: d, cache: make(map[interaction.ViewID]*renderCache)}
}

// --- image sources ---

// LoadFile loads an image from disk.
func (p *AnalysisPresenter) LoadFile(path string) bool {
	if p == nil || p.d.Store == nil {
		return false
	}
	if path == "" {
		p.status("No file selected")
		return false
	}
	im, err := p.d.Store.LoadFile(path)
	return p.loaded(im, err, path)
}

// LoadSample loads the bundled lattice image.
func (p *AnalysisPresenter) LoadSample() bool {
	if p == nil || p.d.Sample == nil {
		return false
	}
	img, err := p.d.Sample()
	if err != nil {
		p.fail("sample image unavailable", err)
		return false
	}
	im, err := p.d.Store.LoadImage(img, imagestore.SourceSample)
	return p.loaded(im, err, imagestore.SourceSample)
}

// Paste loads the bitmap on the clipboard.
func (p *AnalysisPresenter) Paste() bool {
	if p == nil || p.d.Clipboard == nil {
		return false
	}
	img, err := p.d.Clipboard.ReadImage()
	switch {
	case errors.Is(err, clipboard.ErrNoImage):
		p.status("No image on the clipboard")
		return false
	case errors.Is(err, clipboard.ErrUnsupported):
		p.status("Clipboard images are not supported on this platform")
		return false
	case err != nil:
		p.fail("paste failed", err)
		return false
	}
	im, err := p.d.Store.LoadImage(img, imagestore.SourceClipboard)
	return p.loaded(im, err, imagestore.SourceClipboard)
}

// SnapScreen loads a capture of the primary screen.
func (p *AnalysisPresenter) SnapScreen() bool {
	if p == nil || p.d.Screen == nil {
		return false
	}
	img, err := p.d.Screen.Grab()
	if err != nil {
		p.fail("screen capture failed", err)
		return false
	}
	im, err := p.d.Store.LoadImage(img, imagestore.SourceScreen)
	return p.loaded(im, err, imagestore.SourceScreen)
}

// SnapRegion loads a capture of screen rectangle r.
func (p *AnalysisPresenter) SnapRegion(r image.Rectangle) bool {
	if p == nil || p.d.Screen == nil {
		return false
	}
	img, err := p.d.Screen.GrabRect(r)
	if err != nil {
		p.fail("region capture failed", err)
		return false
	}
	im, err := p.d.Store.LoadImage(img, imagestore.SourceScreen)
	return p.loaded(im, err, imagestore.SourceScreen)
}

func (p *AnalysisPresenter) loaded(im *imagestore.Image, err error, source string) bool {
	if err != nil {
		p.fail("could not load "+source, err)
		return false
	}
	p.d.View.SetSpatialMeasurement("")
	p.d.View.SetFrequencyMeasurement("")
	p.d.View.SetLattice("")
	b := im.Bounds()
	p.status(fmt.Sprintf("Loaded %s (%dx%d). Drag on the image to select a region.", source, b.Dx(), b.Dy()))
	p.d.Interaction.RequestBoxSelect()
	return true
}

// --- clipboard sink ---

// CopySpatial copies the tone-mapped color image.
func (p *AnalysisPresenter) CopySpatial() bool {
	if p == nil || p.d.Clipboard == nil {
		return false
	}
	im := p.d.Store.Current()
	if im == nil {
		p.status("Nothing to copy: load an image first")
		return false
	}
	toned := tone.ApplyRGBA(im.Color, p.d.Model.Settings(interaction.ViewSpatial).Tone)
	return p.copy(toned, "image")
}

// CopyFrequency copies the rendered spectrum at full resolution.
func (p *AnalysisPresenter) CopyFrequency() bool {
	if p == nil || p.d.Clipboard == nil {
		return false
	}
	base := p.base(interaction.ViewFrequency)
	if base == nil {
		p.status("Nothing to copy: select a region first")
		return false
	}
	return p.copy(base, "spectrum")
}

func (p *AnalysisPresenter) copy(img image.Image, what string) bool {
	if err := p.d.Clipboard.WriteImage(img); err != nil {
		if errors.Is(err, clipboard.ErrUnsupported) {
			p.status("Clipboard images are not supported on this platform")
		} else {
			p.fail("copy failed", err)
		}
		return false
	}
	b := img.Bounds()
	p.status(fmt.Sprintf("Copied %s (%dx%d) to the clipboard", what, b.Dx(), b.Dy()))
	return true
}

// --- modes ---

// SelectRegion arms region selection, abandoning any pending line.
func (p *AnalysisPresenter) SelectRegion() {
	if p == nil {
		return
	}
	p.d.Interaction.Cancel()
	if !p.d.Interaction.RequestBoxSelect() {
		p.status("Load an image first")
	}
}

// DrawLine arms line measurement.
func (p *AnalysisPresenter) DrawLine() {
	if p == nil {
		return
	}
	p.d.Interaction.Cancel()
	if !p.d.Interaction.RequestLineDraw() {
		p.status("Load an image first")
	}
}

// Cancel returns to Idle.
func (p *AnalysisPresenter) Cancel() {
	if p != nil {
		p.d.Interaction.Cancel()
	}
}

// ResetZoom restores both panels to the full raster.
func (p *AnalysisPresenter) ResetZoom() {
	if p != nil {
		p.d.Interaction.ResetZoom()
	}
}

// --- settings ---

// SetTone updates view's tone curve and redraws it. The spectrum is not
// recomputed.
func (p *AnalysisPresenter) SetTone(view interaction.ViewID, params tone.Params) tone.Params {
	applied := p.d.Model.SetTone(view, params)
	p.Redraw(view)
	return applied
}

// SetColormap updates view's colormap and redraws it.
func (p *AnalysisPresenter) SetColormap(view interaction.ViewID, name string) string {
	applied := p.d.Model.SetColormap(view, name)
	p.Redraw(view)
	return applied
}

// SetCalibration validates and stores the calibration inputs.
func (p *AnalysisPresenter) SetCalibration(cal measure.Calibration) error {
	if err := p.d.Model.SetCalibration(cal); err != nil {
		p.status("Invalid calibration: " + err.Error())
		return err
	}
	c := p.d.Model.Calibration()
	p.status(fmt.Sprintf("Calibration: %g %s per pixel", c.UnitsPerPixel, c.UnitName))
	return nil
}

// --- pointer input in panel pixels ---

// PointerPress handles a button press at panel pixel (x, y).
func (p *AnalysisPresenter) PointerPress(view interaction.ViewID, x, y int) {
	if pt, ok := p.toRaster(view, x, y); ok {
		p.d.Interaction.Press(view, pt)
	} else {
		p.d.Interaction.Press(interaction.ViewNone, pt)
	}
}

// PointerRelease handles a button release. Positions outside the raster are
// passed through so a drag can end beyond the image edge.
func (p *AnalysisPresenter) PointerRelease(view interaction.ViewID, x, y int) {
	pt, _ := p.toRaster(view, x, y)
	p.d.Interaction.Release(view, pt)
}

// PointerMotion handles a drag motion.
func (p *AnalysisPresenter) PointerMotion(view interaction.ViewID, x, y int) {
	pt, _ := p.toRaster(view, x, y)
	p.d.Interaction.Motion(view, pt)
}

// PointerWheel zooms view about panel pixel (x, y).
func (p *AnalysisPresenter) PointerWheel(view interaction.ViewID, x, y int, dir viewport.Direction) {
	pt, _ := p.toRaster(view, x, y)
	p.d.Interaction.Wheel(view, pt, dir)
}

func (p *AnalysisPresenter) toRaster(view interaction.ViewID, x, y int) (geom.Point, bool) {
	vp := p.d.Interaction.Viewport(view)
	pw, ph := p.d.View.PanelSize(view)
	return vp.ToRaster(float64(x)+0.5, float64(y)+0.5, pw, ph)
}

// --- interaction.Sink ---

// Redraw renders view with its overlays and hands it to the view.
func (p *AnalysisPresenter) Redraw(view interaction.ViewID) {
	if p == nil || p.d.View == nil {
		return
	}
	pw, ph := p.d.View.PanelSize(view)
	vp := p.d.Interaction.Viewport(view)
	var src image.Image
	if base := p.base(view); base != nil {
		src = base
	}
	panel := images.RenderViewport(src, vp, pw, ph, panelBackground)
	p.drawOverlays(panel, view, vp)
	p.d.View.ShowPanel(view, panel)
}

// SpatialMeasured shows a spatial measurement.
func (p *AnalysisPresenter) SpatialMeasured(res measure.SpatialResult) {
	p.d.View.SetSpatialMeasurement(res.String())
}

// FrequencyMeasured shows a frequency measurement and, when available, the
// lattice spacing.
func (p *AnalysisPresenter) FrequencyMeasured(res measure.FrequencyResult, err error) {
	if err != nil && !errors.Is(err, measure.ErrUndefinedReciprocal) && p.d.Logger != nil {
		p.d.Logger.Error("frequency measurement failed", "error", err)
	}
	p.d.View.SetFrequencyMeasurement(res.String())
	p.d.View.SetLattice(res.LatticeString())
}

// base returns the cached full-resolution render of view, rebuilding it
// when the source raster or settings changed. It is nil without content.
func (p *AnalysisPresenter) base(view interaction.ViewID) *image.RGBA {
	var source any
	switch view {
	case interaction.ViewSpatial:
		if im := p.d.Store.Current(); im != nil {
			source = im
		}
	case interaction.ViewFrequency:
		if s := p.d.Spectra.Current(); s != nil {
			source = s
		}
	}
	if source == nil {
		delete(p.cache, view)
		return nil
	}
	settings := p.d.Model.Settings(view)
	if c, ok := p.cache[view]; ok && c.source == source && c.settings == settings {
		return c.img
	}
	// Both panels are stretched to their own min..max before the colormap.
	var levels *image.Gray
	switch s := source.(type) {
	case *imagestore.Image:
		levels = images.StretchGray(images.ToGray(tone.ApplyRGBA(s.Color, settings.Tone)))
	case *spectrum.Spectrum:
		levels = images.StretchDense(tone.CurveDense(s.Display, settings.Tone))
	}
	img := colormap.Lookup(settings.Colormap).Apply(levels)
	p.cache[view] = &renderCache{source: source, settings: settings, img: img}
	return img
}

func (p *AnalysisPresenter) drawOverlays(panel *image.RGBA, view interaction.ViewID, vp viewport.Viewport) {
	if vp.Empty() {
		return
	}
	pw, ph := panel.Bounds().Dx(), panel.Bounds().Dy()
	toPanel := func(q geom.Point) geom.Point { return vp.ToPanel(q, pw, ph) }
	rect := func(r image.Rectangle, col color.RGBA) {
		a := toPanel(geom.Pt(float64(r.Min.X), float64(r.Min.Y)))
		b := toPanel(geom.Pt(float64(r.Max.X), float64(r.Max.Y)))
		images.DrawRect(panel, a, b, col, 2)
	}
	if view == interaction.ViewSpatial {
		if r, ok := p.d.Interaction.Region(); ok {
			rect(r, regionColor)
		}
		if r, ok := p.d.Interaction.Selection(); ok {
			rect(r, rubberBandColor)
		}
	}
	if l, ok := p.d.Interaction.Line(view); ok {
		images.DrawLine(panel, toPanel(l.From), toPanel(l.To), lineColor, 2)
	}
	if s, ok := p.d.Interaction.State().(interaction.LineAwaitingSecond); ok && s.View == view {
		images.DrawMarker(panel, toPanel(s.Anchor), lineColor, 5)
	}
}

func (p *AnalysisPresenter) status(text string) {
	if p.d.View != nil {
		p.d.View.SetStatus(text)
	}
}

func (p *AnalysisPresenter) fail(msg string, err error) {
	if p.d.Logger != nil {
		p.d.Logger.Error(msg, "error", err)
	}
	p.status(fmt.Sprintf("%s: %v", msg, err))
}
