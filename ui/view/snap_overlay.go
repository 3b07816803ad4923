package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/snapfft-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// snapDelay lets the window manager remove the overlay before the grab.
const snapDelay = 150 * time.Millisecond

// SnapOverlay manages the see-through window used to mark a screen
// rectangle for capture.
type SnapOverlay interface {
	OpenOrFocus()
}

type snapOverlay struct {
	logger  *slog.Logger
	cfg     *config.Config
	screen  func() (image.Rectangle, error)
	onSnap  func(r image.Rectangle)
	persist func()
	win     *ToplevelWidget
}

// NewSnapOverlay creates the overlay manager. screen reports the display
// size used to place a first overlay; onSnap receives the confirmed
// rectangle after the overlay is gone.
func NewSnapOverlay(cfg *config.Config, screen func() (image.Rectangle, error), onSnap func(image.Rectangle), persist func(), logger *slog.Logger) SnapOverlay {
	return &snapOverlay{logger: logger, cfg: cfg, screen: screen, onSnap: onSnap, persist: persist}
}

func (v *snapOverlay) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Snap Region")
	v.win = win
	WmGeometry(win.Window, v.initialGeometry())
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-toolwindow", true)
	WmAttributes(win.Window, "-transparentcolor", "#008080")
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(0))
	GridColumnConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 2, Weight(0))
	left := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	snap := win.Button(Txt("Snap [Enter]"), Command(v.confirm))
	Grid(snap, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.destroy))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.destroy))
}

// initialGeometry restores the last snap rectangle or centers a window
// covering part of the screen.
func (v *snapOverlay) initialGeometry() string {
	if v.cfg != nil && v.cfg.SnapW > 0 && v.cfg.SnapH > 0 {
		return fmt.Sprintf("%dx%d+%d+%d", v.cfg.SnapW, v.cfg.SnapH, v.cfg.SnapX, v.cfg.SnapY)
	}
	screenW, screenH := 1920, 1080
	if v.screen != nil {
		if r, err := v.screen(); err == nil && !r.Empty() {
			screenW, screenH = r.Dx(), r.Dy()
		} else if err != nil && v.logger != nil {
			v.logger.Warn("screen size unavailable", "error", err)
		}
	}
	w, h := max(screenW/3, 1), max(screenH/3, 1)
	return fmt.Sprintf("%dx%d+%d+%d", w, h, (screenW-w)/2, (screenH-h)/2)
}

func (v *snapOverlay) confirm() {
	if v.win == nil {
		return
	}
	geom := WmGeometry(v.win.Window)
	rect, ok := parseGeometry(geom)
	v.destroy()
	if !ok {
		if v.logger != nil {
			v.logger.Error("snap geometry parse error", "geometry", geom)
		}
		return
	}
	if v.cfg != nil {
		v.cfg.SnapX, v.cfg.SnapY = rect.Min.X, rect.Min.Y
		v.cfg.SnapW, v.cfg.SnapH = rect.Dx(), rect.Dy()
		if v.persist != nil {
			v.persist()
		}
	}
	if v.onSnap != nil {
		TclAfter(snapDelay, func() { v.onSnap(rect) })
	}
}

func (v *snapOverlay) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry converts a Tk geometry string into a screen rectangle.
func parseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
