package interaction

import (
	"fmt"

	"github.com/soocke/snapfft-go/domain/geom"
)

// ViewID names a display panel.
type ViewID int

const (
	ViewNone ViewID = iota
	ViewSpatial
	ViewFrequency
)

func (v ViewID) String() string {
	switch v {
	case ViewSpatial:
		return "spatial"
	case ViewFrequency:
		return "frequency"
	default:
		return "none"
	}
}

// Views lists the two display panels.
var Views = [...]ViewID{ViewSpatial, ViewFrequency}

// State is the interaction mode. Implementations are comparable values.
type State interface {
	fmt.Stringer
	isState()
}

// Idle accepts wheel zoom only.
type Idle struct{}

// BoxSelecting waits for a drag on the spatial view. Anchored is set once
// the button went down.
type BoxSelecting struct {
	Anchor   geom.Point
	Anchored bool
}

// LineAwaitingFirst waits for the first endpoint in either view.
type LineAwaitingFirst struct{}

// LineAwaitingSecond waits for the second endpoint in View.
type LineAwaitingSecond struct {
	Anchor geom.Point
	View   ViewID
}

func (Idle) isState()               {}
func (BoxSelecting) isState()       {}
func (LineAwaitingFirst) isState()  {}
func (LineAwaitingSecond) isState() {}

func (Idle) String() string { return "Idle" }

func (s BoxSelecting) String() string {
	if s.Anchored {
		return "BoxSelecting(dragging)"
	}
	return "BoxSelecting"
}

func (LineAwaitingFirst) String() string { return "LineDrawing(first point)" }

func (s LineAwaitingSecond) String() string {
	return "LineDrawing(second point, " + s.View.String() + ")"
}

// StateListener observes transitions.
type StateListener func(prev, next State)

// Line is a completed measurement segment in one view's coordinates.
type Line struct {
	From, To geom.Point
}
