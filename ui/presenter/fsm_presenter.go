package presenter

import (
	"github.com/soocke/snapfft-go/domain/interaction"
)

// ModeView sets the mode label and the hint line in the view.
type ModeView interface {
	SetModeLabel(string)
	SetHint(string)
}

// FSMPresenter reflects interaction state transitions in the view.
type FSMPresenter struct {
	view   ModeView
	latest string // last reflected label
}

func NewFSMPresenter(view ModeView) *FSMPresenter {
	return &FSMPresenter{view: view}
}

// OnState is registered as an interaction.StateListener.
func (p *FSMPresenter) OnState(_, next interaction.State) {
	if p == nil || p.view == nil || next == nil {
		return
	}
	label := "Mode: " + next.String()
	if label == p.latest {
		return
	}
	p.latest = label
	p.view.SetModeLabel(label)
	p.view.SetHint(hintFor(next))
}

func hintFor(s interaction.State) string {
	switch st := s.(type) {
	case interaction.BoxSelecting:
		if st.Anchored {
			return "Release to compute the spectrum of the region"
		}
		return "Drag on the image to select a region"
	case interaction.LineAwaitingFirst:
		return "Click the first point in either panel"
	case interaction.LineAwaitingSecond:
		return "Click the second point in the " + st.View.String() + " panel"
	default:
		return "Scroll to zoom. Select Region or Measure to continue."
	}
}
