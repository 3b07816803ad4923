package presenter

import (
	"testing"

	"github.com/soocke/snapfft-go/domain/geom"
	"github.com/soocke/snapfft-go/domain/interaction"
)

type mockModeView struct {
	labels, hints []string
}

func (v *mockModeView) SetModeLabel(s string) { v.labels = append(v.labels, s) }
func (v *mockModeView) SetHint(s string)      { v.hints = append(v.hints, s) }

func TestFSMPresenter_ReflectsTransitions(t *testing.T) {
	v := &mockModeView{}
	p := NewFSMPresenter(v)
	p.OnState(interaction.Idle{}, interaction.LineAwaitingFirst{})
	p.OnState(interaction.LineAwaitingFirst{}, interaction.LineAwaitingSecond{Anchor: geom.Pt(1, 2), View: interaction.ViewFrequency})
	if len(v.labels) != 2 {
		t.Fatalf("labels: %v", v.labels)
	}
	if v.labels[1] != "Mode: LineDrawing(second point, frequency)" {
		t.Fatalf("label: %q", v.labels[1])
	}
	if v.hints[1] != "Click the second point in the frequency panel" {
		t.Fatalf("hint: %q", v.hints[1])
	}
}

func TestFSMPresenter_Dedupes(t *testing.T) {
	v := &mockModeView{}
	p := NewFSMPresenter(v)
	p.OnState(interaction.Idle{}, interaction.BoxSelecting{})
	p.OnState(interaction.Idle{}, interaction.BoxSelecting{})
	if len(v.labels) != 1 {
		t.Fatalf("expected a single update, got %v", v.labels)
	}
}

func TestFSMPresenter_NilSafe(t *testing.T) {
	var p *FSMPresenter
	p.OnState(interaction.Idle{}, interaction.BoxSelecting{})
	NewFSMPresenter(nil).OnState(interaction.Idle{}, interaction.BoxSelecting{})
}
