package view

import (
	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// MeasurementLabels shows the latest measurement results.
type MeasurementLabels interface {
	SetSpatial(text string)
	SetFrequency(text string)
	SetLattice(text string)
}

type measurementLabels struct {
	spatialLbl   *LabelWidget
	frequencyLbl *LabelWidget
	latticeLbl   *LabelWidget
}

const (
	spatialPlaceholder   = "Distance: -"
	frequencyPlaceholder = "FFT distance: -"
	latticePlaceholder   = "Lattice: -"
)

// NewMeasurementLabels stacks the three result labels in parent starting at
// row, spanning two columns.
func NewMeasurementLabels(parent *FrameWidget, row int) MeasurementLabels {
	m := &measurementLabels{
		spatialLbl:   Label(Txt(spatialPlaceholder), Anchor("w"), Width(44)),
		frequencyLbl: Label(Txt(frequencyPlaceholder), Anchor("w"), Width(44)),
		latticeLbl:   Label(Txt(latticePlaceholder), Anchor("w"), Width(44)),
	}
	for i, l := range []*LabelWidget{m.spatialLbl, m.frequencyLbl, m.latticeLbl} {
		Grid(l, In(parent), Row(row+i), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.1m"))
	}
	return m
}

func (m *measurementLabels) SetSpatial(text string) {
	set(m.spatialLbl, text, spatialPlaceholder)
}

func (m *measurementLabels) SetFrequency(text string) {
	set(m.frequencyLbl, text, frequencyPlaceholder)
}

func (m *measurementLabels) SetLattice(text string) {
	set(m.latticeLbl, text, latticePlaceholder)
}

// set shows placeholder for empty text.
func set(l *LabelWidget, text, placeholder string) {
	if l == nil {
		return
	}
	if text == "" {
		text = placeholder
	}
	l.Configure(Txt(text))
}
