package FDTD

import "math"

// Source is a time signal injected at one grid location
type Source interface {
	Value(t float64) float64
}

type GaussianPulse struct {
	Delay, Width, Peak float64
}

func (gp GaussianPulse) Value(t float64) float64 {
	tt := (t - gp.Delay) / gp.Width
	return gp.Peak * math.Exp(-tt*tt)
}

// SourceKind selects which half step a source feeds
type SourceKind uint8

const (
	ElectricCurrent SourceKind = iota // J, added after the E update
	MagneticCurrent                   // M, added after the H update
)

func (sk SourceKind) String() string {
	if sk == MagneticCurrent {
		return "M"
	}
	return "J"
}

type PlacedSource[L any] struct {
	Signal   Source
	Location L
}

// SourceList keeps sources in insertion order, one list per kind
type SourceList[L any] struct {
	J, M []PlacedSource[L]
}

func (sl *SourceList[L]) Add(kind SourceKind, signal Source, loc L) {
	ps := PlacedSource[L]{Signal: signal, Location: loc}
	switch kind {
	case MagneticCurrent:
		sl.M = append(sl.M, ps)
	default:
		sl.J = append(sl.J, ps)
	}
}

func (sl *SourceList[L]) Len() int { return len(sl.J) + len(sl.M) }
