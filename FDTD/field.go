package FDTD

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofdtd/types"
)

// Field is a read-only view of a per-cell array, Data is aliased with the grid
type Field struct {
	Quantity types.Quantity
	Shape    []int
	Spacing  []float64
	Data     []float64
}

func (f Field) MaxAbs() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	return floats.Norm(f.Data, math.Inf(1))
}

func (f Field) Range() (min, max float64) {
	if len(f.Data) == 0 {
		return
	}
	return floats.Min(f.Data), floats.Max(f.Data)
}
