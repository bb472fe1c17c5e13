package FDTD

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/notargets/gofdtd/utils"
)

// Spacing returns the cell size resolving the smallest wavelength
func Spacing(smallestWavelength float64) float64 {
	return smallestWavelength / CellsPerWavelength
}

func TimeStep(dx, Sc float64) float64 {
	return dx * Sc / C0
}

// StabilityLimit is the largest stable Courant number on a uniform grid
func StabilityLimit(dimensions int) float64 {
	return 1. / math.Sqrt(float64(dimensions))
}

// WarnStability reports an unstable Courant number without refusing it
func WarnStability(w io.Writer, Sc float64, dimensions int) (stable bool) {
	ScMax := StabilityLimit(dimensions)
	if stable = Sc <= ScMax; !stable {
		if w == nil {
			w = os.Stderr
		}
		fmt.Fprintf(w, "The value of Sc is too high, the simulation may be unstable. "+
			"Please use a value lesser or equal to %.5f\n", ScMax)
	}
	return
}

// CellsCeil and CellsFloor convert a length into a cell count or index
func CellsCeil(length, dx float64) int { return utils.CeilDiv(length, dx) }

func CellsFloor(length, dx float64) int { return utils.FloorDiv(length, dx) }

func CheckIndex(axis string, i, n int) (err error) {
	if i < 0 || i >= n {
		err = fmt.Errorf("%w: %s index %d not in [0,%d)", ErrOutOfBounds, axis, i, n)
	}
	return
}
