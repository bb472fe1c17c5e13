package FDTD

import (
	"fmt"
	"math"

	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
)

// CPMLProfile holds the per-layer recursion coefficients of a graded CPML slab.
// Index 0 is the layer touching the outer wall, Thickness-1 the layer next to the interior.
// B, C sit on electric nodes at depth Thickness-1-k, BH, CH on magnetic nodes half a cell deeper.
type CPMLProfile struct {
	Thickness          int
	SigmaMax, AlphaMax float64
	B, C               []float64
	BH, CH             []float64
}

func NewCPMLProfile(thickness int, dx, dt float64) (cp *CPMLProfile, err error) {
	switch {
	case thickness < 0, thickness == 1:
		err = fmt.Errorf("%w: got %d", ErrBadCPMLThickness, thickness)
		return
	case thickness == 0:
		return
	}
	cp = &CPMLProfile{
		Thickness: thickness,
		SigmaMax:  0.8 * float64(TaperOrder+1) / (dx * math.Sqrt(Mu0/Eps0)),
		AlphaMax:  2. * math.Pi * Eps0 * dx * 0.1,
		B:         make([]float64, thickness),
		C:         make([]float64, thickness),
		BH:        make([]float64, thickness),
		CH:        make([]float64, thickness),
	}
	var W = float64(thickness - 1)
	for d := 0; d < thickness; d++ {
		var (
			dd = float64(d)
			dh = math.Min(dd+0.5, W)
		)
		cp.B[thickness-d-1] = cp.b(dd, W, dt)
		cp.C[thickness-d-1] = cp.c(dd, W, dt)
		cp.BH[thickness-d-1] = cp.b(dh, W, dt)
		cp.CH[thickness-d-1] = cp.c(dh, W, dt)
	}
	return
}

// Graded profiles, d is the depth from the interior interface and W the slab width
func Kappa(d, W float64) float64 {
	return 1. + (KappaMax-1.)*utils.POW(d/W, TaperOrder)
}

func (cp *CPMLProfile) Sigma(d, W float64) float64 {
	return cp.SigmaMax * utils.POW(d/W, TaperOrder)
}

func (cp *CPMLProfile) Alpha(d, W float64) float64 {
	return cp.AlphaMax * utils.POW(1.-d/W, TaperOrder)
}

func (cp *CPMLProfile) b(d, W, dt float64) float64 {
	return math.Exp(-dt * (cp.Sigma(d, W)/(Eps0*Kappa(d, W)) + cp.Alpha(d, W)/Eps0))
}

func (cp *CPMLProfile) c(d, W, dt float64) float64 {
	var (
		sigma = cp.Sigma(d, W)
		kappa = Kappa(d, W)
		alpha = cp.Alpha(d, W)
	)
	return sigma / (sigma*kappa + kappa*kappa*alpha) * (cp.b(d, W, dt) - 1.)
}

// CheckCPMLAxis verifies an axis of n cells can hold two slabs of the given thickness plus interior.
// Axes without a CPML face are not checked.
func CheckCPMLAxis(axis string, n, thickness int, low, high types.BorderCondition) (err error) {
	if thickness == 0 || !(low.Has(types.CPML) || high.Has(types.CPML)) {
		return
	}
	if n < 2*thickness+1 {
		err = fmt.Errorf("%w: %s axis has %d cells, need at least %d",
			ErrGridTooSmall, axis, n, 2*thickness+1)
	}
	return
}
