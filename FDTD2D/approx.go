package FDTD2D

import (
	"math"
	"math/rand"
	"sort"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/utils"
)

// deviation records the change made to one cell by a half step update
type deviation struct {
	previous, change float64
	i, j             int
}

func (g *Grid) random(ap FDTD.Approximation) *rand.Rand {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(ap.Seed))
	}
	return g.rng
}

// interior reports whether (i,j) lies strictly inside the CPML slabs with a one cell margin
func (g *Grid) interior(i, j int) bool {
	T := g.CPMLThickness
	return i > T+1 && i < g.SizeX-T-1 && j > T+1 && j < g.SizeY-T-1
}

func (g *Grid) approxMagnetic(ap FDTD.Approximation) {
	var (
		rng    = g.random(ap)
		nx, ny = g.SizeX - 1, g.SizeY - 1
		skip   = ap.Mode == FDTD.ApproxRandomSkip
		record = ap.Mode == FDTD.ApproxSortSkip
	)
	// Hx and Hy draw independently, matching two separate sweeps
	newHx, newHy := g.Hx.Copy(), g.Hy.Copy()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			hx, _ := g.magneticCell(i, j)
			if !(skip && g.interior(i, j) && rng.Float64() < ap.Fraction) {
				newHx.Set(i, j, hx)
			}
		}
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			_, hy := g.magneticCell(i, j)
			if !(skip && g.interior(i, j) && rng.Float64() < ap.Fraction) {
				newHy.Set(i, j, hy)
			}
		}
	}
	for _, pair := range [2][2]utils.Array2D{{g.Hx, newHx}, {g.Hy, newHy}} {
		old, updated := pair[0], pair[1]
		if record {
			g.revertSmallest(old, updated, 0, nx, 0, ny, ap.Fraction)
		}
		copy(old.DataP, updated.DataP)
		if ap.Mode == FDTD.ApproxInterpolate {
			g.interpolate(old, rng, ap.Fraction)
		}
	}
}

func (g *Grid) approxElectric(ap FDTD.Approximation) {
	var (
		rng     = g.random(ap)
		updated = g.Ez.Copy()
	)
	for i := 1; i < g.SizeX; i++ {
		for j := 1; j < g.SizeY; j++ {
			if ap.Mode == FDTD.ApproxRandomSkip && g.interior(i, j) && rng.Float64() < ap.Fraction {
				continue
			}
			updated.Set(i, j, g.electricCell(i, j))
		}
	}
	if ap.Mode == FDTD.ApproxSortSkip {
		g.revertSmallest(g.Ez, updated, 1, g.SizeX, 1, g.SizeY, ap.Fraction)
	}
	copy(g.Ez.DataP, updated.DataP)
	if ap.Mode == FDTD.ApproxInterpolate {
		g.interpolate(g.Ez, rng, ap.Fraction)
	}
}

// revertSmallest restores the previous value of the ceil(fraction*count) cells that changed least
func (g *Grid) revertSmallest(old, updated utils.Array2D, iMin, iMax, jMin, jMax int,
	fraction float64) {
	g.deviations = g.deviations[:0]
	for i := iMin; i < iMax; i++ {
		for j := jMin; j < jMax; j++ {
			prev := old.At(i, j)
			delta := prev - updated.At(i, j)
			g.deviations = append(g.deviations, deviation{
				previous: prev, change: delta * delta, i: i, j: j,
			})
		}
	}
	sort.SliceStable(g.deviations, func(a, b int) bool {
		return g.deviations[a].change < g.deviations[b].change
	})
	threshold := int(math.Ceil(float64(len(g.deviations)) * fraction))
	if threshold > len(g.deviations) {
		threshold = len(g.deviations)
	}
	for _, dev := range g.deviations[:threshold] {
		updated.Set(dev.i, dev.j, dev.previous)
	}
}

// interpolate replaces a random share of interior cells with the mean of their four neighbours.
// Cells are visited in order and updated in place.
func (g *Grid) interpolate(a utils.Array2D, rng *rand.Rand, fraction float64) {
	T := g.CPMLThickness
	for i := T + 1; i < g.SizeX-T-1; i++ {
		for j := T + 1; j < g.SizeY-T-1; j++ {
			if rng.Float64() < fraction {
				a.Set(i, j, (a.At(i-1, j)+a.At(i+1, j)+a.At(i, j-1)+a.At(i, j+1))/4.)
			}
		}
	}
}
