package FDTD1D

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/types"
)

var (
	pecBorders  = [types.NumFaces1D]types.BorderCondition{types.PEC, types.PEC}
	cpmlBorders = [types.NumFaces1D]types.BorderCondition{
		types.PEC | types.CPML, types.PEC | types.CPML}
	unity = func(float64) float64 { return 1 }
)

// A wavelength of 20 gives unit cells
func newVacuum(t *testing.T, size, Sc float64, borders [types.NumFaces1D]types.BorderCondition,
	cpml int) (g *Grid) {
	var err error
	g, err = NewGrid(size, Sc, 20, borders, cpml)
	assert.Nil(t, err)
	g.InitMedium(unity, unity)
	return
}

func TestGridConstruction(t *testing.T) {
	{ // Test cell counts round up
		g := newVacuum(t, 37, 1, pecBorders, 0)
		assert.Equal(t, 37, g.SizeX)
		assert.Equal(t, 1., g.Dx)
		assert.Equal(t, 37, len(g.Ez))
		g = newVacuum(t, 37.5, 1, pecBorders, 0)
		assert.Equal(t, 38, g.SizeX)
		assert.InEpsilon(t, 1./FDTD.C0, g.Dt, 1.e-15)
	}
	{ // Test CPML guards
		_, err := NewGrid(37, 1, 20, cpmlBorders, 1)
		assert.True(t, errors.Is(err, FDTD.ErrBadCPMLThickness))
		_, err = NewGrid(40, 1, 20, cpmlBorders, 20)
		assert.True(t, errors.Is(err, FDTD.ErrGridTooSmall))
		g, err := NewGrid(41, 1, 20, cpmlBorders, 20)
		assert.Nil(t, err)
		assert.Equal(t, 20, len(g.psiEz[types.Left1D]))
		// Thickness does not constrain an axis without CPML faces
		g, err = NewGrid(10, 1, 20, pecBorders, 20)
		assert.Nil(t, err)
		assert.Nil(t, g.psiEz[types.Left1D])
	}
	{ // Test medium initialization stores inverse values
		g, err := NewGrid(10, 1, 20, pecBorders, 0)
		assert.Nil(t, err)
		g.InitMedium(unity, func(x float64) float64 {
			if x < 5 {
				return 1
			}
			return 4
		})
		assert.InEpsilon(t, 1./FDTD.Eps0, g.PermittivityInv[4], 1.e-15)
		assert.InEpsilon(t, 0.25/FDTD.Eps0, g.PermittivityInv[5], 1.e-15)
		assert.InEpsilon(t, 1./FDTD.Mu0, g.PermeabilityInv[9], 1.e-15)
	}
}

func TestSources(t *testing.T) {
	ctx := context.Background()
	pulse := FDTD.GaussianPulse{Delay: 0, Width: 1, Peak: 2}
	{ // Test an electric current adds its value to Ez at the snapped cell
		g := newVacuum(t, 37, 1, pecBorders, 0)
		assert.Nil(t, g.AddSource(FDTD.ElectricCurrent, pulse, 9.5))
		assert.Nil(t, g.Iterate(ctx, 1, nil))
		assert.Equal(t, 2., g.Ez[10])
		assert.Equal(t, 0., g.Ez[9])
	}
	{ // Test a magnetic current adds to Hy
		g := newVacuum(t, 37, 1, pecBorders, 0)
		assert.Nil(t, g.AddSource(FDTD.MagneticCurrent, pulse, 10))
		assert.Nil(t, g.Iterate(ctx, 1, nil))
		assert.Equal(t, 2., g.Hy[10])
		assert.NotEqual(t, 0., g.Ez[10])
	}
	{ // Test a right PMC face clears only the wall node
		g := newVacuum(t, 20, 1,
			[types.NumFaces1D]types.BorderCondition{types.PMC, types.PMC}, 0)
		assert.Nil(t, g.AddSource(FDTD.MagneticCurrent, pulse, 18))
		assert.Nil(t, g.AddSource(FDTD.MagneticCurrent, pulse, 19))
		assert.Nil(t, g.AddSource(FDTD.MagneticCurrent, pulse, 0))
		assert.Nil(t, g.Iterate(ctx, 1, nil))
		assert.Equal(t, 2., g.Hy[18])
		assert.Equal(t, 0., g.Hy[19])
		assert.Equal(t, 0., g.Hy[0])
	}
	{ // Test sources snap to ceil(x/dx)
		for _, tc := range []struct {
			x    float64
			cell int
		}{{0, 0}, {4, 4}, {4.01, 5}, {4.99, 5}} {
			g := newVacuum(t, 37, 1, pecBorders, 0)
			assert.Nil(t, g.AddSource(FDTD.ElectricCurrent, pulse, tc.x))
			assert.Equal(t, tc.cell, g.Sources.J[0].Location, "x %g", tc.x)
		}
	}
	{ // Test sources outside of the grid are rejected
		g := newVacuum(t, 37, 1, pecBorders, 0)
		assert.True(t, errors.Is(g.AddSource(FDTD.ElectricCurrent, pulse, 37), FDTD.ErrOutOfBounds))
		assert.True(t, errors.Is(g.AddSource(FDTD.ElectricCurrent, pulse, -1), FDTD.ErrOutOfBounds))
		assert.Equal(t, 0, g.Sources.Len())
	}
}

func TestDeterminism(t *testing.T) {
	ctx := context.Background()
	build := func() *Grid {
		g := newVacuum(t, 300, 0.9, cpmlBorders, 10)
		assert.Nil(t, g.AddSource(FDTD.ElectricCurrent,
			FDTD.GaussianPulse{Delay: 40 * g.Dt, Width: 10 * g.Dt, Peak: 1}, 120))
		assert.Nil(t, g.AddSource(FDTD.MagneticCurrent,
			FDTD.GaussianPulse{Delay: 50 * g.Dt, Width: 10 * g.Dt, Peak: 0.5}, 200))
		return g
	}
	g1, g2, g3 := build(), build(), build()
	assert.Nil(t, g1.Iterate(ctx, 400, nil))
	assert.Nil(t, g2.Iterate(ctx, 400, nil))
	assert.Nil(t, g3.Iterate(ctx, 400, &FDTD.RunOptions{ParallelDegree: 4}))
	assert.Equal(t, g1.Ez, g2.Ez)
	assert.Equal(t, g1.Hy, g2.Hy)
	assert.Equal(t, g1.Ez, g3.Ez)
	assert.Equal(t, g1.Hy, g3.Hy)
	assert.True(t, g1.Energy() > 0)
}

func TestCavityEnergy(t *testing.T) {
	var (
		ctx = context.Background()
		g   = newVacuum(t, 101, 0.9, pecBorders, 0)
	)
	for i := range g.Ez {
		x := (float64(i) - 50) / 6
		g.Ez[i] = math.Exp(-x * x)
	}
	// Sum(eps E^n E^n) + Sum(mu H^(n-1/2) H^(n+1/2)) is invariant in a closed cavity
	conserved := func() (w float64) {
		e := append([]float64{}, g.Ez...)
		hOld := append([]float64{}, g.Hy...)
		assert.Nil(t, g.Iterate(ctx, 1, nil))
		for i := range e {
			w += e[i]*e[i]/g.PermittivityInv[i] + hOld[i]*g.Hy[i]/g.PermeabilityInv[i]
		}
		return
	}
	w0 := conserved()
	assert.Nil(t, g.Iterate(ctx, 500, nil))
	w1 := conserved()
	assert.InEpsilon(t, w0, w1, 1.e-9)
	assert.True(t, w1 <= w0*(1+1.e-9))
}

func TestInterfaceReflection(t *testing.T) {
	var (
		ctx = context.Background()
		g   = newVacuum(t, 1000, 1, pecBorders, 0)
	)
	g.InitMedium(unity, func(x float64) float64 {
		if x < 600 {
			return 1
		}
		return 4
	})
	assert.Nil(t, g.AddSource(FDTD.ElectricCurrent,
		FDTD.GaussianPulse{Delay: 60 * g.Dt, Width: 15 * g.Dt, Peak: 1}, 300))
	var incident, reflected, transmitted float64
	for n := 0; n < 720; n++ {
		assert.Nil(t, g.Iterate(ctx, 1, nil))
		switch {
		case n < 330:
			incident = math.Max(incident, math.Abs(g.Ez[450]))
		case n >= 420:
			reflected = math.Max(reflected, math.Abs(g.Ez[450]))
		}
		if n >= 450 {
			transmitted = math.Max(transmitted, math.Abs(g.Ez[700]))
		}
	}
	// Normal incidence from n=1 onto n=2
	assert.True(t, incident > 0)
	assert.InDelta(t, 1./3., reflected/incident, 0.03)
	assert.InDelta(t, 2./3., transmitted/incident, 0.03)
}

func TestCPMLAbsorption(t *testing.T) {
	var (
		ctx = context.Background()
		g   = newVacuum(t, 200, 0.5, cpmlBorders, 20)
	)
	assert.Nil(t, g.AddSource(FDTD.ElectricCurrent,
		FDTD.GaussianPulse{Delay: 60 * g.Dt, Width: 15 * g.Dt, Peak: 1}, 100))
	var peak, residual float64
	for n := 0; n < 480; n++ {
		assert.Nil(t, g.Iterate(ctx, 1, nil))
		if n < 200 {
			peak = math.Max(peak, math.Abs(g.Ez[100]))
		}
		if n >= 300 {
			for i := 25; i <= 175; i++ {
				residual = math.Max(residual, math.Abs(g.Ez[i]))
			}
		}
	}
	assert.True(t, peak > 0)
	assert.True(t, residual < 1.e-3*peak, "residual %g peak %g", residual, peak)
}

func TestRunAndDump(t *testing.T) {
	ctx := context.Background()
	{ // Test run to an end time that is not a multiple of dt
		g := newVacuum(t, 20, 1, pecBorders, 0)
		end := 10.5 * g.Dt
		assert.Nil(t, g.Run(ctx, end, nil))
		assert.True(t, g.Time() >= end)
		assert.True(t, g.Time() < end+g.Dt)
	}
	{ // Test cancellation stops the run
		g := newVacuum(t, 20, 1, pecBorders, 0)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.True(t, errors.Is(g.Run(cctx, 100*g.Dt, nil), context.Canceled))
		assert.Equal(t, 0., g.Time())
	}
	{ // Test dump format and unavailable quantities
		g := newVacuum(t, 3, 1, pecBorders, 0)
		g.Ez[1] = 0.5
		var buf bytes.Buffer
		assert.Nil(t, g.Dump(&buf, types.Ez))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Equal(t, 3, len(lines))
		assert.Equal(t, "1.000000e+00 5.000000e-01", lines[1])
		assert.True(t, errors.Is(g.Dump(&buf, types.Ex), FDTD.ErrUnknownQuantity))
		_, err := g.Field(types.Hz)
		assert.True(t, errors.Is(err, FDTD.ErrUnknownQuantity))
		f, err := g.Field(types.PermeabilityInv)
		assert.Nil(t, err)
		assert.Equal(t, []int{3}, f.Shape)
	}
	{ // Test release
		g := newVacuum(t, 3, 1, pecBorders, 0)
		g.Release()
		assert.Nil(t, g.Ez)
		assert.Nil(t, g.PermittivityInv)
	}
}
