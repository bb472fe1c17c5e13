package FDTD2D

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

var unity = func(x, y float64) float64 { return 1 }

func borders(bc types.BorderCondition) [types.NumFaces2D]types.BorderCondition {
	return [types.NumFaces2D]types.BorderCondition{bc, bc, bc, bc}
}

// A wavelength of 20 gives unit cells
func newVacuum(t *testing.T, nx, ny, Sc float64, bc types.BorderCondition, cpml int) (g *Grid) {
	var err error
	g, err = NewGrid([2]float64{nx, ny}, Sc, 20, borders(bc), cpml)
	assert.Nil(t, err)
	g.InitMedium(unity, unity)
	return
}

func TestGridConstruction(t *testing.T) {
	{ // Test cell counts round down
		g := newVacuum(t, 37.5, 37, 0.5, types.PEC, 0)
		assert.Equal(t, 37, g.SizeX)
		assert.Equal(t, 37, g.SizeY)
		assert.Equal(t, 37*37, len(g.Ez.DataP))
		assert.Equal(t, g.Dx, g.Dy)
	}
	{ // Test CPML guards and slab shapes
		_, err := NewGrid([2]float64{60, 40}, 0.5, 20, borders(types.CPML), 20)
		assert.True(t, errors.Is(err, FDTD.ErrGridTooSmall))
		_, err = NewGrid([2]float64{60, 60}, 0.5, 20, borders(types.CPML), 1)
		assert.True(t, errors.Is(err, FDTD.ErrBadCPMLThickness))
		g, err := NewGrid([2]float64{60, 50}, 0.5, 20, borders(types.CPML), 10)
		assert.Nil(t, err)
		nx, ny := g.psiE[types.South].Dims()
		assert.Equal(t, [2]int{10, 50}, [2]int{nx, ny})
		nx, ny = g.psiH[types.East].Dims()
		assert.Equal(t, [2]int{60, 10}, [2]int{nx, ny})

		// Only axes with a CPML face need room for the slabs
		g, err = NewGrid([2]float64{60, 8}, 0.5, 20, [types.NumFaces2D]types.BorderCondition{
			types.South: types.PEC | types.CPML, types.North: types.CPML,
			types.East: types.PEC, types.West: types.PMC}, 20)
		assert.Nil(t, err)
		nx, ny = g.psiE[types.North].Dims()
		assert.Equal(t, [2]int{20, 8}, [2]int{nx, ny})
		_, err = NewGrid([2]float64{60, 8}, 0.5, 20, [types.NumFaces2D]types.BorderCondition{
			types.West: types.CPML}, 20)
		assert.True(t, errors.Is(err, FDTD.ErrGridTooSmall))
	}
}

func TestSources(t *testing.T) {
	ctx := context.Background()
	pulse := FDTD.GaussianPulse{Delay: 0, Width: 1, Peak: 2}
	{ // Test electric currents are subtracted from Ez at the floor-snapped cell
		g := newVacuum(t, 30, 30, 0.5, types.PEC, 0)
		assert.Nil(t, g.AddSource(FDTD.ElectricCurrent, pulse, 9.9, 12))
		assert.Nil(t, g.Iterate(ctx, 1, nil))
		assert.Equal(t, -2., g.Ez.At(9, 12))
		assert.Equal(t, 0., g.Ez.At(10, 12))
	}
	{ // Test magnetic currents feed Hx and Hy
		g := newVacuum(t, 30, 30, 0.5, types.PEC, 0)
		assert.Nil(t, g.AddSource(FDTD.MagneticCurrent, pulse, 15, 15))
		assert.Nil(t, g.Iterate(ctx, 1, nil))
		assert.Equal(t, 2., g.Hx.At(15, 15))
		assert.Equal(t, 2., g.Hy.At(15, 15))
	}
	{ // Test PMC zeroes tangential H after the sources are applied
		g := newVacuum(t, 30, 30, 0.5, types.PMC, 0)
		assert.Nil(t, g.AddSource(FDTD.MagneticCurrent, pulse, 0, 5))
		assert.Nil(t, g.AddSource(FDTD.MagneticCurrent, pulse, 28, 29))
		assert.Nil(t, g.Iterate(ctx, 1, nil))
		assert.Equal(t, 0., g.Hy.At(0, 5))
		assert.Equal(t, 2., g.Hx.At(0, 5))
		assert.Equal(t, 0., g.Hy.At(28, 29))
		assert.Equal(t, 0., g.Hx.At(28, 29))
	}
	{ // Test sources outside of the grid are rejected
		g := newVacuum(t, 30, 30, 0.5, types.PEC, 0)
		assert.True(t, errors.Is(g.AddSource(FDTD.ElectricCurrent, pulse, 30, 1), FDTD.ErrOutOfBounds))
		assert.True(t, errors.Is(g.AddSource(FDTD.ElectricCurrent, pulse, 1, 30.5), FDTD.ErrOutOfBounds))
		assert.True(t, errors.Is(g.AddSource(FDTD.ElectricCurrent, pulse, -0.5, 1), FDTD.ErrOutOfBounds))
	}
}

func pulseGrid(t *testing.T) *Grid {
	g := newVacuum(t, 60, 50, 0.7, types.PEC|types.CPML, 10)
	assert.Nil(t, g.AddSource(FDTD.ElectricCurrent,
		FDTD.GaussianPulse{Delay: 40 * g.Dt, Width: 10 * g.Dt, Peak: 1}, 25, 20))
	assert.Nil(t, g.AddSource(FDTD.MagneticCurrent,
		FDTD.GaussianPulse{Delay: 50 * g.Dt, Width: 10 * g.Dt, Peak: 1.e-3}, 35, 30))
	return g
}

func TestDeterminism(t *testing.T) {
	ctx := context.Background()
	g1, g2, g3 := pulseGrid(t), pulseGrid(t), pulseGrid(t)
	assert.Nil(t, g1.Iterate(ctx, 150, nil))
	assert.Nil(t, g2.Iterate(ctx, 150, nil))
	assert.Nil(t, g3.Iterate(ctx, 150, &FDTD.RunOptions{ParallelDegree: 7}))
	assert.Equal(t, g1.Ez.DataP, g2.Ez.DataP)
	assert.Equal(t, g1.Ez.DataP, g3.Ez.DataP)
	assert.Equal(t, g1.Hx.DataP, g3.Hx.DataP)
	assert.Equal(t, g1.Hy.DataP, g3.Hy.DataP)
	assert.True(t, g1.Energy() > 0)
}

func TestCavityEnergy(t *testing.T) {
	var (
		ctx = context.Background()
		g   = newVacuum(t, 41, 31, 0.6, types.PEC, 0)
	)
	for i := 0; i < g.SizeX; i++ {
		for j := 0; j < g.SizeY; j++ {
			x, y := (float64(i)-20)/4, (float64(j)-15)/4
			g.Ez.Set(i, j, math.Exp(-x*x-y*y))
		}
	}
	conserved := func() (w float64) {
		e, hx, hy := g.Ez.Copy(), g.Hx.Copy(), g.Hy.Copy()
		assert.Nil(t, g.Iterate(ctx, 1, nil))
		for n := range e.DataP {
			w += e.DataP[n] * e.DataP[n] / g.PermittivityInv.DataP[n]
			w += (hx.DataP[n]*g.Hx.DataP[n] + hy.DataP[n]*g.Hy.DataP[n]) / g.PermeabilityInv.DataP[n]
		}
		return
	}
	w0 := conserved()
	assert.Nil(t, g.Iterate(ctx, 300, nil))
	w1 := conserved()
	assert.InEpsilon(t, w0, w1, 1.e-9)
}

func TestCPMLAbsorption(t *testing.T) {
	ctx := context.Background()
	run := func(size float64, bc types.BorderCondition, cpml int) (ez []float64) {
		g := newVacuum(t, size, size, 0.5, bc, cpml)
		c := size / 2
		assert.Nil(t, g.AddSource(FDTD.ElectricCurrent,
			FDTD.GaussianPulse{Delay: 60 * g.Dt, Width: 15 * g.Dt, Peak: 1}, c, c))
		for n := 0; n < 300; n++ {
			assert.Nil(t, g.Iterate(ctx, 1, nil))
			ez = append(ez, g.Ez.At(int(c), int(c)))
		}
		return
	}
	var (
		reference = run(400, types.PEC, 0)
		absorbed  = run(80, types.PEC|types.CPML, 10)
		reflected = run(80, types.PEC, 0)
		peak      float64
		errCPML   float64
		errPEC    float64
	)
	for n := range reference {
		peak = math.Max(peak, math.Abs(reference[n]))
		errCPML = math.Max(errCPML, math.Abs(absorbed[n]-reference[n]))
		errPEC = math.Max(errPEC, math.Abs(reflected[n]-reference[n]))
	}
	assert.True(t, peak > 0)
	assert.True(t, errCPML < 1.e-3*peak, "cpml error %g peak %g", errCPML, peak)
	assert.True(t, errPEC > 5.e-2*peak, "pec error %g peak %g", errPEC, peak)
}

func TestApproximation(t *testing.T) {
	ctx := context.Background()
	{ // Test a zero fraction leaves the exact scheme untouched
		g1, g2 := pulseGrid(t), pulseGrid(t)
		assert.Nil(t, g1.Iterate(ctx, 80, nil))
		assert.Nil(t, g2.Iterate(ctx, 80, &FDTD.RunOptions{
			Approx: FDTD.Approximation{Mode: FDTD.ApproxRandomSkip}}))
		assert.Equal(t, g1.Ez.DataP, g2.Ez.DataP)
	}
	for _, mode := range []FDTD.ApproxMode{
		FDTD.ApproxRandomSkip, FDTD.ApproxInterpolate, FDTD.ApproxSortSkip} {
		// Test each mode perturbs the solution and is reproducible for a seed
		var (
			exact, a1, a2 = pulseGrid(t), pulseGrid(t), pulseGrid(t)
			opts          = &FDTD.RunOptions{
				Approx: FDTD.Approximation{Mode: mode, Fraction: 0.3, Seed: 7}}
		)
		assert.Nil(t, exact.Iterate(ctx, 80, nil))
		assert.Nil(t, a1.Iterate(ctx, 80, opts))
		assert.Nil(t, a2.Iterate(ctx, 80, opts))
		assert.Equal(t, a1.Ez.DataP, a2.Ez.DataP, mode.String())
		assert.NotEqual(t, exact.Ez.DataP, a1.Ez.DataP, mode.String())
	}
	{ // Test reverting every update leaves only the injected current
		g := newVacuum(t, 30, 30, 0.5, types.PEC, 0)
		pulse := FDTD.GaussianPulse{Delay: 0, Width: 1, Peak: 1}
		assert.Nil(t, g.AddSource(FDTD.ElectricCurrent, pulse, 15, 15))
		assert.Nil(t, g.Iterate(ctx, 3, &FDTD.RunOptions{
			Approx: FDTD.Approximation{Mode: FDTD.ApproxSortSkip, Fraction: 1}}))
		var expected float64
		for n := 0; n < 3; n++ {
			expected -= pulse.Value(float64(n) * g.Dt)
		}
		assert.InDelta(t, expected, g.Ez.At(15, 15), 1.e-15)
		assert.Equal(t, 0., g.Ez.At(15, 16))
		for _, h := range g.Hx.DataP {
			assert.Equal(t, 0., h)
		}
	}
}

func TestDump(t *testing.T) {
	g := newVacuum(t, 3, 2, 0.5, types.PEC, 0)
	g.Hx.Set(2, 1, 0.25)
	var buf bytes.Buffer
	assert.Nil(t, g.Dump(&buf, types.Hx))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, 6, len(lines))
	assert.Equal(t, "2.000000e+00 1.000000e+00 2.500000e-01", lines[5])
	assert.True(t, errors.Is(g.Dump(&buf, types.Ex), FDTD.ErrUnknownQuantity))
	g.Release()
	assert.Nil(t, g.Ez.DataP)
}
