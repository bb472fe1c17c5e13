package FDTD

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofdtd/types"
)

func TestConstants(t *testing.T) {
	// eps0 and mu0 are defined so that c = 1/sqrt(eps0*mu0)
	assert.InEpsilon(t, C0, 1./math.Sqrt(Eps0*Mu0), 1.e-12)
	assert.InEpsilon(t, 1.e-6, Spacing(20.e-6), 1.e-15)
	assert.InEpsilon(t, 0.5/C0, TimeStep(1, 0.5), 1.e-15)
	assert.InEpsilon(t, 1./math.Sqrt(3), StabilityLimit(3), 1.e-15)
}

func TestCPMLProfile(t *testing.T) {
	var (
		dx = 1.e-8
		dt = TimeStep(dx, 0.5)
	)
	{ // Test thickness guards
		cp, err := NewCPMLProfile(0, dx, dt)
		assert.Nil(t, err)
		assert.Nil(t, cp)
		_, err = NewCPMLProfile(1, dx, dt)
		assert.True(t, errors.Is(err, ErrBadCPMLThickness))
		_, err = NewCPMLProfile(-3, dx, dt)
		assert.True(t, errors.Is(err, ErrBadCPMLThickness))
	}
	{ // Test grading, index 0 is the outer wall
		cp, err := NewCPMLProfile(10, dx, dt)
		assert.Nil(t, err)
		assert.Equal(t, 10, len(cp.B))
		W := 9.
		// Outer wall: full sigma, no alpha
		assert.InEpsilon(t, math.Exp(-dt*cp.SigmaMax/Eps0), cp.B[0], 1.e-12)
		assert.InEpsilon(t, cp.B[0]-1., cp.C[0], 1.e-12)
		// Interior interface: no sigma so no coupling
		assert.Equal(t, 0., cp.C[9])
		assert.InEpsilon(t, math.Exp(-dt*cp.Alpha(0, W)/Eps0), cp.B[9], 1.e-12)
		for d := 1; d < 10; d++ {
			// Attenuation grows toward the wall
			assert.True(t, cp.B[d-1] <= cp.B[d])
			assert.True(t, cp.C[d] <= 0)
		}
		assert.Equal(t, 1., Kappa(3, W))
	}
	{ // Test magnetic layers sit half a cell deeper than electric ones
		cp, err := NewCPMLProfile(10, dx, dt)
		assert.Nil(t, err)
		W := 9.
		// Outermost magnetic layer is clamped to the wall value
		assert.Equal(t, cp.B[0], cp.BH[0])
		assert.Equal(t, cp.C[0], cp.CH[0])
		// Innermost magnetic layer is inside the slab so it couples
		assert.True(t, cp.CH[9] < 0)
		assert.InEpsilon(t, cp.b(0.5, W, dt), cp.BH[9], 1.e-12)
		for k := 1; k < 10; k++ {
			assert.True(t, cp.B[k-1] <= cp.BH[k])
			assert.True(t, cp.BH[k] <= cp.B[k])
		}
	}
	{ // Test axis size guard
		var (
			cpml = types.PEC | types.CPML
		)
		assert.Nil(t, CheckCPMLAxis("x", 41, 20, cpml, cpml))
		assert.True(t, errors.Is(CheckCPMLAxis("x", 40, 20, cpml, types.PEC), ErrGridTooSmall))
		assert.True(t, errors.Is(CheckCPMLAxis("x", 40, 20, types.PMC, cpml), ErrGridTooSmall))
		assert.Nil(t, CheckCPMLAxis("x", 3, 0, cpml, cpml))
		// Axes without CPML are not constrained
		assert.Nil(t, CheckCPMLAxis("y", 3, 20, types.PEC, types.PMC))
	}
}

func TestGaussianPulse(t *testing.T) {
	gp := GaussianPulse{Delay: 5, Width: 2, Peak: 3}
	assert.Equal(t, 3., gp.Value(5))
	assert.InEpsilon(t, 3*math.Exp(-1), gp.Value(7), 1.e-15)
	assert.Equal(t, gp.Value(3), gp.Value(7))
	var sl SourceList[int]
	sl.Add(ElectricCurrent, gp, 3)
	sl.Add(MagneticCurrent, gp, 4)
	sl.Add(ElectricCurrent, gp, 5)
	assert.Equal(t, 3, sl.Len())
	assert.Equal(t, []int{3, 5}, []int{sl.J[0].Location, sl.J[1].Location})
	assert.Equal(t, "M", MagneticCurrent.String())
}

func TestGeometry(t *testing.T) {
	assert.Equal(t, 38, CellsCeil(37.5, 1))
	assert.Equal(t, 37, CellsFloor(37.5, 1))
	assert.Nil(t, CheckIndex("x", 0, 3))
	assert.True(t, errors.Is(CheckIndex("x", 3, 3), ErrOutOfBounds))
	assert.True(t, errors.Is(CheckIndex("y", -1, 3), ErrOutOfBounds))
	var buf bytes.Buffer
	assert.True(t, WarnStability(&buf, 0.7, 2))
	assert.Equal(t, 0, buf.Len())
	assert.False(t, WarnStability(&buf, 0.8, 2))
	assert.Contains(t, buf.String(), "0.70711")
}

func TestProgress(t *testing.T) {
	{ // Test interval selection
		assert.Equal(t, 1, NewProgress(7, 1, 7).Interval)
		assert.Equal(t, 10, NewProgress(100, 1, 100).Interval)
		assert.Equal(t, 10, NewProgress(105, 1, 105).Interval)
		assert.Equal(t, 40, NewProgress(400, 1, 400).Interval)
	}
	{ // Test reports fire every interval
		pr := NewProgress(100, 1, 100)
		var count int
		for i := 0; i < 100; i++ {
			if pr.Tick() {
				count++
			}
		}
		assert.Equal(t, 10, count)
	}
}

type countingStepper struct {
	t, dt float64
	steps int
	data  []float64
}

func (cs *countingStepper) Step(opts *RunOptions) { cs.steps++ }
func (cs *countingStepper) TimeStep() float64     { return cs.dt }
func (cs *countingStepper) Time() float64         { return cs.t }
func (cs *countingStepper) SetTime(t float64)     { cs.t = t }
func (cs *countingStepper) Fields() [][]float64   { return [][]float64{cs.data} }

func TestDriver(t *testing.T) {
	ctx := context.Background()
	{ // Test run to time, including the case where end is not a multiple of dt
		cs := &countingStepper{dt: 0.25}
		assert.Nil(t, RunUntil(ctx, cs, 2.1, nil))
		assert.Equal(t, 9, cs.steps)
		assert.Nil(t, RunUntil(ctx, cs, 1, nil))
		assert.Equal(t, 9, cs.steps)
	}
	{ // Test exact iteration counts and observer cadence
		var (
			cs       = &countingStepper{dt: 1}
			observed []int
			buf      bytes.Buffer
		)
		opts := &RunOptions{
			Verbose: true, Out: &buf, ObserveEvery: 5,
			Observer: func(iter int, tm float64) { observed = append(observed, iter) },
		}
		assert.Nil(t, RunIterations(ctx, cs, 20, opts))
		assert.Equal(t, 20, cs.steps)
		assert.Equal(t, 20., cs.Time())
		assert.Equal(t, []int{5, 10, 15, 20}, observed)
		assert.Equal(t, 10, strings.Count(buf.String(), "iter in"))
		assert.True(t, strings.HasPrefix(buf.String(), "10% -- t="))
	}
	{ // Test divergence is reported once
		var (
			cs  = &countingStepper{dt: 1, data: []float64{math.NaN()}}
			buf bytes.Buffer
		)
		assert.Nil(t, RunIterations(ctx, cs, 20, &RunOptions{Out: &buf}))
		assert.Equal(t, 1, strings.Count(buf.String(), "diverged"))
	}
	{ // Test a zero time step can iterate but not run to a time
		cs := &countingStepper{}
		assert.True(t, errors.Is(RunUntil(ctx, cs, 1, nil), ErrNoTimeAdvance))
		assert.Nil(t, RunIterations(ctx, cs, 3, nil))
		assert.Equal(t, 3, cs.steps)
		assert.Equal(t, 0., cs.Time())
	}
	{ // Test cancellation between iterations
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		cs := &countingStepper{dt: 1}
		assert.True(t, errors.Is(RunIterations(cctx, cs, 5, nil), context.Canceled))
		assert.Equal(t, 0, cs.steps)
	}
	{ // Test approximation mode parsing
		am, err := ParseApproxMode("sort-skip")
		assert.Nil(t, err)
		assert.Equal(t, ApproxSortSkip, am)
		am, err = ParseApproxMode("")
		assert.Nil(t, err)
		assert.False(t, Approximation{Mode: am, Fraction: 0.5}.Enabled())
		_, err = ParseApproxMode("magic")
		assert.NotNil(t, err)
	}
}
