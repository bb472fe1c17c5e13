package FDTD

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/notargets/gofdtd/utils"
)

// Stepper is implemented by each grid, Step performs one full leapfrog
// iteration at the current time without advancing it
type Stepper interface {
	Step(opts *RunOptions)
	TimeStep() float64
	Time() float64
	SetTime(t float64)
	Fields() [][]float64
}

// RunUntil steps while s.Time() < endTime
func RunUntil(ctx context.Context, s Stepper, endTime float64, opts *RunOptions) (err error) {
	if s.TimeStep() <= 0 && s.Time() < endTime {
		return fmt.Errorf("%w: t=%g, end %g", ErrNoTimeAdvance, s.Time(), endTime)
	}
	var (
		nIter = math.Ceil((endTime - s.Time()) / s.TimeStep())
		pr    = NewProgress(nIter, s.TimeStep(), endTime)
	)
	if opts != nil && opts.Verbose {
		fmt.Fprintf(opts.Writer(), "It will take %.0f iterations\n", math.Max(nIter, 0))
	}
	for iter := 0; s.Time() < endTime; iter++ {
		if err = ctx.Err(); err != nil {
			return
		}
		step(s, iter, pr, opts)
	}
	return
}

// RunIterations performs exactly n steps
func RunIterations(ctx context.Context, s Stepper, n int, opts *RunOptions) (err error) {
	var (
		endTime = s.Time() + float64(n)*s.TimeStep()
		pr      = NewProgress(float64(n), s.TimeStep(), endTime)
	)
	for iter := 0; iter < n; iter++ {
		if err = ctx.Err(); err != nil {
			return
		}
		step(s, iter, pr, opts)
	}
	return
}

func step(s Stepper, iter int, pr *Progress, opts *RunOptions) {
	t := s.Time()
	s.Step(opts)
	s.SetTime(t + s.TimeStep())
	if pr.Tick() {
		if opts != nil && opts.Verbose {
			pr.Report(opts.Writer(), t)
		}
		if !pr.diverged && utils.IsNan(s.Fields()) {
			pr.diverged = true
			fmt.Fprintf(opts.Writer(), "Field values diverged at t=%e\n", t)
		}
	}
	if opts != nil && opts.Observer != nil && opts.ObserveEvery > 0 &&
		(iter+1)%opts.ObserveEvery == 0 {
		opts.Observer(iter+1, s.Time())
	}
}

// Progress emits roughly ten evenly spaced reports over a run
type Progress struct {
	Interval         int
	PercentIncrement float64
	Dt, EndTime      float64
	count            int
	percentage       float64
	chunkStart       time.Time
	diverged         bool
}

func NewProgress(nIter, dt, endTime float64) (pr *Progress) {
	var interval = 1.
	if nIter >= 10 {
		for divide := 1.; ; divide++ {
			interval = math.Ceil(nIter / divide)
			if nIter/interval >= 10 {
				break
			}
		}
	}
	pr = &Progress{
		Interval:         int(interval),
		PercentIncrement: 100. / (nIter / interval),
		Dt:               dt,
		EndTime:          endTime,
		chunkStart:       time.Now(),
	}
	pr.percentage = pr.PercentIncrement
	return
}

// Tick counts one iteration and reports whether a checkpoint was reached
func (pr *Progress) Tick() bool {
	if pr.count == pr.Interval-1 {
		pr.count = 0
		return true
	}
	pr.count++
	return false
}

func (pr *Progress) Report(w io.Writer, t float64) {
	now := time.Now()
	fmt.Fprintf(w, "%.0f%% -- t=%e dt=%e tend=%e (%d iter in %.3fs)\n",
		pr.percentage, t, pr.Dt, pr.EndTime, pr.Interval, now.Sub(pr.chunkStart).Seconds())
	pr.percentage += pr.PercentIncrement
	pr.chunkStart = now
}
