package FDTD

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/gofdtd/types"
)

// Solver is the surface shared by the 1D, 2D and 3D grids
type Solver interface {
	Dimensions() int
	// Run advances while Time() < endTime
	Run(ctx context.Context, endTime float64, opts *RunOptions) error
	// Iterate advances exactly n iterations
	Iterate(ctx context.Context, n int, opts *RunOptions) error
	Field(q types.Quantity) (Field, error)
	Dump(w io.Writer, q types.Quantity) error
	Shape() []int
	Spacing() []float64
	TimeStep() float64
	Time() float64
	Energy() float64
	Release()
}

type ApproxMode uint8

const (
	ApproxNone ApproxMode = iota
	ApproxRandomSkip
	ApproxInterpolate
	ApproxSortSkip
)

var approxModeNames = []string{"none", "random-skip", "interpolate", "sort-skip"}

func (am ApproxMode) String() string {
	if int(am) >= len(approxModeNames) {
		return fmt.Sprintf("approx(%d)", am)
	}
	return approxModeNames[am]
}

func ParseApproxMode(s string) (am ApproxMode, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return
	}
	for n, name := range approxModeNames {
		if name == s {
			return ApproxMode(n), nil
		}
	}
	err = fmt.Errorf("unknown approximation mode %q, valid modes are %v", s, approxModeNames)
	return
}

// Approximation trades accuracy for work in the 2D interior, it is off by default
type Approximation struct {
	Mode     ApproxMode
	Fraction float64 // Share of interior cells skipped, interpolated or reverted
	Seed     int64
}

func (ap Approximation) Enabled() bool {
	return ap.Mode != ApproxNone && ap.Fraction > 0
}

type RunOptions struct {
	Verbose        bool
	Out            io.Writer // Progress destination, stdout if nil
	ParallelDegree int       // Tiles per half step kernel, 1 runs serially
	Approx         Approximation
	// Observer is called after every ObserveEvery completed iterations
	Observer     func(iteration int, time float64)
	ObserveEvery int
}

func (ro *RunOptions) Writer() io.Writer {
	if ro == nil || ro.Out == nil {
		return os.Stdout
	}
	return ro.Out
}

func (ro *RunOptions) Degree() int {
	if ro == nil || ro.ParallelDegree < 1 {
		return 1
	}
	return ro.ParallelDegree
}
