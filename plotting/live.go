package plotting

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
)

// Profiles are drawn normalized, x in [0,1] and values in [-1,1]
const (
	chartWidth, chartHeight = 1024, 1024
	chartMargin             = 1.1
)

var frameColors = []ColorName{Red, Green, Blue, White}

// CenterLine returns the positions and values along x through the middle of
// the remaining axes
func CenterLine(f FDTD.Field) (x, v []float64) {
	if len(f.Shape) == 0 {
		return
	}
	var (
		nx  = f.Shape[0]
		mid = make([]int, len(f.Shape))
	)
	for n := 1; n < len(f.Shape); n++ {
		mid[n] = f.Shape[n] / 2
	}
	offset, err := utils.FlatIndex(f.Shape, mid...)
	if err != nil {
		return
	}
	stride := 1
	for _, n := range f.Shape[1:] {
		stride *= n
	}
	x, v = make([]float64, nx), make([]float64, nx)
	for i := 0; i < nx; i++ {
		x[i] = float64(i) * f.Spacing[0]
		v[i] = f.Data[offset+i*stride]
	}
	return
}

// Normalize scales x onto [0,1] and v by its largest magnitude
func Normalize(x, v []float64) (xn, vn []float64, scale float64) {
	xn, vn = make([]float64, len(x)), make([]float64, len(v))
	var xMax float64
	for i := range x {
		if x[i] > xMax {
			xMax = x[i]
		}
		if a := math.Abs(v[i]); a > scale {
			scale = a
		}
	}
	for i := range x {
		if xMax > 0 {
			xn[i] = x[i] / xMax
		}
		if scale > 0 {
			vn[i] = v[i] / scale
		}
	}
	return
}

// LiveChart redraws one quantity of a running solver
type LiveChart struct {
	Quantity types.Quantity
	Delay    time.Duration
	solver   FDTD.Solver
	chart    *LineChart
	frames   int
}

func NewLiveChart(solver FDTD.Solver, q types.Quantity, delay time.Duration) *LiveChart {
	return &LiveChart{Quantity: q, Delay: delay, solver: solver}
}

// Observe matches FDTD.RunOptions.Observer
func (lc *LiveChart) Observe(iteration int, t float64) {
	f, err := lc.solver.Field(lc.Quantity)
	if err != nil {
		fmt.Printf(" Plot>%s unavailable: %s\n", lc.Quantity, err)
		return
	}
	if lc.chart == nil {
		lc.chart = NewLineChart(chartWidth, chartHeight, 0, 1, -chartMargin, chartMargin)
	}
	x, v := CenterLine(f)
	xn, vn, scale := Normalize(x, v)
	fMin, fMax := f.Range()
	fmt.Printf(" Plot>%s iter %d t=%e range [%e,%e] line scale %e\n", lc.Quantity, iteration, t, fMin, fMax, scale)
	lc.chart.Plot(lc.Delay, xn, vn, frameColors[lc.frames%len(frameColors)])
	lc.frames++
}
