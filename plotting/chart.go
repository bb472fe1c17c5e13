package plotting

import (
	"image/color"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
)

type ColorName uint8

const (
	White ColorName = iota
	Blue
	Red
	Green
	Black
)

func GetColor(name ColorName) (c color.RGBA) {
	switch name {
	case White:
		c = utils2.WHITE
	case Blue:
		c = utils2.BLUE
	case Red:
		c = utils2.RED
	case Green:
		c = utils2.GREEN
	case Black:
		c = utils2.BLACK
	}
	return
}

// Segments converts a polyline into the x1,y1,x2,y2 segment list drawn by AddLine
func Segments(x, f []float64) (line []float32) {
	if len(x) < 2 {
		return
	}
	line = make([]float32, 0, 4*(len(x)-1))
	for i := 0; i < len(x)-1; i++ {
		line = append(line,
			float32(x[i]), float32(f[i]),
			float32(x[i+1]), float32(f[i+1]))
	}
	return
}

type LineChart struct {
	Chart *chart2d.Chart2D
}

func NewLineChart(width, height int, xmin, xmax, fmin, fmax float64) (lc *LineChart) {
	lc = &LineChart{
		Chart: chart2d.NewChart2D(float32(xmin), float32(xmax), float32(fmin), float32(fmax),
			width, height, utils2.WHITE, utils2.BLACK),
	}
	return
}

func (lc *LineChart) Plot(graphDelay time.Duration, x, f []float64, lineColor ColorName) {
	lc.Chart.AddLine(Segments(x, f), GetColor(lineColor))
	time.Sleep(graphDelay)
	return
}
