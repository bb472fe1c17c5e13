package writefiles

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/gofdtd/FDTD"
)

// fieldGrid exposes a 2D slab of a field as a plotter.GridXYZ, columns run along x
type fieldGrid struct {
	f      FDTD.Field
	nx, ny int
	offset int // start of the slab
	stride int // distance between consecutive x entries
	step   int // distance between consecutive y entries
}

func newFieldGrid(f FDTD.Field) (fg fieldGrid, err error) {
	switch len(f.Shape) {
	case 2:
		fg = fieldGrid{f: f, nx: f.Shape[0], ny: f.Shape[1], stride: f.Shape[1], step: 1}
	case 3:
		// Mid-depth z slice
		nz := f.Shape[2]
		fg = fieldGrid{f: f, nx: f.Shape[0], ny: f.Shape[1],
			offset: nz / 2, stride: f.Shape[1] * nz, step: nz}
	default:
		err = fmt.Errorf("no heat map for a %dD field", len(f.Shape))
	}
	return
}

func (fg fieldGrid) Dims() (c, r int)   { return fg.nx, fg.ny }
func (fg fieldGrid) Z(c, r int) float64 { return fg.f.Data[fg.offset+c*fg.stride+r*fg.step] }
func (fg fieldGrid) X(c int) float64    { return float64(c) * fg.f.Spacing[0] }
func (fg fieldGrid) Y(r int) float64    { return float64(r) * fg.f.Spacing[1] }

// WritePNG renders a line plot for 1D fields and a heat map otherwise
func WritePNG(fileName string, f FDTD.Field, title string) (err error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	if len(f.Shape) == 1 {
		pts := make(plotter.XYs, len(f.Data))
		for i, val := range f.Data {
			pts[i].X = float64(i) * f.Spacing[0]
			pts[i].Y = val
		}
		var line *plotter.Line
		if line, err = plotter.NewLine(pts); err != nil {
			return
		}
		p.Y.Label.Text = f.Quantity.Description()
		p.Add(line)
	} else {
		var fg fieldGrid
		if fg, err = newFieldGrid(f); err != nil {
			return
		}
		hm := plotter.NewHeatMap(fg, moreland.Kindlmann().Palette(255))
		if hm.Max == hm.Min {
			hm.Max = hm.Min + 1
		}
		p.Y.Label.Text = "y (m)"
		p.Add(hm)
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, fileName)
}
