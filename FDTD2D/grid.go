package FDTD2D

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
	"github.com/notargets/gofdtd/writefiles"
)

// Grid is a 2D TMz Yee grid, x is the first (slow) index.
// South/north are the low/high x faces, west/east the low/high y faces.
type Grid struct {
	Dx, Dy, Dt, Sc  float64
	SizeX, SizeY    int
	Ez, Hx, Hy      utils.Array2D
	PermittivityInv utils.Array2D
	PermeabilityInv utils.Array2D
	Borders         [types.NumFaces2D]types.BorderCondition
	CPML            *FDTD.CPMLProfile
	CPMLThickness   int
	Sources         FDTD.SourceList[[2]int]
	psiE, psiH      [types.NumFaces2D]utils.Array2D // x faces are T x Ny, y faces Nx x T
	time            float64
	pm              *utils.PartitionMap
	rng             *rand.Rand
	deviations      []deviation
}

// NewGrid allocates a zeroed grid of floor(size/dx) cells per axis with dx = dy = wavelength/20
func NewGrid(domainSize [2]float64, Sc, smallestWavelength float64,
	borders [types.NumFaces2D]types.BorderCondition, cpmlThickness int) (g *Grid, err error) {
	var (
		dx = FDTD.Spacing(smallestWavelength)
		dt = FDTD.TimeStep(dx, Sc)
	)
	g = &Grid{
		Dx:            dx,
		Dy:            dx,
		Dt:            dt,
		Sc:            Sc,
		SizeX:         FDTD.CellsFloor(domainSize[0], dx),
		SizeY:         FDTD.CellsFloor(domainSize[1], dx),
		Borders:       borders,
		CPMLThickness: cpmlThickness,
	}
	if g.SizeX < 2 || g.SizeY < 2 {
		err = fmt.Errorf("%w: %dx%d cells", FDTD.ErrGridTooSmall, g.SizeX, g.SizeY)
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Dt %e Dx %e Dy %e (%dx%d)\n", dt, g.Dx, g.Dy, g.SizeX, g.SizeY)
	FDTD.WarnStability(os.Stderr, Sc, 2)
	if g.CPML, err = FDTD.NewCPMLProfile(cpmlThickness, dx, dt); err != nil {
		return nil, err
	}
	if err = FDTD.CheckCPMLAxis("x", g.SizeX, cpmlThickness,
		borders[types.South], borders[types.North]); err != nil {
		return nil, err
	}
	if err = FDTD.CheckCPMLAxis("y", g.SizeY, cpmlThickness,
		borders[types.West], borders[types.East]); err != nil {
		return nil, err
	}
	nx, ny := g.SizeX, g.SizeY
	g.Ez, g.Hx, g.Hy = utils.NewArray2D(nx, ny), utils.NewArray2D(nx, ny), utils.NewArray2D(nx, ny)
	g.PermittivityInv, g.PermeabilityInv = utils.NewArray2D(nx, ny), utils.NewArray2D(nx, ny)
	if g.CPML != nil {
		for f := types.Face(0); f < types.NumFaces2D; f++ {
			if !g.Borders[f].Has(types.CPML) {
				continue
			}
			switch f {
			case types.South, types.North:
				g.psiE[f] = utils.NewArray2D(cpmlThickness, ny)
				g.psiH[f] = utils.NewArray2D(cpmlThickness, ny)
			default:
				g.psiE[f] = utils.NewArray2D(nx, cpmlThickness)
				g.psiH[f] = utils.NewArray2D(nx, cpmlThickness)
			}
		}
	}
	return
}

// MediumFunc returns a relative material value at (x, y)
type MediumFunc func(x, y float64) float64

func (g *Grid) InitMedium(permeability, permittivity MediumFunc) {
	for i := 0; i < g.SizeX; i++ {
		x := float64(i) * g.Dx
		for j := 0; j < g.SizeY; j++ {
			y := float64(j) * g.Dy
			g.PermeabilityInv.Set(i, j, 1./(permeability(x, y)*FDTD.Mu0))
			g.PermittivityInv.Set(i, j, 1./(permittivity(x, y)*FDTD.Eps0))
		}
	}
}

// AddSource snaps each coordinate to floor(pos/d)
func (g *Grid) AddSource(kind FDTD.SourceKind, signal FDTD.Source, x, y float64) (err error) {
	i, j := FDTD.CellsFloor(x, g.Dx), FDTD.CellsFloor(y, g.Dy)
	if err = FDTD.CheckIndex("x", i, g.SizeX); err != nil {
		return
	}
	if err = FDTD.CheckIndex("y", j, g.SizeY); err != nil {
		return
	}
	g.Sources.Add(kind, signal, [2]int{i, j})
	return
}

func (g *Grid) Dimensions() int    { return 2 }
func (g *Grid) Shape() []int       { return []int{g.SizeX, g.SizeY} }
func (g *Grid) Spacing() []float64 { return []float64{g.Dx, g.Dy} }
func (g *Grid) TimeStep() float64  { return g.Dt }
func (g *Grid) Time() float64      { return g.time }
func (g *Grid) SetTime(t float64)  { g.time = t }

func (g *Grid) Fields() [][]float64 {
	return [][]float64{g.Ez.DataP, g.Hx.DataP, g.Hy.DataP}
}

func (g *Grid) Run(ctx context.Context, endTime float64, opts *FDTD.RunOptions) error {
	return FDTD.RunUntil(ctx, g, endTime, opts)
}

func (g *Grid) Iterate(ctx context.Context, n int, opts *FDTD.RunOptions) error {
	return FDTD.RunIterations(ctx, g, n, opts)
}

func (g *Grid) Field(q types.Quantity) (f FDTD.Field, err error) {
	f = FDTD.Field{Quantity: q, Shape: g.Shape(), Spacing: g.Spacing()}
	switch q {
	case types.Ez:
		f.Data = g.Ez.DataP
	case types.Hx:
		f.Data = g.Hx.DataP
	case types.Hy:
		f.Data = g.Hy.DataP
	case types.PermittivityInv:
		f.Data = g.PermittivityInv.DataP
	case types.PermeabilityInv:
		f.Data = g.PermeabilityInv.DataP
	default:
		err = fmt.Errorf("%w: %s in 2D", FDTD.ErrUnknownQuantity, q)
	}
	return
}

func (g *Grid) Dump(w io.Writer, q types.Quantity) (err error) {
	var f FDTD.Field
	if f, err = g.Field(q); err != nil {
		return
	}
	return writefiles.WriteASCII(w, f)
}

// Energy is the electromagnetic energy per unit length along z
func (g *Grid) Energy() (energy float64) {
	for n := range g.Ez.DataP {
		if epsInv := g.PermittivityInv.DataP[n]; epsInv != 0 {
			energy += g.Ez.DataP[n] * g.Ez.DataP[n] / epsInv
		}
		if muInv := g.PermeabilityInv.DataP[n]; muInv != 0 {
			energy += (g.Hx.DataP[n]*g.Hx.DataP[n] + g.Hy.DataP[n]*g.Hy.DataP[n]) / muInv
		}
	}
	return 0.5 * energy * g.Dx * g.Dy
}

func (g *Grid) Release() {
	var empty utils.Array2D
	g.Ez, g.Hx, g.Hy = empty, empty, empty
	g.PermittivityInv, g.PermeabilityInv = empty, empty
	g.psiE = [types.NumFaces2D]utils.Array2D{}
	g.psiH = [types.NumFaces2D]utils.Array2D{}
	g.Sources = FDTD.SourceList[[2]int]{}
	g.pm, g.rng, g.deviations = nil, nil, nil
}

var _ FDTD.Solver = (*Grid)(nil)
