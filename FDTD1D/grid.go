package FDTD1D

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
	"github.com/notargets/gofdtd/writefiles"
)

// Grid holds a 1D Yee grid with Ez on integer nodes and Hy on half nodes
type Grid struct {
	Dx, Dt, Sc      float64
	SizeX           int
	Ez, Hy          []float64
	PermittivityInv []float64 // 1/(eps_r*eps0) per cell
	PermeabilityInv []float64 // 1/(mu_r*mu0) per cell
	Borders         [types.NumFaces1D]types.BorderCondition
	CPML            *FDTD.CPMLProfile
	Sources         FDTD.SourceList[int]
	psiEz, psiHy    [types.NumFaces1D][]float64
	time            float64
	pm              *utils.PartitionMap
}

// NewGrid allocates a zeroed grid of ceil(domainSize/dx) cells with dx = wavelength/20
func NewGrid(domainSize, Sc, smallestWavelength float64,
	borders [types.NumFaces1D]types.BorderCondition, cpmlThickness int) (g *Grid, err error) {
	var (
		dx = FDTD.Spacing(smallestWavelength)
		dt = FDTD.TimeStep(dx, Sc)
	)
	g = &Grid{
		Dx:      dx,
		Dt:      dt,
		Sc:      Sc,
		SizeX:   FDTD.CellsCeil(domainSize, dx),
		Borders: borders,
	}
	if g.SizeX < 2 {
		err = fmt.Errorf("%w: %d cells along x", FDTD.ErrGridTooSmall, g.SizeX)
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Dt %e Dx %e (%d)\n", dt, dx, g.SizeX)
	FDTD.WarnStability(os.Stderr, Sc, 1)
	if g.CPML, err = FDTD.NewCPMLProfile(cpmlThickness, dx, dt); err != nil {
		return nil, err
	}
	if err = FDTD.CheckCPMLAxis("x", g.SizeX, cpmlThickness,
		borders[types.Left1D], borders[types.Right1D]); err != nil {
		return nil, err
	}
	g.Ez = make([]float64, g.SizeX)
	g.Hy = make([]float64, g.SizeX)
	g.PermittivityInv = make([]float64, g.SizeX)
	g.PermeabilityInv = make([]float64, g.SizeX)
	if g.CPML != nil {
		for f := types.Face(0); f < types.NumFaces1D; f++ {
			if g.Borders[f].Has(types.CPML) {
				g.psiEz[f] = make([]float64, cpmlThickness)
				g.psiHy[f] = make([]float64, cpmlThickness)
			}
		}
	}
	return
}

// MediumFunc returns a relative material value at position x
type MediumFunc func(x float64) float64

// InitMedium fills the inverse material arrays from relative permeability and permittivity
func (g *Grid) InitMedium(permeability, permittivity MediumFunc) {
	for i := 0; i < g.SizeX; i++ {
		x := float64(i) * g.Dx
		g.PermeabilityInv[i] = 1. / (permeability(x) * FDTD.Mu0)
		g.PermittivityInv[i] = 1. / (permittivity(x) * FDTD.Eps0)
	}
}

// AddSource snaps pos to ceil(pos/dx)
func (g *Grid) AddSource(kind FDTD.SourceKind, signal FDTD.Source, pos float64) (err error) {
	i := FDTD.CellsCeil(pos, g.Dx)
	if err = FDTD.CheckIndex("x", i, g.SizeX); err != nil {
		return
	}
	g.Sources.Add(kind, signal, i)
	return
}

func (g *Grid) Dimensions() int     { return 1 }
func (g *Grid) Shape() []int        { return []int{g.SizeX} }
func (g *Grid) Spacing() []float64  { return []float64{g.Dx} }
func (g *Grid) TimeStep() float64   { return g.Dt }
func (g *Grid) Time() float64       { return g.time }
func (g *Grid) SetTime(t float64)   { g.time = t }
func (g *Grid) Fields() [][]float64 { return [][]float64{g.Ez, g.Hy} }

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
		f.Data = g.Ez
	case types.Hy:
		f.Data = g.Hy
	case types.PermittivityInv:
		f.Data = g.PermittivityInv
	case types.PermeabilityInv:
		f.Data = g.PermeabilityInv
	default:
		err = fmt.Errorf("%w: %s in 1D", FDTD.ErrUnknownQuantity, q)
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

// Energy is the electromagnetic energy per unit area, cells with no material are skipped
func (g *Grid) Energy() (energy float64) {
	for i := 0; i < g.SizeX; i++ {
		if g.PermittivityInv[i] != 0 {
			energy += g.Ez[i] * g.Ez[i] / g.PermittivityInv[i]
		}
		if g.PermeabilityInv[i] != 0 {
			energy += g.Hy[i] * g.Hy[i] / g.PermeabilityInv[i]
		}
	}
	return 0.5 * energy * g.Dx
}

// Release drops all arrays, the grid can not be stepped afterwards
func (g *Grid) Release() {
	g.Ez, g.Hy, g.PermittivityInv, g.PermeabilityInv = nil, nil, nil, nil
	g.psiEz = [types.NumFaces1D][]float64{}
	g.psiHy = [types.NumFaces1D][]float64{}
	g.Sources = FDTD.SourceList[int]{}
	g.pm = nil
}

var _ FDTD.Solver = (*Grid)(nil)
