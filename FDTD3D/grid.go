package FDTD3D

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

// Grid is a 3D Yee grid indexed [x][y][z] with z fastest.
// Bottom/top bound x, left/right bound y, front/back bound z.
type Grid struct {
	Dx, Dy, Dz, Dt, Sc  float64
	SizeX, SizeY, SizeZ int
	Ex, Ey, Ez          utils.Array3D
	Hx, Hy, Hz          utils.Array3D
	PermittivityInv     utils.Array3D
	PermeabilityInv     utils.Array3D
	Borders             [types.NumFaces3D]types.BorderCondition
	CPML                *FDTD.CPMLProfile
	CPMLThickness       int
	Sources             FDTD.SourceList[[3]int]
	cpmlE, cpmlH        []*cpmlTerm
	time                float64
	pm                  *utils.PartitionMap
}

// NewGrid allocates a zeroed grid of ceil(size/dx) cells per axis with dx = dy = dz = wavelength/20
func NewGrid(domainSize [3]float64, Sc, smallestWavelength float64,
	borders [types.NumFaces3D]types.BorderCondition, cpmlThickness int) (g *Grid, err error) {
	var (
		dx = FDTD.Spacing(smallestWavelength)
		dt = FDTD.TimeStep(dx, Sc)
	)
	g = &Grid{
		Dx:            dx,
		Dy:            dx,
		Dz:            dx,
		Dt:            dt,
		Sc:            Sc,
		SizeX:         FDTD.CellsCeil(domainSize[0], dx),
		SizeY:         FDTD.CellsCeil(domainSize[1], dx),
		SizeZ:         FDTD.CellsCeil(domainSize[2], dx),
		Borders:       borders,
		CPMLThickness: cpmlThickness,
	}
	if g.SizeX < 2 || g.SizeY < 2 || g.SizeZ < 2 {
		err = fmt.Errorf("%w: %dx%dx%d cells", FDTD.ErrGridTooSmall, g.SizeX, g.SizeY, g.SizeZ)
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Dt %e Dx %e Dy %e Dz %e (%dx%dx%d)\n",
		dt, g.Dx, g.Dy, g.Dz, g.SizeX, g.SizeY, g.SizeZ)
	FDTD.WarnStability(os.Stderr, Sc, 3)
	if g.CPML, err = FDTD.NewCPMLProfile(cpmlThickness, dx, dt); err != nil {
		return nil, err
	}
	var axisBorders [3][2]types.BorderCondition
	for f, fi := range faces {
		if fi.high {
			axisBorders[fi.axis][1] = borders[f]
		} else {
			axisBorders[fi.axis][0] = borders[f]
		}
	}
	for n, axis := range []string{"x", "y", "z"} {
		if err = FDTD.CheckCPMLAxis(axis, g.Shape()[n], cpmlThickness,
			axisBorders[n][0], axisBorders[n][1]); err != nil {
			return nil, err
		}
	}
	nx, ny, nz := g.SizeX, g.SizeY, g.SizeZ
	for _, a := range []*utils.Array3D{&g.Ex, &g.Ey, &g.Ez, &g.Hx, &g.Hy, &g.Hz,
		&g.PermittivityInv, &g.PermeabilityInv} {
		*a = utils.NewArray3D(nx, ny, nz)
	}
	if g.CPML != nil {
		g.newCPMLTerms()
	}
	return
}

// MediumFunc returns a relative material value at (x, y, z)
type MediumFunc func(x, y, z float64) float64

func (g *Grid) InitMedium(permeability, permittivity MediumFunc) {
	for i := 0; i < g.SizeX; i++ {
		x := float64(i) * g.Dx
		for j := 0; j < g.SizeY; j++ {
			y := float64(j) * g.Dy
			for k := 0; k < g.SizeZ; k++ {
				z := float64(k) * g.Dz
				g.PermeabilityInv.Set(i, j, k, 1./(permeability(x, y, z)*FDTD.Mu0))
				g.PermittivityInv.Set(i, j, k, 1./(permittivity(x, y, z)*FDTD.Eps0))
			}
		}
	}
}

// AddSource snaps each coordinate to ceil(pos/d)
func (g *Grid) AddSource(kind FDTD.SourceKind, signal FDTD.Source, x, y, z float64) (err error) {
	var (
		loc = [3]int{FDTD.CellsCeil(x, g.Dx), FDTD.CellsCeil(y, g.Dy), FDTD.CellsCeil(z, g.Dz)}
	)
	for n, axis := range []string{"x", "y", "z"} {
		if err = FDTD.CheckIndex(axis, loc[n], g.Shape()[n]); err != nil {
			return
		}
	}
	g.Sources.Add(kind, signal, loc)
	return
}

func (g *Grid) Dimensions() int    { return 3 }
func (g *Grid) Shape() []int       { return []int{g.SizeX, g.SizeY, g.SizeZ} }
func (g *Grid) Spacing() []float64 { return []float64{g.Dx, g.Dy, g.Dz} }
func (g *Grid) TimeStep() float64  { return g.Dt }
func (g *Grid) Time() float64      { return g.time }
func (g *Grid) SetTime(t float64)  { g.time = t }

func (g *Grid) Fields() [][]float64 {
	return [][]float64{g.Ex.DataP, g.Ey.DataP, g.Ez.DataP, g.Hx.DataP, g.Hy.DataP, g.Hz.DataP}
}

func (g *Grid) Run(ctx context.Context, endTime float64, opts *FDTD.RunOptions) error {
	return FDTD.RunUntil(ctx, g, endTime, opts)
}

func (g *Grid) Iterate(ctx context.Context, n int, opts *FDTD.RunOptions) error {
	return FDTD.RunIterations(ctx, g, n, opts)
}

func (g *Grid) array(q types.Quantity) (a utils.Array3D, ok bool) {
	ok = true
	switch q {
	case types.Ex:
		a = g.Ex
	case types.Ey:
		a = g.Ey
	case types.Ez:
		a = g.Ez
	case types.Hx:
		a = g.Hx
	case types.Hy:
		a = g.Hy
	case types.Hz:
		a = g.Hz
	case types.PermittivityInv:
		a = g.PermittivityInv
	case types.PermeabilityInv:
		a = g.PermeabilityInv
	default:
		ok = false
	}
	return
}

func (g *Grid) Field(q types.Quantity) (f FDTD.Field, err error) {
	a, ok := g.array(q)
	if !ok {
		err = fmt.Errorf("%w: %s in 3D", FDTD.ErrUnknownQuantity, q)
		return
	}
	f = FDTD.Field{Quantity: q, Shape: g.Shape(), Spacing: g.Spacing(), Data: a.DataP}
	return
}

func (g *Grid) Dump(w io.Writer, q types.Quantity) (err error) {
	var f FDTD.Field
	if f, err = g.Field(q); err != nil {
		return
	}
	return writefiles.WriteASCII(w, f)
}

func (g *Grid) Energy() (energy float64) {
	for n := range g.Ex.DataP {
		if epsInv := g.PermittivityInv.DataP[n]; epsInv != 0 {
			e2 := g.Ex.DataP[n]*g.Ex.DataP[n] + g.Ey.DataP[n]*g.Ey.DataP[n] +
				g.Ez.DataP[n]*g.Ez.DataP[n]
			energy += e2 / epsInv
		}
		if muInv := g.PermeabilityInv.DataP[n]; muInv != 0 {
			h2 := g.Hx.DataP[n]*g.Hx.DataP[n] + g.Hy.DataP[n]*g.Hy.DataP[n] +
				g.Hz.DataP[n]*g.Hz.DataP[n]
			energy += h2 / muInv
		}
	}
	return 0.5 * energy * g.Dx * g.Dy * g.Dz
}

func (g *Grid) Release() {
	var empty utils.Array3D
	g.Ex, g.Ey, g.Ez, g.Hx, g.Hy, g.Hz = empty, empty, empty, empty, empty, empty
	g.PermittivityInv, g.PermeabilityInv = empty, empty
	g.cpmlE, g.cpmlH = nil, nil
	g.Sources = FDTD.SourceList[[3]int]{}
	g.pm = nil
}

var _ FDTD.Solver = (*Grid)(nil)
