package Setups

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/FDTD1D"
	"github.com/notargets/gofdtd/FDTD2D"
	"github.com/notargets/gofdtd/FDTD3D"
	"github.com/notargets/gofdtd/types"
)

var ErrUnknownSetup = errors.New("setup id does not map to any available setup")

// Relative material values shared by the scenarios
const (
	AirPermittivity   = 1.00058986
	AirPermeability   = 1.00000037
	WaterPermittivity = 78.4
	WaterPermeability = 0.999992
	GlassPermittivity = 1.77
	HighPermittivity  = 1e9
)

// Params carries the run parameters a scenario is built from
type Params struct {
	DomainSize         [3]float64
	Courant            float64
	SmallestWavelength float64
	CPMLThickness      int
	// Borders overrides the scenario faces, e.g. "east=pec|cpml;west=pmc"
	Borders string
}

type Setup struct {
	Dimension, ID int
	Name          string
	build         func(p Params) (FDTD.Solver, error)
}

var catalog = []Setup{
	{1, 0, "Half air half water, left-to-right gaussian", halfAirHalfWater1D},
	{2, 0, "West air east water, west-to-east gaussian", westAirEastWater2D},
	{2, 1, "Air with high permittivity centered object, west pulse", highPermittivityObject2D},
	{2, 2, "Centered gaussian excitation in free space", freeSpaceCentered2D},
	{3, 0, "Half air half water, west-to-east gaussian", halfAirHalfWater3D},
	{3, 1, "Air with high permittivity centered object", highPermittivityObject3D},
}

// List returns the setups of one dimensionality, or all of them for dimension 0
func List(dimension int) (setups []Setup) {
	for _, s := range catalog {
		if dimension == 0 || s.Dimension == dimension {
			setups = append(setups, s)
		}
	}
	return
}

func Lookup(dimension, id int) (s Setup, err error) {
	for _, s = range catalog {
		if s.Dimension == dimension && s.ID == id {
			return
		}
	}
	err = fmt.Errorf("%w: %dD setup %d", ErrUnknownSetup, dimension, id)
	return Setup{}, err
}

// New builds the grid, medium and sources of a scenario
func New(dimension, id int, p Params) (solver FDTD.Solver, err error) {
	var s Setup
	if s, err = Lookup(dimension, id); err != nil {
		return
	}
	return s.build(p)
}

func (s Setup) String() string {
	return fmt.Sprintf("%dD : %d - %s", s.Dimension, s.ID, s.Name)
}

// DefaultCourant is the Courant number used when none is given
func DefaultCourant(dimension int) float64 {
	switch dimension {
	case 2:
		return 1. / math.Sqrt(3.)
	case 3:
		return 1. / math.Sqrt(4.)
	default:
		return 1.
	}
}

func borders(dimension int, p Params, defaults ...types.BorderCondition) ([]types.BorderCondition, error) {
	return types.ParseBorders(dimension, p.Borders, defaults)
}

func halfAirHalfWater1D(p Params) (solver FDTD.Solver, err error) {
	var (
		bc []types.BorderCondition
		g  *FDTD1D.Grid
	)
	if bc, err = borders(1, p, types.PEC, types.PMC); err != nil {
		return
	}
	if g, err = FDTD1D.NewGrid(p.DomainSize[0], p.Courant, p.SmallestWavelength,
		[types.NumFaces1D]types.BorderCondition(bc), p.CPMLThickness); err != nil {
		return
	}
	split := p.DomainSize[0] / 2.
	g.InitMedium(
		twoMedia(split, AirPermeability, WaterPermeability),
		twoMedia(split, AirPermittivity, WaterPermittivity))
	src := FDTD.GaussianPulse{Delay: 25. * g.Dt, Width: 3. * g.Dt, Peak: 1.e-2}
	if err = g.AddSource(FDTD.MagneticCurrent, src, 0.); err != nil {
		return
	}
	return g, nil
}

func westAirEastWater2D(p Params) (solver FDTD.Solver, err error) {
	var (
		bc []types.BorderCondition
		g  *FDTD2D.Grid
		X  = p.DomainSize[0]
		Y  = p.DomainSize[1]
	)
	if bc, err = borders(2, p, types.PEC|types.CPML, types.PEC|types.CPML,
		types.PEC, types.PEC); err != nil {
		return
	}
	if g, err = FDTD2D.NewGrid([2]float64{X, Y}, p.Courant, p.SmallestWavelength,
		[types.NumFaces2D]types.BorderCondition(bc), p.CPMLThickness); err != nil {
		return
	}
	b := box{
		center: []float64{X / 2., 3. * Y / 4.},
		size:   []float64{2. * X, Y / 2.},
	}
	g.InitMedium(
		func(x, y float64) float64 { return b.pick(AirPermeability, WaterPermeability, x, y) },
		func(x, y float64) float64 { return b.pick(AirPermittivity, GlassPermittivity, x, y) })
	src := FDTD.GaussianPulse{Delay: 30. * g.Dt, Width: 15. * g.Dt, Peak: 1000.}
	if err = g.AddSource(FDTD.ElectricCurrent, src, X/2., g.Dy); err != nil {
		return
	}
	return g, nil
}

func highPermittivityObject2D(p Params) (solver FDTD.Solver, err error) {
	var (
		bc []types.BorderCondition
		g  *FDTD2D.Grid
		X  = p.DomainSize[0]
		Y  = p.DomainSize[1]
	)
	if bc, err = borders(2, p, types.PEC|types.CPML, types.PEC|types.CPML,
		types.PEC, types.PEC); err != nil {
		return
	}
	if g, err = FDTD2D.NewGrid([2]float64{X, Y}, p.Courant, p.SmallestWavelength,
		[types.NumFaces2D]types.BorderCondition(bc), p.CPMLThickness); err != nil {
		return
	}
	side := math.Min(X, Y) / 2.
	b := box{
		center: []float64{X / 2., Y / 2.},
		size:   []float64{side, side},
	}
	g.InitMedium(
		func(x, y float64) float64 { return b.pick(AirPermeability, 1., x, y) },
		func(x, y float64) float64 { return b.pick(AirPermittivity, HighPermittivity, x, y) })
	src := FDTD.GaussianPulse{Delay: 25. * g.Dt, Width: 3. * g.Dt, Peak: 100.}
	for i := p.CPMLThickness; i < g.SizeX-p.CPMLThickness; i++ {
		if err = g.AddSource(FDTD.ElectricCurrent, src, float64(i)*g.Dx, g.Dy); err != nil {
			return
		}
	}
	return g, nil
}

func freeSpaceCentered2D(p Params) (solver FDTD.Solver, err error) {
	var (
		bc []types.BorderCondition
		g  *FDTD2D.Grid
		X  = p.DomainSize[0]
		Y  = p.DomainSize[1]
	)
	wall := types.PEC | types.CPML
	if bc, err = borders(2, p, wall, wall, wall, wall); err != nil {
		return
	}
	if g, err = FDTD2D.NewGrid([2]float64{X, Y}, p.Courant, p.SmallestWavelength,
		[types.NumFaces2D]types.BorderCondition(bc), p.CPMLThickness); err != nil {
		return
	}
	vacuum := func(x, y float64) float64 { return 1. }
	g.InitMedium(vacuum, vacuum)
	src := FDTD.GaussianPulse{Delay: 30. * g.Dt, Width: 15. * g.Dt, Peak: 1.}
	if err = g.AddSource(FDTD.ElectricCurrent, src, X/2., Y/2.); err != nil {
		return
	}
	return g, nil
}

func halfAirHalfWater3D(p Params) (solver FDTD.Solver, err error) {
	var (
		ds = p.DomainSize
		b  = box{
			center: []float64{ds[0] / 2., ds[1] / 2., 3. * ds[2] / 4.},
			size:   []float64{2. * ds[0], 2. * ds[1], ds[1] / 2.},
		}
	)
	return objectIn3D(p, b, WaterPermeability, GlassPermittivity)
}

func highPermittivityObject3D(p Params) (solver FDTD.Solver, err error) {
	var (
		ds   = p.DomainSize
		side = ds[1] / 2.
		b    = box{
			center: []float64{ds[0] / 2., ds[1] / 2., ds[2] / 2.},
			size:   []float64{side, side, side},
		}
	)
	return objectIn3D(p, b, 1., HighPermittivity)
}

// objectIn3D builds a PEC box holding an object in air, excited by a line of
// M sources along y
func objectIn3D(p Params, b box, permeability, permittivity float64) (solver FDTD.Solver, err error) {
	var (
		bc []types.BorderCondition
		g  *FDTD3D.Grid
	)
	if bc, err = borders(3, p, types.PEC, types.PEC, types.PEC,
		types.PEC, types.PEC, types.PEC); err != nil {
		return
	}
	if g, err = FDTD3D.NewGrid(p.DomainSize, p.Courant, p.SmallestWavelength,
		[types.NumFaces3D]types.BorderCondition(bc), p.CPMLThickness); err != nil {
		return
	}
	g.InitMedium(
		func(x, y, z float64) float64 { return b.pick(AirPermeability, permeability, x, y, z) },
		func(x, y, z float64) float64 { return b.pick(AirPermittivity, permittivity, x, y, z) })
	var (
		src = FDTD.GaussianPulse{Delay: 10. * g.Dt, Width: 5. * g.Dt, Peak: 1.e-2}
		off = float64(p.CPMLThickness + 2)
	)
	for j := 0; j < g.SizeY; j++ {
		if err = g.AddSource(FDTD.MagneticCurrent, src,
			off*g.Dx, float64(j)*g.Dy, off*g.Dz); err != nil {
			return
		}
	}
	return g, nil
}
