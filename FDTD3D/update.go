package FDTD3D

import (
	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
)

// Step runs one leapfrog iteration, each field kernel is tiled along x
func (g *Grid) Step(opts *FDTD.RunOptions) {
	pm := g.partitions(opts.Degree())
	pm.Run(g.updateMagnetic)
	g.applyMagneticSources()
	g.applyCPML(g.cpmlH)
	g.magneticBorders()

	pm.Run(g.updateElectric)
	g.applyElectricSources()
	g.applyCPML(g.cpmlE)
	g.electricBorders()
}

func (g *Grid) partitions(degree int) *utils.PartitionMap {
	if g.pm == nil || g.pm.ParallelDegree != degree {
		g.pm = utils.NewPartitionMap(degree, g.SizeX)
	}
	return g.pm
}

func (g *Grid) updateMagnetic(bn, kMin, kMax int) {
	var (
		iMin, iMax    = utils.Clip(kMin, kMax, 0, g.SizeX-1)
		rdx, rdy, rdz = 1. / g.Dx, 1. / g.Dy, 1. / g.Dz
		dt            = g.Dt
	)
	for i := iMin; i < iMax; i++ {
		for j := 0; j < g.SizeY-1; j++ {
			var (
				hx, hy, hz = g.Hx.Line(i, j), g.Hy.Line(i, j), g.Hz.Line(i, j)
				ex, ey, ez = g.Ex.Line(i, j), g.Ey.Line(i, j), g.Ez.Line(i, j)
				exJ, ezJ   = g.Ex.Line(i, j+1), g.Ez.Line(i, j+1)
				eyI, ezI   = g.Ey.Line(i+1, j), g.Ez.Line(i+1, j)
				muInv      = g.PermeabilityInv.Line(i, j)
			)
			for k := 0; k < g.SizeZ-1; k++ {
				hx[k] += ((ey[k+1]-ey[k])*rdz - (ezJ[k]-ez[k])*rdy) * dt * muInv[k]
				hy[k] += ((ezI[k]-ez[k])*rdx - (ex[k+1]-ex[k])*rdz) * dt * muInv[k]
				hz[k] += ((exJ[k]-ex[k])*rdy - (eyI[k]-ey[k])*rdx) * dt * muInv[k]
			}
		}
	}
}

func (g *Grid) updateElectric(bn, kMin, kMax int) {
	var (
		iMin, iMax    = utils.Clip(kMin, kMax, 1, g.SizeX)
		rdx, rdy, rdz = 1. / g.Dx, 1. / g.Dy, 1. / g.Dz
		dt            = g.Dt
	)
	for i := iMin; i < iMax; i++ {
		for j := 1; j < g.SizeY; j++ {
			var (
				ex, ey, ez = g.Ex.Line(i, j), g.Ey.Line(i, j), g.Ez.Line(i, j)
				hx, hy, hz = g.Hx.Line(i, j), g.Hy.Line(i, j), g.Hz.Line(i, j)
				hxJ, hzJ   = g.Hx.Line(i, j-1), g.Hz.Line(i, j-1)
				hyI, hzI   = g.Hy.Line(i-1, j), g.Hz.Line(i-1, j)
				epsInv     = g.PermittivityInv.Line(i, j)
			)
			for k := 1; k < g.SizeZ; k++ {
				ex[k] += ((hz[k]-hzJ[k])*rdy - (hy[k]-hy[k-1])*rdz) * dt * epsInv[k]
				ey[k] += ((hx[k]-hx[k-1])*rdz - (hz[k]-hzI[k])*rdx) * dt * epsInv[k]
				ez[k] += ((hy[k]-hyI[k])*rdx - (hx[k]-hxJ[k])*rdy) * dt * epsInv[k]
			}
		}
	}
}

// Magnetic currents feed all H components, electric currents are subtracted from all E components
func (g *Grid) applyMagneticSources() {
	for _, s := range g.Sources.M {
		var (
			v       = s.Signal.Value(g.time)
			i, j, k = s.Location[0], s.Location[1], s.Location[2]
		)
		g.Hx.Add(i, j, k, v)
		g.Hy.Add(i, j, k, v)
		g.Hz.Add(i, j, k, v)
	}
}

func (g *Grid) applyElectricSources() {
	for _, s := range g.Sources.J {
		var (
			v       = s.Signal.Value(g.time)
			i, j, k = s.Location[0], s.Location[1], s.Location[2]
		)
		g.Ex.Add(i, j, k, -v)
		g.Ey.Add(i, j, k, -v)
		g.Ez.Add(i, j, k, -v)
	}
}

type faceInfo struct {
	axis int
	high bool
}

var faces = [types.NumFaces3D]faceInfo{
	types.Front:  {2, false},
	types.Back:   {2, true},
	types.Top:    {0, true},
	types.Bottom: {0, false},
	types.Right:  {1, true},
	types.Left:   {1, false},
}

// tangential lists the two field components lying in a face normal to axis
func tangential(axis int, x, y, z utils.Array3D) [2]utils.Array3D {
	switch axis {
	case 0:
		return [2]utils.Array3D{y, z}
	case 1:
		return [2]utils.Array3D{x, z}
	default:
		return [2]utils.Array3D{x, y}
	}
}

// PMC zeroes tangential H on the face layer, high faces clear the last two layers
func (g *Grid) magneticBorders() {
	for f := types.Face(0); f < types.NumFaces3D; f++ {
		if !g.Borders[f].Has(types.PMC) {
			continue
		}
		fi := faces[f]
		n := g.Shape()[fi.axis]
		for _, a := range tangential(fi.axis, g.Hx, g.Hy, g.Hz) {
			if fi.high {
				zeroLayer(a, fi.axis, n-2)
				zeroLayer(a, fi.axis, n-1)
			} else {
				zeroLayer(a, fi.axis, 0)
			}
		}
	}
}

// PEC zeroes tangential E on the face layer
func (g *Grid) electricBorders() {
	for f := types.Face(0); f < types.NumFaces3D; f++ {
		if !g.Borders[f].Has(types.PEC) {
			continue
		}
		fi := faces[f]
		layer := 0
		if fi.high {
			layer = g.Shape()[fi.axis] - 1
		}
		for _, a := range tangential(fi.axis, g.Ex, g.Ey, g.Ez) {
			zeroLayer(a, fi.axis, layer)
		}
	}
}

func zeroLayer(a utils.Array3D, axis, layer int) {
	switch axis {
	case 0:
		for j := 0; j < a.Ny; j++ {
			line := a.Line(layer, j)
			for k := range line {
				line[k] = 0
			}
		}
	case 1:
		for i := 0; i < a.Nx; i++ {
			line := a.Line(i, layer)
			for k := range line {
				line[k] = 0
			}
		}
	default:
		for i := 0; i < a.Nx; i++ {
			for j := 0; j < a.Ny; j++ {
				a.Set(i, j, layer, 0)
			}
		}
	}
}
