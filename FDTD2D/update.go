package FDTD2D

import (
	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
)

// Step runs one leapfrog iteration. Approximated updates run serially.
func (g *Grid) Step(opts *FDTD.RunOptions) {
	var ap FDTD.Approximation
	if opts != nil {
		ap = opts.Approx
	}
	if ap.Enabled() {
		g.approxMagnetic(ap)
	} else {
		g.partitions(opts.Degree()).Run(g.updateMagnetic)
	}
	g.applyMagneticSources()
	g.updateMagneticCPML()
	g.magneticBorders()

	if ap.Enabled() {
		g.approxElectric(ap)
	} else {
		g.partitions(opts.Degree()).Run(g.updateElectric)
	}
	g.applyElectricSources()
	g.updateElectricCPML()
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
		iMin, iMax = utils.Clip(kMin, kMax, 0, g.SizeX-1)
		dtdx       = g.Dt / g.Dx
		dtdy       = g.Dt / g.Dy
	)
	for i := iMin; i < iMax; i++ {
		var (
			hx, hy     = g.Hx.Row(i), g.Hy.Row(i)
			ez, ezNext = g.Ez.Row(i), g.Ez.Row(i + 1)
			muInv      = g.PermeabilityInv.Row(i)
		)
		for j := 0; j < g.SizeY-1; j++ {
			hx[j] += (ez[j] - ez[j+1]) * dtdy * muInv[j]
			hy[j] += (ezNext[j] - ez[j]) * dtdx * muInv[j]
		}
	}
}

func (g *Grid) updateElectric(bn, kMin, kMax int) {
	var (
		iMin, iMax = utils.Clip(kMin, kMax, 1, g.SizeX)
		rdx, rdy   = 1. / g.Dx, 1. / g.Dy
	)
	for i := iMin; i < iMax; i++ {
		var (
			ez             = g.Ez.Row(i)
			hx, hy, hyPrev = g.Hx.Row(i), g.Hy.Row(i), g.Hy.Row(i - 1)
			epsInv         = g.PermittivityInv.Row(i)
		)
		for j := 1; j < g.SizeY; j++ {
			ez[j] += ((hy[j]-hyPrev[j])*rdx - (hx[j]-hx[j-1])*rdy) * g.Dt * epsInv[j]
		}
	}
}

func (g *Grid) magneticCell(i, j int) (hx, hy float64) {
	muInv := g.PermeabilityInv.At(i, j)
	hx = g.Hx.At(i, j) + (g.Ez.At(i, j)-g.Ez.At(i, j+1))*(g.Dt/g.Dy)*muInv
	hy = g.Hy.At(i, j) + (g.Ez.At(i+1, j)-g.Ez.At(i, j))*(g.Dt/g.Dx)*muInv
	return
}

func (g *Grid) electricCell(i, j int) float64 {
	return g.Ez.At(i, j) + ((g.Hy.At(i, j)-g.Hy.At(i-1, j))*(1./g.Dx)-
		(g.Hx.At(i, j)-g.Hx.At(i, j-1))*(1./g.Dy))*g.Dt*g.PermittivityInv.At(i, j)
}

// Magnetic currents feed both in-plane components, electric currents are subtracted from Ez
func (g *Grid) applyMagneticSources() {
	for _, s := range g.Sources.M {
		v := s.Signal.Value(g.time)
		g.Hx.Add(s.Location[0], s.Location[1], v)
		g.Hy.Add(s.Location[0], s.Location[1], v)
	}
}

func (g *Grid) applyElectricSources() {
	for _, s := range g.Sources.J {
		g.Ez.Add(s.Location[0], s.Location[1], -s.Signal.Value(g.time))
	}
}

// PMC zeroes the tangential H component: Hy on x faces, Hx on y faces.
// High faces clear the last two layers.
func (g *Grid) magneticBorders() {
	nx, ny := g.SizeX, g.SizeY
	for f := types.Face(0); f < types.NumFaces2D; f++ {
		if !g.Borders[f].Has(types.PMC) {
			continue
		}
		switch f {
		case types.South:
			g.zeroRow(g.Hy, 0)
		case types.North:
			g.zeroRow(g.Hy, nx-2)
			g.zeroRow(g.Hy, nx-1)
		case types.West:
			g.zeroColumn(g.Hx, 0)
		case types.East:
			g.zeroColumn(g.Hx, ny-2)
			g.zeroColumn(g.Hx, ny-1)
		}
	}
}

func (g *Grid) electricBorders() {
	for f := types.Face(0); f < types.NumFaces2D; f++ {
		if !g.Borders[f].Has(types.PEC) {
			continue
		}
		switch f {
		case types.South:
			g.zeroRow(g.Ez, 0)
		case types.North:
			g.zeroRow(g.Ez, g.SizeX-1)
		case types.West:
			g.zeroColumn(g.Ez, 0)
		case types.East:
			g.zeroColumn(g.Ez, g.SizeY-1)
		}
	}
}

func (g *Grid) zeroRow(a utils.Array2D, i int) {
	row := a.Row(i)
	for j := range row {
		row[j] = 0
	}
}

func (g *Grid) zeroColumn(a utils.Array2D, j int) {
	for i := 0; i < a.Nx; i++ {
		a.Set(i, j, 0)
	}
}
