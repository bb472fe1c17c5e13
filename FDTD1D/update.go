package FDTD1D

import (
	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
)

// Step runs one leapfrog iteration: the H half step with its M sources, CPML
// and borders, then the E half step with its J sources, CPML and borders
func (g *Grid) Step(opts *FDTD.RunOptions) {
	pm := g.partitions(opts.Degree())
	pm.Run(g.updateMagnetic)
	g.applyMagneticSources()
	g.updateMagneticCPML()
	g.magneticBorders()

	pm.Run(g.updateElectric)
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
	)
	for i := iMin; i < iMax; i++ {
		g.Hy[i] += (g.Ez[i+1] - g.Ez[i]) * dtdx * g.PermeabilityInv[i]
	}
}

func (g *Grid) updateElectric(bn, kMin, kMax int) {
	var (
		iMin, iMax = utils.Clip(kMin, kMax, 1, g.SizeX)
		dtdx       = g.Dt / g.Dx
	)
	for i := iMin; i < iMax; i++ {
		g.Ez[i] += (g.Hy[i] - g.Hy[i-1]) * dtdx * g.PermittivityInv[i]
	}
}

func (g *Grid) applyMagneticSources() {
	for _, s := range g.Sources.M {
		g.Hy[s.Location] += s.Signal.Value(g.time)
	}
}

func (g *Grid) applyElectricSources() {
	for _, s := range g.Sources.J {
		g.Ez[s.Location] += s.Signal.Value(g.time)
	}
}

func (g *Grid) magneticBorders() {
	n := g.SizeX
	if g.Borders[types.Left1D].Has(types.PMC) {
		g.Hy[0] = 0
	}
	if g.Borders[types.Right1D].Has(types.PMC) {
		g.Hy[n-1] = 0
	}
}

func (g *Grid) electricBorders() {
	if g.Borders[types.Left1D].Has(types.PEC) {
		g.Ez[0] = 0
	}
	if g.Borders[types.Right1D].Has(types.PEC) {
		g.Ez[g.SizeX-1] = 0
	}
}
