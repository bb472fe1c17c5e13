package FDTD1D

import "github.com/notargets/gofdtd/types"

// Electric layer d sits at depth T-1-d from the interior, the wall node is left to the border condition

func (g *Grid) updateElectricCPML() {
	if g.CPML == nil {
		return
	}
	var (
		n, rdx = g.SizeX, 1. / g.Dx
		b, c   = g.CPML.B, g.CPML.C
	)
	if psi := g.psiEz[types.Left1D]; psi != nil {
		for d := range psi {
			psi[d] = b[d]*psi[d] + c[d]*(g.Hy[1+d]-g.Hy[d])*rdx
			g.Ez[1+d] += g.Dt * g.PermittivityInv[1+d] * psi[d]
		}
	}
	if psi := g.psiEz[types.Right1D]; psi != nil {
		for d := range psi {
			psi[d] = b[d]*psi[d] + c[d]*(g.Hy[n-2-d]-g.Hy[n-3-d])*rdx
			g.Ez[n-2-d] += g.Dt * g.PermittivityInv[n-2-d] * psi[d]
		}
	}
}

func (g *Grid) updateMagneticCPML() {
	if g.CPML == nil {
		return
	}
	var (
		n, rdx = g.SizeX, 1. / g.Dx
		b, c   = g.CPML.BH, g.CPML.CH
	)
	if psi := g.psiHy[types.Left1D]; psi != nil {
		for d := range psi {
			psi[d] = b[d]*psi[d] + c[d]*(g.Ez[d+1]-g.Ez[d])*rdx
			g.Hy[d] += g.Dt * g.PermeabilityInv[d] * psi[d]
		}
	}
	if psi := g.psiHy[types.Right1D]; psi != nil {
		for d := range psi {
			psi[d] = b[d]*psi[d] + c[d]*(g.Ez[n-1-d]-g.Ez[n-2-d])*rdx
			g.Hy[n-2-d] += g.Dt * g.PermeabilityInv[n-2-d] * psi[d]
		}
	}
}
