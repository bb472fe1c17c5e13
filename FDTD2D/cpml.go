package FDTD2D

import (
	"github.com/notargets/gofdtd/types"
)

// Ez_x is corrected on the south/north slabs and Ez_y on the west/east slabs.
// Layer d = 0 is next to the wall node, which is left to the border condition.
func (g *Grid) updateElectricCPML() {
	if g.CPML == nil {
		return
	}
	var (
		nx, ny   = g.SizeX, g.SizeY
		rdx, rdy = 1. / g.Dx, 1. / g.Dy
		b, c     = g.CPML.B, g.CPML.C
		T        = g.CPMLThickness
	)
	if g.Borders[types.South].Has(types.CPML) {
		psi := g.psiE[types.South]
		for d := 0; d < T; d++ {
			i := 1 + d
			for j := 0; j < ny; j++ {
				p := b[d]*psi.At(d, j) + c[d]*(g.Hy.At(i, j)-g.Hy.At(i-1, j))*rdx
				psi.Set(d, j, p)
				g.Ez.Add(i, j, g.Dt*g.PermittivityInv.At(i, j)*p)
			}
		}
	}
	if g.Borders[types.North].Has(types.CPML) {
		psi := g.psiE[types.North]
		for d := 0; d < T; d++ {
			i := nx - 2 - d
			for j := 0; j < ny; j++ {
				p := b[d]*psi.At(d, j) + c[d]*(g.Hy.At(i, j)-g.Hy.At(i-1, j))*rdx
				psi.Set(d, j, p)
				g.Ez.Add(i, j, g.Dt*g.PermittivityInv.At(i, j)*p)
			}
		}
	}
	if g.Borders[types.West].Has(types.CPML) {
		psi := g.psiE[types.West]
		for i := 0; i < nx; i++ {
			for d := 0; d < T; d++ {
				j := 1 + d
				p := b[d]*psi.At(i, d) + c[d]*(g.Hx.At(i, j)-g.Hx.At(i, j-1))*rdy
				psi.Set(i, d, p)
				g.Ez.Add(i, j, -g.Dt*g.PermittivityInv.At(i, j)*p)
			}
		}
	}
	if g.Borders[types.East].Has(types.CPML) {
		psi := g.psiE[types.East]
		for i := 0; i < nx; i++ {
			for d := 0; d < T; d++ {
				j := ny - 2 - d
				p := b[d]*psi.At(i, d) + c[d]*(g.Hx.At(i, j)-g.Hx.At(i, j-1))*rdy
				psi.Set(i, d, p)
				g.Ez.Add(i, j, -g.Dt*g.PermittivityInv.At(i, j)*p)
			}
		}
	}
}

// Hy_x is corrected on the south/north slabs and Hx_y on the west/east slabs, with half-cell deeper coefficients
func (g *Grid) updateMagneticCPML() {
	if g.CPML == nil {
		return
	}
	var (
		nx, ny   = g.SizeX, g.SizeY
		rdx, rdy = 1. / g.Dx, 1. / g.Dy
		b, c     = g.CPML.BH, g.CPML.CH
		T        = g.CPMLThickness
	)
	if g.Borders[types.South].Has(types.CPML) {
		psi := g.psiH[types.South]
		for d := 0; d < T; d++ {
			i := d
			for j := 0; j < ny; j++ {
				p := b[d]*psi.At(d, j) + c[d]*(g.Ez.At(i+1, j)-g.Ez.At(i, j))*rdx
				psi.Set(d, j, p)
				g.Hy.Add(i, j, g.Dt*g.PermeabilityInv.At(i, j)*p)
			}
		}
	}
	if g.Borders[types.North].Has(types.CPML) {
		psi := g.psiH[types.North]
		for d := 0; d < T; d++ {
			i := nx - 2 - d
			for j := 0; j < ny; j++ {
				p := b[d]*psi.At(d, j) + c[d]*(g.Ez.At(i+1, j)-g.Ez.At(i, j))*rdx
				psi.Set(d, j, p)
				g.Hy.Add(i, j, g.Dt*g.PermeabilityInv.At(i, j)*p)
			}
		}
	}
	// Hx uses the same (Ez[j] - Ez[j+1]) difference as its main update
	if g.Borders[types.West].Has(types.CPML) {
		psi := g.psiH[types.West]
		for i := 0; i < nx; i++ {
			for d := 0; d < T; d++ {
				j := d
				p := b[d]*psi.At(i, d) + c[d]*(g.Ez.At(i, j)-g.Ez.At(i, j+1))*rdy
				psi.Set(i, d, p)
				g.Hx.Add(i, j, g.Dt*g.PermeabilityInv.At(i, j)*p)
			}
		}
	}
	if g.Borders[types.East].Has(types.CPML) {
		psi := g.psiH[types.East]
		for i := 0; i < nx; i++ {
			for d := 0; d < T; d++ {
				j := ny - 2 - d
				p := b[d]*psi.At(i, d) + c[d]*(g.Ez.At(i, j)-g.Ez.At(i, j+1))*rdy
				psi.Set(i, d, p)
				g.Hx.Add(i, j, g.Dt*g.PermeabilityInv.At(i, j)*p)
			}
		}
	}
}
