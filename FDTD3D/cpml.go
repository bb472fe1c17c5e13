package FDTD3D

import (
	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
)

// cpmlTerm corrects one field component for the derivative of another along the face normal
type cpmlTerm struct {
	axis           int
	high, electric bool
	field, source  utils.Array3D
	material       utils.Array3D
	sign           float64
	psi            utils.Array3D // grid shaped with the normal axis cut to the CPML thickness
}

type termSpec struct {
	field, source *utils.Array3D
	sign          float64
}

func (g *Grid) newCPMLTerms() {
	var (
		electric = [3][2]termSpec{
			{{&g.Ey, &g.Hz, -1}, {&g.Ez, &g.Hy, 1}},
			{{&g.Ex, &g.Hz, 1}, {&g.Ez, &g.Hx, -1}},
			{{&g.Ex, &g.Hy, -1}, {&g.Ey, &g.Hx, 1}},
		}
		magnetic = [3][2]termSpec{
			{{&g.Hy, &g.Ez, 1}, {&g.Hz, &g.Ey, -1}},
			{{&g.Hx, &g.Ez, -1}, {&g.Hz, &g.Ex, 1}},
			{{&g.Hx, &g.Ey, 1}, {&g.Hy, &g.Ex, -1}},
		}
	)
	for f := types.Face(0); f < types.NumFaces3D; f++ {
		if !g.Borders[f].Has(types.CPML) {
			continue
		}
		fi := faces[f]
		shape := g.Shape()
		shape[fi.axis] = g.CPMLThickness
		for n := 0; n < 2; n++ {
			es, ms := electric[fi.axis][n], magnetic[fi.axis][n]
			g.cpmlE = append(g.cpmlE, &cpmlTerm{
				axis: fi.axis, high: fi.high, electric: true,
				field: *es.field, source: *es.source, material: g.PermittivityInv, sign: es.sign,
				psi: utils.NewArray3D(shape[0], shape[1], shape[2]),
			})
			g.cpmlH = append(g.cpmlH, &cpmlTerm{
				axis: fi.axis, high: fi.high,
				field: *ms.field, source: *ms.source, material: g.PermeabilityInv, sign: ms.sign,
				psi: utils.NewArray3D(shape[0], shape[1], shape[2]),
			})
		}
	}
}

func (g *Grid) applyCPML(terms []*cpmlTerm) {
	for _, t := range terms {
		g.applyTerm(t)
	}
}

// applyTerm sweeps the slab layer by layer, layer d = 0 is outermost and skips the electric wall node
func (g *Grid) applyTerm(t *cpmlTerm) {
	var (
		n        = g.Shape()[t.axis]
		rd       = 1. / g.Spacing()[t.axis]
		b, c     = g.CPML.B, g.CPML.C
		st, pst  = t.field.Strides(), t.psi.Strides()
		p, q     = (t.axis + 1) % 3, (t.axis + 2) % 3
		np, nq   = g.Shape()[p], g.Shape()[q]
		sA, psiA = st[t.axis], pst[t.axis]
		coef     = t.sign * g.Dt
	)
	if !t.electric {
		b, c = g.CPML.BH, g.CPML.CH
	}
	for d := 0; d < g.CPMLThickness; d++ {
		// Difference is source[hi] - source[lo], written into field[tgt]
		var hi, lo, tgt int
		switch {
		case !t.high && t.electric:
			hi, lo, tgt = d+1, d, d+1
		case !t.high:
			hi, lo, tgt = d+1, d, d
		case t.electric:
			hi, lo, tgt = n-2-d, n-3-d, n-2-d
		default:
			hi, lo, tgt = n-1-d, n-2-d, n-2-d
		}
		for a := 0; a < np; a++ {
			for bb := 0; bb < nq; bb++ {
				var (
					base = a*st[p] + bb*st[q]
					pi   = a*pst[p] + bb*pst[q] + d*psiA
					psi  = b[d]*t.psi.DataP[pi] +
						c[d]*(t.source.DataP[base+hi*sA]-t.source.DataP[base+lo*sA])*rd
					cell = base + tgt*sA
				)
				t.psi.DataP[pi] = psi
				t.field.DataP[cell] += coef * t.material.DataP[cell] * psi
			}
		}
	}
}
