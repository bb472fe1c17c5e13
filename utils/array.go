package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Array2D is an Nx by Ny dense matrix, the last index varies fastest.
// DataP aliases the matrix storage for flat sweeps.
type Array2D struct {
	M      *mat.Dense
	Nx, Ny int
	DataP  []float64
}

func NewArray2D(nx, ny int) Array2D {
	return newArray2D(mat.NewDense(nx, ny, nil))
}

func newArray2D(m *mat.Dense) Array2D {
	nx, ny := m.Dims()
	return Array2D{
		M:     m,
		Nx:    nx,
		Ny:    ny,
		DataP: m.RawMatrix().Data,
	}
}

func (a Array2D) Dims() (nx, ny int) { return a.M.Dims() }

func (a Array2D) At(i, j int) float64 { return a.DataP[j+a.Ny*i] }

func (a Array2D) Set(i, j int, val float64) { a.DataP[j+a.Ny*i] = val }

func (a Array2D) Add(i, j int, val float64) { a.DataP[j+a.Ny*i] += val }

// Row returns the storage for fixed i, aliased with the array
func (a Array2D) Row(i int) []float64 { return a.M.RawRowView(i) }

func (a Array2D) Copy() Array2D { return newArray2D(mat.DenseCopyOf(a.M)) }

// Array3D stores [x][y][z] as an (Nx*Ny) by Nz dense matrix, k varies fastest
type Array3D struct {
	M          *mat.Dense
	Nx, Ny, Nz int
	DataP      []float64
}

func NewArray3D(nx, ny, nz int) Array3D {
	m := mat.NewDense(nx*ny, nz, nil)
	return Array3D{
		M:     m,
		Nx:    nx,
		Ny:    ny,
		Nz:    nz,
		DataP: m.RawMatrix().Data,
	}
}

func (a Array3D) Dims() (nx, ny, nz int) { return a.Nx, a.Ny, a.Nz }

func (a Array3D) Index(i, j, k int) int { return k + a.Nz*(j+a.Ny*i) }

func (a Array3D) At(i, j, k int) float64 { return a.DataP[a.Index(i, j, k)] }

func (a Array3D) Set(i, j, k int, val float64) { a.DataP[a.Index(i, j, k)] = val }

func (a Array3D) Add(i, j, k int, val float64) { a.DataP[a.Index(i, j, k)] += val }

// Line returns the storage for fixed (i,j), aliased with the array
func (a Array3D) Line(i, j int) []float64 { return a.M.RawRowView(j + a.Ny*i) }

// Strides returns the flat offset of a unit step along x, y and z
func (a Array3D) Strides() [3]int {
	return [3]int{a.Ny * a.Nz, a.Nz, 1}
}

// FlatIndex computes the row-major offset of ind within shape
func FlatIndex(shape []int, ind ...int) (off int, err error) {
	if len(shape) != len(ind) {
		err = fmt.Errorf("index has %d coordinates, shape has %d", len(ind), len(shape))
		return
	}
	for n, i := range ind {
		if i < 0 || i >= shape[n] {
			err = fmt.Errorf("coordinate %d out of range [0,%d) on axis %d", i, shape[n], n)
			return
		}
		off = off*shape[n] + i
	}
	return
}

// Unflatten is the inverse of FlatIndex, ind must have len(shape) entries
func Unflatten(shape []int, off int, ind []int) {
	for n := len(shape) - 1; n >= 0; n-- {
		ind[n] = off % shape[n]
		off /= shape[n]
	}
}
