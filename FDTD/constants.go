package FDTD

import "math"

const (
	C0   = 299792458.
	Mu0  = 4. * math.Pi * 1.e-7
	Eps0 = 625000. / (22468879468420441. * math.Pi)

	// Graded CPML profile parameters
	KappaMax   = 1.
	TaperOrder = 4

	// Spatial resolution of the smallest wavelength
	CellsPerWavelength = 20.
)
