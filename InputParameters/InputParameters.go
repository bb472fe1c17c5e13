package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/model_problems/Setups"
	"github.com/notargets/gofdtd/types"
)

const (
	DefaultDomainSize         = 0.00001
	DefaultSmallestWavelength = 450e-9
	DefaultCPMLThickness      = 20
	DefaultIterations         = 400

	// AutoCourant selects the default Courant number of the dimension
	AutoCourant = -1.
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title              string  `yaml:"Title"`
	Dimension          int     `yaml:"Dimension"`
	SetupID            int     `yaml:"SetupID"`
	SizeX              float64 `yaml:"SizeX"`
	SizeY              float64 `yaml:"SizeY"`
	SizeZ              float64 `yaml:"SizeZ"`
	Courant            float64 `yaml:"Courant"` // AutoCourant selects the default of the dimension
	SmallestWavelength float64 `yaml:"SmallestWavelength"`
	CPMLThickness      int     `yaml:"CPMLThickness"`
	Borders            string  `yaml:"Borders"`   // Overrides the setup faces, e.g. "south=pec|cpml;north=pmc"
	FinalTime          float64 `yaml:"FinalTime"` // Takes precedence over Iterations when positive
	Iterations         int     `yaml:"Iterations"`
	Output             string  `yaml:"Output"`
	Quantity           string  `yaml:"Quantity"`
	PNG                string  `yaml:"PNG"`
	Parallel           int     `yaml:"Parallel"`
	Quiet              bool    `yaml:"Quiet"`
	ApproxMode         string  `yaml:"ApproxMode"`
	ApproxFraction     float64 `yaml:"ApproxFraction"`
	ApproxSeed         int64   `yaml:"ApproxSeed"`
}

func NewInputParameters(dimension int) (ip *InputParameters) {
	ip = &InputParameters{
		Title:              "FDTD run",
		Dimension:          dimension,
		SizeX:              DefaultDomainSize,
		SizeY:              DefaultDomainSize,
		SizeZ:              DefaultDomainSize,
		Courant:            AutoCourant,
		SmallestWavelength: DefaultSmallestWavelength,
		CPMLThickness:      DefaultCPMLThickness,
		Iterations:         DefaultIterations,
		Quantity:           types.Ez.String(),
		Parallel:           1,
	}
	return
}

// Parse overlays the YAML document on the current values
func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Validate checks the values and fills in the dimension dependent Courant number
func (ip *InputParameters) Validate() (err error) {
	if ip.Dimension < 1 || ip.Dimension > 3 {
		return fmt.Errorf("dimension must be 1, 2 or 3, have %d", ip.Dimension)
	}
	if _, err = Setups.Lookup(ip.Dimension, ip.SetupID); err != nil {
		return
	}
	ds := ip.DomainSize()
	for n, size := range ds[:ip.Dimension] {
		if size <= 0 {
			return fmt.Errorf("domain size along axis %d must be positive, have %g", n, size)
		}
	}
	switch {
	case ip.Courant == AutoCourant:
		ip.Courant = Setups.DefaultCourant(ip.Dimension)
	case ip.Courant < 0:
		return fmt.Errorf("Courant number must not be negative, have %g", ip.Courant)
	}
	if ip.SmallestWavelength <= 0 {
		return fmt.Errorf("smallest wavelength must be positive, have %g", ip.SmallestWavelength)
	}
	if ip.CPMLThickness < 0 {
		return fmt.Errorf("CPML thickness must not be negative, have %d", ip.CPMLThickness)
	}
	if ip.FinalTime < 0 {
		return fmt.Errorf("final time must not be negative, have %g", ip.FinalTime)
	}
	if ip.Iterations < 0 {
		return fmt.Errorf("iteration count must not be negative, have %d", ip.Iterations)
	}
	if _, err = ip.DumpQuantity(); err != nil {
		return
	}
	var ap FDTD.Approximation
	if ap, err = ip.Approximation(); err != nil {
		return
	}
	if ap.Enabled() && ip.Dimension != 2 {
		return fmt.Errorf("approximation mode %s is only available in 2D", ap.Mode)
	}
	if ap.Fraction < 0 || ap.Fraction > 1 {
		return fmt.Errorf("approximation fraction must be within [0,1], have %g", ap.Fraction)
	}
	return
}

func (ip *InputParameters) DomainSize() [3]float64 {
	return [3]float64{ip.SizeX, ip.SizeY, ip.SizeZ}
}

func (ip *InputParameters) SetupParams() Setups.Params {
	return Setups.Params{
		DomainSize:         ip.DomainSize(),
		Courant:            ip.Courant,
		SmallestWavelength: ip.SmallestWavelength,
		CPMLThickness:      ip.CPMLThickness,
		Borders:            ip.Borders,
	}
}

func (ip *InputParameters) DumpQuantity() (q types.Quantity, err error) {
	return types.ParseQuantity(ip.Quantity)
}

func (ip *InputParameters) Approximation() (ap FDTD.Approximation, err error) {
	if ap.Mode, err = FDTD.ParseApproxMode(ip.ApproxMode); err != nil {
		return
	}
	ap.Fraction, ap.Seed = ip.ApproxFraction, ip.ApproxSeed
	return
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t\t= Dimension\n", ip.Dimension)
	if s, err := Setups.Lookup(ip.Dimension, ip.SetupID); err == nil {
		fmt.Printf("[%d]\t\t\t\t= Setup (%s)\n", ip.SetupID, s.Name)
	} else {
		fmt.Printf("[%d]\t\t\t\t= Setup\n", ip.SetupID)
	}
	ds := ip.DomainSize()
	fmt.Printf("%v\t= Domain Size\n", ds[:max(1, min(3, ip.Dimension))])
	fmt.Printf("%8.5f\t\t= Courant\n", ip.Courant)
	fmt.Printf("%e\t\t= Smallest Wavelength\n", ip.SmallestWavelength)
	fmt.Printf("[%d]\t\t\t\t= CPML Thickness\n", ip.CPMLThickness)
	if len(ip.Borders) != 0 {
		fmt.Printf("[%s]\t= Borders\n", ip.Borders)
	}
	if ip.FinalTime > 0 {
		fmt.Printf("%e\t\t= FinalTime\n", ip.FinalTime)
	} else {
		fmt.Printf("[%d]\t\t\t\t= Iterations\n", ip.Iterations)
	}
	if len(ip.ApproxMode) != 0 {
		fmt.Printf("[%s] %5.3f seed %d\t= Approximation\n", ip.ApproxMode, ip.ApproxFraction, ip.ApproxSeed)
	}
}
