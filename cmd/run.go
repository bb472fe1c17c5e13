/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/InputParameters"
	"github.com/notargets/gofdtd/model_problems/Setups"
	"github.com/notargets/gofdtd/plotting"
	"github.com/notargets/gofdtd/types"
	"github.com/notargets/gofdtd/utils"
	"github.com/notargets/gofdtd/writefiles"
)

const defaultOutput = "gridData.dat"

type Model struct {
	Graph     bool
	PlotSteps int
	Delay     time.Duration
	Profile   string
	Perf      bool
}

// addRunFlags registers the flag set shared by the 1D, 2D and 3D commands
func addRunFlags(cmd *cobra.Command, dimension int) {
	ip := InputParameters.NewInputParameters(dimension)
	fl := cmd.Flags()
	fl.StringP("inputParametersFile", "I", "", "YAML file holding the run parameters, explicit flags take precedence")
	fl.IntP("setup-id", "s", ip.SetupID, "Predefined problem identifier, see the setups command")
	fl.Float64P("size-x", "x", ip.SizeX, "Size of the domain along x (e.g. 0.00001)")
	if dimension > 1 {
		fl.Float64P("size-y", "y", ip.SizeY, "Size of the domain along y")
	}
	if dimension > 2 {
		fl.Float64P("size-z", "z", ip.SizeZ, "Size of the domain along z")
	}
	fl.StringP("output", "o", "", "Dump file name, "+defaultOutput+" when given without a value")
	fl.Lookup("output").NoOptDefVal = defaultOutput
	fl.String("dump", ip.Quantity, "Quantity written to the dump: ex, ey, ez, hx, hy, hz, permittivity_inv, permeability_inv")
	fl.String("png", "", "Write an image of the dumped quantity to this PNG file")
	fl.Float64P("courant", "c", 0, "Courant number, 1 (1D), 1/sqrt(3) (2D) or 1/2 (3D) when not given")
	fl.Float64P("smallest-wavelength", "w", ip.SmallestWavelength, "Smallest wavelength in the simulation, sets dx = wavelength/20")
	fl.IntP("cpml-thickness", "a", ip.CPMLThickness, "Size of the absorbing boundary wall in cells")
	fl.String("borders", "", "Override the setup borders, e.g. \"east=pec|cpml;west=pmc\"")
	fl.Float64P("stop-sim-time", "t", 0, "Stop the simulation when the time is reached, takes precedence over the iteration count")
	fl.IntP("num-iterations", "i", ip.Iterations, "Stop the simulation after the specified amount of solver iterations")
	fl.BoolP("quiet", "q", false, "Do not print information to the user from inside the main kernel")
	fl.IntP("parallel", "p", ip.Parallel, "Number of goroutines sharing each field update")
	fl.BoolP("graph", "g", false, "display a graph while computing solution")
	fl.Int("plotSteps", 10, "number of steps before plotting each frame")
	fl.IntP("delay", "d", 0, "milliseconds of delay for plotting")
	fl.String("profile", "", "Write a pprof profile of the run: cpu or mem")
	fl.Bool("perf", false, "Report hardware CPU cycles of the run (Linux)")
	if dimension == 2 {
		fl.String("approx-mode", "", "Experimental approximate update: random-skip, interpolate or sort-skip")
		fl.Float64("approx-fraction", 0, "Share of the interior cells affected by the approximate update")
		fl.Int64("approx-seed", 0, "Seed of the approximate update")
	}
}

// processInput layers the defaults, the input file, then config file,
// environment and explicit flags
func processInput(cmd *cobra.Command, dimension int) (ip *InputParameters.InputParameters, m *Model, err error) {
	if err = viper.BindPFlags(cmd.Flags()); err != nil {
		return
	}
	ip = InputParameters.NewInputParameters(dimension)
	if fileName := viper.GetString("inputParametersFile"); len(fileName) != 0 {
		var data []byte
		if data, err = os.ReadFile(fileName); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return
		}
		if ip.Dimension != dimension {
			err = fmt.Errorf("input file %s is for %dD, running %dD", fileName, ip.Dimension, dimension)
			return
		}
	}
	var (
		// An explicit flag counts even when it repeats the zero default
		isSet = func(name string) bool {
			fl := cmd.Flags().Lookup(name)
			return fl != nil && (fl.Changed || viper.IsSet(name))
		}
	)
	if isSet("setup-id") {
		ip.SetupID = viper.GetInt("setup-id")
	}
	for name, dst := range map[string]*float64{
		"size-x": &ip.SizeX, "size-y": &ip.SizeY, "size-z": &ip.SizeZ,
		"courant": &ip.Courant, "smallest-wavelength": &ip.SmallestWavelength,
		"stop-sim-time": &ip.FinalTime, "approx-fraction": &ip.ApproxFraction,
	} {
		if isSet(name) {
			*dst = viper.GetFloat64(name)
		}
	}
	for name, dst := range map[string]*int{
		"cpml-thickness": &ip.CPMLThickness, "num-iterations": &ip.Iterations,
		"parallel": &ip.Parallel,
	} {
		if isSet(name) {
			*dst = viper.GetInt(name)
		}
	}
	for name, dst := range map[string]*string{
		"output": &ip.Output, "dump": &ip.Quantity, "png": &ip.PNG,
		"borders": &ip.Borders, "approx-mode": &ip.ApproxMode,
	} {
		if isSet(name) {
			*dst = viper.GetString(name)
		}
	}
	if isSet("approx-seed") {
		ip.ApproxSeed = viper.GetInt64("approx-seed")
	}
	if isSet("quiet") {
		ip.Quiet = viper.GetBool("quiet")
	}
	if err = ip.Validate(); err != nil {
		return
	}
	m = &Model{
		Graph:     viper.GetBool("graph"),
		PlotSteps: viper.GetInt("plotSteps"),
		Delay:     time.Duration(viper.GetInt("delay")) * time.Millisecond,
		Profile:   viper.GetString("profile"),
		Perf:      viper.GetBool("perf"),
	}
	return
}

func runCommand(dimension int) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		ip, m, err := processInput(cmd, dimension)
		if err != nil {
			exitOnError(err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err = Run(ctx, ip, m); err != nil {
			exitOnError(err)
		}
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
	os.Exit(1)
}

// Run builds the setup, advances it and writes the requested outputs.
// An interrupted run still writes its outputs.
func Run(ctx context.Context, ip *InputParameters.InputParameters, m *Model) (err error) {
	var (
		solver FDTD.Solver
		opts   = &FDTD.RunOptions{Verbose: !ip.Quiet, ParallelDegree: ip.Parallel}
	)
	if !ip.Quiet {
		ip.Print()
	}
	if solver, err = Setups.New(ip.Dimension, ip.SetupID, ip.SetupParams()); err != nil {
		return
	}
	defer solver.Release()
	if opts.Approx, err = ip.Approximation(); err != nil {
		return
	}
	if opts.Approx.Enabled() {
		fmt.Fprintf(os.Stderr, "warning: experimental %s approximation of %.1f%% of the interior updates\n",
			opts.Approx.Mode, 100*opts.Approx.Fraction)
	}
	q, _ := ip.DumpQuantity()
	if len(ip.Output) != 0 || len(ip.PNG) != 0 {
		if _, err = solver.Field(q); err != nil {
			return
		}
	}
	if m.Graph {
		lc := plotting.NewLiveChart(solver, q, m.Delay)
		opts.Observer, opts.ObserveEvery = lc.Observe, max(m.PlotSteps, 1)
	}
	switch m.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile type %q, use cpu or mem", m.Profile)
	}
	run := func() error {
		if ip.FinalTime > 0 {
			return solver.Run(ctx, ip.FinalTime, opts)
		}
		return solver.Iterate(ctx, ip.Iterations, opts)
	}
	start := time.Now()
	if m.Perf {
		err = perfRun(run)
	} else {
		err = run()
	}
	fmt.Printf("Kernel time %.4fs\n", time.Since(start).Seconds())
	if !ip.Quiet {
		fmt.Println(utils.GetMemUsage())
	}
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(os.Stderr, "interrupted at t=%e\n", solver.Time())
		err = nil
	case err != nil:
		return
	}
	if len(ip.Output) != 0 {
		if err = dump(solver, ip.Output, q); err != nil {
			return
		}
	}
	if len(ip.PNG) != 0 {
		var f FDTD.Field
		if f, err = solver.Field(q); err != nil {
			return
		}
		title := fmt.Sprintf("%s, %s at t=%e", ip.Title, f.Quantity, solver.Time())
		if err = writefiles.WritePNG(ip.PNG, f, title); err != nil {
			return
		}
	}
	return
}

func dump(solver FDTD.Solver, fileName string, q types.Quantity) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(fileName); err != nil {
		return
	}
	if err = solver.Dump(file, q); err != nil {
		file.Close()
		return
	}
	return file.Close()
}
