//go:build linux

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
	"fmt"
	"os"

	perf "github.com/hodgesds/perf-utils"
)

// perfRun counts the CPU cycles spent in run, running it without counters
// when they are not available
func perfRun(run func() error) (err error) {
	var (
		ran bool
	)
	pv, perr := perf.CPUCycles(func() error {
		ran = true
		err = run()
		return err
	})
	if !ran {
		fmt.Fprintf(os.Stderr, "warning: CPU cycle counter unavailable: %s\n", perr)
		return run()
	}
	if perr == nil && pv != nil {
		fmt.Printf("CPU cycles %d (enabled %.4fs, running %.4fs)\n",
			pv.Value, float64(pv.TimeEnabled)/1.e9, float64(pv.TimeRunning)/1.e9)
	}
	return
}
