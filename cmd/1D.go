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
	"github.com/spf13/cobra"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional Yee grid solver",
	Long: `
Executes the FDTD solver on a line of cells holding Ez and Hy, for the 1D setups,

gofdtd 1D -s 0 -i 400 --output=gridData.dat`,
	Run: runCommand(1),
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	addRunFlags(OneDCmd, 1)
}
