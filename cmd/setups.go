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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gofdtd/model_problems/Setups"
)

// SetupsCmd lists the predefined problems
var SetupsCmd = &cobra.Command{
	Use:   "setups",
	Short: "List the predefined problems selected with --setup-id",
	Run: func(cmd *cobra.Command, args []string) {
		dimension, _ := cmd.Flags().GetInt("dimension")
		printSetups(os.Stdout, dimension)
	},
}

func init() {
	rootCmd.AddCommand(SetupsCmd)
	SetupsCmd.Flags().IntP("dimension", "n", 0, "Only list the setups of this dimension, 0 lists all")
}

func printSetups(w io.Writer, dimension int) {
	for _, s := range Setups.List(dimension) {
		fmt.Fprintf(w, "%s\n", s)
	}
}
