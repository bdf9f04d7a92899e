/*
 * main.go, part of convergo.
 *
 * Copyright 2025 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//convplot2d plots one-parameter convergence tests: the relative total energy vs. the k-point grid index
//at the largest MeshCutoff, and vs. the MeshCutoff at the largest k-point index.
//Each plot is saved as an SVG file whose name encodes the fixed parameter.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	conv "github.com/rmera/convergo"
	"github.com/rmera/convergo/convplot"
	"github.com/rmera/convergo/internal/config"
	"github.com/rmera/convergo/internal/display"
	"github.com/rmera/convergo/report"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout))
}

//run does the whole thing and returns the exit status: 2 for a bad command line
//or configuration, 1 if the run fails.
func run(args []string, out io.Writer) int {
	status := 0
	cmd, err := newCommand(out, &status)
	if err != nil {
		log.Println(err)
		return 2
	}
	//cobra falls back to os.Args on nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		log.Println(err)
		return 2
	}
	return status
}

//newCommand builds the command, with the defaults taken from the .env file and the environment.
//The exit status of the run is put in status.
func newCommand(out io.Writer, status *int) (*cobra.Command, error) {
	C, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return nil, err
	}
	cmd := &cobra.Command{
		Use:   "convplot2d",
		Short: "Plot k-point and MeshCutoff convergence tests",
		Long: `Plot the total energy, relative to the most converged point, against the k-point
grid index at the largest MeshCutoff, and against the MeshCutoff at the largest k-point index.

Each plot is saved as an SVG file whose name encodes the fixed parameter, and shown
with the system viewer unless --show=false is given.

Example: convplot2d -f Energy_ecut.dat --tol 0.5 --outdir plots --show=false`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := C.Validate(); err != nil {
				return err
			}
			*status = convergence(C, out)
			return nil
		},
	}
	cmd.SetOut(out)
	config.Bind(cmd.Flags(), &C, false)
	return cmd, nil
}

//convergence plots both sweeps for the configuration C and returns the exit status.
func convergence(C config.Config, out io.Writer) int {
	T, err := conv.ReadFile(C.DataFile, C.ReadOptions())
	if err != nil {
		if conv.IsKind(err, conv.KindEmpty) {
			fmt.Fprintln(out, "The loaded data table is empty.")
			return 0
		}
		log.Printf("Error: %s", conv.UserMessage(err))
		return 1
	}
	if err := os.MkdirAll(C.OutDir, 0o755); err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	sweeps := make(map[conv.Axis]*conv.SweepResult, 2)
	for _, A := range []conv.Axis{conv.KPoints, conv.Cutoff} {
		S, err := conv.Sweep(T, A, C.Tolerance)
		var E conv.Error
		if errors.As(err, &E) && E.Skipped() {
			fmt.Fprintf(out, "\n%s.\n", E.Message())
			continue
		} else if err != nil {
			log.Printf("Error: %s", conv.UserMessage(err))
			return 1
		}
		name, err := plotSweep(S, C, out)
		if err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		sweeps[A] = S
		if C.Show {
			if err := display.Open(name); err != nil {
				log.Println(err)
			}
		}
	}
	if C.XLSX != "" {
		W := &report.Workbook{Table: T, KPoint: sweeps[conv.KPoints], Cutoff: sweeps[conv.Cutoff]}
		if err := W.Write(C.XLSX); err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		fmt.Fprintf(out, "\nReport written to %s\n", C.XLSX)
	}
	return 0
}

//plotSweep reports the converged point of S, if any, and saves its plot. It returns the name of the plot file.
func plotSweep(S *conv.SweepResult, C config.Config, out io.Writer) (string, error) {
	if v, ok := S.ConvergedValue(); ok {
		fmt.Fprintf(out, "\n--- %s Converged ---\n", S.Name())
		fmt.Fprintf(out, "Converged value (within %s meV): %s\n", conv.FormatValue(S.Tolerance), conv.FormatValue(v))
	} else {
		log.Printf("\nWarning: Convergence (%s meV) not reached in the tested range for %s.", conv.FormatValue(S.Tolerance), S.Name())
	}
	name := filepath.Join(C.OutDir, S.FileName())
	if err := convplot.Convergence(S, name); err != nil {
		return "", err
	}
	fmt.Fprintf(out, "\nSuccessfully saved plot as %s\n", name)
	return name, nil
}
