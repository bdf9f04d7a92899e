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

//convsurface plots the total energy over the whole k-point x MeshCutoff grid as a
//shaded 3D surface, seen from a fixed angle, and prints a summary of the energies.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	conv "github.com/rmera/convergo"
	"github.com/rmera/convergo/convplot"
	"github.com/rmera/convergo/convstat"
	"github.com/rmera/convergo/internal/config"
	"github.com/rmera/convergo/internal/display"
	"github.com/rmera/convergo/report"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout))
}

//run returns 2 for a bad command line or configuration, and 1 if the run fails.
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

func newCommand(out io.Writer, status *int) (*cobra.Command, error) {
	C, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return nil, err
	}
	cmd := &cobra.Command{
		Use:   "convsurface",
		Short: "Plot the total energy over the k-point x MeshCutoff grid",
		Long: `Plot the total energy over the whole k-point x MeshCutoff grid as a shaded 3D
surface and print a summary of the energies. Every (k-point, cutoff) pair must
appear exactly once in the data file.

Without -o the surface goes to a temporary file that is opened with the system
viewer. The file is left for the viewer to read, unless --show=false is given,
in which case it is removed once written.

Example: convsurface -f Energy_ecut.dat -o surface.svg --heatmap heatmap.svg --xlsx report.xlsx`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := C.Validate(); err != nil {
				return err
			}
			*status = surface(C, out)
			return nil
		},
	}
	cmd.SetOut(out)
	config.Bind(cmd.Flags(), &C, true)
	return cmd, nil
}

//surface plots and summarizes the grid for the configuration C, and returns the exit status.
func surface(C config.Config, out io.Writer) int {
	T, err := conv.ReadFile(C.DataFile, C.ReadOptions())
	if err != nil {
		log.Printf("Error: %s", conv.UserMessage(err))
		return 1
	}
	G, err := conv.Pivot(T)
	if err != nil {
		log.Printf("Error: %s", conv.UserMessage(err))
		return 1
	}
	name := C.Surface
	if name == "" {
		f, err := os.CreateTemp("", "convergence_surface_*.svg")
		if err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		name = f.Name()
		f.Close()
		//the viewer runs on its own and reads the file later, so a shown file stays.
		if !C.Show {
			defer os.Remove(name)
		}
	}
	if err := convplot.SurfaceFile(G, C.Title, name); err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	fmt.Fprintf(out, "\nSurface plot written to %s\n", name)
	if C.Show {
		if err := display.Open(name); err != nil {
			log.Println(err)
		}
	}
	if C.HeatMap != "" {
		if err := convplot.HeatMap(G, "", C.HeatMap); err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		fmt.Fprintf(out, "Heat map written to %s\n", C.HeatMap)
	}
	S, err := convstat.Summarize(T)
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	if err := S.Write(out, true); err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	if C.XLSX != "" {
		W := &report.Workbook{Table: T, Grid: G}
		//the sweeps are a bonus here, a skipped one is just left out.
		W.KPoint, _ = conv.Sweep(T, conv.KPoints, C.Tolerance)
		W.Cutoff, _ = conv.Sweep(T, conv.Cutoff, C.Tolerance)
		if err := W.Write(C.XLSX); err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		fmt.Fprintf(out, "\nReport written to %s\n", C.XLSX)
	}
	return 0
}
