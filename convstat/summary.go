/*
 * summary.go, part of convergo.
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

//Package convstat computes summary statistics for the energies of a convergence test.
package convstat

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
	conv "github.com/rmera/convergo"
	"gonum.org/v1/gonum/stat"
)

//Summary describes the total energies in a table.
type Summary struct {
	N         int
	Min, Max  float64 //eV
	Mean      float64 //eV
	Median    float64 //eV
	StdDev    float64 //eV, population
	SpreadMeV float64 //(Max-Min)*1000
	//the records where the extreme energies were found.
	AtMin, AtMax conv.Record
}

//Summarize returns the summary of the energies in T.
func Summarize(T *conv.Table) (*Summary, error) {
	if T.Len() == 0 {
		return nil, fmt.Errorf("Summarize: Given empty table")
	}
	e := stats.Float64Data(T.Energies())
	S := &Summary{N: len(e)}
	var err error
	if S.Min, err = stats.Min(e); err != nil {
		return nil, fmt.Errorf("Summarize: %w", err)
	}
	if S.Max, err = stats.Max(e); err != nil {
		return nil, fmt.Errorf("Summarize: %w", err)
	}
	if S.Median, err = stats.Median(e); err != nil {
		return nil, fmt.Errorf("Summarize: %w", err)
	}
	if S.StdDev, err = stats.StandardDeviationPopulation(e); err != nil {
		return nil, fmt.Errorf("Summarize: %w", err)
	}
	S.Mean = stat.Mean(e, nil)
	S.SpreadMeV = (S.Max - S.Min) * 1000
	//the first record with each extreme wins.
	var foundMin, foundMax bool
	for _, r := range T.Records {
		if !foundMin && r.Energy == S.Min {
			S.AtMin, foundMin = r, true
		}
		if !foundMax && r.Energy == S.Max {
			S.AtMax, foundMax = r, true
		}
	}
	return S, nil
}

//Write prints the summary to w. The first lines are the minimum and
//maximum total energies, the rest are only printed if verbose is true.
func (S *Summary) Write(w io.Writer, verbose bool) error {
	_, err := fmt.Fprintf(w, "\n--- Data Summary ---\nMinimum Total Energy Found: %.4f eV\nMaximum Total Energy Found: %.4f eV\n", S.Min, S.Max)
	if err != nil || !verbose {
		return err
	}
	_, err = fmt.Fprintf(w, "Points: %d\nMean Total Energy: %.4f eV (std. dev. %.4f eV, median %.4f eV)\nEnergy spread: %.2f meV\nMinimum at kpoints %d, cutoff %s Ry; maximum at kpoints %d, cutoff %s Ry\n",
		S.N, S.Mean, S.StdDev, S.Median, S.SpreadMeV,
		S.AtMin.KPoint, conv.FormatValue(S.AtMin.Cutoff), S.AtMax.KPoint, conv.FormatValue(S.AtMax.Cutoff))
	return err
}
