/*
 * sweep.go, part of convergo.
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

package conv

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

//DefaultTolerance is the usual convergence criterion, in meV.
const DefaultTolerance = 1.0

//eV2meV converts electronvolts to millielectronvolts
const eV2meV = 1000.0

//SweepResult is a one-parameter convergence test: the records for which
//the other parameter takes its largest value, sorted by the swept parameter,
//with their energies relative to the last (most converged) one.
type SweepResult struct {
	Axis      Axis      //the swept parameter
	Fixed     float64   //value of the other parameter
	Records   []Record  //sorted by Axis, ascending
	X         []float64 //values of Axis for each record
	DeltaMeV  []float64 //(E-E_last)*1000 for each record
	Tolerance float64   //meV
	Converged int       //index of the first record within tolerance, or -1
}

//Found returns true if some point is within the tolerance.
func (S *SweepResult) Found() bool {
	return S.Converged >= 0
}

//ConvergedValue returns the value of the swept parameter at the converged point, and
//whether such a point exists.
func (S *SweepResult) ConvergedValue() (float64, bool) {
	if !S.Found() {
		return math.NaN(), false
	}
	return S.X[S.Converged], true
}

//Reference returns the energy all the deltas are relative to.
func (S *SweepResult) Reference() float64 {
	return S.Records[len(S.Records)-1].Energy
}

//Title returns the plot title for the sweep.
func (S *SweepResult) Title() string {
	f := FormatValue(S.Fixed)
	if S.Axis == KPoints {
		return fmt.Sprintf("k-point Convergence Test (Fixed MeshCutoff: %s Ry)", f)
	}
	return fmt.Sprintf("MeshCutoff Convergence Test (Fixed k-point grid: %sx%sx%s)", f, f, f)
}

//FileName returns the conventional name for the plot of the sweep, which
//encodes the value of the fixed parameter.
func (S *SweepResult) FileName() string {
	f := FormatValue(S.Fixed)
	if S.Axis == KPoints {
		return fmt.Sprintf("convergence_kpoint_%sRy.svg", f)
	}
	return fmt.Sprintf("convergence_cutoff_%sk.svg", f)
}

//Name is the short name of the sweep used in messages.
func (S *SweepResult) Name() string {
	return sweepName(S.Axis)
}

func sweepName(A Axis) string {
	if A == KPoints {
		return "k-point"
	}
	return "MeshCutoff"
}

//Sweep sets up a convergence test for axis A. The other parameter is fixed at its largest value in T.
//tolerance is given in meV; if not positive, DefaultTolerance is used.
//If the fixed subset has less than 2 distinct values of A, it returns an Error for which Skipped() is true.
func Sweep(T *Table, A Axis, tolerance float64) (*SweepResult, error) {
	if T.Len() == 0 {
		return nil, newError(KindEmpty, "", "The loaded data table is empty.", "Sweep")
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	fixed := T.Max(A.Complement())
	sub := T.FixedAt(A.Complement(), fixed)
	if len(sub.Distinct(A)) < 2 {
		msg := fmt.Sprintf("Skipping %s plot: Not enough unique %s values at the highest %s", sweepName(A), valueName(A), fixedDescription(A.Complement(), fixed))
		return nil, newError(KindSkipped, T.Source, msg, "Sweep")
	}
	S := &SweepResult{Axis: A, Fixed: fixed, Tolerance: tolerance}
	S.Records = sub.Records
	sort.SliceStable(S.Records, func(i, j int) bool { return A.Value(S.Records[i]) < A.Value(S.Records[j]) })
	S.X = make([]float64, len(S.Records))
	S.DeltaMeV = make([]float64, len(S.Records))
	for i, r := range S.Records {
		S.X[i] = A.Value(r)
		S.DeltaMeV[i] = r.Energy
	}
	Deltas(S.DeltaMeV, S.DeltaMeV)
	S.Converged = FirstWithin(S.DeltaMeV, tolerance)
	return S, nil
}

//valueName names the values of A in messages.
func valueName(A Axis) string {
	if A == KPoints {
		return "k-point"
	}
	return "cutoff"
}

func fixedDescription(A Axis, v float64) string {
	if A == Cutoff {
		return fmt.Sprintf("MeshCutoff (%s Ry)", FormatValue(v))
	}
	return fmt.Sprintf("k-point (%s)", FormatValue(v))
}

//Deltas puts in dst the energies in energies (eV) relative to the last one, in meV.
//dst and energies can be the same slice. It returns dst.
func Deltas(dst, energies []float64) []float64 {
	if len(dst) != len(energies) {
		panic(fmt.Sprintf("Deltas: slices should have the same len %d, %d", len(dst), len(energies)))
	}
	if len(energies) == 0 {
		return dst
	}
	last := energies[len(energies)-1]
	floats.ScaleTo(dst, 1, energies)
	floats.AddConst(-last, dst)
	floats.Scale(eV2meV, dst)
	return dst
}

//FirstWithin returns the index of the first delta whose absolute value is not larger than
//tolerance, or -1 if there is none.
func FirstWithin(deltas []float64, tolerance float64) int {
	for i, v := range deltas {
		if math.Abs(v) <= tolerance {
			return i
		}
	}
	return -1
}
