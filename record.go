/*
 * record.go, part of convergo.
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
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

//Record is one single point calculation: a k-point grid index, a
//mesh cutoff (Ry) and the total energy (eV) obtained with them.
type Record struct {
	KPoint int
	Cutoff float64
	Energy float64
}

func (R Record) String() string {
	return fmt.Sprintf("k=%d cutoff=%s E=%.6f", R.KPoint, FormatValue(R.Cutoff), R.Energy)
}

//Axis is one of the two convergence parameters.
type Axis int

const (
	KPoints Axis = iota
	Cutoff
)

//Value returns the value of the parameter A for the record R.
func (A Axis) Value(R Record) float64 {
	if A == KPoints {
		return float64(R.KPoint)
	}
	return R.Cutoff
}

//Complement returns the other axis.
func (A Axis) Complement() Axis {
	if A == KPoints {
		return Cutoff
	}
	return KPoints
}

func (A Axis) String() string {
	if A == KPoints {
		return "kpoints"
	}
	return "cutoff"
}

//Label is the axis label used in plots.
func (A Axis) Label() string {
	if A == KPoints {
		return "k-point Grid Index (i)"
	}
	return "MeshCutoff (Ry)"
}

//Table is the whole set of records read from one file, in file order.
//It is not modified after it is read.
type Table struct {
	Records []Record
	Source  string //the file the records were read from, if any.
}

func (T *Table) Len() int {
	if T == nil {
		return 0
	}
	return len(T.Records)
}

//Column returns the values of the given axis for all the records,
//in the table's order.
func (T *Table) Column(A Axis, dest ...[]float64) []float64 {
	ret := getCopySlice(T.Len(), dest...)
	for i, r := range T.Records {
		ret[i] = A.Value(r)
	}
	return ret
}

//Energies returns the total energies of all the records, in the table's order.
func (T *Table) Energies(dest ...[]float64) []float64 {
	ret := getCopySlice(T.Len(), dest...)
	for i, r := range T.Records {
		ret[i] = r.Energy
	}
	return ret
}

//Max returns the largest value of the axis A in the table. It panics
//on an empty table.
func (T *Table) Max(A Axis) float64 {
	return floats.Max(T.Column(A))
}

//Min returns the smallest value of the axis A in the table. It panics
//on an empty table.
func (T *Table) Min(A Axis) float64 {
	return floats.Min(T.Column(A))
}

//FixedAt returns a new table with only the records for which the axis A has the value v.
//The order of the records is kept.
func (T *Table) FixedAt(A Axis, v float64) *Table {
	ret := &Table{Source: T.Source, Records: make([]Record, 0, T.Len())}
	for _, r := range T.Records {
		if A.Value(r) == v {
			ret.Records = append(ret.Records, r)
		}
	}
	return ret
}

//Distinct returns the distinct values of the axis A, in ascending order.
func (T *Table) Distinct(A Axis) []float64 {
	vals := T.Column(A)
	if len(vals) == 0 {
		return vals
	}
	sort.Float64s(vals)
	ret := vals[:1]
	for _, v := range vals[1:] {
		if v != ret[len(ret)-1] {
			ret = append(ret, v)
		}
	}
	return ret
}

//FormatValue formats a parameter value with the shortest representation
//that reads back to the same number (100, 350.5).
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

//getCopySlice returns dest[0] if given and long enough, or a new slice of length n.
func getCopySlice(n int, dest ...[]float64) []float64 {
	if len(dest) > 0 && len(dest[0]) >= n {
		return dest[0][:n]
	}
	return make([]float64, n)
}
