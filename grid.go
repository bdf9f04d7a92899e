/*
 * grid.go, part of convergo.
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
	"gonum.org/v1/gonum/mat"
)

//Grid is the pivot of a Table: one row per k-point index and one column per
//cutoff, both in ascending order, each cell holding a total energy.
type Grid struct {
	KPoints []float64  //row axis
	Cutoffs []float64  //column axis
	E       *mat.Dense //len(KPoints) x len(Cutoffs)
}

//Pivot builds the energy grid for all the records in T.
//A repeated (kpoint, cutoff) pair gives an Error for which Duplicate() is true.
//If some (kpoint, cutoff) combination is missing, the grid can't be a surface, and
//an Error for which Incomplete() is true is returned. Missing cells are never interpolated.
func Pivot(T *Table) (*Grid, error) {
	if T.Len() == 0 {
		return nil, newError(KindEmpty, "", "The loaded data table is empty.", "Pivot")
	}
	G := &Grid{KPoints: T.Distinct(KPoints), Cutoffs: T.Distinct(Cutoff)}
	r, c := len(G.KPoints), len(G.Cutoffs)
	data := make([]float64, r*c)
	for i := range data {
		data[i] = math.NaN()
	}
	G.E = mat.NewDense(r, c, data)
	//the energies themselves can't tell a filled cell, a NaN energy is still an entry.
	filled := make([]bool, r*c)
	for _, rec := range T.Records {
		i := sort.SearchFloat64s(G.KPoints, float64(rec.KPoint))
		j := sort.SearchFloat64s(G.Cutoffs, rec.Cutoff)
		if filled[i*c+j] {
			return nil, newError(KindDuplicate, T.Source, fmt.Sprintf("Index contains duplicate entries, cannot reshape: kpoints %d cutoff %s", rec.KPoint, FormatValue(rec.Cutoff)), "Pivot")
		}
		filled[i*c+j] = true
		G.E.Set(i, j, rec.Energy)
	}
	var missing [][2]float64
	for n, ok := range filled {
		if !ok {
			missing = append(missing, [2]float64{G.KPoints[n/c], G.Cutoffs[n%c]})
		}
	}
	if len(missing) > 0 {
		m := missing[0]
		return nil, newError(KindIncomplete, T.Source, fmt.Sprintf("Incomplete sweep: %d of %d grid cells have no energy (first: kpoints %s cutoff %s)", len(missing), r*c, FormatValue(m[0]), FormatValue(m[1])), "Pivot")
	}
	return G, nil
}

//Dims returns the number of k-point rows and cutoff columns.
func (G *Grid) Dims() (int, int) {
	return len(G.KPoints), len(G.Cutoffs)
}

//Missing returns the (kpoint, cutoff) pairs whose energy in the grid is NaN.
func (G *Grid) Missing() [][2]float64 {
	var ret [][2]float64
	r, c := G.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(G.E.At(i, j)) {
				ret = append(ret, [2]float64{G.KPoints[i], G.Cutoffs[j]})
			}
		}
	}
	return ret
}

//Mesh returns the coordinate matrices for the grid: X holds the cutoff of each cell and
//Y the k-point index, so X.At(i,j)=Cutoffs[j] and Y.At(i,j)=KPoints[i].
func (G *Grid) Mesh() (X, Y *mat.Dense) {
	r, c := G.Dims()
	X = mat.NewDense(r, c, nil)
	Y = mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		X.SetRow(i, G.Cutoffs)
		for j := 0; j < c; j++ {
			Y.Set(i, j, G.KPoints[i])
		}
	}
	return X, Y
}

//Range returns the smallest and largest energies in the grid.
func (G *Grid) Range() (min, max float64) {
	raw := G.E.RawMatrix()
	if raw.Stride == raw.Cols {
		return floats.Min(raw.Data), floats.Max(raw.Data)
	}
	min, max = math.Inf(1), math.Inf(-1)
	r, _ := G.Dims()
	for i := 0; i < r; i++ {
		row := G.E.RawRowView(i)
		min = math.Min(min, floats.Min(row))
		max = math.Max(max, floats.Max(row))
	}
	return min, max
}

//Row returns the energies for the k-point index k, and false if k is not in the grid.
func (G *Grid) Row(k int) ([]float64, bool) {
	i := sort.SearchFloat64s(G.KPoints, float64(k))
	if i >= len(G.KPoints) || G.KPoints[i] != float64(k) {
		return nil, false
	}
	return mat.Row(nil, i, G.E), true
}
