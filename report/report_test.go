/*
 * report_test.go, part of convergo.
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

package report

import (
	"path/filepath"
	"testing"

	conv "github.com/rmera/convergo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook(Te *testing.T) {
	T, err := conv.ReadFile("../test/Energy_ecut.dat", conv.ReadOptions{})
	require.NoError(Te, err)
	K, err := conv.Sweep(T, conv.KPoints, 1)
	require.NoError(Te, err)
	G, err := conv.Pivot(T)
	require.NoError(Te, err)
	W := &Workbook{Table: T, KPoint: K, Grid: G}
	name := filepath.Join(Te.TempDir(), "report.xlsx")
	require.NoError(Te, W.Write(name))

	f, err := excelize.OpenFile(name)
	require.NoError(Te, err)
	defer f.Close()
	assert.Equal(Te, []string{DataSheet, KPointSheet, SurfaceSheet}, f.GetSheetList())

	rows, err := f.GetRows(DataSheet)
	require.NoError(Te, err)
	assert.Len(Te, rows, 26)
	assert.Equal(Te, []string{"kpoints", "cutoff (Ry)", "energy (eV)"}, rows[0])
	assert.Equal(Te, "4", rows[1][0])

	rows, err = f.GetRows(KPointSheet)
	require.NoError(Te, err)
	assert.Len(Te, rows, 6)
	assert.Equal(Te, "converged", rows[5][3])

	v, err := f.GetCellValue(SurfaceSheet, "C2")
	require.NoError(Te, err)
	assert.Equal(Te, "-779.84688", v)
	v, err = f.GetCellValue(SurfaceSheet, "A6")
	require.NoError(Te, err)
	assert.Equal(Te, "12", v)
}

func TestWorkbookEmpty(Te *testing.T) {
	W := &Workbook{Table: &conv.Table{}}
	assert.Error(Te, W.Write(filepath.Join(Te.TempDir(), "r.xlsx")))
}
