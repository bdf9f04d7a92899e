/*
 * report.go, part of convergo.
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

//Package report writes convergence tests to spreadsheet workbooks.
package report

import (
	"fmt"

	conv "github.com/rmera/convergo"
	"github.com/xuri/excelize/v2"
)

//Sheet names in the workbook.
const (
	DataSheet    = "data"
	KPointSheet  = "kpoint_sweep"
	CutoffSheet  = "cutoff_sweep"
	SurfaceSheet = "surface"
)

//Workbook collects what goes into the report. Only Table is required;
//nil sweeps or grid just leave their sheets out.
type Workbook struct {
	Table  *conv.Table
	KPoint *conv.SweepResult
	Cutoff *conv.SweepResult
	Grid   *conv.Grid
}

//Write saves the workbook W to path, as an xlsx file.
func (W *Workbook) Write(path string) error {
	if W == nil || W.Table.Len() == 0 {
		return fmt.Errorf("report.Write: Given nil data")
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return fmt.Errorf("report.Write: %w", err)
	}
	rows := make([][]interface{}, 0, W.Table.Len())
	for _, r := range W.Table.Records {
		rows = append(rows, []interface{}{r.KPoint, r.Cutoff, r.Energy})
	}
	if err := writeRows(f, DataSheet, []string{"kpoints", "cutoff (Ry)", "energy (eV)"}, rows); err != nil {
		return err
	}
	for _, s := range []struct {
		name string
		sw   *conv.SweepResult
	}{{KPointSheet, W.KPoint}, {CutoffSheet, W.Cutoff}} {
		if s.sw == nil {
			continue
		}
		if err := writeSweep(f, s.name, s.sw); err != nil {
			return err
		}
	}
	if W.Grid != nil {
		if err := writeGrid(f, SurfaceSheet, W.Grid); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report.Write: can't save %s: %w", path, err)
	}
	return nil
}

func writeSweep(f *excelize.File, sheet string, S *conv.SweepResult) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("report.writeSweep: %w", err)
	}
	rows := make([][]interface{}, 0, len(S.Records))
	for i, r := range S.Records {
		mark := ""
		if i == S.Converged {
			mark = "converged"
		}
		rows = append(rows, []interface{}{S.X[i], r.Energy, S.DeltaMeV[i], mark})
	}
	header := []string{S.Axis.String(), "energy (eV)", "delta (meV)", fmt.Sprintf("tolerance %s meV", conv.FormatValue(S.Tolerance))}
	return writeRows(f, sheet, header, rows)
}

//writeGrid writes the pivot table: one row per k-point, one column per cutoff.
func writeGrid(f *excelize.File, sheet string, G *conv.Grid) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("report.writeGrid: %w", err)
	}
	header := make([]string, 0, len(G.Cutoffs)+1)
	header = append(header, "kpoints \\ cutoff")
	for _, c := range G.Cutoffs {
		header = append(header, conv.FormatValue(c))
	}
	rows := make([][]interface{}, 0, len(G.KPoints))
	for i, k := range G.KPoints {
		row := make([]interface{}, 0, len(G.Cutoffs)+1)
		row = append(row, k)
		for j := range G.Cutoffs {
			row = append(row, G.E.At(i, j))
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheet, header, rows)
}

func writeRows(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("report: writing header of %s: %w", sheet, err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("report: writing %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
