/*
 * main_test.go, part of convergo.
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

package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	conv "github.com/rmera/convergo"
	"github.com/rmera/convergo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdir = "../../test"

//captureLog sends the log output to a buffer until the test ends.
func captureLog(Te *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	Te.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	var out bytes.Buffer
	xlsx := filepath.Join(dir, "report.xlsx")
	status := run([]string{"-f", filepath.Join(testdir, "Energy_ecut.dat"), "--outdir", dir, "--xlsx", xlsx, "--show=false"}, &out)
	require.Equal(Te, 0, status, out.String())
	for _, name := range []string{"convergence_kpoint_350Ry.svg", "convergence_cutoff_12k.svg", "report.xlsx"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(Te, err, name)
	}
	assert.Contains(Te, out.String(), "--- k-point Converged ---")
	assert.Contains(Te, out.String(), "Converged value (within 1 meV): 350")
}

func TestRunSkipped(Te *testing.T) {
	dir := Te.TempDir()
	var out bytes.Buffer
	status := run([]string{"--file", filepath.Join(testdir, "single_cutoff.dat"), "--outdir", dir, "--show=false"}, &out)
	require.Equal(Te, 0, status)
	assert.Contains(Te, out.String(), "Skipping MeshCutoff plot: Not enough unique cutoff values at the highest k-point (6).")
	files, err := os.ReadDir(dir)
	require.NoError(Te, err)
	require.Len(Te, files, 1)
	assert.Equal(Te, "convergence_kpoint_300Ry.svg", files[0].Name())
}

func TestRunErrors(Te *testing.T) {
	logs := captureLog(Te)
	var out bytes.Buffer
	missing := filepath.Join(testdir, "nothere.dat")
	assert.Equal(Te, 1, run([]string{"-f", missing, "--show=false"}, &out))
	assert.Equal(Te, 1, strings.Count(logs.String(), missing), logs.String())
	assert.Contains(Te, logs.String(), "Error: Data file not found at")
	assert.Equal(Te, 1, run([]string{"-f", filepath.Join(testdir, "bad_column.dat"), "--show=false"}, &out))
	assert.Equal(Te, 2, run([]string{"--nosuchflag"}, &out))
	assert.Equal(Te, 2, run([]string{"--tol", "0"}, &out))
	assert.Equal(Te, 2, run([]string{"stray-argument"}, &out))
}

//A sweep that never gets within the tolerance is still plotted, with a warning.
func TestPlotSweepNotConverged(Te *testing.T) {
	logs := captureLog(Te)
	S := &conv.SweepResult{
		Axis:      conv.Cutoff,
		Fixed:     8,
		Records:   []conv.Record{{KPoint: 8, Cutoff: 100, Energy: -10.010}, {KPoint: 8, Cutoff: 200, Energy: -10.005}, {KPoint: 8, Cutoff: 300, Energy: -10.0}},
		X:         []float64{100, 200, 300},
		DeltaMeV:  []float64{-10, -5, 0},
		Tolerance: 1,
		Converged: -1,
	}
	C := config.Default()
	C.OutDir = Te.TempDir()
	var out bytes.Buffer
	name, err := plotSweep(S, C, &out)
	require.NoError(Te, err)
	assert.Equal(Te, filepath.Join(C.OutDir, "convergence_cutoff_8k.svg"), name)
	assert.Contains(Te, logs.String(), "Warning: Convergence (1 meV) not reached in the tested range for MeshCutoff.")
	assert.NotContains(Te, out.String(), "Converged ---")
	assert.Contains(Te, out.String(), "Successfully saved plot as "+name)
}
