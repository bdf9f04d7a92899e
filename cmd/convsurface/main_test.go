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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdir = "../../test"

func TestRun(Te *testing.T) {
	dir := Te.TempDir()
	var out bytes.Buffer
	surf := filepath.Join(dir, "surface.svg")
	hm := filepath.Join(dir, "heatmap.svg")
	xlsx := filepath.Join(dir, "report.xlsx")
	status := run([]string{"-f", filepath.Join(testdir, "Energy_ecut.dat"), "-o", surf, "--heatmap", hm, "--xlsx", xlsx, "--show=false"}, &out)
	require.Equal(Te, 0, status, out.String())
	for _, name := range []string{surf, hm, xlsx} {
		_, err := os.Stat(name)
		assert.NoError(Te, err, name)
	}
	assert.Contains(Te, out.String(), "Minimum Total Energy Found: -779.9247 eV")
	assert.Contains(Te, out.String(), "Maximum Total Energy Found: -779.2529 eV")
}

//Incomplete or duplicated grids abort the run before anything is written.
func TestRunBadGrid(Te *testing.T) {
	for _, f := range []string{"incomplete.dat", "duplicate.dat", "nothere.dat"} {
		dir := Te.TempDir()
		var out bytes.Buffer
		surf := filepath.Join(dir, "surface.svg")
		status := run([]string{"-f", filepath.Join(testdir, f), "-o", surf, "--show=false"}, &out)
		assert.Equal(Te, 1, status, f)
		_, err := os.Stat(surf)
		assert.True(Te, os.IsNotExist(err), f)
	}
}

//Without an output file, the temporary surface is removed if nobody is going to look at it.
func TestRunTemporarySurface(Te *testing.T) {
	tmp := Te.TempDir()
	Te.Setenv("TMPDIR", tmp)
	var out bytes.Buffer
	status := run([]string{"-f", filepath.Join(testdir, "Energy_ecut.dat"), "--show=false"}, &out)
	require.Equal(Te, 0, status, out.String())
	assert.Contains(Te, out.String(), "Surface plot written to "+tmp)
	left, err := filepath.Glob(filepath.Join(tmp, "convergence_surface_*.svg"))
	require.NoError(Te, err)
	assert.Empty(Te, left)
}

func TestRunBadFlags(Te *testing.T) {
	var out bytes.Buffer
	assert.Equal(Te, 2, run([]string{"--nosuchflag"}, &out))
	assert.Equal(Te, 2, run([]string{"--tol", "-2"}, &out))
}
