/*
 * summary_test.go, part of convergo.
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

package convstat

import (
	"bytes"
	"strings"
	"testing"

	conv "github.com/rmera/convergo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(Te *testing.T) {
	T, err := conv.ReadFile("../test/Energy_ecut.dat", conv.ReadOptions{})
	require.NoError(Te, err)
	S, err := Summarize(T)
	require.NoError(Te, err)
	assert.Equal(Te, 25, S.N)
	assert.Equal(Te, -779.92465, S.Min)
	assert.Equal(Te, -779.25291, S.Max)
	assert.Equal(Te, conv.Record{KPoint: 4, Cutoff: 150, Energy: -779.92465}, S.AtMin)
	assert.Equal(Te, conv.Record{KPoint: 12, Cutoff: 350, Energy: -779.25291}, S.AtMax)
	assert.InDelta(Te, 671.74, S.SpreadMeV, 1e-6)
	assert.True(Te, S.Mean > S.Min && S.Mean < S.Max)
	assert.True(Te, S.StdDev > 0)

	var b bytes.Buffer
	require.NoError(Te, S.Write(&b, false))
	assert.Equal(Te, "\n--- Data Summary ---\nMinimum Total Energy Found: -779.9247 eV\nMaximum Total Energy Found: -779.2529 eV\n", b.String())
	b.Reset()
	require.NoError(Te, S.Write(&b, true))
	assert.Contains(Te, b.String(), "Minimum at kpoints 4, cutoff 150 Ry")
}

func TestSummarizeSmall(Te *testing.T) {
	T, err := conv.Read(strings.NewReader("1 100 -2.0\n2 100 -1.0\n3 100 -3.0\n"), conv.ReadOptions{})
	require.NoError(Te, err)
	S, err := Summarize(T)
	require.NoError(Te, err)
	assert.Equal(Te, -2.0, S.Mean)
	assert.Equal(Te, -2.0, S.Median)
	assert.Equal(Te, 3, S.AtMin.KPoint)

	_, err = Summarize(&conv.Table{})
	assert.Error(Te, err)
}

//A zero record is a valid extreme, and a later record with the same energy doesn't replace it.
func TestSummarizeZeroRecord(Te *testing.T) {
	T := &conv.Table{Records: []conv.Record{
		{KPoint: 0, Cutoff: 0, Energy: 0},
		{KPoint: 1, Cutoff: 100, Energy: 0},
		{KPoint: 2, Cutoff: 100, Energy: -1},
		{KPoint: 3, Cutoff: 100, Energy: -1},
	}}
	S, err := Summarize(T)
	require.NoError(Te, err)
	assert.Equal(Te, conv.Record{}, S.AtMax)
	assert.Equal(Te, conv.Record{KPoint: 2, Cutoff: 100, Energy: -1}, S.AtMin)
}
