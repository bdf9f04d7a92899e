/*
 * files_test.go, part of convergo.
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
	"compress/gzip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testdir string = "test"

func TestReadFile(Te *testing.T) {
	T, err := ReadFile(filepath.Join(testdir, "Energy_ecut.dat"), ReadOptions{Delimiter: " "})
	require.NoError(Te, err)
	assert.Equal(Te, 25, T.Len())
	assert.Equal(Te, Record{KPoint: 4, Cutoff: 150, Energy: -779.92465}, T.Records[0])
	assert.Equal(Te, Record{KPoint: 12, Cutoff: 350, Energy: -779.25291}, T.Records[24])
	assert.Equal(Te, 12.0, T.Max(KPoints))
	assert.Equal(Te, 350.0, T.Max(Cutoff))
	assert.Equal(Te, []float64{150, 200, 250, 300, 350}, T.Distinct(Cutoff))
}

func TestReadComments(Te *testing.T) {
	in := "# header line\n\n   # indented comment\n  1   100   -100.0  # trailing\n2\t100\t-100.0008\n"
	T, err := Read(strings.NewReader(in), ReadOptions{})
	require.NoError(Te, err)
	require.Equal(Te, 2, T.Len())
	assert.Equal(Te, Record{KPoint: 2, Cutoff: 100, Energy: -100.0008}, T.Records[1])
}

func TestReadDelimiter(Te *testing.T) {
	in := "1,100,-100.0,extra\n2.0, 150.5 ,-100.5\n"
	T, err := Read(strings.NewReader(in), ReadOptions{Delimiter: ","})
	require.NoError(Te, err)
	require.Equal(Te, 2, T.Len())
	assert.Equal(Te, 2, T.Records[1].KPoint)
	assert.Equal(Te, 150.5, T.Records[1].Cutoff)
}

func TestReadNotFound(Te *testing.T) {
	_, err := ReadFile(filepath.Join(testdir, "nothere.dat"), ReadOptions{})
	require.Error(Te, err)
	var E Error
	require.True(Te, errors.As(err, &E))
	assert.True(Te, E.NotFound())
	assert.True(Te, E.Critical())
	assert.True(Te, errors.Is(err, fs.ErrNotExist))
	assert.Contains(Te, err.Error(), "Data file not found at")
	assert.Equal(Te, []string{"ReadFile"}, E.Decorate(""))
}

func TestReadParseError(Te *testing.T) {
	_, err := ReadFile(filepath.Join(testdir, "bad_column.dat"), ReadOptions{})
	require.Error(Te, err)
	assert.True(Te, IsKind(err, KindParse))
	assert.Contains(Te, err.Error(), "line 2")
	assert.Contains(Te, err.Error(), Guidance)
	var E Error
	require.True(Te, errors.As(err, &E))
	assert.Equal(Te, "read <- ReadFile", E.Trail())

	_, err = Read(strings.NewReader("1 100\n"), ReadOptions{})
	assert.True(Te, IsKind(err, KindParse))
	_, err = Read(strings.NewReader("1.5 100 -3\n"), ReadOptions{})
	assert.True(Te, IsKind(err, KindParse))
	for _, e := range []string{"NaN", "nan", "+Inf", "-inf"} {
		_, err = Read(strings.NewReader("4 200 -1\n4 200 "+e+"\n"), ReadOptions{})
		assert.True(Te, IsKind(err, KindParse), e)
		assert.Contains(Te, err.Error(), "line 2", e)
	}
}

//The not-found message names the file already, so it is shown only once.
func TestUserMessage(Te *testing.T) {
	name := filepath.Join(testdir, "nothere.dat")
	_, err := ReadFile(name, ReadOptions{})
	require.Error(Te, err)
	msg := UserMessage(err)
	assert.Equal(Te, fmt.Sprintf("Data file not found at '%s'. Please check the path.", name), msg)
	assert.Equal(Te, 1, strings.Count(msg, name))

	//parse messages don't carry the file name, so it is kept.
	name = filepath.Join(testdir, "bad_column.dat")
	_, err = ReadFile(name, ReadOptions{})
	require.Error(Te, err)
	msg = UserMessage(err)
	assert.True(Te, strings.HasPrefix(msg, name+": line 2"), msg)
	assert.Equal(Te, 1, strings.Count(msg, name))

	assert.Equal(Te, "plain", UserMessage(errors.New("plain")))
}

func TestReadEmpty(Te *testing.T) {
	_, err := Read(strings.NewReader("# nothing but comments\n\n"), ReadOptions{})
	require.Error(Te, err)
	assert.True(Te, IsKind(err, KindEmpty))
}

func TestReadCompressed(Te *testing.T) {
	raw, err := os.ReadFile(filepath.Join(testdir, "Energy_ecut.dat"))
	require.NoError(Te, err)
	dir := Te.TempDir()

	zname := filepath.Join(dir, "Energy_ecut.dat.zst")
	zf, err := os.Create(zname)
	require.NoError(Te, err)
	zw, err := zstd.NewWriter(zf, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	require.NoError(Te, err)
	_, err = zw.Write(raw)
	require.NoError(Te, err)
	require.NoError(Te, zw.Close())
	require.NoError(Te, zf.Close())

	gname := filepath.Join(dir, "Energy_ecut.dat.gz")
	gf, err := os.Create(gname)
	require.NoError(Te, err)
	gw := gzip.NewWriter(gf)
	_, err = gw.Write(raw)
	require.NoError(Te, err)
	require.NoError(Te, gw.Close())
	require.NoError(Te, gf.Close())

	for _, name := range []string{zname, gname} {
		T, err := ReadFile(name, ReadOptions{})
		require.NoError(Te, err, name)
		assert.Equal(Te, 25, T.Len(), name)
		assert.Equal(Te, name, T.Source)
	}
}
