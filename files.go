/*
 * files.go, part of convergo.
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
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//Guidance is printed along with parse errors.
const Guidance = "Ensure your file has three columns separated by a space and contains only data rows or comment rows starting with '#'."

//ReadOptions controls how a data file is split into fields.
//The zero value reads whitespace-separated columns with '#' comments.
type ReadOptions struct {
	//Delimiter separates the columns. Empty or any run of blanks (" ")
	//means that any amount of whitespace separates columns.
	Delimiter string
	//Comment starts a comment that runs to the end of the line. Defaults to '#'
	Comment byte
}

func (O ReadOptions) comment() byte {
	if O.Comment == 0 {
		return '#'
	}
	return O.Comment
}

func (O ReadOptions) split(line string) []string {
	if strings.TrimSpace(O.Delimiter) == "" {
		return strings.Fields(line)
	}
	fields := strings.Split(line, O.Delimiter)
	ret := fields[:0]
	for _, f := range fields {
		f = strings.TrimSpace(f)
		//repeated delimiters are taken as one, like repeated blanks.
		if f != "" {
			ret = append(ret, f)
		}
	}
	return ret
}

//zstdCloser wraps a *zstd.Decoder, which doesn't implement io.ReadCloser
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//decompressor picks a decompressing reader from the file extension.
//It returns nil for plain text files.
func decompressor(name string) func(io.Reader) (io.ReadCloser, error) {
	lname := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lname, ".zst"), strings.HasSuffix(lname, ".zstd"):
		return func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zstdCloser{d}, nil
		}
	case strings.HasSuffix(lname, ".gz"):
		return func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) }
	default:
		return nil
	}
}

//ReadFile reads the convergence data in the file name. Files ending in .zst or .gz
//are decompressed on the fly. It returns the table and nil, or nil and an error.
//A missing file gives an Error for which NotFound() is true.
func ReadFile(name string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(KindNotFound, name, fmt.Sprintf("Data file not found at '%s'. Please check the path.", name), "ReadFile", err)
		}
		return nil, newError(KindIO, name, err.Error(), "ReadFile", err)
	}
	defer f.Close()
	var in io.Reader = f
	if dec := decompressor(name); dec != nil {
		rc, err := dec(f)
		if err != nil {
			return nil, newError(KindIO, name, "Can't decompress file: "+err.Error(), "ReadFile", err)
		}
		defer rc.Close()
		in = rc
	}
	T, err := read(in, name, opts)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	return T, nil
}

//Read reads convergence data from r. Each data line must contain, in this order,
//the k-point grid index, the mesh cutoff and the total energy. Further columns are ignored.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	T, err := read(r, "", opts)
	return T, errDecorate(err, "Read")
}

func read(r io.Reader, name string, opts ReadOptions) (*Table, error) {
	T := &Table{Source: name, Records: make([]Record, 0, 64)}
	scanner := bufio.NewScanner(r)
	com := opts.comment()
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.IndexByte(line, com); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := opts.split(line)
		rec, err := parseRecord(fields)
		if err != nil {
			return nil, newError(KindParse, name, fmt.Sprintf("line %d: %s. %s", lineno, err.Error(), Guidance), "read", err)
		}
		T.Records = append(T.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, newError(KindIO, name, err.Error(), "read", err)
	}
	if len(T.Records) == 0 {
		return nil, newError(KindEmpty, name, "The loaded data table is empty.", "read")
	}
	return T, nil
}

func parseRecord(fields []string) (Record, error) {
	var R Record
	if len(fields) < 3 {
		return R, fmt.Errorf("expected 3 columns (kpoints cutoff energy), found %d", len(fields))
	}
	k, err := strconv.Atoi(fields[0])
	if err != nil {
		//some codes write the grid index as a float.
		kf, err2 := strconv.ParseFloat(fields[0], 64)
		if err2 != nil || kf != math.Trunc(kf) {
			return R, fmt.Errorf("invalid k-point index %q", fields[0])
		}
		k = int(kf)
	}
	R.KPoint = k
	if R.Cutoff, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return R, fmt.Errorf("invalid cutoff %q", fields[1])
	}
	if R.Energy, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return R, fmt.Errorf("invalid energy %q", fields[2])
	}
	//a NaN or Inf is what some codes print for a run that failed.
	if math.IsNaN(R.Energy) || math.IsInf(R.Energy, 0) {
		return R, fmt.Errorf("non-finite energy %q", fields[2])
	}
	return R, nil
}
