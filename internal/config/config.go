/*
 * config.go, part of convergo.
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

//Package config gathers the settings of the convergo commands from
//command-line flags, environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	conv "github.com/rmera/convergo"
	"github.com/spf13/pflag"
)

//Defaults for a SIESTA convergence run in the current directory.
const (
	DefaultDataFile  = "Energy_ecut.dat"
	DefaultDelimiter = " "
	DefaultEnvFile   = ".env"
)

//Environment variables read by Load.
const (
	EnvDataFile  = "CONVERGO_DATA_FILE"
	EnvDelimiter = "CONVERGO_DELIMITER"
	EnvTolerance = "CONVERGO_TOLERANCE"
	EnvOutDir    = "CONVERGO_OUTDIR"
	EnvShow      = "CONVERGO_SHOW"
	EnvXLSX      = "CONVERGO_XLSX"
	EnvSurface   = "CONVERGO_SURFACE"
	EnvHeatMap   = "CONVERGO_HEATMAP"
)

//Config holds the settings for one run.
type Config struct {
	DataFile  string
	Delimiter string
	Tolerance float64 //meV
	OutDir    string
	Show      bool   //open the plots with the system viewer
	XLSX      string //report workbook, not written if empty
	Surface   string //surface plot file, a temporary file if empty
	HeatMap   string //heat map file, not written if empty
	Title     string //surface plot title
}

//Default returns the default configuration. Plots are shown once saved.
func Default() Config {
	return Config{
		DataFile:  DefaultDataFile,
		Delimiter: DefaultDelimiter,
		Tolerance: conv.DefaultTolerance,
		OutDir:    ".",
		Show:      true,
	}
}

//ReadOptions returns the options for reading the data file.
func (C Config) ReadOptions() conv.ReadOptions {
	return conv.ReadOptions{Delimiter: C.Delimiter}
}

//Load returns the configuration before the command line is parsed. Values are taken, from lowest
//to highest precedence, from the defaults, the envfile (if it exists) and the environment.
//Flags bound with Bind on the result override all of them.
func Load(envfile string) (Config, error) {
	C := Default()
	if envfile != "" {
		//godotenv never overrides variables already in the environment.
		if err := godotenv.Load(envfile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return C, fmt.Errorf("config: reading %s: %w", envfile, err)
		}
	}
	if err := C.fromEnv(); err != nil {
		return C, err
	}
	return C, nil
}

//Bind registers the command-line flags in fs, with the current values of C as defaults,
//so parsing fs writes the flags given into C.
//surface adds the flags that only make sense for the surface command.
func Bind(fs *pflag.FlagSet, C *Config, surface bool) {
	fs.StringVarP(&C.DataFile, "file", "f", C.DataFile, "Data file with kpoints, cutoff and energy columns. .zst and .gz files are decompressed")
	fs.StringVarP(&C.Delimiter, "delimiter", "d", C.Delimiter, "Column delimiter. A blank means any whitespace")
	fs.Float64Var(&C.Tolerance, "tol", C.Tolerance, "Convergence tolerance, in meV")
	fs.StringVar(&C.OutDir, "outdir", C.OutDir, "Directory for the plots")
	fs.BoolVar(&C.Show, "show", C.Show, "Open the plots with the system viewer (--show=false to only save them)")
	fs.StringVar(&C.XLSX, "xlsx", C.XLSX, "Also write a spreadsheet report to this file")
	if surface {
		fs.StringVar(&C.Title, "title", C.Title, "Title of the surface plot")
		fs.StringVarP(&C.Surface, "output", "o", C.Surface, "File for the surface plot. If not given, a temporary file is written")
		fs.StringVar(&C.HeatMap, "heatmap", C.HeatMap, "Also write a heat map of the energy grid to this file")
	}
}

//Validate checks the values that can't be checked while parsing.
func (C Config) Validate() error {
	if C.Tolerance <= 0 {
		return fmt.Errorf("config: tolerance must be positive, got %g", C.Tolerance)
	}
	return nil
}

func (C *Config) fromEnv() error {
	str := func(key string, dest *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dest = v
		}
	}
	str(EnvDataFile, &C.DataFile)
	str(EnvDelimiter, &C.Delimiter)
	str(EnvOutDir, &C.OutDir)
	str(EnvXLSX, &C.XLSX)
	str(EnvSurface, &C.Surface)
	str(EnvHeatMap, &C.HeatMap)
	if v := strings.TrimSpace(os.Getenv(EnvTolerance)); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", EnvTolerance, v, err)
		}
		C.Tolerance = t
	}
	if v := strings.TrimSpace(os.Getenv(EnvShow)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", EnvShow, v, err)
		}
		C.Show = b
	}
	return nil
}
