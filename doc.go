/*
 * doc.go, part of convergo.
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

/*Package conv reads and analyzes convergence tests for plane-wave/real-space DFT calculations,
where the total energy of a system is computed for several k-point grids and mesh cutoffs.


	**convergo Capabilities**


    Reads whitespace (or otherwise) delimited tables of k-point index, MeshCutoff (Ry) and
	total energy (eV), with '#' comments. zstd and gzip-compressed tables are read
	transparently.

    Sets up one-parameter convergence tests: the other parameter is fixed at its largest
	value, energies are given in meV relative to the most converged point, and the
	first point within a tolerance (1 meV by default) is reported.

    Pivots the whole table into a k-point x cutoff energy grid (a gonum mat.Dense), for
	surface plots. Incomplete or duplicated sweeps are rejected, never interpolated.

The plots themselves are produced by the convplot package, summary statistics by convstat
and spreadsheet reports by report. The commands convplot2d and convsurface put everything
together.*/
package conv
