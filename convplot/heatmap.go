/*
 * heatmap.go, part of convergo.
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

package convplot

import (
	"fmt"

	conv "github.com/rmera/convergo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//gridXYZ adapts a conv.Grid to plotter.GridXYZ. Columns are cutoffs and rows k-points.
type gridXYZ struct {
	g *conv.Grid
}

func (G gridXYZ) Dims() (c, r int) {
	r, c = G.g.Dims()
	return c, r
}

func (G gridXYZ) Z(c, r int) float64 { return G.g.E.At(r, c) }
func (G gridXYZ) X(c int) float64    { return G.g.Cutoffs[c] }
func (G gridXYZ) Y(r int) float64    { return G.g.KPoints[r] }

//HeatMapPlot returns a top view of the energy grid as a heat map, and a plot
//with its color bar.
func HeatMapPlot(G *conv.Grid, title string) (*plot.Plot, *plot.Plot, error) {
	if G == nil {
		return nil, nil, fmt.Errorf("HeatMapPlot: Given nil data")
	}
	r, c := G.Dims()
	if r < 2 || c < 2 {
		return nil, nil, fmt.Errorf("HeatMapPlot: a heat map needs at least 2 k-points and 2 cutoffs, got %d and %d", r, c)
	}
	emin, emax := G.Range()
	cm := energyColorMap(emin, emax)
	h := plotter.NewHeatMap(gridXYZ{G}, cm.Palette(255))
	//keep the colors consistent with the color bar.
	h.Min, h.Max = cm.Min(), cm.Max()
	p := plot.New()
	if title == "" {
		title = "Total Energy over the convergence grid"
	}
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = conv.Cutoff.Label()
	p.Y.Label.Text = conv.KPoints.Label()
	p.Add(h)
	return p, colorBarPlot(cm, EnergyLabel), nil
}

//HeatMap renders a heat map of the energy grid G, with a color bar, into filename.
func HeatMap(G *conv.Grid, title, filename string) error {
	p, bar, err := HeatMapPlot(G, title)
	if err != nil {
		return err
	}
	if err := saveWithColorBar(p, bar, ConvergenceWidth, ConvergenceHeight, filename); err != nil {
		return fmt.Errorf("HeatMap: can't save %s: %w", filename, err)
	}
	return nil
}
