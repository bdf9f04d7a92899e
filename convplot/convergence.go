/*
 * convergence.go, part of convergo.
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
	"image/color"
	"math"

	conv "github.com/rmera/convergo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	lineBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	tolRed   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	black    = color.RGBA{A: 255}
)

//Size of the 2D convergence plots.
const (
	ConvergenceWidth  = 8 * vg.Inch
	ConvergenceHeight = 5 * vg.Inch
)

func basicConvergencePlot(title string, A conv.Axis) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = A.Label()
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = "Relative Total Energy ΔE (meV)"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	grid := plotter.NewGrid()
	grid.Vertical.Dashes = dashes(2, 2)
	grid.Horizontal.Dashes = dashes(2, 2)
	grid.Vertical.Color = color.Gray{Y: 180}
	grid.Horizontal.Color = color.Gray{Y: 180}
	p.Add(grid)
	p.Legend.Top = true
	return p
}

//ConvergencePlot builds the plot for a one-parameter convergence test: the relative energies with markers,
//the tolerance band, the zero line and, if there is a converged point, a vertical marker at it.
func ConvergencePlot(S *conv.SweepResult) (*plot.Plot, error) {
	if S == nil || len(S.X) == 0 {
		return nil, fmt.Errorf("ConvergencePlot: Given nil data")
	}
	p := basicConvergencePlot(S.Title(), S.Axis)
	pts := make(plotter.XYs, len(S.X))
	for i := range pts {
		pts[i].X = S.X[i]
		pts[i].Y = S.DeltaMeV[i]
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = lineBlue
	line.LineStyle.Width = vg.Points(1.5)
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Color = lineBlue
	points.GlyphStyle.Radius = vg.Points(3)

	xmin, xmax := S.X[0], S.X[len(S.X)-1]
	tol := S.Tolerance
	upper, err := hline(xmin, xmax, tol, tolRed, 1, dashes(4, 2))
	if err != nil {
		return nil, err
	}
	lower, err := hline(xmin, xmax, -tol, tolRed, 1, dashes(4, 2))
	if err != nil {
		return nil, err
	}
	zero, err := hline(xmin, xmax, 0, black, 0.5, nil)
	if err != nil {
		return nil, err
	}
	p.Add(zero, upper, lower, line, points)
	p.Legend.Add(fmt.Sprintf("±%s meV Tolerance", conv.FormatValue(tol)), upper)

	if v, ok := S.ConvergedValue(); ok {
		ymin, ymax := yExtent(S.DeltaMeV, tol)
		vline, err := plotter.NewLine(plotter.XYs{{X: v, Y: ymin}, {X: v, Y: ymax}})
		if err != nil {
			return nil, err
		}
		vline.LineStyle.Color = black
		vline.LineStyle.Width = vg.Points(1.5)
		vline.LineStyle.Dashes = dashes(1, 2)
		mark, err := plotter.NewScatter(plotter.XYs{{X: v, Y: S.DeltaMeV[S.Converged]}})
		if err != nil {
			return nil, err
		}
		mark.GlyphStyle.Shape, _ = getShape(0)
		mark.GlyphStyle.Color = black
		mark.GlyphStyle.Radius = vg.Points(5)
		p.Add(vline, mark)
		p.Legend.Add("Converged at: "+conv.FormatValue(v), vline)
	}
	return p, nil
}

//Convergence produces a plot of the convergence test S and saves it in filename. The format
//is taken from the extension of filename (svg, png, pdf...).
func Convergence(S *conv.SweepResult, filename string) error {
	p, err := ConvergencePlot(S)
	if err != nil {
		return err
	}
	//here I  intentionally shadow err.
	if err := p.Save(ConvergenceWidth, ConvergenceHeight, filename); err != nil {
		return fmt.Errorf("Convergence: can't save %s: %w", filename, err)
	}
	return nil
}

func hline(xmin, xmax, y float64, c color.Color, width float64, d []vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: xmin, Y: y}, {X: xmax, Y: y}})
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(width)
	l.LineStyle.Dashes = d
	return l, nil
}

//yExtent returns a range that covers all the deltas and the tolerance band.
func yExtent(deltas []float64, tol float64) (float64, float64) {
	ymin, ymax := -tol, tol
	for _, v := range deltas {
		if math.IsNaN(v) {
			continue
		}
		ymin = math.Min(ymin, v)
		ymax = math.Max(ymax, v)
	}
	return ymin, ymax
}
