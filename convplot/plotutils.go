/*
 * plotutils.go, part of convergo.
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

//Some internal convenience functions.

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func dashes(on, off float64) []vg.Length {
	return []vg.Length{vg.Points(on), vg.Points(off)}
}

func getShape(tagged int) (draw.GlyphDrawer, error) {
	switch tagged {
	case 0:
		return draw.RingGlyph{}, nil
	case 1:
		return draw.PyramidGlyph{}, nil
	case 2:
		return draw.SquareGlyph{}, nil
	case 3:
		return draw.CrossGlyph{}, nil
	default:
		return draw.CircleGlyph{}, fmt.Errorf("Maximun number of taggable points is 4") // you can still ignore the error and will get just the regular glyph
	}
}

//energyColorMap returns the color map for energies between min and max.
//A flat range is widened, as the map can't be built for it.
func energyColorMap(min, max float64) palette.ColorMap {
	cm := moreland.Kindlmann()
	if max <= min {
		min, max = min-0.5, min+0.5
	}
	cm.SetMax(max)
	cm.SetMin(min)
	return cm
}

//shade scales the RGB components of c by f (0-1), keeping the alpha.
func shade(c color.Color, f float64) color.Color {
	if f > 1 {
		f = 1
	}
	if f < 0 {
		f = 0
	}
	r, g, b, a := c.RGBA()
	return color.RGBA64{R: uint16(float64(r) * f), G: uint16(float64(g) * f), B: uint16(float64(b) * f), A: uint16(a)}
}

func colorBarPlot(cm palette.ColorMap, label string) *plot.Plot {
	p := plot.New()
	bar := &plotter.ColorBar{ColorMap: cm, Vertical: true}
	p.Add(bar)
	p.HideX()
	p.Y.Label.Text = label
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Padding = 0
	return p
}

//saveWithColorBar draws main and, at its right, the color bar plot bar (as tall as half
//of the image) and saves the result to filename. The format is taken from the extension.
func saveWithColorBar(main, bar *plot.Plot, width, height vg.Length, filename string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if format == "" {
		format = "svg"
	}
	img, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return err
	}
	dc := draw.New(img)
	barw := width / 8
	main.Draw(draw.Crop(dc, 0, -barw, 0, 0))
	bar.Draw(draw.Crop(dc, width-barw, -barw/4, height/4, -height/4))
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err = img.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
