/*
 * surface.go, part of convergo.
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
	"sort"

	conv "github.com/rmera/convergo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Default view of the surface plots, in degrees.
const (
	DefaultElevation = 20.0
	DefaultAzimuth   = -120.0
)

//Size of the surface plots.
const (
	SurfaceWidth  = 12 * vg.Inch
	SurfaceHeight = 8 * vg.Inch
)

//DefaultSurfaceTitle is the title used when none is given.
const DefaultSurfaceTitle = "3D Convergence Surface: BCC Fe Total Energy"

//EnergyLabel labels the energy axis and the color bar.
const EnergyLabel = "Total Energy (eV)"

//vec is a point in the normalized plot box, where each coordinate goes from -0.5 to 0.5.
type vec [3]float64

func (v vec) dot(w vec) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

func (v vec) sub(w vec) vec { return vec{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

func (v vec) cross(w vec) vec {
	return vec{v[1]*w[2] - v[2]*w[1], v[2]*w[0] - v[0]*w[2], v[0]*w[1] - v[1]*w[0]}
}

func (v vec) unit() vec {
	n := math.Sqrt(v.dot(v))
	if n == 0 {
		return v
	}
	return vec{v[0] / n, v[1] / n, v[2] / n}
}

//camera projects points of the box on the screen. right and up span the screen, and
//eye points from the box to the viewer, so larger eye components are closer.
type camera struct {
	right, up, eye vec
}

func newCamera(elevation, azimuth float64) camera {
	el := elevation * math.Pi / 180
	az := azimuth * math.Pi / 180
	return camera{
		right: vec{-math.Sin(az), math.Cos(az), 0},
		up:    vec{-math.Sin(el) * math.Cos(az), -math.Sin(el) * math.Sin(az), math.Cos(el)},
		eye:   vec{math.Cos(el) * math.Cos(az), math.Cos(el) * math.Sin(az), math.Sin(el)},
	}
}

func (C camera) project(v vec) (x, y float64) {
	return v.dot(C.right), v.dot(C.up)
}

func (C camera) depth(v vec) float64 {
	return v.dot(C.eye)
}

//scale maps values in [min, max] to [-0.5, 0.5].
type scale struct {
	min, max float64
}

func (s scale) norm(v float64) float64 {
	if s.max == s.min {
		return 0
	}
	return (v-s.min)/(s.max-s.min) - 0.5
}

func (s scale) denorm(f float64) float64 {
	return s.min + (f+0.5)*(s.max-s.min)
}

//Surface is a plot.Plotter that draws an energy grid as a shaded surface, with
//cutoffs along x, k-point indexes along y and energies along z, seen from a fixed angle.
//Each grid cell is filled with the color of its mean energy. No edges are drawn.
type Surface struct {
	Grid     *conv.Grid
	ColorMap palette.ColorMap

	//Elevation and Azimuth give the point of view, in degrees.
	Elevation, Azimuth float64

	//Labels for the x (cutoff), y (k-point) and z (energy) axes.
	Labels [3]string

	//AxisStyle is used for the edges of the box that hold the ticks.
	AxisStyle draw.LineStyle

	//Shading, between 0 and 1, is how much the faces that don't look
	//to the light are darkened. 0 gives flat colors.
	Shading float64

	cam    camera
	scales [3]scale
}

//NewSurface returns a surface for the grid G, with the default view and a color map
//spanning the energies in the grid. The grid needs at least 2 k-points and 2 cutoffs.
func NewSurface(G *conv.Grid) (*Surface, error) {
	if G == nil {
		return nil, fmt.Errorf("NewSurface: Given nil data")
	}
	r, c := G.Dims()
	if r < 2 || c < 2 {
		return nil, fmt.Errorf("NewSurface: a surface needs at least 2 k-points and 2 cutoffs, got %d and %d", r, c)
	}
	emin, emax := G.Range()
	S := &Surface{
		Grid:      G,
		ColorMap:  energyColorMap(emin, emax),
		Elevation: DefaultElevation,
		Azimuth:   DefaultAzimuth,
		Labels:    [3]string{conv.Cutoff.Label(), conv.KPoints.Label(), EnergyLabel},
		AxisStyle: draw.LineStyle{Color: color.Gray{Y: 60}, Width: vg.Points(0.75)},
		Shading:   0.35,
	}
	return S, nil
}

func (S *Surface) setup() {
	S.cam = newCamera(S.Elevation, S.Azimuth)
	G := S.Grid
	emin, emax := G.Range()
	S.scales = [3]scale{
		{G.Cutoffs[0], G.Cutoffs[len(G.Cutoffs)-1]},
		{G.KPoints[0], G.KPoints[len(G.KPoints)-1]},
		{emin, emax},
	}
}

//point returns the normalized point for the cell i (kpoint), j (cutoff).
func (S *Surface) point(i, j int) vec {
	return vec{
		S.scales[0].norm(S.Grid.Cutoffs[j]),
		S.scales[1].norm(S.Grid.KPoints[i]),
		S.scales[2].norm(S.Grid.E.At(i, j)),
	}
}

//corners of the normalized box.
func corners() []vec {
	ret := make([]vec, 0, 8)
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, z := range []float64{-0.5, 0.5} {
				ret = append(ret, vec{x, y, z})
			}
		}
	}
	return ret
}

//DataRange implements plot.DataRanger. The range is that of the projected box,
//slightly padded to leave room for the tick labels.
func (S *Surface) DataRange() (xmin, xmax, ymin, ymax float64) {
	S.setup()
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, c := range corners() {
		x, y := S.cam.project(c)
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
	}
	pad := 0.12
	return xmin - pad, xmax + pad, ymin - pad, ymax + pad
}

type quad struct {
	pts   [4]vec
	depth float64
	e     float64 //mean energy
}

//quads returns the cells of the surface sorted from the farthest to the closest one.
func (S *Surface) quads() []quad {
	r, c := S.Grid.Dims()
	ret := make([]quad, 0, (r-1)*(c-1))
	for i := 0; i < r-1; i++ {
		for j := 0; j < c-1; j++ {
			q := quad{pts: [4]vec{S.point(i, j), S.point(i, j+1), S.point(i+1, j+1), S.point(i+1, j)}}
			var center vec
			for _, p := range q.pts {
				center[0] += p[0] / 4
				center[1] += p[1] / 4
				center[2] += p[2] / 4
			}
			q.depth = S.cam.depth(center)
			q.e = (S.Grid.E.At(i, j) + S.Grid.E.At(i, j+1) + S.Grid.E.At(i+1, j+1) + S.Grid.E.At(i+1, j)) / 4
			ret = append(ret, q)
		}
	}
	sort.SliceStable(ret, func(a, b int) bool { return ret[a].depth < ret[b].depth })
	return ret
}

//brightness returns the shading factor for a face, from the angle between its normal
//and a light coming from the viewer's upper left.
func (S *Surface) brightness(q quad) float64 {
	if S.Shading <= 0 {
		return 1
	}
	n := q.pts[1].sub(q.pts[0]).cross(q.pts[3].sub(q.pts[0])).unit()
	light := vec{
		S.cam.eye[0] + S.cam.up[0] - S.cam.right[0],
		S.cam.eye[1] + S.cam.up[1] - S.cam.right[1],
		S.cam.eye[2] + S.cam.up[2] - S.cam.right[2],
	}.unit()
	return 1 - S.Shading*(1-math.Abs(n.dot(light)))
}

//Plot implements the plot.Plotter interface.
func (S *Surface) Plot(c draw.Canvas, plt *plot.Plot) {
	S.setup()
	trX, trY := plt.Transforms(&c)
	toCanvas := func(v vec) vg.Point {
		x, y := S.cam.project(v)
		return vg.Point{X: trX(x), Y: trY(y)}
	}
	S.drawBackAxes(&c, toCanvas)
	for _, q := range S.quads() {
		col, err := S.ColorMap.At(q.e)
		if err != nil {
			//only happens if the energy is out of the map's range, i.e. a user-given map.
			col = color.Gray{Y: 128}
		}
		poly := make([]vg.Point, 0, 4)
		for _, p := range q.pts {
			poly = append(poly, toCanvas(p))
		}
		c.FillPolygon(shade(col, S.brightness(q)), poly)
	}
	S.drawTicks(&c, plt, toCanvas)
}

//axisEdge is one edge of the box used as an axis.
type axisEdge struct {
	dim      int //0,1 or 2
	from, to vec
}

//edges picks the box edges that carry the ticks: the x and y axes run along the
//bottom face on the sides closer to the viewer, the z axis at the left-most vertical edge.
func (S *Surface) edges() [3]axisEdge {
	near := func(d int) float64 {
		if S.cam.eye[d] >= 0 {
			return 0.5
		}
		return -0.5
	}
	var ret [3]axisEdge
	ret[0] = axisEdge{0, vec{-0.5, near(1), -0.5}, vec{0.5, near(1), -0.5}}
	ret[1] = axisEdge{1, vec{near(0), -0.5, -0.5}, vec{near(0), 0.5, -0.5}}
	best := math.Inf(1)
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			if u, _ := S.cam.project(vec{x, y, 0}); u < best {
				best = u
				ret[2] = axisEdge{2, vec{x, y, -0.5}, vec{x, y, 0.5}}
			}
		}
	}
	return ret
}

//drawBackAxes draws the three box faces that are behind the surface as a light frame.
func (S *Surface) drawBackAxes(c *draw.Canvas, toCanvas func(vec) vg.Point) {
	sty := S.AxisStyle
	sty.Color = color.Gray{Y: 200}
	sty.Dashes = nil
	far := func(d int) float64 {
		if S.cam.eye[d] >= 0 {
			return -0.5
		}
		return 0.5
	}
	fx, fy := far(0), far(1)
	lines := [][]vg.Point{
		{toCanvas(vec{-0.5, -0.5, -0.5}), toCanvas(vec{0.5, -0.5, -0.5}), toCanvas(vec{0.5, 0.5, -0.5}), toCanvas(vec{-0.5, 0.5, -0.5}), toCanvas(vec{-0.5, -0.5, -0.5})},
		{toCanvas(vec{fx, -0.5, -0.5}), toCanvas(vec{fx, -0.5, 0.5}), toCanvas(vec{fx, 0.5, 0.5}), toCanvas(vec{fx, 0.5, -0.5})},
		{toCanvas(vec{-0.5, fy, -0.5}), toCanvas(vec{-0.5, fy, 0.5}), toCanvas(vec{0.5, fy, 0.5}), toCanvas(vec{0.5, fy, -0.5})},
	}
	c.StrokeLines(sty, lines...)
}

//drawTicks draws the axis edges with their tick labels and axis labels. Labels are pushed
//away from the center of the box.
func (S *Surface) drawTicks(c *draw.Canvas, plt *plot.Plot, toCanvas func(vec) vg.Point) {
	center := toCanvas(vec{0, 0, 0})
	outward := func(p vg.Point, d vg.Length) vg.Point {
		dx, dy := float64(p.X-center.X), float64(p.Y-center.Y)
		n := math.Hypot(dx, dy)
		if n == 0 {
			return p
		}
		return vg.Point{X: p.X + vg.Length(dx/n)*d, Y: p.Y + vg.Length(dy/n)*d}
	}
	tsty := plt.X.Tick.Label
	tsty.XAlign = draw.XCenter
	tsty.YAlign = draw.YCenter
	lsty := plt.X.Label.TextStyle
	lsty.XAlign = draw.XCenter
	lsty.YAlign = draw.YCenter
	for _, e := range S.edges() {
		c.StrokeLine2(S.AxisStyle, toCanvas(e.from).X, toCanvas(e.from).Y, toCanvas(e.to).X, toCanvas(e.to).Y)
		sc := S.scales[e.dim]
		for _, t := range (plot.DefaultTicks{}).Ticks(sc.min, sc.max) {
			if t.IsMinor() || t.Value < sc.min || t.Value > sc.max {
				continue
			}
			p := e.from
			p[e.dim] = sc.norm(t.Value)
			if sc.max == sc.min {
				p[e.dim] = 0
			}
			c.FillText(tsty, outward(toCanvas(p), vg.Points(14)), t.Label)
		}
		mid := e.from
		mid[e.dim] = 0
		c.FillText(lsty, outward(toCanvas(mid), vg.Points(40)), S.Labels[e.dim])
	}
}

//SurfacePlot returns a plot with the surface for G, and a plot with the color bar for it.
func SurfacePlot(G *conv.Grid, title string) (*plot.Plot, *plot.Plot, error) {
	S, err := NewSurface(G)
	if err != nil {
		return nil, nil, err
	}
	if title == "" {
		title = DefaultSurfaceTitle
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.HideAxes()
	p.Add(S)
	return p, colorBarPlot(S.ColorMap, EnergyLabel), nil
}

//SurfaceFile renders the energy surface for G, with a color bar, into filename.
func SurfaceFile(G *conv.Grid, title, filename string) error {
	p, bar, err := SurfacePlot(G, title)
	if err != nil {
		return err
	}
	if err := saveWithColorBar(p, bar, SurfaceWidth, SurfaceHeight, filename); err != nil {
		return fmt.Errorf("SurfaceFile: can't save %s: %w", filename, err)
	}
	return nil
}
