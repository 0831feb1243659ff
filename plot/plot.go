/*
 * plot.go, part of excimd.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
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
 * excimd is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

//Package plot renders absorption spectra and correlation charts to
//image files.
package plot

import (
	"fmt"
	"image/color"
	"math"

	excimd "github.com/rmera/excimd"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Error is the plotting error type. It fulfills excimd.Error.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err Error) Critical() bool { return true }

var (
	s1Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	s2Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//Spectrum writes a line plot of a synthesized spectrum to plotname
//(format taken from the extension: png, svg, pdf...). ceiling fixes
//the Y maximum, so every spectrum of a series shares the same scale;
//pass the series' cached display ceiling.
func Spectrum(axis, intensities []float64, ceiling float64, title, plotname string) error {
	if len(axis) != len(intensities) {
		return Error{fmt.Sprintf("axis and intensities differ in length: %d %d", len(axis), len(intensities)), []string{"Spectrum"}}
	}
	p := basicPlot(title, "Energy (eV)", "Intensity")
	pts := make(plotter.XYs, len(axis))
	for i := range axis {
		pts[i].X = axis[i]
		pts[i].Y = intensities[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return Error{err.Error(), []string{"plotter.NewLine", "Spectrum"}}
	}
	line.Color = s1Color
	p.Add(line)
	p.Y.Min = 0
	p.Y.Max = ceiling
	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname); err != nil {
		return Error{err.Error(), []string{"plot.Save", "Spectrum"}}
	}
	return nil
}

//Bins writes a grouped bar chart of the per-bin dominance
//percentages to plotname. Bin ranges become the X labels.
func Bins(bins []*excimd.CorrelationBin, title, plotname string) error {
	if len(bins) == 0 {
		return Error{"no bins to plot", []string{"Bins"}}
	}
	p := basicPlot(title, "Descriptor", "Dominance (%)")
	s1 := make(plotter.Values, len(bins))
	s2 := make(plotter.Values, len(bins))
	labels := make([]string, len(bins))
	for i, b := range bins {
		s1[i] = b.State1Pct
		s2[i] = b.State2Pct
		labels[i] = fmt.Sprintf("%.0f-%.0f", b.Lo, b.Hi)
	}
	w := vg.Points(15)
	bars1, err := plotter.NewBarChart(s1, w)
	if err != nil {
		return Error{err.Error(), []string{"plotter.NewBarChart", "Bins"}}
	}
	bars1.Color = s1Color
	bars1.Offset = -w / 2
	bars2, err := plotter.NewBarChart(s2, w)
	if err != nil {
		return Error{err.Error(), []string{"plotter.NewBarChart", "Bins"}}
	}
	bars2.Color = s2Color
	bars2.Offset = w / 2
	p.Add(bars1, bars2)
	p.Legend.Add("S1", bars1)
	p.Legend.Add("S2", bars2)
	p.Legend.Top = true
	p.NominalX(labels...)
	p.Y.Min = 0
	p.Y.Max = 100
	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname); err != nil {
		return Error{err.Error(), []string{"plot.Save", "Bins"}}
	}
	return nil
}

//Gaps writes the per-bin representative descriptor gaps as a bar
//chart, skipping bins without a pair.
func Gaps(bins []*excimd.CorrelationBin, title, plotname string) error {
	var vals plotter.Values
	var labels []string
	for _, b := range bins {
		if b.Rep1 == nil || b.Rep2 == nil || math.IsNaN(b.Gap) {
			continue
		}
		vals = append(vals, b.Gap)
		labels = append(labels, fmt.Sprintf("%.0f-%.0f", b.Lo, b.Hi))
	}
	if len(vals) == 0 {
		return Error{"no bins with a representative pair", []string{"Gaps"}}
	}
	p := basicPlot(title, "Descriptor", "Pair gap")
	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return Error{err.Error(), []string{"plotter.NewBarChart", "Gaps"}}
	}
	bars.Color = s1Color
	p.Add(bars)
	p.NominalX(labels...)
	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname); err != nil {
		return Error{err.Error(), []string{"plot.Save", "Gaps"}}
	}
	return nil
}
