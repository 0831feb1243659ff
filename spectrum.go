/*
 * spectrum.go, part of excimd.
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

package excimd

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

//Defaults for Gaussian-broadened absorption spectra: the broadening
//width in eV, and the energy window and resolution of the axis.
const (
	DefaultGaussianWidth = 0.15
	DefaultEnergyMin     = 2.0
	DefaultEnergyMax     = 7.0
	DefaultEnergyPoints  = 1000
)

//Transition is one discrete electronic transition to be broadened.
type Transition struct {
	Energy float64 //eV
	Osc    float64 //oscillator strength
}

//EnergyAxis returns n evenly spaced energies covering [min,max].
func EnergyAxis(min, max float64, n int) []float64 {
	return floats.Span(make([]float64, n), min, max)
}

//Synthesize evaluates the Gaussian-broadened intensity of the given
//transitions over the energy axis:
//
//	I(E) = sum_k osc_k * exp(-(E-E_k)^2 / (2 w^2))
//
//Transitions with non-positive oscillator strength contribute nothing.
//The function is pure, concurrent calls are safe.
func Synthesize(axis []float64, transitions []Transition, width float64) []float64 {
	intens := make([]float64, len(axis))
	tw := 2 * width * width
	for _, tr := range transitions {
		if tr.Osc <= 0 {
			continue
		}
		for i, e := range axis {
			d := e - tr.Energy
			intens[i] += tr.Osc * math.Exp(-d*d/tw)
		}
	}
	return intens
}

//Spectrum synthesizes the absorption spectrum of one sample over the
//axis.
func Spectrum(axis []float64, s *ExcitationSample, width float64) []float64 {
	return Synthesize(axis, []Transition{{s.E1, s.Osc1}, {s.E2, s.Osc2}}, width)
}

//AverageSpectrum returns the spectrum averaged over every sample of
//the series, the usual presentation for an absorption band from a
//thermal ensemble of snapshots.
func (E *ExcitationSeries) AverageSpectrum(axis []float64, width float64) []float64 {
	total := make([]float64, len(axis))
	for _, s := range E.samples {
		floats.Add(total, Spectrum(axis, s, width))
	}
	floats.Scale(1/float64(len(E.samples)), total)
	return total
}

//ceilingBreaks are the allowed display ceilings, tried in order. A
//value above the last break snaps to its own integer ceiling.
var ceilingBreaks = []float64{0.1, 0.5, 1.0, 2.0, 5.0}

//DisplayCeiling returns the intensity ceiling used to keep a constant
//Y scale across every spectrum of the series: the largest single
//oscillator strength or synthesized peak over all samples, with 1.2
//headroom, snapped up to the nearest of 0.1, 0.5, 1, 2, 5 or the
//integer ceiling. The scan runs once per series and the result is
//cached, so concurrent callers are safe; the width of the first call
//is the one the cached value reflects.
func (E *ExcitationSeries) DisplayCeiling(width float64) float64 {
	E.ceilOnce.Do(func() {
		max := 0.0
		for _, s := range E.samples {
			for _, o := range []float64{s.Osc1, s.Osc2} {
				if o > max {
					max = o
				}
			}
			//the synthesized curve peaks at or near the transition
			//energies, where the two gaussians overlap
			for _, e := range []float64{s.E1, s.E2} {
				p := peakAt(e, s, width)
				if p > max {
					max = p
				}
			}
		}
		E.ceiling = snapCeiling(max * 1.2)
	})
	return E.ceiling
}

func peakAt(e float64, s *ExcitationSample, width float64) float64 {
	tw := 2 * width * width
	p := 0.0
	for _, tr := range []Transition{{s.E1, s.Osc1}, {s.E2, s.Osc2}} {
		if tr.Osc <= 0 {
			continue
		}
		d := e - tr.Energy
		p += tr.Osc * math.Exp(-d*d/tw)
	}
	return p
}

func snapCeiling(v float64) float64 {
	for _, b := range ceilingBreaks {
		if v <= b {
			return b
		}
	}
	return math.Ceil(v)
}
