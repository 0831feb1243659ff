/*
 * align.go, part of excimd.
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
	"sort"

	v3 "github.com/rmera/excimd/v3"
)

//AlignedSample is an excitation sample obtained for an arbitrary query
//time. Interpolated is true only when the sample was linearly
//interpolated between two measured samples; clamped or exact hits
//return the measured sample unchanged.
type AlignedSample struct {
	ExcitationSample
	Interpolated bool
}

//FindSample maps an arbitrary time (fs) to an excitation sample.
//Times at or outside the measured range clamp to the boundary sample.
//A time matching a measured sample exactly returns that sample. Any
//other time gets every primary field linearly interpolated between the
//bracketing samples; derived quantities (gap, total strength) are then
//recomputed from the interpolated primaries. FindSample is read-only,
//so concurrent calls are safe.
func (E *ExcitationSeries) FindSample(t float64) *AlignedSample {
	first := E.samples[0]
	last := E.samples[len(E.samples)-1]
	if t <= first.Time {
		return &AlignedSample{ExcitationSample: *first}
	}
	if t >= last.Time {
		return &AlignedSample{ExcitationSample: *last}
	}
	//first sample with Time >= t; i>=1 since t > first.Time
	i := sort.Search(len(E.samples), func(k int) bool { return E.samples[k].Time >= t })
	if E.samples[i].Time == t {
		return &AlignedSample{ExcitationSample: *E.samples[i]}
	}
	lo, hi := E.samples[i-1], E.samples[i]
	f := (t - lo.Time) / (hi.Time - lo.Time)
	ret := &AlignedSample{Interpolated: true}
	ret.Time = t
	ret.E1 = lerp(lo.E1, hi.E1, f)
	ret.Osc1 = lerp(lo.Osc1, hi.Osc1, f)
	ret.E2 = lerp(lo.E2, hi.E2, f)
	ret.Osc2 = lerp(lo.Osc2, hi.Osc2, f)
	ret.Dipole1 = lerpVec(lo.Dipole1, hi.Dipole1, f)
	ret.Dipole2 = lerpVec(lo.Dipole2, hi.Dipole2, f)
	return ret
}

func lerp(a, b, f float64) float64 {
	return a + f*(b-a)
}

//lerpVec interpolates two 1x3 vectors, or returns nil if either is
//missing.
func lerpVec(a, b *v3.Matrix, f float64) *v3.Matrix {
	if a == nil || b == nil {
		return nil
	}
	ret := v3.Zeros(1)
	ret.Sub(b, a)
	ret.Scale(f, ret)
	ret.Add(ret, a)
	return ret
}

//FindNearest returns the measured sample closest in time to t, or nil
//if the closest one is further than maxGap (fs) away. No interpolation
//is ever involved, which makes it the right lookup to label frames
//with measured excitation data.
func (E *ExcitationSeries) FindNearest(t, maxGap float64) *ExcitationSample {
	i := sort.Search(len(E.samples), func(k int) bool { return E.samples[k].Time >= t })
	best := -1
	bestGap := math.Inf(1)
	for _, k := range []int{i - 1, i} {
		if k < 0 || k >= len(E.samples) {
			continue
		}
		if gap := math.Abs(E.samples[k].Time - t); gap < bestGap {
			bestGap = gap
			best = k
		}
	}
	if best < 0 || bestGap > maxGap {
		return nil
	}
	return E.samples[best]
}
