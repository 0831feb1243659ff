/*
 * correlate.go, part of excimd.
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
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/stat"
)

//DescriptorPoint attaches a scalar geometric descriptor (say, a
//dihedral twist) to one trajectory frame, plus a secondary quantity
//averaged within each bin (say, a pyramidalization angle).
type DescriptorPoint struct {
	Frame     int
	Time      float64 //fs
	Value     float64
	Secondary float64
}

//CorrelationBin aggregates the frames whose descriptor falls in
//[Lo, Hi): how many are dominated by each excited state, and a
//representative pair of frames, one per dominant state, as close in
//descriptor as the bin allows. Rep1 or Rep2 is nil when the bin has no
//member dominated by that state, or when the pair search ran out of
//its time budget; Gap is NaN whenever the pair is incomplete.
type CorrelationBin struct {
	Lo            float64
	Hi            float64
	Total         int
	State1        int
	State2        int
	State1Pct     float64
	State2Pct     float64
	MeanSecondary float64
	Rep1          *DescriptorPoint
	Rep2          *DescriptorPoint
	Gap           float64
}

type binMember struct {
	point DescriptorPoint
	s1dom bool
}

//BuildBins correlates per-frame descriptors with the dominant excited
//state. Each point is matched to the nearest excitation sample within
//maxGap fs; unmatched points, and points whose sample carries a
//non-finite oscillator strength, are dropped without error. Surviving
//points go into contiguous fixed-width bins covering the observed
//descriptor range; the value at the upper boundary lands in the last
//bin, and empty bins are omitted. A frame is state1-dominated only if
//its first oscillator strength is strictly larger; ties count for
//state2. budget bounds the representative-pair searches (0 means no
//bound): on exhaustion the remaining bins get a nil pair instead of
//failing the pass. Zero surviving points yield an empty list, not an
//error.
func BuildBins(points []DescriptorPoint, series *ExcitationSeries, binWidth, maxGap float64, budget time.Duration) []*CorrelationBin {
	valid := make([]binMember, 0, len(points))
	min, max := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		s := series.FindNearest(p.Time, maxGap)
		if s == nil {
			continue
		}
		if !finite(s.Osc1) || !finite(s.Osc2) {
			continue
		}
		valid = append(valid, binMember{point: p, s1dom: s.Osc1 > s.Osc2})
		if p.Value < min {
			min = p.Value
		}
		if p.Value > max {
			max = p.Value
		}
	}
	if len(valid) == 0 {
		return []*CorrelationBin{}
	}
	last := int(math.Floor((max - min) / binWidth))
	byIndex := make(map[int][]binMember)
	for _, m := range valid {
		i := int(math.Floor((m.point.Value - min) / binWidth))
		if i > last {
			i = last
		}
		byIndex[i] = append(byIndex[i], m)
	}
	indexes := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	var deadline time.Time
	if budget > 0 {
		deadline = time.Now().Add(budget)
	}
	bins := make([]*CorrelationBin, 0, len(indexes))
	for _, i := range indexes {
		bins = append(bins, newBin(byIndex[i], min+float64(i)*binWidth, binWidth, deadline))
	}
	return bins
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func newBin(members []binMember, lo, width float64, deadline time.Time) *CorrelationBin {
	b := &CorrelationBin{Lo: lo, Hi: lo + width, Total: len(members), Gap: math.NaN()}
	secondary := make([]float64, len(members))
	var s1, s2 []*DescriptorPoint
	for i := range members {
		m := &members[i]
		secondary[i] = m.point.Secondary
		if m.s1dom {
			b.State1++
			s1 = append(s1, &m.point)
		} else {
			b.State2++
			s2 = append(s2, &m.point)
		}
	}
	b.State1Pct = 100 * float64(b.State1) / float64(b.Total)
	b.State2Pct = 100 * float64(b.State2) / float64(b.Total)
	b.MeanSecondary = stat.Mean(secondary, nil)
	b.Rep1, b.Rep2, b.Gap = representativePair(s1, s2, deadline)
	return b
}

//representativePair does the exhaustive cross scan for the pair of
//frames, one dominated by each state, closest in descriptor value.
//Bins are expected small, so O(n*m) is fine; the deadline guards the
//pathological case.
func representativePair(s1, s2 []*DescriptorPoint, deadline time.Time) (*DescriptorPoint, *DescriptorPoint, float64) {
	if len(s1) == 0 || len(s2) == 0 {
		return nil, nil, math.NaN()
	}
	var r1, r2 *DescriptorPoint
	best := math.Inf(1)
	for _, a := range s1 {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, nil, math.NaN()
		}
		for _, b := range s2 {
			if gap := math.Abs(a.Value - b.Value); gap < best {
				best = gap
				r1, r2 = a, b
			}
		}
	}
	return r1, r2, best
}

//Correlator owns the published bin set of one analysis. A rebuild
//assembles a complete new bin list and swaps it in atomically, so a
//reader calling Bins never sees a half-built result. Reads and
//rebuilds may run concurrently.
type Correlator struct {
	series   *ExcitationSeries
	binWidth float64
	maxGap   float64
	budget   time.Duration
	bins     atomic.Pointer[[]*CorrelationBin]
}

//NewCorrelator prepares a correlator against the given series. budget
//bounds each rebuild's representative-pair searches; 0 disables the
//bound.
func NewCorrelator(series *ExcitationSeries, binWidth, maxGap float64, budget time.Duration) *Correlator {
	c := &Correlator{series: series, binWidth: binWidth, maxGap: maxGap, budget: budget}
	empty := []*CorrelationBin{}
	c.bins.Store(&empty)
	return c
}

//Rebuild recomputes the full bin set from the given per-frame
//descriptors and publishes it, returning the new bins.
func (C *Correlator) Rebuild(points []DescriptorPoint) []*CorrelationBin {
	bins := BuildBins(points, C.series, C.binWidth, C.maxGap, C.budget)
	C.bins.Store(&bins)
	return bins
}

//Bins returns the last published bin set. The caller must not modify
//it.
func (C *Correlator) Bins() []*CorrelationBin {
	return *C.bins.Load()
}
