/*
 * correlate_test.go, part of excimd.
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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//binPoints puts one point right at each sample of fiveSamples, with
//twist angles spanning [0,90).
func binPoints() []DescriptorPoint {
	//dominance per fiveSamples: s2, s1, s1, s2, s2
	return []DescriptorPoint{
		{Frame: 0, Time: 0, Value: 5, Secondary: 1},
		{Frame: 1, Time: 100, Value: 12, Secondary: 2},
		{Frame: 2, Time: 200, Value: 18, Secondary: 3},
		{Frame: 3, Time: 300, Value: 55, Secondary: 4},
		{Frame: 4, Time: 400, Value: 58, Secondary: 5},
	}
}

func TestBuildBinsCoverage(Te *testing.T) {
	series := fiveSamples(Te)
	bins := BuildBins(binPoints(), series, 30, 10, 0)
	//values 5,12,18 fall in [5,35), 55,58 in the last bin
	require.Len(Te, bins, 2)
	total := 0
	for _, b := range bins {
		total += b.Total
		assert.Equal(Te, b.Total, b.State1+b.State2)
		assert.InDelta(Te, 100.0, b.State1Pct+b.State2Pct, 1e-9)
	}
	assert.Equal(Te, len(binPoints()), total)
	first := bins[0]
	assert.Equal(Te, 3, first.Total)
	assert.Equal(Te, 2, first.State1)
	assert.Equal(Te, 1, first.State2)
	assert.InDelta(Te, 2.0, first.MeanSecondary, 1e-12)
	second := bins[1]
	assert.Equal(Te, 2, second.Total)
	assert.Equal(Te, 0, second.State1)
	//both members of the upper bin are state2-dominated, so there
	//is no cross-state pair
	assert.Nil(Te, second.Rep1)
	assert.Nil(Te, second.Rep2)
	assert.True(Te, math.IsNaN(second.Gap))
}

//The value sitting exactly at the top of the range lands in the last
//bin rather than opening a new one.
func TestBuildBinsUpperBoundary(Te *testing.T) {
	series := fiveSamples(Te)
	points := []DescriptorPoint{
		{Frame: 0, Time: 0, Value: 0},
		{Frame: 1, Time: 100, Value: 30},
		{Frame: 2, Time: 200, Value: 60},
	}
	bins := BuildBins(points, series, 30, 10, 0)
	require.Len(Te, bins, 3)
	last := bins[len(bins)-1]
	assert.Equal(Te, 1, last.Total)
	assert.Equal(Te, 60.0, last.Lo)
}

func TestDominanceTie(Te *testing.T) {
	samples := []*ExcitationSample{
		{Time: 0, E1: 4, Osc1: 0.3, E2: 4.5, Osc2: 0.3},
		{Time: 100, E1: 4, Osc1: 0.31, E2: 4.5, Osc2: 0.3},
	}
	series, err := NewExcitationSeries(samples)
	require.NoError(Te, err)
	bins := BuildBins([]DescriptorPoint{
		{Frame: 0, Time: 0, Value: 1},
		{Frame: 1, Time: 100, Value: 2},
	}, series, 10, 10, 0)
	require.Len(Te, bins, 1)
	//equal strengths resolve to the second state
	assert.Equal(Te, 1, bins[0].State2)
	assert.Equal(Te, 1, bins[0].State1)
}

//The representative pair has to beat every other cross-state pair in
//the bin.
func TestRepresentativePairMinimality(Te *testing.T) {
	samples := make([]*ExcitationSample, 6)
	//alternate dominance
	for i := range samples {
		o1, o2 := 0.5, 0.1
		if i%2 == 1 {
			o1, o2 = 0.1, 0.5
		}
		samples[i] = &ExcitationSample{Time: float64(i) * 10, E1: 4, Osc1: o1, E2: 4.5, Osc2: o2}
	}
	series, err := NewExcitationSeries(samples)
	require.NoError(Te, err)
	values := []float64{1.0, 9.0, 4.0, 4.5, 7.0, 2.0}
	points := make([]DescriptorPoint, 6)
	for i := range points {
		points[i] = DescriptorPoint{Frame: i, Time: float64(i) * 10, Value: values[i]}
	}
	bins := BuildBins(points, series, 10, 5, 0)
	require.Len(Te, bins, 1)
	b := bins[0]
	require.NotNil(Te, b.Rep1)
	require.NotNil(Te, b.Rep2)
	//closest cross pair is 4.0 (s1) against 4.5 (s2)
	assert.Equal(Te, 2, b.Rep1.Frame)
	assert.Equal(Te, 3, b.Rep2.Frame)
	assert.InDelta(Te, 0.5, b.Gap, 1e-12)
	for _, a := range []float64{1.0, 4.0, 7.0} {
		for _, c := range []float64{9.0, 4.5, 2.0} {
			assert.LessOrEqual(Te, b.Gap, math.Abs(a-c))
		}
	}
}

//Frames with no sample within the gap, or a non-finite strength, are
//dropped; with nothing left the result is empty, not an error.
func TestBuildBinsFiltering(Te *testing.T) {
	series := fiveSamples(Te)
	bins := BuildBins([]DescriptorPoint{
		{Frame: 0, Time: 5000, Value: 1},
		{Frame: 1, Time: -5000, Value: 2},
	}, series, 10, 50, 0)
	assert.Empty(Te, bins)
	bins = BuildBins(nil, series, 10, 50, 0)
	assert.Empty(Te, bins)
}

func TestCorrelatorPublication(Te *testing.T) {
	series := fiveSamples(Te)
	c := NewCorrelator(series, 30, 10, time.Second)
	assert.Empty(Te, c.Bins())
	built := c.Rebuild(binPoints())
	published := c.Bins()
	require.Len(Te, published, 2)
	//the published set is the one the rebuild returned, not a copy
	assert.Equal(Te, built, published)
	//a rebuild replaces the whole set
	c.Rebuild(nil)
	assert.Empty(Te, c.Bins())
	assert.Len(Te, published, 2)
}
