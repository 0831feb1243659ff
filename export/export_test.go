/*
 * export_test.go, part of excimd.
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

package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	excimd "github.com/rmera/excimd"
	v3 "github.com/rmera/excimd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData(Te *testing.T) (*excimd.FrameStore, *excimd.ExcitationSeries) {
	atoms := []*excimd.Atom{
		excimd.NewAtom("C", 0),
		excimd.NewAtom("N", 1),
	}
	store, err := excimd.NewFrameStore(atoms)
	require.NoError(Te, err)
	for i := 0; i < 3; i++ {
		d := 0.01 * float64(i)
		coords, err := v3.NewMatrix([]float64{0, 0, d, 0, 0, 1.3 + d})
		require.NoError(Te, err)
		require.NoError(Te, store.AppendFrame(coords, 0.5))
	}
	series, err := excimd.NewExcitationSeries([]*excimd.ExcitationSample{
		{Time: 0, E1: 4.1, Osc1: 0.2, E2: 4.6, Osc2: 0.1},
		{Time: 1, E1: 4.2, Osc1: 0.1, E2: 4.7, Osc2: 0.3},
	})
	require.NoError(Te, err)
	return store, series
}

func TestSessionRoundTrip(Te *testing.T) {
	store, series := testData(Te)
	bins := excimd.BuildBins([]excimd.DescriptorPoint{
		{Frame: 0, Time: 0, Value: 10, Secondary: 1},
		{Frame: 2, Time: 1, Value: 12, Secondary: 2},
	}, series, 5, 1, 0)
	require.Len(Te, bins, 1)
	s := NewSession(store, series, bins, 0.5, 0)
	name := filepath.Join(Te.TempDir(), "session.json.zst")
	require.NoError(Te, s.Write(name))

	got, err := Read(name)
	require.NoError(Te, err)
	assert.Equal(Te, s.Formula, got.Formula)
	assert.Equal(Te, 0.5, got.Ceiling)
	require.Len(Te, got.Frames, 3)
	assert.Equal(Te, s.Frames[2].Coords, got.Frames[2].Coords)
	require.Len(Te, got.Bins, 1)
	require.NotNil(Te, got.Bins[0].Gap)
	assert.InDelta(Te, 2.0, *got.Bins[0].Gap, 1e-9)

	store2, err := got.FrameStore()
	require.NoError(Te, err)
	assert.Equal(Te, store.Len(), store2.Len())
	assert.Equal(Te, store.Frame(1).Time, store2.Frame(1).Time)
	series2, err := got.Series()
	require.NoError(Te, err)
	assert.Equal(Te, series.Len(), series2.Len())
}

func TestSessionDownsample(Te *testing.T) {
	store, series := testData(Te)
	s := NewSession(store, series, nil, 1.0, 2)
	assert.Len(Te, s.Frames, 2)
	assert.Empty(Te, s.Bins)
}

func TestExcitationCSV(Te *testing.T) {
	_, series := testData(Te)
	var buf bytes.Buffer
	require.NoError(Te, ExcitationCSV(&buf, series))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(Te, lines, 3)
	assert.True(Te, strings.HasPrefix(lines[0], "time_fs,"))
	//gap of the first sample is 0.5 eV
	assert.Contains(Te, lines[1], "0.500000")
}

func TestBinCSV(Te *testing.T) {
	_, series := testData(Te)
	bins := excimd.BuildBins([]excimd.DescriptorPoint{
		{Frame: 0, Time: 0, Value: 10, Secondary: 1},
	}, series, 5, 1, 0)
	require.Len(Te, bins, 1)
	var buf bytes.Buffer
	require.NoError(Te, BinCSV(&buf, bins))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(Te, lines, 2)
	//single-state bin, so the pair fields stay empty
	assert.True(Te, strings.HasSuffix(lines[1], ",,,"))
}
