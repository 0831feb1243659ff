/*
 * excitation.go, part of excimd.
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
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	v3 "github.com/rmera/excimd/v3"
	"gonum.org/v1/gonum/stat"
)

//Default timing for excitation calculations run on snapshots taken
//from an equilibrated trajectory: the first calculation corresponds to
//5 ps of equilibration, and calculations are 2 fs apart. All times in
//excimd are fs.
const (
	DefaultEquilibration      = 5000.0
	DefaultExcitationInterval = 2.0
)

//ExcitationSample holds one excited-state calculation: the energies
//(eV) and oscillator strengths of the two lowest transitions, at the
//given simulation time (fs). The transition dipoles are optional and
//nil when not available.
type ExcitationSample struct {
	Time    float64
	E1      float64
	Osc1    float64
	E2      float64
	Osc2    float64
	Dipole1 *v3.Matrix
	Dipole2 *v3.Matrix
}

//Gap returns the S2-S1 energy gap. It is always derived from the
//current energies, never stored.
func (S *ExcitationSample) Gap() float64 {
	return S.E2 - S.E1
}

//TotalOsc returns the summed oscillator strength of both transitions.
func (S *ExcitationSample) TotalOsc() float64 {
	return S.Osc1 + S.Osc2
}

//Dominant returns true if the first state carries strictly more
//oscillator strength than the second. On a tie the second state wins.
func (S *ExcitationSample) Dominant() bool {
	return S.Osc1 > S.Osc2
}

//ExcitationSeries is a time-ordered set of excitation samples. It is
//built once by a reader or by NewExcitationSeries and read-only
//afterward, so concurrent queries need no locking.
type ExcitationSeries struct {
	samples []*ExcitationSample
	//display ceiling cache, see spectrum.go. A reload builds a new
	//series, which resets the cache.
	ceilOnce sync.Once
	ceiling  float64
}

//NewExcitationSeries builds a series from already-assembled samples.
//Samples must come strictly ordered in time; out-of-order or duplicate
//timestamps mean the caller mixed up its sources, which is reported as
//a critical error. Rows with non-finite energies or oscillator
//strengths are dropped, they don't abort the load. An input with zero
//surviving samples returns ErrEmptySeries.
func NewExcitationSeries(samples []*ExcitationSample) (*ExcitationSeries, error) {
	kept := make([]*ExcitationSample, 0, len(samples))
	for _, s := range samples {
		if !finiteSample(s) {
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return nil, CError{ErrEmptySeries, []string{"NewExcitationSeries"}}
	}
	for i := 1; i < len(kept); i++ {
		if kept[i].Time <= kept[i-1].Time {
			return nil, CError{fmt.Sprintf("%s: samples not strictly time-ordered at t=%.2f", ErrDataShape, kept[i].Time), []string{"NewExcitationSeries"}}
		}
	}
	return &ExcitationSeries{samples: kept}, nil
}

func finiteSample(s *ExcitationSample) bool {
	for _, v := range []float64{s.Time, s.E1, s.Osc1, s.E2, s.Osc2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

//Len returns the number of samples in the series.
func (E *ExcitationSeries) Len() int {
	return len(E.samples)
}

//Sample returns the ith sample. It panics if the index is out of range.
func (E *ExcitationSeries) Sample(i int) *ExcitationSample {
	if i >= len(E.samples) || i < 0 {
		panic(fmt.Sprintf("ExcitationSeries: Sample requested (%d) out of range", i))
	}
	return E.samples[i]
}

//Samples returns the underlying sample slice. The caller must not
//modify it.
func (E *ExcitationSeries) Samples() []*ExcitationSample {
	return E.samples
}

//TimeRange returns the times of the first and last samples.
func (E *ExcitationSeries) TimeRange() (float64, float64) {
	return E.samples[0].Time, E.samples[len(E.samples)-1].Time
}

//ReadDatSeries builds a series from the 2-column (energy, oscillator
//strength) plain-text files produced for the S1 and S2 states, one row
//per snapshot. failname is the optional list of snapshot indexes whose
//calculation failed, one integer per line; pass "" if there is none.
//Row i gets time equilibration + i*interval. Both files must have the
//same number of rows.
func ReadDatSeries(s1name, s2name, failname string, equilibration, interval float64) (*ExcitationSeries, error) {
	s1, err := readDatFile(s1name)
	if err != nil {
		return nil, errDecorate(err, "ReadDatSeries")
	}
	s2, err := readDatFile(s2name)
	if err != nil {
		return nil, errDecorate(err, "ReadDatSeries")
	}
	if len(s1) != len(s2) {
		return nil, shapeError("ReadDatSeries", len(s1), len(s2))
	}
	failed, err := readFailList(failname)
	if err != nil {
		return nil, errDecorate(err, "ReadDatSeries")
	}
	samples := make([]*ExcitationSample, 0, len(s1))
	for i := range s1 {
		if failed[i] {
			continue
		}
		samples = append(samples, &ExcitationSample{
			Time: equilibration + float64(i)*interval,
			E1:   s1[i][0],
			Osc1: s1[i][1],
			E2:   s2[i][0],
			Osc2: s2[i][1],
		})
	}
	ret, err := NewExcitationSeries(samples)
	if err != nil {
		return nil, errDecorate(err, "ReadDatSeries")
	}
	return ret, nil
}

//readDatFile reads a whitespace-separated numeric file with at least
//2 columns, returning the first two columns of each non-empty,
//non-comment line.
func readDatFile(name string) ([][2]float64, error) {
	fh, err := os.Open(name)
	if err != nil {
		return nil, CError{err.Error(), []string{"os.Open", "readDatFile"}}
	}
	defer fh.Close()
	var rows [][2]float64
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, CError{fmt.Sprintf("%s: %s", ErrIllFormed, name), []string{"readDatFile"}}
		}
		var row [2]float64
		for k := 0; k < 2; k++ {
			row[k], err = strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, CError{fmt.Sprintf("%s: %s: %s", ErrIllFormed, name, err.Error()), []string{"strconv.ParseFloat", "readDatFile"}}
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, CError{err.Error(), []string{"bufio.Scanner", "readDatFile"}}
	}
	return rows, nil
}

//readFailList reads the optional list of failed snapshot indexes.
//A missing file just means every calculation succeeded.
func readFailList(name string) (map[int]bool, error) {
	failed := make(map[int]bool)
	if name == "" {
		return failed, nil
	}
	fh, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return failed, nil
		}
		return nil, CError{err.Error(), []string{"os.Open", "readFailList"}}
	}
	defer fh.Close()
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			continue //non-numeric lines are ignored, as comments
		}
		failed[n] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, CError{err.Error(), []string{"bufio.Scanner", "readFailList"}}
	}
	return failed, nil
}

//SeriesStats collects simple descriptive statistics for one quantity
//of a series.
type SeriesStats struct {
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

func seriesStats(vals []float64) SeriesStats {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean, std := stat.MeanStdDev(vals, nil)
	return SeriesStats{Min: min, Max: max, Mean: mean, Std: std}
}

//ExcitationStats holds per-quantity statistics for a whole series.
type ExcitationStats struct {
	N        int
	TimeMin  float64
	TimeMax  float64
	E1       SeriesStats
	E2       SeriesStats
	Osc1     SeriesStats
	Osc2     SeriesStats
	Gap      SeriesStats
	TotalOsc SeriesStats
}

//Stats returns descriptive statistics over every sample of the series.
func (E *ExcitationSeries) Stats() *ExcitationStats {
	n := len(E.samples)
	e1 := make([]float64, n)
	e2 := make([]float64, n)
	o1 := make([]float64, n)
	o2 := make([]float64, n)
	gap := make([]float64, n)
	tot := make([]float64, n)
	for i, s := range E.samples {
		e1[i], e2[i], o1[i], o2[i] = s.E1, s.E2, s.Osc1, s.Osc2
		gap[i] = s.Gap()
		tot[i] = s.TotalOsc()
	}
	tmin, tmax := E.TimeRange()
	return &ExcitationStats{
		N:        n,
		TimeMin:  tmin,
		TimeMax:  tmax,
		E1:       seriesStats(e1),
		E2:       seriesStats(e2),
		Osc1:     seriesStats(o1),
		Osc2:     seriesStats(o2),
		Gap:      seriesStats(gap),
		TotalOsc: seriesStats(tot),
	}
}

//ExcitationCorrelations holds Pearson correlation coefficients between
//pairs of excitation quantities over a series.
type ExcitationCorrelations struct {
	E1E2     float64 //S1 vs S2 energies
	Osc1Osc2 float64 //S1 vs S2 oscillator strengths
	E1Osc1   float64
	E2Osc2   float64
	GapE1    float64
	GapE2    float64
}

//Correlations computes Pearson correlations between the excitation
//quantities of the series. It needs at least 2 samples; with fewer it
//returns nil.
func (E *ExcitationSeries) Correlations() *ExcitationCorrelations {
	n := len(E.samples)
	if n < 2 {
		return nil
	}
	e1 := make([]float64, n)
	e2 := make([]float64, n)
	o1 := make([]float64, n)
	o2 := make([]float64, n)
	gap := make([]float64, n)
	for i, s := range E.samples {
		e1[i], e2[i], o1[i], o2[i] = s.E1, s.E2, s.Osc1, s.Osc2
		gap[i] = s.Gap()
	}
	return &ExcitationCorrelations{
		E1E2:     stat.Correlation(e1, e2, nil),
		Osc1Osc2: stat.Correlation(o1, o2, nil),
		E1Osc1:   stat.Correlation(e1, o1, nil),
		E2Osc2:   stat.Correlation(e2, o2, nil),
		GapE1:    stat.Correlation(gap, e1, nil),
		GapE2:    stat.Correlation(gap, e2, nil),
	}
}
