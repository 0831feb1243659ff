/*
 * export.go, part of excimd.
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

//Package export saves and restores analysis sessions as
//zstd-compressed JSON, and writes the flat CSV tables consumed by
//spreadsheet-minded collaborators.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/klauspost/compress/zstd"
	excimd "github.com/rmera/excimd"
	v3 "github.com/rmera/excimd/v3"
)

//Error is the error type for session files. It fulfills excimd.Error.
type Error struct {
	message  string
	filename string //the session file with problems, or empty
	deco     []string
}

func (err Error) Error() string {
	return fmt.Sprintf("session file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file the failing session was associated to.
func (err Error) FileName() string { return err.filename }

func (err Error) Critical() bool { return true }

func errDecorate(err error, caller string) error {
	err2 := err.(excimd.Error)
	err2.Decorate(caller)
	return err2
}

//A ready-to-serialize container for one trajectory frame.
type Frame struct {
	Time   float64   `json:"time_fs"`
	Coords []float64 `json:"coords"` //flat, 3 per atom
}

//A ready-to-serialize container for one excitation sample.
type Sample struct {
	Time float64 `json:"time_fs"`
	E1   float64 `json:"s1_energy"`
	Osc1 float64 `json:"s1_oscillator"`
	E2   float64 `json:"s2_energy"`
	Osc2 float64 `json:"s2_oscillator"`
}

//A ready-to-serialize container for one correlation bin. NaN gaps
//become null, as JSON has no NaN.
type Bin struct {
	Lo            float64  `json:"range_lo"`
	Hi            float64  `json:"range_hi"`
	Total         int      `json:"total"`
	State1        int      `json:"s1_count"`
	State2        int      `json:"s2_count"`
	State1Pct     float64  `json:"s1_pct"`
	State2Pct     float64  `json:"s2_pct"`
	MeanSecondary float64  `json:"mean_secondary"`
	Rep1          *int     `json:"s1_frame"`
	Rep2          *int     `json:"s2_frame"`
	Gap           *float64 `json:"gap"`
}

//Session is the complete state of one analysis, ready to serialize.
type Session struct {
	Formula string   `json:"formula"`
	Symbols []string `json:"symbols"`
	Ceiling float64  `json:"display_ceiling"`
	Frames  []Frame  `json:"frames"`
	Samples []Sample `json:"excitation"`
	Bins    []Bin    `json:"bins"`
}

//NewSession assembles a serializable session. maxFrames bounds the
//stored trajectory; pass 0 to keep every frame. bins may be nil when
//no correlation pass has run.
func NewSession(store *excimd.FrameStore, series *excimd.ExcitationSeries, bins []*excimd.CorrelationBin, ceiling float64, maxFrames int) *Session {
	if maxFrames > 0 {
		store = store.Downsample(maxFrames)
	}
	s := &Session{Formula: store.Formula(), Ceiling: ceiling}
	s.Symbols = make([]string, store.Len())
	for i := range s.Symbols {
		s.Symbols[i] = store.Atom(i).Symbol
	}
	s.Frames = make([]Frame, store.NFrames())
	for i := range s.Frames {
		f := store.Frame(i)
		coords := make([]float64, 0, 3*store.Len())
		for a := 0; a < store.Len(); a++ {
			for j := 0; j < 3; j++ {
				coords = append(coords, f.Coords.At(a, j))
			}
		}
		s.Frames[i] = Frame{Time: f.Time, Coords: coords}
	}
	s.Samples = make([]Sample, series.Len())
	for i := range s.Samples {
		sa := series.Sample(i)
		s.Samples[i] = Sample{Time: sa.Time, E1: sa.E1, Osc1: sa.Osc1, E2: sa.E2, Osc2: sa.Osc2}
	}
	s.Bins = make([]Bin, len(bins))
	for i, b := range bins {
		jb := Bin{Lo: b.Lo, Hi: b.Hi, Total: b.Total, State1: b.State1, State2: b.State2,
			State1Pct: b.State1Pct, State2Pct: b.State2Pct, MeanSecondary: b.MeanSecondary}
		if b.Rep1 != nil && b.Rep2 != nil && !math.IsNaN(b.Gap) {
			f1, f2, g := b.Rep1.Frame, b.Rep2.Frame, b.Gap
			jb.Rep1, jb.Rep2, jb.Gap = &f1, &f2, &g
		}
		s.Bins[i] = jb
	}
	return s
}

//Write serializes the session as zstd-compressed JSON.
func (S *Session) Write(name string) error {
	fh, err := os.Create(name)
	if err != nil {
		return Error{err.Error(), name, []string{"os.Create", "Write"}}
	}
	defer fh.Close()
	zw, err := zstd.NewWriter(fh, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return Error{err.Error(), name, []string{"zstd.NewWriter", "Write"}}
	}
	if err := json.NewEncoder(zw).Encode(S); err != nil {
		zw.Close()
		return Error{err.Error(), name, []string{"json.Encode", "Write"}}
	}
	if err := zw.Close(); err != nil {
		return Error{err.Error(), name, []string{"zstd.Close", "Write"}}
	}
	return nil
}

//Read deserializes a session written by Write.
func Read(name string) (*Session, error) {
	fh, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"os.Open", "Read"}}
	}
	defer fh.Close()
	zr, err := zstd.NewReader(fh)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"zstd.NewReader", "Read"}}
	}
	defer zr.Close()
	s := new(Session)
	if err := json.NewDecoder(zr).Decode(s); err != nil {
		return nil, Error{err.Error(), name, []string{"json.Decode", "Read"}}
	}
	return s, nil
}

//FrameStore rebuilds a trajectory store from the session.
func (S *Session) FrameStore() (*excimd.FrameStore, error) {
	atoms := make([]*excimd.Atom, len(S.Symbols))
	for i, sym := range S.Symbols {
		atoms[i] = excimd.NewAtom(sym, i)
	}
	store, err := excimd.NewFrameStore(atoms)
	if err != nil {
		return nil, errDecorate(err, "FrameStore")
	}
	for i, f := range S.Frames {
		if len(f.Coords) != 3*len(atoms) {
			return nil, Error{fmt.Sprintf("frame %d: %d coordinates for %d atoms", i, len(f.Coords), len(atoms)), "", []string{"FrameStore"}}
		}
		coords, err := v3.NewMatrix(f.Coords)
		if err != nil {
			return nil, errDecorate(err, "FrameStore")
		}
		if err := store.AppendFrame(coords, 1); err != nil {
			return nil, errDecorate(err, "FrameStore")
		}
		//AppendFrame times frames by its timestep argument, but
		//the session stores explicit, possibly uneven times
		store.Frame(i).Time = f.Time
	}
	return store, nil
}

//Series rebuilds the excitation series from the session.
func (S *Session) Series() (*excimd.ExcitationSeries, error) {
	samples := make([]*excimd.ExcitationSample, len(S.Samples))
	for i, sa := range S.Samples {
		samples[i] = &excimd.ExcitationSample{Time: sa.Time, E1: sa.E1, Osc1: sa.Osc1, E2: sa.E2, Osc2: sa.Osc2}
	}
	series, err := excimd.NewExcitationSeries(samples)
	if err != nil {
		return nil, errDecorate(err, "Series")
	}
	return series, nil
}

//ExcitationCSV writes the excitation table, one row per sample with
//the derived gap and total strength included.
func ExcitationCSV(w io.Writer, series *excimd.ExcitationSeries) error {
	cw := csv.NewWriter(w)
	header := []string{"time_fs", "time_ps", "s1_energy_eV", "s1_oscillator", "s2_energy_eV", "s2_oscillator", "energy_gap_eV", "total_oscillator"}
	if err := cw.Write(header); err != nil {
		return Error{err.Error(), "", []string{"ExcitationCSV"}}
	}
	for _, s := range series.Samples() {
		row := []string{
			fmtF(s.Time, 2),
			fmtF(s.Time/1000, 6),
			fmtF(s.E1, 6),
			fmtF(s.Osc1, 6),
			fmtF(s.E2, 6),
			fmtF(s.Osc2, 6),
			fmtF(s.Gap(), 6),
			fmtF(s.TotalOsc(), 6),
		}
		if err := cw.Write(row); err != nil {
			return Error{err.Error(), "", []string{"ExcitationCSV"}}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return Error{err.Error(), "", []string{"ExcitationCSV"}}
	}
	return nil
}

//BinCSV writes the correlation-bin table. Bins without a
//representative pair get empty pair fields.
func BinCSV(w io.Writer, bins []*excimd.CorrelationBin) error {
	cw := csv.NewWriter(w)
	header := []string{"range_lo", "range_hi", "total", "s1_count", "s2_count", "s1_pct", "s2_pct", "mean_secondary", "s1_frame", "s2_frame", "gap"}
	if err := cw.Write(header); err != nil {
		return Error{err.Error(), "", []string{"BinCSV"}}
	}
	for _, b := range bins {
		row := []string{
			fmtF(b.Lo, 4),
			fmtF(b.Hi, 4),
			strconv.Itoa(b.Total),
			strconv.Itoa(b.State1),
			strconv.Itoa(b.State2),
			fmtF(b.State1Pct, 2),
			fmtF(b.State2Pct, 2),
			fmtF(b.MeanSecondary, 4),
			"", "", "",
		}
		if b.Rep1 != nil && b.Rep2 != nil && !math.IsNaN(b.Gap) {
			row[8] = strconv.Itoa(b.Rep1.Frame)
			row[9] = strconv.Itoa(b.Rep2.Frame)
			row[10] = fmtF(b.Gap, 4)
		}
		if err := cw.Write(row); err != nil {
			return Error{err.Error(), "", []string{"BinCSV"}}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return Error{err.Error(), "", []string{"BinCSV"}}
	}
	return nil
}

func fmtF(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
