/*
 * excimd_test.go, part of excimd.
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
	"fmt"
	"math"
	"testing"

	v3 "github.com/rmera/excimd/v3"
)

//TestXYZIO tests that multi-frame XYZ trajectories are opened and read
//correctly, and written back.
func TestXYZIO(Te *testing.T) {
	store, err := XYZTrajRead("test/traj.xyz")
	if err != nil {
		fmt.Println("There was an error!", err.Error())
		Te.Error(err)
		return
	}
	if store.Len() != 4 || store.NFrames() != 3 {
		Te.Errorf("wrong trajectory shape: %d atoms, %d frames", store.Len(), store.NFrames())
	}
	if store.Frame(2).Time != 1.0 {
		Te.Errorf("wrong time for frame 2: %f", store.Frame(2).Time)
	}
	if store.Atom(1).Symbol != "O" {
		Te.Errorf("wrong symbol for atom 1: %s", store.Atom(1).Symbol)
	}
	fmt.Println("XYZ read!", store.Formula())
	err = XYZWrite("test/trajIO.xyz", store, 0)
	if err != nil {
		Te.Error(err)
	}
}

//TestInferBonds checks connectivity on a formaldehyde-like frame:
//the carbon binds the oxygen and both hydrogens, nothing else.
func TestInferBonds(Te *testing.T) {
	store, err := XYZTrajRead("test/traj.xyz")
	if err != nil {
		Te.Error(err)
		return
	}
	graph, err := NewBondGraph(store, 0)
	if err != nil {
		Te.Error(err)
		return
	}
	bonds := graph.Bonds()
	if len(bonds) != 3 {
		Te.Errorf("expected 3 bonds, got %d: %v", len(bonds), bonds)
	}
	for _, b := range bonds {
		if b.At1 != 0 {
			Te.Errorf("unexpected bond %v", b)
		}
		if b.At1 >= b.At2 {
			Te.Errorf("bond not index-ordered: %v", b)
		}
	}
	if n := graph.Neighbors(0); len(n) != 3 {
		Te.Errorf("carbon should have 3 neighbors, got %v", n)
	}
	//the O-H distance is almost 2 A. With the hydrogen cutoff not
	//applying it would count as a bond, so this guards the
	//per-element threshold selection.
	if cut := bondCutoff("O", "H"); cut != hydrogenBondCutoff {
		Te.Errorf("wrong O-H cutoff: %f", cut)
	}
	if cut := bondCutoff("C", "S"); cut != symbolBondCutoff["S"] {
		Te.Errorf("wrong C-S cutoff: %f", cut)
	}
}

//TestInferBondsShape checks that shape mismatches are critical errors
//and that trivial inputs yield empty, non-nil bond sets.
func TestInferBondsShape(Te *testing.T) {
	store, err := XYZTrajRead("test/traj.xyz")
	if err != nil {
		Te.Error(err)
		return
	}
	atoms := []*Atom{store.Atom(0), store.Atom(1)}
	_, err = InferBonds(atoms, store.Frame(0).Coords)
	if err == nil {
		Te.Error("expected a shape error for 2 atoms with 4 coordinates")
	} else if !err.(Error).Critical() {
		Te.Error("shape errors must be critical")
	}
	bonds, err := InferBonds([]*Atom{store.Atom(0)}, store.Frame(0).Coords.VecView(0))
	if err != nil || bonds == nil || len(bonds) != 0 {
		Te.Errorf("single atom should give an empty bond set: %v %v", bonds, err)
	}
	//a store with atoms but no frames loaded yet must error, not panic
	empty, err := NewFrameStore([]*Atom{NewAtom("C", 0)})
	if err != nil {
		Te.Error(err)
		return
	}
	_, err = NewBondGraph(empty, 0)
	if err == nil {
		Te.Error("expected an error for a frameless store")
	} else if err.Error() != ErrEmptySeries {
		Te.Errorf("wrong error for a frameless store: %v", err)
	}
}

//TestDatSeries reads the S1/S2 oscillator data with a fail list and
//checks the snapshot timing.
func TestDatSeries(Te *testing.T) {
	series, err := ReadDatSeries("test/s1.dat", "test/s2.dat", "test/fail.dat", DefaultEquilibration, DefaultExcitationInterval)
	if err != nil {
		fmt.Println("There was an error!", err.Error())
		Te.Error(err)
		return
	}
	//6 rows, one in the fail list
	if series.Len() != 5 {
		Te.Errorf("expected 5 samples, got %d", series.Len())
	}
	first, last := series.TimeRange()
	if first != 5000.0 || last != 5010.0 {
		Te.Errorf("wrong time range: %f %f", first, last)
	}
	//snapshot 3 failed, so the 4th surviving sample is snapshot 4
	if s := series.Sample(3); s.Time != 5008.0 {
		Te.Errorf("fail list not honored, sample 3 at t=%f", s.Time)
	}
	st := series.Stats()
	if st.N != 5 || st.Osc1.Max != 0.5 {
		Te.Errorf("wrong stats: %+v", st)
	}
	if math.Abs(series.Sample(0).Gap()-0.4) > 1e-10 {
		Te.Errorf("wrong gap: %f", series.Sample(0).Gap())
	}
	if c := series.Correlations(); c == nil {
		Te.Error("expected correlations for a 5-sample series")
	}
	fmt.Println("dat series read!", st)
}

//TestFrameStoreGeometry exercises center of mass, RMSD and
//downsampling.
func TestFrameStoreGeometry(Te *testing.T) {
	store, err := XYZTrajRead("test/traj.xyz")
	if err != nil {
		Te.Error(err)
		return
	}
	com := store.CenterOfMass(0)
	//mostly C and O, so the center of mass lies between them
	if z := com.At(0, 2); z < 0.0 || z > 1.21 {
		Te.Errorf("suspicious center of mass: %f", z)
	}
	r, err := store.RMSD(0, 0)
	if err != nil || r != 0 {
		Te.Errorf("RMSD of a frame against itself should be 0: %f %v", r, err)
	}
	r2, err := store.RMSD(0, 2)
	if err != nil || r2 <= 0 {
		Te.Errorf("RMSD between different frames should be positive: %f %v", r2, err)
	}
	down := store.Downsample(2)
	if down.NFrames() != 2 || down.Len() != store.Len() {
		Te.Errorf("wrong downsample: %d frames", down.NFrames())
	}
	stats, err := store.Stats()
	if err != nil || stats.NFrames != 3 {
		Te.Errorf("wrong stats: %+v %v", stats, err)
	}
}

//TestDownsampleBound checks that the requested maximum is a hard bound
//for awkward frame counts, and that the first frame always survives.
func TestDownsampleBound(Te *testing.T) {
	atoms := []*Atom{NewAtom("C", 0)}
	for _, nframes := range []int{1, 2, 3, 5, 7, 10, 100} {
		store, err := NewFrameStore(atoms)
		if err != nil {
			Te.Error(err)
			return
		}
		for i := 0; i < nframes; i++ {
			coords, err := v3.NewMatrix([]float64{float64(i), 0, 0})
			if err != nil {
				Te.Error(err)
				return
			}
			if err := store.AppendFrame(coords, 0.5); err != nil {
				Te.Error(err)
				return
			}
		}
		for _, max := range []int{1, 2, 3, 4} {
			down := store.Downsample(max)
			if down.NFrames() > max {
				Te.Errorf("%d frames downsampled to %d kept %d", nframes, max, down.NFrames())
			}
			if down.Frame(0) != store.Frame(0) {
				Te.Errorf("downsampling must keep the first frame")
			}
		}
	}
}
