/*
 * bonds.go, part of excimd.
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
	v3 "github.com/rmera/excimd/v3"
)

//Bond joins the atoms with indexes At1 and At2, with At1 < At2.
type Bond struct {
	At1  int
	At2  int
	Dist float64
}

//bondCutoff gives the distance cutoff for a pair of element symbols.
//Any pair involving hydrogen uses the hydrogen cutoff; otherwise the
//larger of the two per-element cutoffs applies, defaulting to
//defaultBondCutoff for elements without an entry.
func bondCutoff(s1, s2 string) float64 {
	if s1 == "H" || s2 == "H" {
		return hydrogenBondCutoff
	}
	cut := defaultBondCutoff
	if c, ok := symbolBondCutoff[s1]; ok && c > cut {
		cut = c
	}
	if c, ok := symbolBondCutoff[s2]; ok && c > cut {
		cut = c
	}
	return cut
}

//InferBonds assigns bonds to the given atoms based on a simple distance
//criterion: a pair is bonded when its distance is strictly below the
//element-pair cutoff. The pairwise scan is O(n^2); it's really not
//thought for macromolecules. The returned slice is ordered by
//(At1, At2), so identical input always produces identical output.
//Empty or single-atom input yields an empty, non-nil slice. A mismatch
//between the number of atoms and of coordinates returns ErrDataShape.
func InferBonds(atoms []*Atom, coords *v3.Matrix) ([]Bond, error) {
	if coords == nil && len(atoms) > 0 {
		return nil, shapeError("InferBonds", len(atoms), 0)
	}
	bonds := make([]Bond, 0, 10)
	if len(atoms) < 2 {
		return bonds, nil
	}
	if coords.NVecs() != len(atoms) {
		return nil, shapeError("InferBonds", len(atoms), coords.NVecs())
	}
	t := v3.Zeros(1)
	for i := 0; i < len(atoms); i++ {
		for j := i + 1; j < len(atoms); j++ {
			t.Sub(coords.VecView(j), coords.VecView(i))
			d := t.Norm()
			if d < bondCutoff(atoms[i].Symbol, atoms[j].Symbol) {
				bonds = append(bonds, Bond{At1: i, At2: j, Dist: d})
			}
		}
	}
	return bonds, nil
}

//BondGraph is a reference-frame connectivity, computed once and reused
//for the whole trajectory. Bonds are not re-inferred per frame; for a
//reactive simulation where bonds form and break this is an
//approximation the caller has to be aware of.
type BondGraph struct {
	bonds    []Bond
	refFrame int
}

//NewBondGraph infers the connectivity from the frame ref of the store.
//A store with no frames returns ErrEmptySeries.
func NewBondGraph(store *FrameStore, ref int) (*BondGraph, error) {
	if store.NFrames() == 0 {
		return nil, CError{ErrEmptySeries, []string{"NewBondGraph"}}
	}
	atoms := make([]*Atom, store.Len())
	for i := range atoms {
		atoms[i] = store.Atom(i)
	}
	bonds, err := InferBonds(atoms, store.Frame(ref).Coords)
	if err != nil {
		return nil, errDecorate(err, "NewBondGraph")
	}
	return &BondGraph{bonds: bonds, refFrame: ref}, nil
}

//Bonds returns the bond list. The caller must not modify it.
func (B *BondGraph) Bonds() []Bond {
	return B.bonds
}

//RefFrame returns the index of the frame the connectivity was
//inferred from.
func (B *BondGraph) RefFrame() int {
	return B.refFrame
}

//Neighbors returns the indexes of the atoms bonded to atom i.
func (B *BondGraph) Neighbors(i int) []int {
	var ret []int
	for _, b := range B.bonds {
		if b.At1 == i {
			ret = append(ret, b.At2)
		} else if b.At2 == i {
			ret = append(ret, b.At1)
		}
	}
	return ret
}
