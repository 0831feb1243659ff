/*
 * molecule.go, part of excimd.
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
	"sort"
	"strings"

	v3 "github.com/rmera/excimd/v3"
)

//Atom contains the per-atom data that does not change along the
//trajectory: the coordinates live in the frames.
type Atom struct {
	Symbol string
	Index  int
	Mass   float64
}

//NewAtom returns an atom with the mass filled from its symbol.
//Elements without a tabulated mass get the mass of carbon, which
//is the original viewer's convention.
func NewAtom(symbol string, index int) *Atom {
	mass, ok := symbolMass[symbol]
	if !ok {
		mass = symbolMass["C"]
	}
	return &Atom{Symbol: symbol, Index: index, Mass: mass}
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	at := *A
	return &at
}

//Color returns the display color for the atom's element, or a neutral
//gray for elements not in the table.
func (A *Atom) Color() string {
	if c, ok := symbolColor[A.Symbol]; ok {
		return c
	}
	return "#b0b0b0"
}

//DisplayRad returns the display radius for the atom's element.
func (A *Atom) DisplayRad() float64 {
	if r, ok := symbolDisplayRad[A.Symbol]; ok {
		return r
	}
	return 0.7
}

//Frame is one timestep's complete set of atomic positions.
type Frame struct {
	Index  int
	Time   float64 //fs
	Coords *v3.Matrix
}

//FrameStore holds the topology and the ordered trajectory frames.
//It is populated once at load time and treated as immutable afterward,
//so all its read methods are safe for concurrent callers.
type FrameStore struct {
	atoms  []*Atom
	frames []*Frame
}

//NewFrameStore returns a store for the given topology. The topology
//cannot be nil or empty.
func NewFrameStore(atoms []*Atom) (*FrameStore, error) {
	if len(atoms) == 0 {
		return nil, CError{ErrEmptySeries, []string{"NewFrameStore"}}
	}
	return &FrameStore{atoms: atoms}, nil
}

//Len returns the number of atoms per frame.
func (S *FrameStore) Len() int {
	return len(S.atoms)
}

//NFrames returns the number of frames in the store.
func (S *FrameStore) NFrames() int {
	return len(S.frames)
}

//Atom returns the Atom corresponding to the index i. Panics if out of
//range.
func (S *FrameStore) Atom(i int) *Atom {
	if i >= S.Len() {
		panic("FrameStore: Requested Atom out of bounds")
	}
	return S.atoms[i]
}

//Frame returns the ith frame. Panics if out of range.
func (S *FrameStore) Frame(i int) *Frame {
	if i >= len(S.frames) {
		panic(fmt.Sprintf("FrameStore: Frame requested (%d) out of range", i))
	}
	return S.frames[i]
}

//AppendFrame adds a frame at the end of the store, stamping its index
//and time (index*timestep, in fs). It returns ErrDataShape if the
//coordinate count does not match the topology. Only meant to be called
//during loading.
func (S *FrameStore) AppendFrame(coords *v3.Matrix, timestep float64) error {
	if coords == nil {
		return CError{"excimd: Attempted to append nil coordinates", []string{"AppendFrame"}}
	}
	if coords.NVecs() != S.Len() {
		return shapeError("AppendFrame", S.Len(), coords.NVecs())
	}
	i := len(S.frames)
	S.frames = append(S.frames, &Frame{Index: i, Time: float64(i) * timestep, Coords: coords})
	return nil
}

//Masses returns a slice with the masses of all atoms.
func (S *FrameStore) Masses() []float64 {
	m := make([]float64, S.Len())
	for i, at := range S.atoms {
		m[i] = at.Mass
	}
	return m
}

//CenterOfMass returns the mass-weighted center of the given frame as a
//1x3 matrix.
func (S *FrameStore) CenterOfMass(frame int) *v3.Matrix {
	f := S.Frame(frame)
	com := v3.Zeros(1)
	var total float64
	for i, at := range S.atoms {
		total += at.Mass
		for j := 0; j < 3; j++ {
			com.Set(0, j, com.At(0, j)+at.Mass*f.Coords.At(i, j))
		}
	}
	com.Scale(1/total, com)
	return com
}

//RMSD returns the root-mean-square deviation between frames a and b
//after centering each on its geometric mean. No rotational fit is
//performed. If indexes are given, only those atoms are considered.
func (S *FrameStore) RMSD(a, b int, indexes ...[]int) (float64, error) {
	fa, fb := S.Frame(a), S.Frame(b)
	ca, cb := fa.Coords, fb.Coords
	if len(indexes) > 0 && indexes[0] != nil {
		ca = v3.Zeros(len(indexes[0]))
		cb = v3.Zeros(len(indexes[0]))
		ca.SomeVecs(fa.Coords, indexes[0])
		cb.SomeVecs(fb.Coords, indexes[0])
	}
	n := ca.NVecs()
	if n != cb.NVecs() || n == 0 {
		return 0, shapeError("RMSD", n, cb.NVecs())
	}
	ma, mb := v3.Zeros(1), v3.Zeros(1)
	ma.Mean(ca)
	mb.Mean(cb)
	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			d := (ca.At(i, j) - ma.At(0, j)) - (cb.At(i, j) - mb.At(0, j))
			sum += d * d
		}
	}
	return math.Sqrt(sum / float64(n)), nil
}

//Downsample returns a store with at most maxFrames frames, picked with
//an even stride, sharing the topology and frame objects with the
//receiver. If the store already fits, the receiver itself is returned.
func (S *FrameStore) Downsample(maxFrames int) *FrameStore {
	if maxFrames <= 0 || len(S.frames) <= maxFrames {
		return S
	}
	//ceiling stride, so the result never exceeds maxFrames
	step := (len(S.frames) + maxFrames - 1) / maxFrames
	ret := &FrameStore{atoms: S.atoms}
	for i := 0; i < len(S.frames); i += step {
		ret.frames = append(ret.frames, S.frames[i])
	}
	return ret
}

//Formula returns the molecular formula of the topology, with elements
//in the conventional C,H,N,O... order and leftovers alphabetically.
func (S *FrameStore) Formula() string {
	counts := map[string]int{}
	for _, at := range S.atoms {
		counts[at.Symbol]++
	}
	var b strings.Builder
	write := func(sym string) {
		n, ok := counts[sym]
		if !ok {
			return
		}
		b.WriteString(sym)
		if n > 1 {
			fmt.Fprintf(&b, "%d", n)
		}
		delete(counts, sym)
	}
	for _, sym := range formulaOrder {
		write(sym)
	}
	rest := make([]string, 0, len(counts))
	for sym := range counts {
		rest = append(rest, sym)
	}
	sort.Strings(rest)
	for _, sym := range rest {
		write(sym)
	}
	return b.String()
}

//TrajStats are summary figures for a loaded trajectory.
type TrajStats struct {
	NFrames  int
	NAtoms   int
	TimeMin  float64 //fs
	TimeMax  float64 //fs
	Formula  string
	BoundMin [3]float64
	BoundMax [3]float64
}

//Stats scans the whole store and returns its summary statistics.
//It returns ErrEmptySeries on a store with no frames.
func (S *FrameStore) Stats() (*TrajStats, error) {
	if len(S.frames) == 0 {
		return nil, CError{ErrEmptySeries, []string{"Stats"}}
	}
	st := &TrajStats{
		NFrames: len(S.frames),
		NAtoms:  S.Len(),
		TimeMin: S.frames[0].Time,
		TimeMax: S.frames[len(S.frames)-1].Time,
		Formula: S.Formula(),
	}
	for j := 0; j < 3; j++ {
		st.BoundMin[j] = math.Inf(1)
		st.BoundMax[j] = math.Inf(-1)
	}
	for _, f := range S.frames {
		for i := 0; i < f.Coords.NVecs(); i++ {
			for j := 0; j < 3; j++ {
				c := f.Coords.At(i, j)
				st.BoundMin[j] = math.Min(st.BoundMin[j], c)
				st.BoundMax[j] = math.Max(st.BoundMax[j], c)
			}
		}
	}
	return st, nil
}
