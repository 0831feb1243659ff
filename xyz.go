/*
 * xyz.go, part of excimd.
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
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/excimd/v3"
)

//DefaultTimestep is the time between consecutive trajectory frames,
//in fs, when the caller does not say otherwise.
const DefaultTimestep = 0.5

//XYZTrajRead reads a multi-frame XYZ trajectory from the file xyzname
//and returns a FrameStore with the topology taken from the first frame
//and one coordinate set per frame. Frame times are index*timestep (fs);
//if timestep is not given, DefaultTimestep is used.
//Every frame must have the same atoms in the same order: a frame
//that disagrees with the first one aborts the read with ErrDataShape.
func XYZTrajRead(xyzname string, timestep ...float64) (*FrameStore, error) {
	ts := DefaultTimestep
	if len(timestep) > 0 && timestep[0] > 0 {
		ts = timestep[0]
	}
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, CError{fmt.Sprintf("excimd: Unable to open %s: %s", xyzname, err.Error()), []string{"XYZTrajRead"}}
	}
	defer xyzfile.Close()
	return xyzTrajRead(bufio.NewReader(xyzfile), xyzname, ts)
}

func xyzTrajRead(xyz *bufio.Reader, name string, timestep float64) (*FrameStore, error) {
	var store *FrameStore
	for {
		line, err := xyz.ReadString('\n')
		if err == io.EOF && strings.TrimSpace(line) == "" {
			break
		}
		if strings.TrimSpace(line) == "" && err == nil {
			continue //blank line between frames, some generators do that
		}
		natoms, err2 := strconv.Atoi(strings.TrimSpace(line))
		if err2 != nil {
			return nil, CError{fmt.Sprintf("%s: %s, bad atom-count line %q", ErrIllFormed, name, strings.TrimSpace(line)), []string{"XYZTrajRead"}}
		}
		if _, err = xyz.ReadString('\n'); err != nil {
			return nil, CError{fmt.Sprintf("%s: %s, truncated comment line", ErrIllFormed, name), []string{"XYZTrajRead"}}
		}
		atoms, coords, err := xyzReadSnap(xyz, name, natoms)
		if err != nil {
			return nil, errDecorate(err, "XYZTrajRead")
		}
		if store == nil {
			store, err = NewFrameStore(atoms)
			if err != nil {
				return nil, errDecorate(err, "XYZTrajRead")
			}
		} else if !sameTopology(store, atoms) {
			return nil, CError{fmt.Sprintf("%s: %s, frame %d", ErrDataShape, name, store.NFrames()), []string{"XYZTrajRead"}}
		}
		if err = store.AppendFrame(coords, timestep); err != nil {
			return nil, errDecorate(err, "XYZTrajRead")
		}
	}
	if store == nil || store.NFrames() == 0 {
		return nil, CError{fmt.Sprintf("%s: %s", ErrEmptySeries, name), []string{"XYZTrajRead"}}
	}
	return store, nil
}

//xyzReadSnap reads the natoms coordinate lines of one frame.
func xyzReadSnap(xyz *bufio.Reader, name string, natoms int) ([]*Atom, *v3.Matrix, error) {
	atoms := make([]*Atom, natoms)
	data := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err := xyz.ReadString('\n')
		if err != nil && !(err == io.EOF && strings.TrimSpace(line) != "") {
			return nil, nil, CError{fmt.Sprintf("%s: %s, truncated frame at atom %d", ErrIllFormed, name, i), []string{"xyzReadSnap"}}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, nil, CError{fmt.Sprintf("%s: %s, atom line %d ill formed", ErrIllFormed, name, i), []string{"xyzReadSnap"}}
		}
		atoms[i] = NewAtom(fields[0], i)
		for j := 0; j < 3; j++ {
			data[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, nil, CError{fmt.Sprintf("%s: %s, non-numeric coordinate at atom %d", ErrIllFormed, name, i), []string{"xyzReadSnap"}}
			}
		}
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, nil, errDecorate(err, "xyzReadSnap")
	}
	return atoms, coords, nil
}

func sameTopology(store *FrameStore, atoms []*Atom) bool {
	if store.Len() != len(atoms) {
		return false
	}
	for i, at := range atoms {
		if store.Atom(i).Symbol != at.Symbol {
			return false
		}
	}
	return true
}

//XYZWrite writes the frame frame of the store in an XYZ file with name
//xyzname, which will be created. An existing file will be overwritten.
func XYZWrite(xyzname string, store *FrameStore, frame int) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return CError{err.Error(), []string{"XYZWrite"}}
	}
	defer out.Close()
	return XYZWriteTo(out, store, frame)
}

//XYZWriteTo writes the frame frame of the store in XYZ format to w.
func XYZWriteTo(w io.Writer, store *FrameStore, frame int) error {
	f := store.Frame(frame)
	fmt.Fprintf(w, "%-4d\n", store.Len())
	fmt.Fprintf(w, "Frame %d, Time: %.1f fs\n", f.Index, f.Time)
	for i := 0; i < store.Len(); i++ {
		_, err := fmt.Fprintf(w, "%-2s  %12.6f%12.6f%12.6f\n", store.Atom(i).Symbol,
			f.Coords.At(i, 0), f.Coords.At(i, 1), f.Coords.At(i, 2))
		if err != nil {
			return CError{err.Error(), []string{"XYZWriteTo"}}
		}
	}
	return nil
}
