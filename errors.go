/*
 * errors.go, part of excimd.
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

import "fmt"

//Error is the interface for errors that all packages in this library
//implement. The Decorate method allows to add and retrieve info from the
//error, without changing its type or wrapping it around something else.
//The decorate slice should contain a list of functions in the calling stack,
//plus, for each function, any relevant information, in the format
//"FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

//CError is the concrete error type of the excimd package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice. If dec is empty, it just returns
//the current decoration.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error aborts the whole operation. All
//CError are critical; malformed individual samples are filtered before
//an error is ever built.
func (err CError) Critical() bool { return true }

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. Used with a non-Error error, it will
//cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//The error taxonomy of the library. Structural malformation
//(ErrDataShape, ErrEmptySeries) aborts the operation and is reported to
//the caller. Individual non-finite samples are never errors: they are
//silently excluded and only reduce counts.
const (
	ErrDataShape   = "excimd: Mismatched atom/coordinate counts"
	ErrEmptySeries = "excimd: Empty frame or excitation series"
	ErrIllFormed   = "excimd: Ill-formed input file"
)

func shapeError(caller string, want, got int) error {
	return CError{fmt.Sprintf("%s: %d elements expected, got %d", ErrDataShape, want, got), []string{caller}}
}
