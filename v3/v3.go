/*
 * v3.go, part of excimd.
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

//Package v3 implements sets of row vectors in 3D cartesian space,
//backed by gonum Dense matrices. Within the package it is understood
//that a "vector" is a row vector, i.e. the cartesian coordinates of a
//point in 3D space.
package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, one per row.
type Matrix struct {
	*mat.Dense
}

//Dense2Matrix returns a Matrix backed by the given Dense, which
//must have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//Matrix2Dense returns the gonum Dense backing A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a vs x 3 zero-filled Matrix.
func Zeros(vs int) *Matrix {
	return &Matrix{mat.NewDense(vs, 3, nil)}
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//VecView returns a view of the ith vector of the matrix. Changes
//in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//SomeVecs puts in the receiver the vectors of A with the indexes given in
//clist, in the given order. The receiver must have len(clist) rows.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, _ := A.Dims()
	fr, _ := F.Dims()
	if fr != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val >= ar {
			panic(ErrShape)
		}
		F.Dense.SetRow(key, A.Dense.RawRowView(val))
	}
}

//Copy copies A into the receiver, which must have the same dimensions.
func (F *Matrix) Copy(A *Matrix) {
	F.Dense.Copy(A.Dense)
}

//Sub subtracts B from A, putting the result in the receiver.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

//Add adds A and B, putting the result in the receiver.
func (F *Matrix) Add(A, B *Matrix) {
	F.Dense.Add(A.Dense, B.Dense)
}

//Scale scales A by v, putting the result in the receiver.
func (F *Matrix) Scale(v float64, A *Matrix) {
	F.Dense.Scale(v, A.Dense)
}

//AddVec adds the 1x3 vector vec to each row of A, putting
//the result in the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	vr, vc := vec.Dims()
	if vr != 1 || vc != 3 {
		panic(ErrNotAVector)
	}
	ar, _ := A.Dims()
	for i := 0; i < ar; i++ {
		F.Dense.Set(i, 0, A.At(i, 0)+vec.At(0, 0))
		F.Dense.Set(i, 1, A.At(i, 1)+vec.At(0, 1))
		F.Dense.Set(i, 2, A.At(i, 2)+vec.At(0, 2))
	}
}

//SubVec subtracts the 1x3 vector vec from each row of A, putting
//the result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	v := Zeros(1)
	v.Scale(-1, vec)
	F.AddVec(A, v)
}

//Dot returns the dot product between the first vectors of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	var ret float64
	for i := 0; i < 3; i++ {
		ret += F.At(0, i) * B.At(0, i)
	}
	return ret
}

//Cross puts the cross product of the first vectors of a and b
//in the first vector of the receiver. All three must have at
//least one vector.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	F.Set(0, 0, a.At(0, 1)*b.At(0, 2)-a.At(0, 2)*b.At(0, 1))
	F.Set(0, 1, a.At(0, 2)*b.At(0, 0)-a.At(0, 0)*b.At(0, 2))
	F.Set(0, 2, a.At(0, 0)*b.At(0, 1)-a.At(0, 1)*b.At(0, 0))
}

//Norm returns the 2-norm of the first vector of the matrix.
func (F *Matrix) Norm() float64 {
	var n float64
	for i := 0; i < 3; i++ {
		n += F.At(0, i) * F.At(0, i)
	}
	return math.Sqrt(n)
}

//Unit puts in the receiver the first vector of A scaled to unit
//length. It panics on a zero vector.
func (F *Matrix) Unit(A *Matrix) {
	n := A.Norm()
	if n == 0 {
		panic(ErrZeroVector)
	}
	F.Scale(1/n, A)
}

//Mean puts in the receiver (a 1x3 matrix) the mean vector of A.
func (F *Matrix) Mean(A *Matrix) {
	ar, _ := A.Dims()
	for j := 0; j < 3; j++ {
		var s float64
		for i := 0; i < ar; i++ {
			s += A.At(i, j)
		}
		F.Set(0, j, s/float64(ar))
	}
}

//Errors

//Error implements the excimd.Error semantics without importing the
//root package (which would be a circular import).
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics. It does satisfy the error
//interface, but for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix   = PanicMsg("excimd/v3: A Matrix should have 3 columns")
	ErrNotAVector     = PanicMsg("excimd/v3: Expected a 1x3 vector")
	ErrNoCrossProduct = PanicMsg("excimd/v3: Invalid matrix for cross product")
	ErrZeroVector     = PanicMsg("excimd/v3: Can't normalize a zero vector")
	ErrShape          = PanicMsg("excimd/v3: Dimension mismatch")
)
