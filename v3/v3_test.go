package v3

import (
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 0, 0, 0, 1, 0})
	if err != nil {
		Te.Error(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("Expected 2 vectors, got %d", A.NVecs())
	}
	_, err = NewMatrix([]float64{1, 0, 0, 0})
	if err == nil {
		Te.Error("Expected an error for a slice not divisible by 3")
	}
}

func TestCrossDotNorm(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if z.At(0, 2) != 1 || z.At(0, 0) != 0 || z.At(0, 1) != 0 {
		Te.Errorf("Cross product of x and y should be z, got %v", z)
	}
	if x.Dot(y) != 0 {
		Te.Error("x and y should be orthogonal")
	}
	v, _ := NewMatrix([]float64{3, 4, 0})
	if math.Abs(v.Norm()-5) > 1e-12 {
		Te.Errorf("Expected norm 5, got %f", v.Norm())
	}
}

func TestVecViewIsView(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	v := A.VecView(1)
	v.Set(0, 0, 40)
	if A.At(1, 0) != 40 {
		Te.Error("VecView should return a view, not a copy")
	}
}

func TestSomeVecsAndMean(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 2, 2, 2, 4, 4, 4})
	B := Zeros(2)
	B.SomeVecs(A, []int{0, 2})
	if B.At(1, 1) != 4 {
		Te.Errorf("SomeVecs picked the wrong rows: %v", B)
	}
	m := Zeros(1)
	m.Mean(A)
	if m.At(0, 0) != 2 {
		Te.Errorf("Expected mean 2, got %f", m.At(0, 0))
	}
}
