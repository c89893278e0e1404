package lcp

import (
	"fmt"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

// Matrix is a dense row-major matrix.
type Matrix struct {
	rows, cols int
	data       []vect.Float
}

func NewMatrix(rows, cols int) Matrix {
	return Matrix{rows: rows, cols: cols, data: make([]vect.Float, rows*cols)}
}

// MatrixFromRows copies rows into a new matrix. All rows must have the same length.
func MatrixFromRows(rows [][]vect.Float) Matrix {
	if len(rows) == 0 {
		return Matrix{}
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != m.cols {
			panic(fmt.Sprintf("lcp: row %d has %d columns, want %d", i, len(r), m.cols))
		}
		copy(m.data[i*m.cols:], r)
	}
	return m
}

func (m Matrix) Rows() int { return m.rows }
func (m Matrix) Cols() int { return m.cols }

func (m Matrix) At(i, j int) vect.Float {
	return m.data[i*m.cols+j]
}

func (m Matrix) Set(i, j int, v vect.Float) {
	m.data[i*m.cols+j] = v
}

func (m Matrix) Add(i, j int, v vect.Float) {
	m.data[i*m.cols+j] += v
}

func (m Matrix) MulVec(x []vect.Float) []vect.Float {
	out := make([]vect.Float, m.rows)
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		var sum vect.Float
		for j, v := range row {
			sum += v * x[j]
		}
		out[i] = sum
	}
	return out
}

// Sub extracts the sub-matrix made of the given rows and columns.
func (m Matrix) Sub(rows, cols []int) Matrix {
	s := NewMatrix(len(rows), len(cols))
	for a, i := range rows {
		for b, j := range cols {
			s.Set(a, b, m.At(i, j))
		}
	}
	return s
}

func (m Matrix) Clone() Matrix {
	return Matrix{rows: m.rows, cols: m.cols, data: append([]vect.Float(nil), m.data...)}
}

// SolveLinear solves m x = b by Gaussian elimination with partial pivoting.
// m and b are left untouched.
func SolveLinear(m Matrix, b []vect.Float) ([]vect.Float, error) {
	n := m.rows
	if m.cols != n || len(b) != n {
		return nil, fmt.Errorf("%w: %dx%d system with %d values", ErrDimension, m.rows, m.cols, len(b))
	}

	a := m.Clone()
	x := append([]vect.Float(nil), b...)

	var scale vect.Float
	for _, v := range a.data {
		scale = vect.FMax(scale, vect.FAbs(v))
	}
	tol := vect.Epsilon * scale * vect.Float(n)

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if vect.FAbs(a.At(r, col)) > vect.FAbs(a.At(pivot, col)) {
				pivot = r
			}
		}
		if vect.FAbs(a.At(pivot, col)) <= tol {
			return nil, fmt.Errorf("%w: column %d", ErrSingular, col)
		}
		if pivot != col {
			for c := 0; c < n; c++ {
				pv, cv := a.At(pivot, c), a.At(col, c)
				a.Set(pivot, c, cv)
				a.Set(col, c, pv)
			}
			x[pivot], x[col] = x[col], x[pivot]
		}

		for r := col + 1; r < n; r++ {
			factor := a.At(r, col) / a.At(col, col)
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a.Add(r, c, -factor*a.At(col, c))
			}
			x[r] -= factor * x[col]
		}
	}

	for r := n - 1; r >= 0; r-- {
		sum := x[r]
		for c := r + 1; c < n; c++ {
			sum -= a.At(r, c) * x[c]
		}
		x[r] = sum / a.At(r, r)
	}
	return x, nil
}
