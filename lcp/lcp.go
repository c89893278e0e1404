// Package lcp solves the contact force problem
//
//	a = A f + b,  f >= 0,  a >= 0,  f·a = 0
//
// with the pivoting method of Baraff ("Fast contact force computation for
// nonpenetrating rigid bodies"). Contacts are driven to zero acceleration one
// at a time while a clamped set C (force free, acceleration pinned at zero) and
// an unclamped set NC (force zero, acceleration free) are maintained.
package lcp

import (
	"errors"
	"fmt"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

var (
	ErrSingular   = errors.New("lcp: singular clamped sub-system")
	ErrPivotLimit = errors.New("lcp: pivot limit reached")
	ErrUnbounded  = errors.New("lcp: no step bounds the driven contact")
	ErrDimension  = errors.New("lcp: dimension mismatch")
)

const DefaultEpsilon vect.Float = 1e-6

type Options struct {
	// Epsilon is the tolerance used for "negative" accelerations and forces.
	Epsilon vect.Float
	// MaxPivots bounds the number of set changes; zero means unlimited.
	MaxPivots int
}

type Result struct {
	// F holds the contact forces, A the resulting accelerations.
	F, A    []vect.Float
	Clamped []bool
	Pivots  int
}

type indexSet int

const (
	setNone indexSet = iota
	setClamped
	setUnclamped
)

type solver struct {
	a    Matrix
	f    []vect.Float
	acc  []vect.Float
	set  []indexSet
	eps  vect.Float
	max  int
	used int
}

// Solve computes contact forces for the n x n matrix a and vector b.
// Contacts are processed in index order, which makes the solution found
// deterministic for a given contact ordering.
func Solve(a Matrix, b []vect.Float, opts Options) (Result, error) {
	n := len(b)
	if a.Rows() != n || a.Cols() != n {
		return Result{}, fmt.Errorf("%w: %dx%d matrix with %d accelerations", ErrDimension, a.Rows(), a.Cols(), n)
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = DefaultEpsilon
	}

	s := &solver{
		a:   a,
		f:   make([]vect.Float, n),
		acc: append([]vect.Float(nil), b...),
		set: make([]indexSet, n),
		eps: opts.Epsilon,
		max: opts.MaxPivots,
	}

	var err error
	for d := 0; d < n && err == nil; d++ {
		if s.acc[d] < -s.eps {
			err = s.driveToZero(d)
		} else {
			s.set[d] = setUnclamped
		}
	}

	res := Result{F: s.f, A: s.acc, Clamped: make([]bool, n), Pivots: s.used}
	for i, st := range s.set {
		res.Clamped[i] = st == setClamped
	}
	return res, err
}

func (s *solver) driveToZero(d int) error {
	for {
		if s.max > 0 && s.used >= s.max {
			return fmt.Errorf("%w after %d pivots", ErrPivotLimit, s.used)
		}
		s.used++

		df, err := s.forceDirection(d)
		if err != nil {
			return err
		}
		da := s.a.MulVec(df)

		step, j := s.maxStep(df, da, d)
		if j < 0 {
			return fmt.Errorf("%w: contact %d", ErrUnbounded, d)
		}

		for i := range s.f {
			s.f[i] += step * df[i]
			s.acc[i] += step * da[i]
		}

		switch {
		case s.set[j] == setClamped:
			s.set[j] = setUnclamped
			s.f[j] = 0
		case s.set[j] == setUnclamped:
			s.set[j] = setClamped
			s.acc[j] = 0
		default:
			// j == d
			s.set[d] = setClamped
			s.acc[d] = 0
			return nil
		}
	}
}

// forceDirection returns the change in forces that moves contact d while
// keeping every clamped contact at zero acceleration.
func (s *solver) forceDirection(d int) ([]vect.Float, error) {
	df := make([]vect.Float, len(s.f))
	df[d] = 1

	clamped := make([]int, 0, len(s.f))
	for i, st := range s.set {
		if st == setClamped {
			clamped = append(clamped, i)
		}
	}
	if len(clamped) == 0 {
		return df, nil
	}

	acc := s.a.Sub(clamped, clamped)
	rhs := make([]vect.Float, len(clamped))
	for k, i := range clamped {
		rhs[k] = -s.a.At(i, d)
	}
	x, err := SolveLinear(acc, rhs)
	if err != nil {
		return nil, err
	}
	for k, i := range clamped {
		df[i] = x[k]
	}
	return df, nil
}

// maxStep is the min-ratio test. It returns the largest step along (df, da)
// that keeps every force and acceleration non-negative, and the index that
// blocks it.
func (s *solver) maxStep(df, da []vect.Float, d int) (vect.Float, int) {
	step := vect.Inf()
	j := -1

	if da[d] > 0 {
		step = -s.acc[d] / da[d]
		j = d
	}

	for i, st := range s.set {
		switch st {
		case setClamped:
			if df[i] < -s.eps {
				if r := -s.f[i] / df[i]; r < step {
					step, j = r, i
				}
			}
		case setUnclamped:
			if da[i] < -s.eps {
				if r := -s.acc[i] / da[i]; r < step {
					step, j = r, i
				}
			}
		}
	}
	if step < 0 {
		step = 0
	}
	return step, j
}
