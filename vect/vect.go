package vect

import (
	"math"

	"github.com/chewxy/math32"
)

// Float is the scalar type of the whole engine. Single precision, so the
// FLT_* limits below are the ones invariants are checked against.
type Float float32

const (
	// Epsilon is FLT_EPSILON.
	Epsilon Float = 1.1920929e-07
	// MaxFloat is FLT_MAX.
	MaxFloat Float = math.MaxFloat32
)

var (
	Vector_Zero = Vect{0, 0}
)

func FMin(a, b Float) Float {
	if a > b {
		return b
	}
	return a
}

func FAbs(a Float) Float {
	if a < 0 {
		return -a
	}
	return a
}

func FMax(a, b Float) Float {
	if a > b {
		return a
	}
	return b
}

func FClamp(val, min, max Float) Float {
	if val < min {
		return min
	} else if val > max {
		return max
	}
	return val
}

func FSqrt(a Float) Float {
	return Float(math32.Sqrt(float32(a)))
}

func Inf() Float {
	return Float(math32.Inf(1))
}

// IsFinite reports whether a is neither NaN, infinite nor FLT_MAX.
func IsFinite(a Float) bool {
	f := float32(a)
	return !math32.IsNaN(f) && !math32.IsInf(f, 0) && a < MaxFloat && a > -MaxFloat
}

//basic 2d vector.
type Vect struct {
	X, Y Float
}

//adds v2 to the given vector.
func (v1 *Vect) Add(v2 Vect) {
	v1.X += v2.X
	v1.Y += v2.Y
}

//subtracts v2 from the given vector.
func (v1 *Vect) Sub(v2 Vect) {
	v1.X -= v2.X
	v1.Y -= v2.Y
}

//returns the squared length of the vector.
func (v Vect) LengthSqr() Float {
	return v.X*v.X + v.Y*v.Y
}

//returns the length of the vector.
func (v Vect) Length() Float {
	return FSqrt(v.LengthSqr())
}

//multiplies the vector by the scalar.
func (v *Vect) Mult(s Float) {
	v.X *= s
	v.Y *= s
}

//normalizes the vector to a length of 1. The zero vector is left untouched.
func (v *Vect) Normalize() {
	l := v.Length()
	if l == 0 {
		return
	}
	f := 1.0 / l
	v.X *= f
	v.Y *= f
}

//compare two vectors by value.
func Equals(v1, v2 Vect) bool {
	return v1.X == v2.X && v1.Y == v2.Y
}

//compare two vectors with an absolute tolerance per component.
func NearlyEquals(v1, v2 Vect, tol Float) bool {
	return FAbs(v1.X-v2.X) <= tol && FAbs(v1.Y-v2.Y) <= tol
}

//adds the input vectors and returns the result.
func Add(v1, v2 Vect) Vect {
	return Vect{v1.X + v2.X, v1.Y + v2.Y}
}

//subtracts the input vectors and returns the result.
func Sub(v1, v2 Vect) Vect {
	return Vect{v1.X - v2.X, v1.Y - v2.Y}
}

//multiplies a vector by a scalar and returns the result.
func Mult(v1 Vect, s Float) Vect {
	return Vect{v1.X * s, v1.Y * s}
}

func Neg(v Vect) Vect {
	return Vect{-v.X, -v.Y}
}

//returns the square distance between two vectors.
func DistSqr(v1, v2 Vect) Float {
	return (v1.X-v2.X)*(v1.X-v2.X) + (v1.Y-v2.Y)*(v1.Y-v2.Y)
}

//returns the distance between two vectors.
func Dist(v1, v2 Vect) Float {
	return FSqrt(DistSqr(v1, v2))
}

//returns a new vector with its x/y values set to the smaller one from the two input values.
func Min(v1, v2 Vect) Vect {
	return Vect{FMin(v1.X, v2.X), FMin(v1.Y, v2.Y)}
}

//returns a new vector with its x/y values set to the bigger one from the two input values.
//e.g. Max({2, 10}, {8, 3}) would return {8, 10}
func Max(v1, v2 Vect) Vect {
	return Vect{FMax(v1.X, v2.X), FMax(v1.Y, v2.Y)}
}

//returns the normalized input vector.
func Normalize(v Vect) Vect {
	v.Normalize()
	return v
}

//dot product between two vectors.
func Dot(v1, v2 Vect) Float {
	return (v1.X * v2.X) + (v1.Y * v2.Y)
}

//z component of the 3d cross product.
func Cross(a, b Vect) Float {
	return (a.X * b.Y) - (a.Y * b.X)
}

//cross product between a scalar and a vector, w x r for an angular velocity w.
//result = {-s * a.Y, s * a.X}
func CrossFV(s Float, a Vect) Vect {
	return Vect{-s * a.Y, s * a.X}
}

//linear interpolation between two vectors by the given scalar
func Lerp(v1, v2 Vect, s Float) Vect {
	return Vect{
		v1.X + (v2.X-v1.X)*s,
		v1.Y + (v2.Y-v1.Y)*s,
	}
}

//Returns v rotated by 90 degrees counter-clockwise
func Perp(v Vect) Vect {
	return Vect{-v.Y, v.X}
}

func FromAngle(angle Float) Vect {
	return Vect{Float(math32.Cos(float32(angle))), Float(math32.Sin(float32(angle)))}
}
