package physics

import (
	"github.com/MonsterRestart/Fun-sub000/vect"
)

//axis aligned bounding box used to cull shape pairs before the vertex tests.
type AABB struct {
	Lower, //l b
	Upper vect.Vect // r t
}

//returns an AABB that holds both a and v.
func Expand(a AABB, v vect.Vect) AABB {
	return AABB{
		vect.Min(a.Lower, v),
		vect.Max(a.Upper, v),
	}
}

//touching boxes overlap.
func Overlap(a, b AABB) bool {
	return a.Lower.X <= b.Upper.X && b.Lower.X <= a.Upper.X && a.Lower.Y <= b.Upper.Y && b.Lower.Y <= a.Upper.Y
}
