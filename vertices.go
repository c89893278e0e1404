package physics

import (
	"github.com/MonsterRestart/Fun-sub000/vect"
)

// Wrapper around []vect.Vect.
type Vertices []vect.Vect

// SignedArea is positive for clockwise winding (y up) and negative for
// counter-clockwise winding.
func (verts Vertices) SignedArea() vect.Float {
	var sum vect.Float
	n := len(verts)
	for i := 0; i < n; i++ {
		sum += vect.Cross(verts[i], verts[(i+1)%n])
	}
	return -sum / 2
}

// Checks if verts forms a valid polygon.
// The vertices must be convex and winded clockwise.
func (verts Vertices) ValidatePolygon() bool {
	numVerts := len(verts)
	if numVerts < 3 {
		return false
	}
	for i := 0; i < numVerts; i++ {
		a := verts[i]
		b := verts[(i+1)%numVerts]
		c := verts[(i+2)%numVerts]

		if vect.Cross(vect.Sub(b, a), vect.Sub(c, b)) > 0.0 {
			return false
		}
	}

	return true
}

func (verts Vertices) Average() vect.Vect {
	var sum vect.Vect
	for _, v := range verts {
		sum.Add(v)
	}
	return vect.Mult(sum, 1/vect.Float(len(verts)))
}

// Clockwise returns a copy wound clockwise.
func (verts Vertices) Clockwise() Vertices {
	out := make(Vertices, len(verts))
	copy(out, verts)
	if out.SignedArea() < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// AABB returns the bounds of the vertices.
func (verts Vertices) AABB() AABB {
	inf := vect.Inf()
	aabb := AABB{
		Lower: vect.Vect{X: inf, Y: inf},
		Upper: vect.Vect{X: -inf, Y: -inf},
	}
	for _, v := range verts {
		aabb = Expand(aabb, v)
	}
	return aabb
}
