package physics

import (
	"github.com/MonsterRestart/Fun-sub000/bounded"
	"github.com/MonsterRestart/Fun-sub000/vect"
)

// vertexInside tests vertex i of a against every edge of b. The vertex is
// inside when no edge has it on the outer side; the witness is the edge with
// the largest signed distance.
func vertexInside(a *Shape, i int, b *Shape) (witness int, depth vect.Float, inside bool) {
	p := a.WorldVertex(i)

	best := -vect.Inf()
	witness = -1
	for j := range b.Edges {
		d := b.EdgeDistance(j, p)
		if d > 0 {
			return -1, 0, false
		}
		if d > best {
			best = d
			witness = j
		}
	}
	return witness, -best, true
}

// collidePair pushes a contact for every vertex of shapes[ia] inside
// shapes[ib]. It keeps going after the list is full so the caller learns
// about the overflow once.
func collidePair(shapes []Shape, ia, ib int, contacts *bounded.List[Contact]) (overflow bool) {
	a, b := &shapes[ia], &shapes[ib]
	for i := range a.Vertices {
		witness, depth, inside := vertexInside(a, i, b)
		if !inside {
			continue
		}
		con := Contact{
			VertexShape: ia,
			VertexIndex: i,
			EdgeShape:   ib,
			EdgeIndex:   witness,
			Depth:       depth,
		}
		con.update(shapes)
		if err := contacts.Push(con); err != nil {
			overflow = true
		}
	}
	return overflow
}

// findPenetrations runs the brute force vertex-in-polygon test over every
// ordered pair of shapes. Pairs of two infinite-mass shapes are skipped and
// pairs with disjoint bounds are culled. Contacts keep the shape order, which
// keeps the force solution reproducible.
func findPenetrations(shapes []Shape, contacts *bounded.List[Contact]) (overflow bool) {
	contacts.Clear()

	bounds := make([]AABB, len(shapes))
	for i := range shapes {
		bounds[i] = shapes[i].AABB()
	}

	for ia := range shapes {
		for ib := range shapes {
			if ia == ib {
				continue
			}
			if shapes[ia].InfiniteMass && shapes[ib].InfiniteMass {
				continue
			}
			if !Overlap(bounds[ia], bounds[ib]) {
				continue
			}
			if collidePair(shapes, ia, ib, contacts) {
				overflow = true
			}
		}
	}
	return overflow
}
