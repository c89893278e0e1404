package physics

import (
	"github.com/MonsterRestart/Fun-sub000/vect"
)

// Contact is a vertex of one shape found inside another shape. The shape
// fields index the engine's shape list and are only meaningful during the
// Step that produced them.
type Contact struct {
	VertexShape int
	VertexIndex int
	EdgeShape   int
	/// Witness edge: the edge of EdgeShape closest to the vertex.
	EdgeIndex int
	/// Penetration depth along the witness edge normal, >= 0.
	Depth vect.Float

	// geometry refreshed by update against the current shape state.
	Position vect.Vect
	Normal   vect.Vect
	rA, rB   vect.Vect
}

// update recomputes the world contact point, normal and the arms from both
// centers of mass.
func (con *Contact) update(shapes []Shape) {
	a := &shapes[con.VertexShape]
	b := &shapes[con.EdgeShape]

	con.Position = a.WorldVertex(con.VertexIndex)
	con.Normal = b.WorldEdgeNormal(con.EdgeIndex)
	con.rA = vect.Sub(con.Position, a.Dynamics.Position)
	con.rB = vect.Sub(con.Position, b.Dynamics.Position)
}

// shares reports which side of con the shape with index i is on: +1 for the
// vertex shape, -1 for the edge shape and 0 when con does not touch it.
func (con *Contact) shares(i int) vect.Float {
	switch i {
	case con.VertexShape:
		return 1
	case con.EdgeShape:
		return -1
	}
	return 0
}

func (con *Contact) arm(i int) vect.Vect {
	if i == con.VertexShape {
		return con.rA
	}
	return con.rB
}
