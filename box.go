package physics

import "github.com/MonsterRestart/Fun-sub000/vect"

// BoxVertices returns the clockwise corners of a width x height box
// centered on center.
func BoxVertices(width, height vect.Float, center vect.Vect) Vertices {
	hw := vect.FAbs(width / 2.0)
	hh := vect.FAbs(height / 2.0)

	verts := Vertices{
		{X: -hw, Y: -hh},
		{X: -hw, Y: hh},
		{X: hw, Y: hh},
		{X: hw, Y: -hh},
	}
	for i := range verts {
		verts[i].Add(center)
	}
	return verts
}

// BoxMoment is the moment of inertia of a solid box about its center.
func BoxMoment(mass, width, height vect.Float) vect.Float {
	return mass * (width*width + height*height) / 12.0
}
