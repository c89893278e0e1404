package transform

import (
	"github.com/chewxy/math32"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

type Rotation struct {
	//cosine and sine.
	C, S vect.Float
}

func NewRotation(angle vect.Float) Rotation {
	return Rotation{
		C: vect.Float(math32.Cos(float32(angle))),
		S: vect.Float(math32.Sin(float32(angle))),
	}
}

func (rot Rotation) Angle() vect.Float {
	return vect.Float(math32.Atan2(float32(rot.S), float32(rot.C)))
}

//rotates the input vector.
func (rot Rotation) RotateVect(v vect.Vect) vect.Vect {
	return vect.Vect{
		X: (v.X * rot.C) - (v.Y * rot.S),
		Y: (v.X * rot.S) + (v.Y * rot.C),
	}
}

//rotates the input vector by the inverse rotation.
func (rot Rotation) RotateVectInv(v vect.Vect) vect.Vect {
	return vect.Vect{
		X: (v.X * rot.C) + (v.Y * rot.S),
		Y: (-v.X * rot.S) + (v.Y * rot.C),
	}
}

// Transform maps local points to world space: world = Position + Rotation*local.
type Transform struct {
	Position vect.Vect
	Rotation
}

func NewTransform(pos vect.Vect, angle vect.Float) Transform {
	return Transform{
		Position: pos,
		Rotation: NewRotation(angle),
	}
}

// NewBodyTransform builds the transform of a rigid body whose center of mass,
// given in local coordinates, sits at pos in world space.
func NewBodyTransform(pos vect.Vect, angle vect.Float, centerOfMass vect.Vect) Transform {
	rot := NewRotation(angle)
	return Transform{
		Position: vect.Sub(pos, rot.RotateVect(centerOfMass)),
		Rotation: rot,
	}
}

//moves and rotates the input vector.
func (xf Transform) TransformVect(v vect.Vect) vect.Vect {
	return vect.Add(xf.Position, xf.RotateVect(v))
}

func (xf Transform) TransformVectInv(v vect.Vect) vect.Vect {
	return xf.RotateVectInv(vect.Sub(v, xf.Position))
}
