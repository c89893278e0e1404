package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

// ObjectDef describes a 3D rigid body to create. Position is the world
// position of the center of mass.
type ObjectDef struct {
	Mass         float32
	InfiniteMass bool
	CenterOfMass mgl32.Vec3
	/// Principal moments of inertia in local space.
	Inertia mgl32.Vec3

	Position        mgl32.Vec3
	Orientation     mgl32.Quat
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3

	Force  mgl32.Vec3
	Torque mgl32.Vec3

	Vertices  []mgl32.Vec3
	Edges     [][2]int
	Triangles [][3]int
}

// Object is a 3D rigid body built from a triangle mesh. It is integrated
// every step but takes no part in collision.
type Object struct {
	UID UID

	Mesh *Mesh

	Mass         float32
	InfiniteMass bool
	CenterOfMass mgl32.Vec3
	Inertia      mgl32.Vec3

	Dynamics Dynamics

	Force  mgl32.Vec3
	Torque mgl32.Vec3

	accForce  mgl32.Vec3
	accTorque mgl32.Vec3
}

func NewObject(def ObjectDef) (Object, error) {
	o := Object{
		Mass:         def.Mass,
		InfiniteMass: def.InfiniteMass,
		CenterOfMass: def.CenterOfMass,
		Inertia:      def.Inertia,
		Force:        def.Force,
		Torque:       def.Torque,
	}

	if o.InfiniteMass {
		o.Mass = math32.MaxFloat32
		o.Inertia = mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32}
	} else {
		if !vect.IsFinite(vect.Float(o.Mass)) || vect.Float(o.Mass) <= vect.Epsilon {
			return Object{}, fmt.Errorf("%w: mass %v", ErrInvalidMass, o.Mass)
		}
		for i, c := range o.Inertia {
			if !vect.IsFinite(vect.Float(c)) || vect.Float(c) <= vect.Epsilon {
				return Object{}, fmt.Errorf("%w: inertia[%d] %v", ErrInvalidMass, i, c)
			}
		}
	}

	mesh, err := NewMesh(def.Vertices, def.Edges, def.Triangles)
	if err != nil {
		return Object{}, err
	}
	o.Mesh = mesh

	orientation := def.Orientation
	if orientation.Len() == 0 {
		orientation = mgl32.QuatIdent()
	}
	o.Dynamics = NewDynamics(def.Position, orientation, def.Velocity, def.AngularVelocity, o.CenterOfMass)
	return o, nil
}

// AddForceAtPoint accumulates a force applied at a world point until the end
// of the next Step.
func (o *Object) AddForceAtPoint(force, point mgl32.Vec3) {
	if o.InfiniteMass {
		return
	}
	o.accForce = o.accForce.Add(force)
	o.accTorque = o.accTorque.Add(point.Sub(o.Dynamics.Position).Cross(force))
}

func (o *Object) Step(dt float32) {
	force := o.Force.Add(o.accForce)
	torque := o.Torque.Add(o.accTorque)
	o.Dynamics.Step(force, torque, dt, o.InfiniteMass, o.Mass, o.Inertia, o.CenterOfMass)
	o.accForce = mgl32.Vec3{}
	o.accTorque = mgl32.Vec3{}
}

func (o *Object) WorldVertex(i int) mgl32.Vec3 {
	return o.Dynamics.LocalToWorld(o.Mesh.Vertices.At(i).Position)
}
