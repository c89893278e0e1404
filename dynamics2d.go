package physics

import (
	"github.com/MonsterRestart/Fun-sub000/transform"
	"github.com/MonsterRestart/Fun-sub000/vect"
)

// Dynamics2D integrates the state of a planar rigid body. Position is the
// world position of the center of mass; Transform maps local shape
// coordinates to world space and is rebuilt on every Step and Set.
type Dynamics2D struct {
	Position        vect.Vect
	Orientation     vect.Float
	Velocity        vect.Vect
	AngularVelocity vect.Float

	Transform transform.Transform
}

func NewDynamics2D(position vect.Vect, orientation vect.Float, velocity vect.Vect, angularVelocity vect.Float, centerOfMassLocal vect.Vect) Dynamics2D {
	var d Dynamics2D
	d.Set(position, orientation, velocity, angularVelocity, centerOfMassLocal)
	return d
}

func (d *Dynamics2D) Set(position vect.Vect, orientation vect.Float, velocity vect.Vect, angularVelocity vect.Float, centerOfMassLocal vect.Vect) {
	d.Position = position
	d.Orientation = orientation
	d.Velocity = velocity
	d.AngularVelocity = angularVelocity
	d.updateTransform(centerOfMassLocal)
}

// Step advances the state by dt with semi-implicit Euler: velocities first,
// then position and orientation from the new velocities.
func (d *Dynamics2D) Step(force vect.Vect, torque vect.Float, dt vect.Float, infiniteMass bool, mass, momentOfInertia vect.Float, centerOfMassLocal vect.Vect) {
	var acceleration vect.Vect
	var angularAcceleration vect.Float

	if !infiniteMass {
		checkMass(mass, momentOfInertia)
		acceleration = vect.Mult(force, 1/mass)
		angularAcceleration = torque / momentOfInertia
	}

	d.Velocity.Add(vect.Mult(acceleration, dt))
	d.AngularVelocity += angularAcceleration * dt
	d.Position.Add(vect.Mult(d.Velocity, dt))
	d.Orientation += d.AngularVelocity * dt

	d.updateTransform(centerOfMassLocal)
}

func (d *Dynamics2D) updateTransform(centerOfMassLocal vect.Vect) {
	d.Transform = transform.NewBodyTransform(d.Position, d.Orientation, centerOfMassLocal)
}

func (d *Dynamics2D) LocalToWorld(p vect.Vect) vect.Vect {
	return d.Transform.TransformVect(p)
}

func (d *Dynamics2D) RotateToWorld(v vect.Vect) vect.Vect {
	return d.Transform.RotateVect(v)
}

// PointVelocity is v + w x r for a world-space offset r from the center of mass.
func (d *Dynamics2D) PointVelocity(r vect.Vect) vect.Vect {
	return vect.Add(d.Velocity, vect.CrossFV(d.AngularVelocity, r))
}

func checkMass(mass, momentOfInertia vect.Float) {
	if !vect.IsFinite(mass) || mass <= vect.Epsilon {
		panic("Mass must be finite and greater than FLT_EPSILON.")
	}
	if !vect.IsFinite(momentOfInertia) || momentOfInertia <= vect.Epsilon {
		panic("Moment of Inertia must be finite and greater than FLT_EPSILON.")
	}
}
