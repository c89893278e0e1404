package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

// Dynamics integrates the state of a 3D rigid body. Position is the world
// position of the center of mass.
type Dynamics struct {
	Position        mgl32.Vec3
	Orientation     mgl32.Quat
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3

	// Transform maps local mesh coordinates to world space.
	Transform mgl32.Mat4
}

func NewDynamics(position mgl32.Vec3, orientation mgl32.Quat, velocity, angularVelocity, centerOfMassLocal mgl32.Vec3) Dynamics {
	var d Dynamics
	d.Set(position, orientation, velocity, angularVelocity, centerOfMassLocal)
	return d
}

func (d *Dynamics) Set(position mgl32.Vec3, orientation mgl32.Quat, velocity, angularVelocity, centerOfMassLocal mgl32.Vec3) {
	d.Position = position
	d.Orientation = orientation.Normalize()
	d.Velocity = velocity
	d.AngularVelocity = angularVelocity
	d.updateTransform(centerOfMassLocal)
}

func (d *Dynamics) Step(force, torque mgl32.Vec3, dt float32, infiniteMass bool, mass float32, inertia, centerOfMassLocal mgl32.Vec3) {
	var acceleration, angularAcceleration mgl32.Vec3

	if !infiniteMass {
		checkMass3D(mass, inertia)
		acceleration = force.Mul(1 / mass)
		angularAcceleration = d.InverseWorldInertia(inertia).Mul3x1(torque)
	}

	d.Velocity = d.Velocity.Add(acceleration.Mul(dt))
	d.AngularVelocity = d.AngularVelocity.Add(angularAcceleration.Mul(dt))
	d.Position = d.Position.Add(d.Velocity.Mul(dt))
	d.integrateOrientation(dt)

	d.updateTransform(centerOfMassLocal)
}

// integrateOrientation applies the exponential map of w*dt to the orientation.
func (d *Dynamics) integrateOrientation(dt float32) {
	speed := d.AngularVelocity.Len()
	if speed*dt < 1e-7 {
		return
	}
	axis := d.AngularVelocity.Mul(1 / speed)
	dq := mgl32.QuatRotate(speed*dt, axis)
	d.Orientation = dq.Mul(d.Orientation).Normalize()
}

// InverseWorldInertia is R diag(1/I) R^T for the current orientation.
func (d *Dynamics) InverseWorldInertia(inertia mgl32.Vec3) mgl32.Mat3 {
	r := d.Orientation.Mat4().Mat3()
	inv := mgl32.Diag3(mgl32.Vec3{1 / inertia.X(), 1 / inertia.Y(), 1 / inertia.Z()})
	return r.Mul3(inv).Mul3(r.Transpose())
}

func (d *Dynamics) updateTransform(centerOfMassLocal mgl32.Vec3) {
	p := d.Position
	c := centerOfMassLocal
	d.Transform = mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(d.Orientation.Mat4()).
		Mul4(mgl32.Translate3D(-c.X(), -c.Y(), -c.Z()))
}

func (d *Dynamics) LocalToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return d.Transform.Mul4x1(p.Vec4(1)).Vec3()
}

// PointVelocity is v + w x r for a world-space offset r from the center of mass.
func (d *Dynamics) PointVelocity(r mgl32.Vec3) mgl32.Vec3 {
	return d.Velocity.Add(d.AngularVelocity.Cross(r))
}

func checkMass3D(mass float32, inertia mgl32.Vec3) {
	checkMass(vect.Float(mass), vect.Float(math32.Min(inertia.X(), math32.Min(inertia.Y(), inertia.Z()))))
	for _, c := range inertia {
		if !vect.IsFinite(vect.Float(c)) {
			panic("Moment of Inertia must be finite and greater than FLT_EPSILON.")
		}
	}
}
