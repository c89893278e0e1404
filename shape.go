package physics

import (
	"fmt"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

// MaxShapeVertices bounds the vertex ring of a Shape.
const MaxShapeVertices = 16

// ShapeEdge is derived from the vertex ring: edge i runs from vertex i to
// vertex i+1.
type ShapeEdge struct {
	Direction     vect.Vect
	DirectionUnit vect.Vect
	// NormalUnit points out of the polygon.
	NormalUnit vect.Vect
	Length     vect.Float
}

// ShapeDef describes a Shape to create. Position is the world position of the
// polygon's center of mass.
type ShapeDef struct {
	Vertices        Vertices
	Position        vect.Vect
	Orientation     vect.Float
	Velocity        vect.Vect
	AngularVelocity vect.Float
	Force           vect.Vect
	Torque          vect.Float
	InfiniteMass    bool
}

// Shape is a convex polygon rigid body, the unit of collision.
type Shape struct {
	UID UID

	/// Local vertex ring, wound clockwise.
	Vertices Vertices
	Edges    []ShapeEdge

	AveragePosition vect.Vect
	Area            vect.Float

	/// Mass and moment are FLT_MAX when InfiniteMass is set.
	Mass            vect.Float
	MomentOfInertia vect.Float
	CenterOfMass    vect.Vect
	InfiniteMass    bool

	Dynamics Dynamics2D

	/// External force and torque applied on every step.
	Force  vect.Vect
	Torque vect.Float

	// contact forces of the current step, cleared by the engine.
	contactForce  vect.Vect
	contactTorque vect.Float
}

func NewShape(def ShapeDef) (Shape, error) {
	n := len(def.Vertices)
	if n < 3 || n > MaxShapeVertices {
		return Shape{}, fmt.Errorf("%w: %d vertices, want 3..%d", ErrInvalidPolygon, n, MaxShapeVertices)
	}
	for i, v := range def.Vertices {
		if !vect.IsFinite(v.X) || !vect.IsFinite(v.Y) {
			return Shape{}, fmt.Errorf("%w: vertex %d is not finite", ErrInvalidPolygon, i)
		}
	}

	verts := def.Vertices.Clockwise()
	s := Shape{
		Vertices:        verts,
		Edges:           make([]ShapeEdge, n),
		AveragePosition: verts.Average(),
		InfiniteMass:    def.InfiniteMass,
		Force:           def.Force,
		Torque:          def.Torque,
	}

	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		d := vect.Sub(b, a)
		l := d.Length()
		if l <= vect.Epsilon {
			return Shape{}, fmt.Errorf("%w: edge %d has zero length", ErrInvalidPolygon, i)
		}
		unit := vect.Mult(d, 1/l)
		s.Edges[i] = ShapeEdge{
			Direction:     d,
			DirectionUnit: unit,
			NormalUnit:    vect.Perp(unit),
			Length:        l,
		}
	}

	if err := s.computeMassProperties(); err != nil {
		return Shape{}, err
	}

	s.Dynamics = NewDynamics2D(def.Position, def.Orientation, def.Velocity, def.AngularVelocity, s.CenterOfMass)
	return s, nil
}

// computeMassProperties integrates area, centroid and polar moment over a
// triangle fan around the average vertex, at unit density.
func (s *Shape) computeMassProperties() error {
	const inv3 = 1.0 / 3.0

	ref := s.AveragePosition
	n := len(s.Vertices)

	var area, inertia vect.Float
	var center vect.Vect
	for i := 0; i < n; i++ {
		e1 := vect.Sub(s.Vertices[i], ref)
		e2 := vect.Sub(s.Vertices[(i+1)%n], ref)
		d := vect.Cross(e1, e2)

		triangleArea := 0.5 * d
		area += triangleArea
		center.Add(vect.Mult(vect.Add(e1, e2), triangleArea*inv3))

		intx2 := e1.X*e1.X + e2.X*e1.X + e2.X*e2.X
		inty2 := e1.Y*e1.Y + e2.Y*e1.Y + e2.Y*e2.Y
		inertia += (0.25 * inv3 * d) * (intx2 + inty2)
	}

	if vect.FAbs(area) <= vect.Epsilon {
		return fmt.Errorf("%w: zero area", ErrInvalidPolygon)
	}

	// the fan is summed in the counter-clockwise convention, so a clockwise
	// ring yields negative area and inertia.
	offset := vect.Mult(center, 1/area)
	s.Area = vect.FAbs(area)
	s.CenterOfMass = vect.Add(ref, offset)

	if s.InfiniteMass {
		s.Mass = vect.MaxFloat
		s.MomentOfInertia = vect.MaxFloat
		return nil
	}
	s.Mass = s.Area
	s.MomentOfInertia = vect.FAbs(inertia) - s.Mass*offset.LengthSqr()
	if s.MomentOfInertia <= vect.Epsilon {
		return fmt.Errorf("%w: moment of inertia %v", ErrInvalidMass, s.MomentOfInertia)
	}
	return nil
}

func (s *Shape) NumVertices() int {
	return len(s.Vertices)
}

func (s *Shape) next(i int) int {
	return (i + 1) % s.NumVertices()
}

func (s *Shape) prev(i int) int {
	n := s.NumVertices()
	return (i + n - 1) % n
}

// Convex reports whether the clockwise ring has no reflex corner.
func (s *Shape) Convex() bool {
	return s.Vertices.ValidatePolygon()
}

// SignedArea of the local ring; positive since rings are stored clockwise.
func (s *Shape) SignedArea() vect.Float {
	return s.Vertices.SignedArea()
}

func (s *Shape) EdgeNormalDirectionUnit(i int) vect.Vect {
	return s.Edges[i].NormalUnit
}

func (s *Shape) WorldVertex(i int) vect.Vect {
	return s.Dynamics.LocalToWorld(s.Vertices[i])
}

func (s *Shape) WorldVertices() Vertices {
	out := make(Vertices, len(s.Vertices))
	for i := range s.Vertices {
		out[i] = s.WorldVertex(i)
	}
	return out
}

func (s *Shape) WorldEdgeNormal(i int) vect.Vect {
	return s.Dynamics.RotateToWorld(s.Edges[i].NormalUnit)
}

func (s *Shape) WorldEdgeDirection(i int) vect.Vect {
	return s.Dynamics.RotateToWorld(s.Edges[i].Direction)
}

// WorldCenterOfMass equals Dynamics.Position.
func (s *Shape) WorldCenterOfMass() vect.Vect {
	return s.Dynamics.Position
}

// EdgeDistance is the signed distance of a world point to the line of edge
// i, positive outside.
func (s *Shape) EdgeDistance(i int, p vect.Vect) vect.Float {
	return vect.Dot(s.WorldEdgeNormal(i), vect.Sub(p, s.WorldVertex(i)))
}

// ContainsPoint reports whether the world point is inside or on the polygon.
func (s *Shape) ContainsPoint(p vect.Vect) bool {
	for i := range s.Edges {
		if s.EdgeDistance(i, p) > 0 {
			return false
		}
	}
	return true
}

func (s *Shape) AABB() AABB {
	return s.WorldVertices().AABB()
}

func (s *Shape) InvMass() vect.Float {
	if s.InfiniteMass {
		return 0
	}
	return 1 / s.Mass
}

func (s *Shape) InvMomentOfInertia() vect.Float {
	if s.InfiniteMass {
		return 0
	}
	return 1 / s.MomentOfInertia
}

// AddForceAtPoint accumulates a contact force applied at a world point for
// the rest of the current step. Infinite-mass shapes ignore it.
func (s *Shape) AddForceAtPoint(force, point vect.Vect) {
	if s.InfiniteMass {
		return
	}
	s.contactForce.Add(force)
	s.contactTorque += vect.Cross(vect.Sub(point, s.Dynamics.Position), force)
}

// TotalForce is the external force plus the accumulated contact force.
func (s *Shape) TotalForce() (vect.Vect, vect.Float) {
	return vect.Add(s.Force, s.contactForce), s.Torque + s.contactTorque
}

func (s *Shape) clearAccumulators() {
	s.contactForce = vect.Vector_Zero
	s.contactTorque = 0
}

// ApplyImpulse changes the velocities as if impulse j acted at the world
// point. Infinite-mass shapes are left untouched.
func (s *Shape) ApplyImpulse(j, point vect.Vect) {
	if s.InfiniteMass {
		return
	}
	r := vect.Sub(point, s.Dynamics.Position)
	s.Dynamics.Velocity.Add(vect.Mult(j, 1/s.Mass))
	s.Dynamics.AngularVelocity += vect.Cross(r, j) / s.MomentOfInertia
}

func (s *Shape) Step(dt vect.Float) {
	force, torque := s.TotalForce()
	s.Dynamics.Step(force, torque, dt, s.InfiniteMass, s.Mass, s.MomentOfInertia, s.CenterOfMass)
}
