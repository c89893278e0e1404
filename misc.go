package physics

import (
	"log/slog"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

func k_scalar_shape(s *Shape, r, n vect.Vect) vect.Float {
	if s.InfiniteMass {
		return 0
	}
	rcn := vect.Cross(r, n)
	return s.InvMass() + s.InvMomentOfInertia()*rcn*rcn
}

func k_scalar(a, b *Shape, r1, r2, n vect.Vect) vect.Float {
	return k_scalar_shape(a, r1, n) + k_scalar_shape(b, r2, n)
}

// relative_velocity is the velocity of a's point r1 seen from b's point r2.
func relative_velocity(a, b *Shape, r1, r2 vect.Vect) vect.Vect {
	return vect.Sub(a.Dynamics.PointVelocity(r1), b.Dynamics.PointVelocity(r2))
}

func normal_relative_velocity(a, b *Shape, r1, r2, n vect.Vect) vect.Float {
	return vect.Dot(relative_velocity(a, b, r1, r2), n)
}

func apply_impulses(a, b *Shape, point, j vect.Vect) {
	a.ApplyImpulse(j, point)
	b.ApplyImpulse(vect.Neg(j), point)
}

// collisionImpulse is the normal impulse magnitude that leaves the contact
// with relative normal velocity -restitution*vn + minSpeed.
func collisionImpulse(a, b *Shape, con *Contact, restitution, minSpeed vect.Float) (vect.Float, bool) {
	k := k_scalar(a, b, con.rA, con.rB, con.Normal)
	if k == 0 {
		return 0, false
	}
	vn := normal_relative_velocity(a, b, con.rA, con.rB, con.Normal)
	return (-(1+restitution)*vn + minSpeed) / k, true
}

// resolveCollisions applies one impulse per contact, in contact order. Only
// pushing impulses are applied.
func resolveCollisions(shapes []Shape, contacts []Contact, restitution, minSpeed vect.Float, logger *slog.Logger) {
	for i := range contacts {
		con := &contacts[i]
		con.update(shapes)
		a, b := &shapes[con.VertexShape], &shapes[con.EdgeShape]

		j, ok := collisionImpulse(a, b, con, restitution, minSpeed)
		if !ok {
			logger.Warn("unsolvable collision", "shapeA", a.UID, "shapeB", b.UID)
			continue
		}
		if j <= 0 {
			continue
		}
		apply_impulses(a, b, con.Position, vect.Mult(con.Normal, j))
	}
}
