package physics

import (
	"github.com/MonsterRestart/Fun-sub000/lcp"
	"github.com/MonsterRestart/Fun-sub000/vect"
)

// pointAcceleration is the acceleration of the point at arm r of s before any
// contact force of this solve is added.
func pointAcceleration(s *Shape, r vect.Vect) vect.Vect {
	w := s.Dynamics.AngularVelocity
	acc := vect.Mult(r, -w*w)
	if s.InfiniteMass {
		return acc
	}
	force, torque := s.TotalForce()
	acc.Add(vect.Mult(force, 1/s.Mass))
	acc.Add(vect.CrossFV(torque/s.MomentOfInertia, r))
	return acc
}

// contactMatrix builds A and b of the contact force problem. A[i][j] is the
// relative normal acceleration at contact i caused by a unit force at
// contact j, b[i] the relative normal acceleration without contact forces.
func contactMatrix(shapes []Shape, contacts []Contact) (lcp.Matrix, []vect.Float) {
	n := len(contacts)
	a := lcp.NewMatrix(n, n)
	b := make([]vect.Float, n)

	for i := range contacts {
		ci := &contacts[i]
		for j := range contacts {
			cj := &contacts[j]
			var sum vect.Float
			for _, k := range [2]int{cj.VertexShape, cj.EdgeShape} {
				si := ci.shares(k)
				s := &shapes[k]
				if si == 0 || s.InfiniteMass {
					continue
				}
				sj := cj.shares(k)
				ri := ci.arm(k)
				rj := cj.arm(k)
				sum += si * sj * (vect.Dot(ci.Normal, cj.Normal)*s.InvMass() +
					vect.Cross(rj, cj.Normal)*vect.Cross(ri, ci.Normal)*s.InvMomentOfInertia())
			}
			a.Set(i, j, sum)
		}

		sa, sb := &shapes[ci.VertexShape], &shapes[ci.EdgeShape]
		acc := vect.Sub(pointAcceleration(sa, ci.rA), pointAcceleration(sb, ci.rB))
		// the normal turns with the edge shape.
		normalRate := vect.CrossFV(sb.Dynamics.AngularVelocity, ci.Normal)
		vel := relative_velocity(sa, sb, ci.rA, ci.rB)
		b[i] = vect.Dot(ci.Normal, acc) + 2*vect.Dot(normalRate, vel)
	}
	return a, b
}

// solveContactForces computes the resting contact forces and adds them to the
// contact accumulators of the shapes involved.
func solveContactForces(shapes []Shape, contacts []Contact, opts lcp.Options) (lcp.Result, error) {
	for i := range contacts {
		contacts[i].update(shapes)
	}
	a, b := contactMatrix(shapes, contacts)
	res, err := lcp.Solve(a, b, opts)
	if err != nil {
		return res, err
	}

	for i := range contacts {
		f := res.F[i]
		if f <= 0 {
			continue
		}
		con := &contacts[i]
		force := vect.Mult(con.Normal, f)
		shapes[con.VertexShape].AddForceAtPoint(force, con.Position)
		shapes[con.EdgeShape].AddForceAtPoint(vect.Neg(force), con.Position)
	}
	return res, nil
}
