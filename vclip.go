package physics

import (
	"github.com/MonsterRestart/Fun-sub000/vect"
)

const vclipTolerance = 1e-5

type VClipState uint8

const (
	// VClipContinue is the state of a walk that ran out of iterations.
	VClipContinue VClipState = iota
	VClipDone
	VClipPenetration
)

func (s VClipState) String() string {
	switch s {
	case VClipContinue:
		return "Continue"
	case VClipDone:
		return "Done"
	case VClipPenetration:
		return "Penetration"
	default:
		return "Unknown"
	}
}

// VClipResult holds the closest features of two shapes. Distance is the
// separation for Done and the signed distance at which the walk stopped for
// Penetration.
type VClipResult struct {
	FeatureA Feature
	FeatureB Feature
	State    VClipState
	Distance vect.Float
}

// ClosestFeatures walks the Voronoi regions of two convex shapes until it
// finds the closest pair of features or proves that they overlap. The walk
// starts at vertex 0 of both shapes.
func ClosestFeatures(a, b *Shape) VClipResult {
	res := VClipResult{
		FeatureA: VertexFeature(0),
		FeatureB: VertexFeature(0),
		State:    VClipContinue,
	}

	limit := 4 * (a.NumVertices() + b.NumVertices())
	for i := 0; i < limit && res.State == VClipContinue; i++ {
		switch {
		case res.FeatureA.Kind == FeatureVertex && res.FeatureB.Kind == FeatureVertex:
			res = vertexVertex(a, b, res)
		case res.FeatureA.Kind == FeatureVertex && res.FeatureB.Kind == FeatureEdge:
			res = vertexEdge(a, b, res.FeatureA.Index, res.FeatureB.Index)
		case res.FeatureA.Kind == FeatureEdge && res.FeatureB.Kind == FeatureVertex:
			res = vertexEdge(b, a, res.FeatureB.Index, res.FeatureA.Index).swap()
		default:
			res = edgeEdge(a, b, res.FeatureA.Index, res.FeatureB.Index)
		}
	}
	return res
}

func (r VClipResult) swap() VClipResult {
	r.FeatureA, r.FeatureB = r.FeatureB, r.FeatureA
	return r
}

// vertexRegion checks p against the two edge planes bounding vertex i of s.
// It returns the edge whose region p lies in, or -1 when p is inside the
// vertex region.
func vertexRegion(s *Shape, i int, p vect.Vect) int {
	d := vect.Sub(p, s.WorldVertex(i))
	// parallel features would otherwise flip between regions on rounding
	// noise.
	tol := vclipTolerance * d.Length()

	if vect.Dot(d, s.WorldEdgeDirection(i)) > tol*s.Edges[i].Length {
		return i
	}
	prev := s.prev(i)
	if vect.Dot(d, s.WorldEdgeDirection(prev)) < -tol*s.Edges[prev].Length {
		return prev
	}
	return -1
}

func vertexVertex(a, b *Shape, res VClipResult) VClipResult {
	ia, ib := res.FeatureA.Index, res.FeatureB.Index
	pa, pb := a.WorldVertex(ia), b.WorldVertex(ib)

	if e := vertexRegion(a, ia, pb); e >= 0 {
		res.FeatureA = EdgeFeature(e)
		return res
	}
	if e := vertexRegion(b, ib, pa); e >= 0 {
		res.FeatureB = EdgeFeature(e)
		return res
	}
	res.State = VClipDone
	res.Distance = vect.Dist(pa, pb)
	return res
}

// vertexEdge handles vertex iv of sv against edge ie of se. Features in the
// result are reported as (vertex side, edge side).
func vertexEdge(sv, se *Shape, iv, ie int) VClipResult {
	res := VClipResult{
		FeatureA: VertexFeature(iv),
		FeatureB: EdgeFeature(ie),
		State:    VClipContinue,
	}

	p := sv.WorldVertex(iv)
	q := se.WorldVertex(ie)
	edge := se.Edges[ie]

	t := vect.Dot(vect.Sub(p, q), se.WorldEdgeDirection(ie)) / (edge.Length * edge.Length)
	switch {
	case t < 0:
		res.FeatureB = VertexFeature(ie)
		return res
	case t > 1:
		res.FeatureB = VertexFeature(se.next(ie))
		return res
	}

	dist := se.EdgeDistance(ie, p)
	if dist < 0 {
		return handleLocalMin(sv, se, iv)
	}

	closest := vect.Add(q, vect.Mult(se.WorldEdgeDirection(ie), t))
	if e := vertexRegion(sv, iv, closest); e >= 0 {
		res.FeatureA = EdgeFeature(e)
		return res
	}

	res.State = VClipDone
	res.Distance = dist
	return res
}

// handleLocalMin escapes a vertex that is behind the plane of the current
// edge: it moves to the edge of se farthest in front of the vertex, or
// reports penetration when the vertex is behind all of them.
func handleLocalMin(sv, se *Shape, iv int) VClipResult {
	p := sv.WorldVertex(iv)

	best := -vect.Inf()
	bestEdge := 0
	for j := range se.Edges {
		if d := se.EdgeDistance(j, p); d > best {
			best = d
			bestEdge = j
		}
	}

	if best <= 0 {
		return VClipResult{
			FeatureA: VertexFeature(iv),
			FeatureB: FaceFeature(0),
			State:    VClipPenetration,
			Distance: best,
		}
	}
	return VClipResult{
		FeatureA: VertexFeature(iv),
		FeatureB: EdgeFeature(bestEdge),
		State:    VClipContinue,
	}
}

// clipSegment clips p0-p1 against the slab of edge ie of s and returns the
// signed plane distances of the clipped ends.
func clipSegment(s *Shape, ie int, p0, p1 vect.Vect) (d0, d1 vect.Float, ok bool) {
	q := s.WorldVertex(ie)
	u := s.WorldEdgeDirection(ie)
	l2 := s.Edges[ie].Length * s.Edges[ie].Length

	t0 := vect.Dot(vect.Sub(p0, q), u) / l2
	t1 := vect.Dot(vect.Sub(p1, q), u) / l2

	lo, hi := vect.Float(0), vect.Float(1)
	if t0 != t1 {
		// parameters along p0-p1 where the projection enters and leaves [0, 1]
		a := (0 - t0) / (t1 - t0)
		b := (1 - t0) / (t1 - t0)
		if a > b {
			a, b = b, a
		}
		lo, hi = vect.FMax(lo, a), vect.FMin(hi, b)
	} else if t0 < 0 || t0 > 1 {
		return 0, 0, false
	}
	if lo > hi {
		return 0, 0, false
	}

	c0 := vect.Lerp(p0, p1, lo)
	c1 := vect.Lerp(p0, p1, hi)
	return s.EdgeDistance(ie, c0), s.EdgeDistance(ie, c1), true
}

func crosses(d0, d1 vect.Float) bool {
	return (d0 < 0 && d1 > 0) || (d0 > 0 && d1 < 0)
}

// segmentDistance is the distance from p to edge ie of s.
func segmentDistance(s *Shape, ie int, p vect.Vect) vect.Float {
	q := s.WorldVertex(ie)
	u := s.WorldEdgeDirection(ie)
	l2 := s.Edges[ie].Length * s.Edges[ie].Length
	t := vect.FClamp(vect.Dot(vect.Sub(p, q), u)/l2, 0, 1)
	return vect.Dist(p, vect.Add(q, vect.Mult(u, t)))
}

func edgeEdge(a, b *Shape, ea, eb int) VClipResult {
	a0, a1 := a.WorldVertex(ea), a.WorldVertex(a.next(ea))
	b0, b1 := b.WorldVertex(eb), b.WorldVertex(b.next(eb))

	if d0, d1, ok := clipSegment(a, ea, b0, b1); ok && crosses(d0, d1) {
		return VClipResult{FeatureA: EdgeFeature(ea), FeatureB: EdgeFeature(eb), State: VClipPenetration}
	}
	if d0, d1, ok := clipSegment(b, eb, a0, a1); ok && crosses(d0, d1) {
		return VClipResult{FeatureA: EdgeFeature(ea), FeatureB: EdgeFeature(eb), State: VClipPenetration}
	}

	candidates := [4]struct {
		dist vect.Float
		a, b Feature
	}{
		{segmentDistance(b, eb, a0), VertexFeature(ea), EdgeFeature(eb)},
		{segmentDistance(b, eb, a1), VertexFeature(a.next(ea)), EdgeFeature(eb)},
		{segmentDistance(a, ea, b0), EdgeFeature(ea), VertexFeature(eb)},
		{segmentDistance(a, ea, b1), EdgeFeature(ea), VertexFeature(b.next(eb))},
	}
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].dist < candidates[best].dist {
			best = i
		}
	}
	return VClipResult{
		FeatureA: candidates[best].a,
		FeatureB: candidates[best].b,
		State:    VClipContinue,
	}
}
