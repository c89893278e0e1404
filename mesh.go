package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/MonsterRestart/Fun-sub000/bounded"
)

// MaxMeshElements bounds the vertices, edges and triangles of one Object.
const MaxMeshElements = 32

type Vertex struct {
	Position mgl32.Vec3
	// Normal is the normalized average of the adjacent triangle normals.
	Normal mgl32.Vec3

	Edges     []int
	Triangles []int
}

type Edge struct {
	Vertices  [2]int
	Triangles []int
}

type Triangle struct {
	Vertices [3]int
	Edges    [3]int
	Normal   mgl32.Vec3
}

// Mesh holds the bounded element arrays of an Object with their adjacency
// back-references filled in.
type Mesh struct {
	Vertices  *bounded.List[Vertex]
	Edges     *bounded.List[Edge]
	Triangles *bounded.List[Triangle]
}

// NewMesh builds a mesh from vertex positions, edges as vertex index pairs
// and triangles as vertex index triples. Every triangle side has to be one
// of the given edges.
func NewMesh(positions []mgl32.Vec3, edges [][2]int, triangles [][3]int) (*Mesh, error) {
	return newMesh(positions, edges, triangles, MaxMeshElements)
}

func newMesh(positions []mgl32.Vec3, edges [][2]int, triangles [][3]int, capacity int) (*Mesh, error) {
	m := &Mesh{
		Vertices:  bounded.New[Vertex](capacity),
		Edges:     bounded.New[Edge](capacity),
		Triangles: bounded.New[Triangle](capacity),
	}

	for _, p := range positions {
		if err := m.Vertices.Push(Vertex{Position: p}); err != nil {
			return nil, fmt.Errorf("mesh vertices: %w", err)
		}
	}
	verts := m.Vertices.Items()

	for i, e := range edges {
		if !m.validVertex(e[0]) || !m.validVertex(e[1]) || e[0] == e[1] {
			return nil, fmt.Errorf("%w: edge %d references %v", ErrInvalidMesh, i, e)
		}
		if err := m.Edges.Push(Edge{Vertices: e}); err != nil {
			return nil, fmt.Errorf("mesh edges: %w", err)
		}
		verts[e[0]].Edges = append(verts[e[0]].Edges, i)
		verts[e[1]].Edges = append(verts[e[1]].Edges, i)
	}

	for i, tri := range triangles {
		t := Triangle{Vertices: tri}
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if !m.validVertex(a) {
				return nil, fmt.Errorf("%w: triangle %d references vertex %d", ErrInvalidMesh, i, a)
			}
			e := m.findEdge(a, b)
			if e < 0 {
				return nil, fmt.Errorf("%w: triangle %d side %d-%d is not an edge", ErrInvalidMesh, i, a, b)
			}
			t.Edges[k] = e
		}
		p0, p1, p2 := verts[tri[0]].Position, verts[tri[1]].Position, verts[tri[2]].Position
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		if n.Len() == 0 {
			return nil, fmt.Errorf("%w: triangle %d is degenerate", ErrInvalidMesh, i)
		}
		t.Normal = n.Normalize()

		if err := m.Triangles.Push(t); err != nil {
			return nil, fmt.Errorf("mesh triangles: %w", err)
		}
		for k := 0; k < 3; k++ {
			verts[tri[k]].Triangles = append(verts[tri[k]].Triangles, i)
			edge := m.Edges.At(t.Edges[k])
			edge.Triangles = append(edge.Triangles, i)
		}
	}

	m.averageNormals()
	return m, nil
}

func (m *Mesh) validVertex(i int) bool {
	return i >= 0 && i < m.Vertices.Len()
}

func (m *Mesh) findEdge(a, b int) int {
	return m.Edges.Index(func(e *Edge) bool {
		return (e.Vertices[0] == a && e.Vertices[1] == b) || (e.Vertices[0] == b && e.Vertices[1] == a)
	})
}

func (m *Mesh) averageNormals() {
	tris := m.Triangles.Items()
	verts := m.Vertices.Items()
	for i := range verts {
		var sum mgl32.Vec3
		for _, t := range verts[i].Triangles {
			sum = sum.Add(tris[t].Normal)
		}
		if sum.Len() > 0 {
			verts[i].Normal = sum.Normalize()
		}
	}
}
