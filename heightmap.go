package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// HeightMapDef selects a window of an RGBA image as terrain. Heights are read
// from the red channel.
type HeightMapDef struct {
	Position    mgl32.Vec3
	ImageWidth  int
	ImageHeight int
	/// Row-major RGBA bytes, 4 per pixel.
	ImageRGBA []byte

	HeightsStartX int
	HeightsStartZ int
	NumHeightsX   int
	NumHeightsZ   int
}

// HeightMap is static terrain: a grid with unit spacing in x and z and two
// triangles per cell. It is never stepped or collided.
type HeightMap struct {
	UID UID

	Position    mgl32.Vec3
	NumHeightsX int
	NumHeightsZ int

	Vertices  []Vertex
	Triangles []Triangle

	Min, Max mgl32.Vec3
}

func NewHeightMap(def HeightMapDef, heightScale float32) (HeightMap, error) {
	switch {
	case def.ImageWidth <= 0 || def.ImageHeight <= 0:
		return HeightMap{}, fmt.Errorf("%w: image is %dx%d", ErrInvalidHeightMap, def.ImageWidth, def.ImageHeight)
	case len(def.ImageRGBA) != 4*def.ImageWidth*def.ImageHeight:
		return HeightMap{}, fmt.Errorf("%w: %d bytes for a %dx%d image", ErrInvalidHeightMap, len(def.ImageRGBA), def.ImageWidth, def.ImageHeight)
	case def.NumHeightsX < 2 || def.NumHeightsZ < 2:
		return HeightMap{}, fmt.Errorf("%w: need at least 2x2 heights, got %dx%d", ErrInvalidHeightMap, def.NumHeightsX, def.NumHeightsZ)
	case def.HeightsStartX < 0 || def.HeightsStartZ < 0 ||
		def.HeightsStartX+def.NumHeightsX > def.ImageWidth ||
		def.HeightsStartZ+def.NumHeightsZ > def.ImageHeight:
		return HeightMap{}, fmt.Errorf("%w: window (%d,%d)+(%d,%d) outside %dx%d image", ErrInvalidHeightMap,
			def.HeightsStartX, def.HeightsStartZ, def.NumHeightsX, def.NumHeightsZ, def.ImageWidth, def.ImageHeight)
	}

	h := HeightMap{
		Position:    def.Position,
		NumHeightsX: def.NumHeightsX,
		NumHeightsZ: def.NumHeightsZ,
		Vertices:    make([]Vertex, 0, def.NumHeightsX*def.NumHeightsZ),
		Triangles:   make([]Triangle, 0, 2*(def.NumHeightsX-1)*(def.NumHeightsZ-1)),
	}

	for z := 0; z < def.NumHeightsZ; z++ {
		for x := 0; x < def.NumHeightsX; x++ {
			px := def.HeightsStartX + x
			pz := def.HeightsStartZ + z
			red := def.ImageRGBA[4*(pz*def.ImageWidth+px)]
			y := float32(red) / 255 * heightScale
			h.Vertices = append(h.Vertices, Vertex{
				Position: def.Position.Add(mgl32.Vec3{float32(x), y, float32(z)}),
			})
		}
	}

	for z := 0; z < def.NumHeightsZ-1; z++ {
		for x := 0; x < def.NumHeightsX-1; x++ {
			v00 := h.index(x, z)
			v10 := h.index(x+1, z)
			v01 := h.index(x, z+1)
			v11 := h.index(x+1, z+1)
			h.addTriangle(v00, v01, v10)
			h.addTriangle(v10, v01, v11)
		}
	}

	for i := range h.Vertices {
		var sum mgl32.Vec3
		for _, t := range h.Vertices[i].Triangles {
			sum = sum.Add(h.Triangles[t].Normal)
		}
		if sum.Len() > 0 {
			h.Vertices[i].Normal = sum.Normalize()
		}
	}

	h.Min, h.Max = h.Vertices[0].Position, h.Vertices[0].Position
	for _, v := range h.Vertices[1:] {
		for k := 0; k < 3; k++ {
			h.Min[k] = min(h.Min[k], v.Position[k])
			h.Max[k] = max(h.Max[k], v.Position[k])
		}
	}
	return h, nil
}

func (h *HeightMap) index(x, z int) int {
	return z*h.NumHeightsX + x
}

func (h *HeightMap) addTriangle(a, b, c int) {
	pa, pb, pc := h.Vertices[a].Position, h.Vertices[b].Position, h.Vertices[c].Position
	n := pb.Sub(pa).Cross(pc.Sub(pa))
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}

	idx := len(h.Triangles)
	h.Triangles = append(h.Triangles, Triangle{Vertices: [3]int{a, b, c}, Normal: n})
	for _, v := range [3]int{a, b, c} {
		h.Vertices[v].Triangles = append(h.Vertices[v].Triangles, idx)
	}
}

// Height returns the terrain height at grid point (x, z).
func (h *HeightMap) Height(x, z int) float32 {
	return h.Vertices[h.index(x, z)].Position.Y()
}
