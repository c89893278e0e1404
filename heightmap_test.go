package physics

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// rampImage is a w x h image whose red channel grows by 10 per column.
func rampImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(10 * x), G: 7, B: 9, A: 255})
		}
	}
	return img
}

func TestHeightMapGrid(t *testing.T) {
	img := rampImage(4, 3)
	h, err := NewHeightMap(HeightMapDef{
		Position:      mgl32.Vec3{100, 0, -5},
		ImageWidth:    4,
		ImageHeight:   3,
		ImageRGBA:     img.Pix,
		HeightsStartX: 1,
		HeightsStartZ: 0,
		NumHeightsX:   3,
		NumHeightsZ:   3,
	}, 25.5)
	require.NoError(t, err)

	assert.Len(t, h.Vertices, 9)
	assert.Len(t, h.Triangles, 8)

	// column 1 of the image has red 10, so height 10/255*25.5
	assert.InDelta(t, 1, h.Height(0, 0), tolerance)
	assert.InDelta(t, 3, h.Height(2, 1), tolerance)
	assert.True(t, h.Vertices[4].Position.ApproxEqualThreshold(mgl32.Vec3{101, 2, -4}, tolerance), "%v", h.Vertices[4].Position)

	for i, tri := range h.Triangles {
		assert.Greater(t, tri.Normal.Y(), float32(0), "triangle %d faces up", i)
		assert.InDelta(t, 1, tri.Normal.Len(), tolerance)
	}
	for i, v := range h.Vertices {
		assert.NotEmpty(t, v.Triangles, "vertex %d", i)
		assert.InDelta(t, 1, v.Normal.Len(), tolerance)
	}

	assert.InDelta(t, 100, h.Min.X(), tolerance)
	assert.InDelta(t, 102, h.Max.X(), tolerance)
	assert.InDelta(t, 1, h.Min.Y(), tolerance)
	assert.InDelta(t, 3, h.Max.Y(), tolerance)
}

func TestHeightMapFlatNormals(t *testing.T) {
	pix := make([]byte, 4*3*3)
	h, err := NewHeightMap(HeightMapDef{ImageWidth: 3, ImageHeight: 3, ImageRGBA: pix, NumHeightsX: 3, NumHeightsZ: 3}, 10)
	require.NoError(t, err)
	for _, v := range h.Vertices {
		assert.True(t, v.Normal.ApproxEqual(mgl32.Vec3{0, 1, 0}))
	}
}

func TestHeightMapValidation(t *testing.T) {
	pix := make([]byte, 4*4*4)
	tests := []struct {
		name string
		def  HeightMapDef
	}{
		{"short pixels", HeightMapDef{ImageWidth: 4, ImageHeight: 4, ImageRGBA: pix[:10], NumHeightsX: 2, NumHeightsZ: 2}},
		{"empty image", HeightMapDef{ImageRGBA: nil, NumHeightsX: 2, NumHeightsZ: 2}},
		{"single row", HeightMapDef{ImageWidth: 4, ImageHeight: 4, ImageRGBA: pix, NumHeightsX: 4, NumHeightsZ: 1}},
		{"window outside", HeightMapDef{ImageWidth: 4, ImageHeight: 4, ImageRGBA: pix, HeightsStartX: 3, NumHeightsX: 2, NumHeightsZ: 2}},
		{"negative start", HeightMapDef{ImageWidth: 4, ImageHeight: 4, ImageRGBA: pix, HeightsStartZ: -1, NumHeightsX: 2, NumHeightsZ: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHeightMap(tt.def, 10)
			assert.ErrorIs(t, err, ErrInvalidHeightMap)
		})
	}
}

func TestDecodeHeightImage(t *testing.T) {
	src := rampImage(5, 2)

	encoders := map[string]func(*bytes.Buffer) error{
		"png": func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"bmp": func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf))

			w, h, pix, err := DecodeHeightImage(&buf)
			require.NoError(t, err)
			assert.Equal(t, 5, w)
			assert.Equal(t, 2, h)
			assert.Equal(t, src.Pix, pix)
		})
	}

	_, _, _, err := DecodeHeightImage(bytes.NewReader([]byte("not an image")))
	assert.ErrorIs(t, err, ErrInvalidHeightMap)
}

func TestLoadHeightMapDef(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, rampImage(6, 4)))
	require.NoError(t, f.Close())

	def, err := LoadHeightMapDef(path, HeightMapDef{HeightsStartX: 2})
	require.NoError(t, err)
	assert.Equal(t, 6, def.ImageWidth)
	assert.Equal(t, 4, def.NumHeightsX)
	assert.Equal(t, 4, def.NumHeightsZ)

	e := newTestEngine(t, DefaultConfig())
	uid, err := e.CreateHeightMap(def)
	require.NoError(t, err)
	require.NotNil(t, e.HeightMap(uid))
	assert.Len(t, e.HeightMap(uid).Vertices, 16)
}
