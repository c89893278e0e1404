package physics

import (
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// DecodeHeightImage decodes a PNG, BMP or TIFF image into the width, height
// and RGBA bytes HeightMapDef expects.
func DecodeHeightImage(r io.Reader) (width, height int, rgba []byte, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w: %w", ErrInvalidHeightMap, err)
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return b.Dx(), b.Dy(), dst.Pix, nil
}

// LoadHeightMapDef reads a height image and fills the image fields of def.
// A zero window selects the whole image.
func LoadHeightMapDef(path string, def HeightMapDef) (HeightMapDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return def, err
	}
	defer f.Close()

	w, h, pix, err := DecodeHeightImage(f)
	if err != nil {
		return def, fmt.Errorf("%s: %w", path, err)
	}
	def.ImageWidth, def.ImageHeight, def.ImageRGBA = w, h, pix
	if def.NumHeightsX == 0 && def.NumHeightsZ == 0 {
		def.NumHeightsX = w - def.HeightsStartX
		def.NumHeightsZ = h - def.HeightsStartZ
	}
	return def, nil
}
