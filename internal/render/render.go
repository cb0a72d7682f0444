// Package render turns a finished tile grid into pixels.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"archipelago.dev/internal/generation"
)

const (
	DefaultPixelSize = 10
	MaxPixelSize     = 64
)

// ErrInvalidPixelSize is returned for pixel sizes outside [1, MaxPixelSize].
var ErrInvalidPixelSize = errors.New("render: invalid pixel size")

// TileMap is the read-only view the rasterizer needs
type TileMap interface {
	Size() (width, height int)
	At(x, y int) generation.TileKind
}

// Palette maps every tile kind to its fill color
var Palette = color.Palette{
	generation.Water: color.RGBA{0, 0, 255, 255},
	generation.Sand:  color.RGBA{255, 255, 0, 255},
	generation.Grass: color.RGBA{126, 200, 80, 255},
	generation.Wood:  color.RGBA{0, 87, 0, 255},
	generation.Stone: color.RGBA{128, 128, 128, 255},
}

// ColorOf returns the fill color for a tile
func ColorOf(t generation.TileKind) color.RGBA {
	if int(t) < len(Palette) {
		return Palette[t].(color.RGBA)
	}
	return color.RGBA{0, 0, 0, 255}
}

// HexColor formats a tile's color as #rrggbb
func HexColor(t generation.TileKind) string {
	c := ColorOf(t)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Rasterize draws m with every tile as a pixelSize x pixelSize block.
// Tile (x, y) lands at pixel (x*pixelSize, y*pixelSize).
func Rasterize(m TileMap, pixelSize int) (*image.RGBA, error) {
	if pixelSize < 1 || pixelSize > MaxPixelSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPixelSize, pixelSize)
	}
	w, h := m.Size()

	// One pixel per tile, then scale up without smoothing
	src := image.NewPaletted(image.Rect(0, 0, w, h), Palette)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.SetColorIndex(x, y, uint8(m.At(x, y)))
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w*pixelSize, h*pixelSize))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// EncodePNG rasterizes m and writes it to w as PNG
func EncodePNG(w io.Writer, m TileMap, pixelSize int) error {
	img, err := Rasterize(m, pixelSize)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
