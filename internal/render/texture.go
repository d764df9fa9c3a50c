package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"mazerunner/internal/world"
)

// Texture is something a wall column can be sampled from.
type Texture interface {
	Width() int
	Height() int
	At(col, row int) color.RGBA
}

// PixelTexture is a texture held as RGBA pixels, row-major.
type PixelTexture struct {
	width, height int
	pixels        []color.RGBA
}

// NewPixelTexture wraps row-major pixels. len(pixels) must be width*height.
func NewPixelTexture(width, height int, pixels []color.RGBA) (*PixelTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture size %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("texture has %d pixels, want %d", len(pixels), width*height)
	}
	return &PixelTexture{width: width, height: height, pixels: pixels}, nil
}

// NewImageTexture copies img into a PixelTexture.
func NewImageTexture(img image.Image) *PixelTexture {
	b := img.Bounds()
	t := &PixelTexture{
		width:  b.Dx(),
		height: b.Dy(),
		pixels: make([]color.RGBA, b.Dx()*b.Dy()),
	}
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			t.pixels[y*t.width+x] = color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
		}
	}
	return t
}

// LoadTextureFile decodes a PNG or JPEG file.
func LoadTextureFile(path string) (*PixelTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("texture %s is empty", path)
	}
	return NewImageTexture(img), nil
}

func (t *PixelTexture) Width() int  { return t.width }
func (t *PixelTexture) Height() int { return t.height }

// At wraps col and row into the texture.
func (t *PixelTexture) At(col, row int) color.RGBA {
	col = min(max(col, 0), t.width-1)
	row = min(max(row, 0), t.height-1)
	return t.pixels[row*t.width+col]
}

// Solid is a single colour texture.
type Solid color.RGBA

func (s Solid) Width() int                 { return 1 }
func (s Solid) Height() int                { return 1 }
func (s Solid) At(col, row int) color.RGBA { return color.RGBA(s) }

// TextureSet maps each wall kind to its texture. Empty, and anything
// without an entry, samples the fallback.
type TextureSet struct {
	byCell   map[world.Cell]Texture
	fallback Texture
}

// NewTextureSet returns an empty set that answers every cell with fallback.
func NewTextureSet(fallback Texture) *TextureSet {
	return &TextureSet{
		byCell:   make(map[world.Cell]Texture),
		fallback: fallback,
	}
}

// Set assigns the texture for one wall kind.
func (s *TextureSet) Set(c world.Cell, t Texture) {
	s.byCell[c] = t
}

// For returns the texture for c, or the fallback when none is set.
func (s *TextureSet) For(c world.Cell) Texture {
	if t, ok := s.byCell[c]; ok {
		return t
	}
	return s.fallback
}

// Wall colours used when no texture files are configured.
var (
	ColorCorner     = color.RGBA{R: 0xFF, G: 0xDD, B: 0xDD, A: 0xFF}
	ColorHorizontal = color.RGBA{R: 0xC8, G: 0x64, B: 0x50, A: 0xFF}
	ColorVertical   = color.RGBA{R: 0x50, G: 0x78, B: 0xC8, A: 0xFF}
	ColorFallback   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// DefaultTextureSet colours the three wall kinds differently.
func DefaultTextureSet() *TextureSet {
	s := NewTextureSet(Solid(ColorFallback))
	s.Set(world.WallCorner, Solid(ColorCorner))
	s.Set(world.WallHorizontal, Solid(ColorHorizontal))
	s.Set(world.WallVertical, Solid(ColorVertical))
	return s
}

// Loader produces a texture from a path.
type Loader func(path string) (Texture, error)

// FileLoader loads textures with LoadTextureFile.
func FileLoader(path string) (Texture, error) {
	return LoadTextureFile(path)
}

// LoadTextureSet starts from DefaultTextureSet and replaces the entries that
// have a path. fallbackPath, if set, replaces the fallback texture.
func LoadTextureSet(paths map[world.Cell]string, fallbackPath string, load Loader) (*TextureSet, error) {
	s := DefaultTextureSet()
	var errs []error
	for cell, path := range paths {
		if path == "" {
			continue
		}
		t, err := load(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s texture: %w", cell, err))
			continue
		}
		s.Set(cell, t)
	}
	if fallbackPath != "" {
		t, err := load(fallbackPath)
		if err != nil {
			errs = append(errs, fmt.Errorf("fallback texture: %w", err))
		} else {
			s.fallback = t
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}
