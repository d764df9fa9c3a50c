package render

import (
	"fmt"
	"math"
	"sync"

	"mazerunner/internal/physics"
	"mazerunner/internal/player"
	"mazerunner/internal/world"
)

// TextureMapping picks how a texture column is chosen for a wall slice.
type TextureMapping uint8

const (
	// MapScreenColumn tiles textures across the screen (column i samples
	// texture column i mod width). Textures slide as the player moves.
	MapScreenColumn TextureMapping = iota
	// MapWallSurface pins textures to the struck wall face.
	MapWallSurface
)

// ParseTextureMapping reads "screen" or "wall". The empty string means screen.
func ParseTextureMapping(s string) (TextureMapping, error) {
	switch s {
	case "", "screen":
		return MapScreenColumn, nil
	case "wall":
		return MapWallSurface, nil
	}
	return MapScreenColumn, fmt.Errorf("unknown texture mapping %q (want screen or wall)", s)
}

func (m TextureMapping) String() string {
	if m == MapWallSurface {
		return "wall"
	}
	return "screen"
}

// Options tunes the projection.
type Options struct {
	// ProjectionDistance scales wall height; larger values zoom in.
	ProjectionDistance float64
	// MinDistance is the smallest distance fed into the projection, so a
	// ray starting inside a wall cannot divide by zero.
	MinDistance float64
	// FisheyeCorrection projects the perpendicular distance instead of the ray length.
	FisheyeCorrection bool
	Mapping           TextureMapping
	// Workers > 1 renders disjoint column ranges concurrently.
	Workers int
}

// DefaultOptions matches the classic look: no fisheye correction and
// textures tiled by screen column.
func DefaultOptions() Options {
	return Options{
		ProjectionDistance: 80,
		MinDistance:        1,
		Mapping:            MapScreenColumn,
		Workers:            1,
	}
}

// Renderer is the per-column projection pass.
type Renderer struct {
	Caster   physics.Caster
	Textures *TextureSet
	Options  Options
}

// NewRenderer uses DefaultTextureSet when textures is nil.
func NewRenderer(caster physics.Caster, textures *TextureSet, opts Options) *Renderer {
	if textures == nil {
		textures = DefaultTextureSet()
	}
	return &Renderer{Caster: caster, Textures: textures, Options: opts}
}

// RayAngle is the angle of ray i of numRays, sweeping the field of view left to right.
func RayAngle(heading, fov float64, i, numRays int) float64 {
	return heading - fov/2 + fov*(float64(i)/float64(numRays))
}

// StakeHeight is the on-screen height of a wall at distance.
func StakeHeight(halfHeight, distance, projectionDistance float64) float64 {
	return halfHeight / distance * projectionDistance
}

// Stake is the vertical extent of one wall slice.
type Stake struct {
	Top, Bottom int
	// TopF and Height are the unrounded values used for texture row mapping.
	TopF, Height float64
}

// Project computes the stake for a wall at distance. ok is false when the
// slice does not fit vertically; such columns are skipped, not clamped.
func (r *Renderer) Project(distance float64, screenHeight int) (Stake, bool) {
	hh := float64(screenHeight) / 2
	h := StakeHeight(hh, distance, r.Options.ProjectionDistance)
	top := hh - h/2
	bottom := hh + h/2
	if math.IsNaN(h) || top < 0 || bottom > float64(screenHeight) {
		return Stake{}, false
	}
	return Stake{Top: int(top), Bottom: int(bottom), TopF: top, Height: h}, true
}

// Column renders screen column i of numRays into fb.
func (r *Renderer) Column(fb *Framebuffer, g *world.Grid, pose player.Pose, i, numRays int) {
	angle := RayAngle(pose.Angle, pose.FOV, i, numRays)
	hit := r.Caster.Cast(g, pose.Pos, angle, nil)
	if hit.Impact == physics.ImpactNone {
		return
	}

	d := hit.Distance
	if r.Options.FisheyeCorrection {
		d *= math.Cos(angle - pose.Angle)
	}
	if d < r.Options.MinDistance {
		d = r.Options.MinDistance
	}

	stake, ok := r.Project(d, fb.Height)
	if !ok || stake.Height <= 0 {
		return
	}

	tex := r.Textures.For(hit.Cell)
	tx := r.textureColumn(hit, i, tex.Width())
	th := float64(tex.Height())
	for y := stake.Top; y < stake.Bottom; y++ {
		ty := int((float64(y) - stake.TopF) / stake.Height * th)
		fb.Point(i, y, tex.At(tx, ty))
	}
}

func (r *Renderer) textureColumn(hit physics.Intersect, i, width int) int {
	if r.Options.Mapping == MapWallSurface && hit.Hit() && r.Caster.BlockSize > 0 {
		u := hit.WallOffset(r.Caster.BlockSize) / r.Caster.BlockSize
		return min(int(u*float64(width)), width-1)
	}
	return i % width
}

// Render3D draws the first-person view, one ray per framebuffer column.
// The framebuffer is not cleared first.
func (r *Renderer) Render3D(fb *Framebuffer, g *world.Grid, pose player.Pose) {
	numRays := fb.Width
	workers := r.Options.Workers
	if workers <= 1 || numRays < workers {
		for i := 0; i < numRays; i++ {
			r.Column(fb, g, pose, i, numRays)
		}
		return
	}

	// Each worker owns a contiguous block of columns, so writes never overlap.
	chunk := (numRays + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < numRays; start += chunk {
		end := min(start+chunk, numRays)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				r.Column(fb, g, pose, i, numRays)
			}
		}(start, end)
	}
	wg.Wait()
}
