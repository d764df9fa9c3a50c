package assets

import (
	"fmt"
	"image/color"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"mazerunner/internal/render"
	"mazerunner/internal/world"
)

var manager *Manager

// Manager caches decoded wall textures by path.
type Manager struct {
	mu       sync.Mutex
	textures map[string]*render.PixelTexture
}

// Init creates the texture cache. Call before LoadTexture.
func Init() {
	manager = &Manager{
		textures: make(map[string]*render.PixelTexture),
	}
}

// LoadTexture decodes an image through raylib into CPU pixels the renderer
// can sample. Repeated loads of the same path share one texture.
func LoadTexture(path string) (render.Texture, error) {
	if manager == nil {
		Init()
	}
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if tex, exists := manager.textures[path]; exists {
		return tex, nil
	}

	img := rl.LoadImage(path)
	if !rl.IsImageValid(img) {
		return nil, fmt.Errorf("load texture %s: not a readable image", path)
	}
	defer rl.UnloadImage(img)

	colors := rl.LoadImageColors(img)
	defer rl.UnloadImageColors(colors)

	// raylib owns the returned slice, so copy before unloading it.
	pixels := make([]color.RGBA, len(colors))
	copy(pixels, colors)

	tex, err := render.NewPixelTexture(int(img.Width), int(img.Height), pixels)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	manager.textures[path] = tex
	return tex, nil
}

// LoadTextureSet resolves every configured wall texture through the cache.
func LoadTextureSet(paths map[world.Cell]string, fallback string) (*render.TextureSet, error) {
	return render.LoadTextureSet(paths, fallback, LoadTexture)
}

// Unload drops every cached texture.
func Unload() {
	if manager == nil {
		return
	}
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.textures = make(map[string]*render.PixelTexture)
}
