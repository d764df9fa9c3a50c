package render

import (
	"image/color"

	"mazerunner/internal/physics"
)

// Framebuffer is a CPU-side RGBA pixel buffer, row-major from the top-left.
type Framebuffer struct {
	Width, Height int
	Pixels        []color.RGBA

	background color.RGBA
}

// NewFramebuffer allocates a black framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:      width,
		Height:     height,
		Pixels:     make([]color.RGBA, width*height),
		background: color.RGBA{A: 255},
	}
}

// SetBackground sets the colour Clear fills with.
func (f *Framebuffer) SetBackground(c color.RGBA) {
	f.background = c
}

func (f *Framebuffer) Background() color.RGBA {
	return f.background
}

// Clear fills the buffer with the background colour.
func (f *Framebuffer) Clear() {
	for i := range f.Pixels {
		f.Pixels[i] = f.background
	}
}

// Resize reallocates the buffer when the dimensions change.
func (f *Framebuffer) Resize(width, height int) {
	if width == f.Width && height == f.Height {
		return
	}
	f.Width, f.Height = width, height
	f.Pixels = make([]color.RGBA, width*height)
	f.Clear()
}

// Point sets one pixel. Points outside the buffer are dropped.
func (f *Framebuffer) Point(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.Pixels[y*f.Width+x] = c
}

// At returns the pixel at (x, y), or the zero colour outside the buffer.
func (f *Framebuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.RGBA{}
	}
	return f.Pixels[y*f.Width+x]
}

// FillRect fills a rectangle, clipped to the buffer.
func (f *Framebuffer) FillRect(x, y, w, h int, c color.RGBA) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, f.Width), min(y+h, f.Height)
	for py := y0; py < y1; py++ {
		row := f.Pixels[py*f.Width : (py+1)*f.Width]
		for px := x0; px < x1; px++ {
			row[px] = c
		}
	}
}

// Plotter returns a ray trace plotter that paints in c.
func (f *Framebuffer) Plotter(c color.RGBA) physics.Plotter {
	return physics.PlotFunc(func(x, y int) {
		f.Point(x, y, c)
	})
}
