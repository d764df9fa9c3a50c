package tty

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"mazerunner/internal/render"
)

// halfBlock shows the upper pixel as foreground and the lower as background,
// so one terminal cell carries two framebuffer rows.
const halfBlock = '▀'

// FramebufferSize is the framebuffer that fills a screen of cols x rows cells
// below hudRows rows of status text.
func FramebufferSize(cols, rows, hudRows int) (w, h int) {
	return max(cols, 1), max(rows-hudRows, 1) * 2
}

// Present copies fb onto the screen starting at cell row top.
func Present(s tcell.Screen, fb *render.Framebuffer, top int) {
	for y := 0; y < fb.Height; y += 2 {
		row := top + y/2
		for x := 0; x < fb.Width; x++ {
			upper := fb.At(x, y)
			lower := fb.At(x, y+1)
			if y+1 >= fb.Height {
				lower = fb.Background()
			}
			style := tcell.StyleDefault.Foreground(rgb(upper)).Background(rgb(lower))
			s.SetContent(x, row, halfBlock, nil, style)
		}
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawText writes s at (x, y) and returns the column after it.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
