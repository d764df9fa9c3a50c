package render

import "time"

const fpsWindow = 500 * time.Millisecond

// FrameStats counts frames and keeps an FPS figure refreshed twice a second.
type FrameStats struct {
	Frames uint64

	windowStart  time.Time
	windowFrames int
	fps          float64
}

// Tick records a presented frame.
func (s *FrameStats) Tick(now time.Time) {
	s.Frames++
	if s.windowStart.IsZero() {
		s.windowStart = now
		return
	}
	s.windowFrames++
	if elapsed := now.Sub(s.windowStart); elapsed >= fpsWindow {
		s.fps = float64(s.windowFrames) / elapsed.Seconds()
		s.windowStart = now
		s.windowFrames = 0
	}
}

// FPS is the frame rate over the last completed window.
func (s *FrameStats) FPS() float64 {
	return s.fps
}
