package tty

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// Music loops a WAV file through the speaker.
type Music struct {
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
}

// PlayMusic decodes path and starts looping it at volume in [0, 1].
func PlayMusic(path string, volume float64) (*Music, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open music: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode music %s: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	m := &Music{
		streamer: streamer,
		ctrl:     &beep.Ctrl{Streamer: volumeEffect(beep.Loop(-1, streamer), volume)},
	}
	speaker.Play(m.ctrl)
	return m, nil
}

func volumeEffect(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// TogglePause pauses or resumes playback. It is a no-op on a nil Music.
func (m *Music) TogglePause() {
	if m == nil {
		return
	}
	speaker.Lock()
	m.ctrl.Paused = !m.ctrl.Paused
	speaker.Unlock()
}

// Close stops playback and releases the speaker.
func (m *Music) Close() {
	if m == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.streamer.Close()
}
