package audio

import (
	"fmt"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Manager owns the background music stream.
type Manager struct {
	mu      sync.Mutex
	music   rl.Music
	loaded  bool
	playing bool
	volume  float32
}

var globalManager *Manager

// Init opens the audio device.
func Init() {
	rl.InitAudioDevice()
	globalManager = &Manager{volume: 1}
}

// Close unloads the music and shuts the audio device down.
func Close() {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	globalManager.unload()
	globalManager.mu.Unlock()
	rl.CloseAudioDevice()
	globalManager = nil
}

// PlayMusic loads path and loops it until Close. A previously playing
// stream is stopped and unloaded first.
func PlayMusic(path string, volume float32) error {
	if globalManager == nil {
		return fmt.Errorf("play music %s: audio not initialized", path)
	}
	if !rl.IsAudioDeviceReady() {
		return fmt.Errorf("play music %s: no audio device", path)
	}

	music := rl.LoadMusicStream(path)
	if !rl.IsMusicValid(music) {
		return fmt.Errorf("play music %s: unsupported or missing file", path)
	}
	music.Looping = true

	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	globalManager.unload()
	globalManager.music = music
	globalManager.loaded = true
	globalManager.volume = volume
	rl.SetMusicVolume(music, volume)
	rl.PlayMusicStream(music)
	globalManager.playing = true
	return nil
}

// Update refills the stream buffers. Call once per frame.
func Update() {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	if globalManager.playing {
		rl.UpdateMusicStream(globalManager.music)
	}
}

// SetVolume sets the music volume in [0, 1].
func SetVolume(volume float32) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	globalManager.volume = volume
	if globalManager.loaded {
		rl.SetMusicVolume(globalManager.music, volume)
	}
}

// Volume returns the current music volume, 0 before Init.
func Volume() float32 {
	if globalManager == nil {
		return 0
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	return globalManager.volume
}

// TogglePause pauses or resumes the music.
func TogglePause() {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	if !globalManager.loaded {
		return
	}
	if globalManager.playing {
		rl.PauseMusicStream(globalManager.music)
	} else {
		rl.ResumeMusicStream(globalManager.music)
	}
	globalManager.playing = !globalManager.playing
}

// unload requires mu to be held.
func (m *Manager) unload() {
	if !m.loaded {
		return
	}
	rl.StopMusicStream(m.music)
	rl.UnloadMusicStream(m.music)
	m.loaded = false
	m.playing = false
}
