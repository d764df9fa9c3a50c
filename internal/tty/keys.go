package tty

import (
	"github.com/gdamore/tcell/v2"

	"mazerunner/internal/player"
)

// Action is a non-movement command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleMinimap
	ActionReload
	ActionToggleMusic
)

// MapKey turns one key event into a single step of input and an action.
// Terminals only report presses, so every event is one frame of movement.
func MapKey(ev *tcell.EventKey) (player.Input, Action) {
	var in player.Input
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return in, ActionQuit
	case tcell.KeyUp:
		in.Forward = true
	case tcell.KeyDown:
		in.Backward = true
	case tcell.KeyLeft:
		in.TurnLeft = true
	case tcell.KeyRight:
		in.TurnRight = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return in, ActionQuit
		case 'w', 'W':
			in.Forward = true
		case 's', 'S':
			in.Backward = true
		case 'a', 'A':
			in.StrafeLeft = true
		case 'd', 'D':
			in.StrafeRight = true
		case ',', '<':
			in.TurnLeft = true
		case '.', '>':
			in.TurnRight = true
		case 'm', 'M':
			return in, ActionToggleMinimap
		case 'r', 'R':
			return in, ActionReload
		case 'p', 'P':
			return in, ActionToggleMusic
		}
	}
	return in, ActionNone
}

// hasMovement reports whether in asks for any movement or turning.
func hasMovement(in player.Input) bool {
	return in != player.Input{}
}
