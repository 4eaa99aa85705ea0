package main

import "github.com/gdamore/tcell/v2"

// action is what a terminal event asks the game to do
type action int

const (
	actionNone action = iota
	actionSpin
	actionRestart
	actionClick // spin or restart depending on where it lands
	actionMute
	actionPause
	actionQuit
	actionResize
)

// actionFor maps a terminal event to an action
func actionFor(ev tcell.Event) action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return actionQuit
		case tcell.KeyEnter:
			return actionSpin
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				return actionSpin
			case 'r', 'R':
				return actionRestart
			case 'm', 'M':
				return actionMute
			case 'p', 'P':
				return actionPause
			case 'q', 'Q':
				return actionQuit
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.ButtonPrimary != 0 {
			return actionClick
		}

	case *tcell.EventResize:
		return actionResize
	}
	return actionNone
}
