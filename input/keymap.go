package input

import "github.com/gdamore/tcell/v2"

// KeyMap binds runes and special keys to intents
type KeyMap struct {
	Runes map[rune]Intent
	Keys  map[tcell.Key]Intent
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Runes: map[rune]Intent{
			'w': IntentForward,
			's': IntentBack,
			'a': IntentStrafeLeft,
			'd': IntentStrafeRight,
			'q': IntentTurnLeft,
			'e': IntentTurnRight,
			'r': IntentLookUp,
			'f': IntentLookDown,
			' ': IntentJump,
			'1': IntentGravityNormal,
			'2': IntentGravityZeroG,
			'3': IntentGravityInverted,
			'x': IntentQuit,
		},
		Keys: map[tcell.Key]Intent{
			tcell.KeyUp:    IntentLookUp,
			tcell.KeyDown:  IntentLookDown,
			tcell.KeyLeft:  IntentTurnLeft,
			tcell.KeyRight: IntentTurnRight,
			tcell.KeyTab:   IntentAutomap,
			tcell.KeyCtrlC: IntentQuit,
			tcell.KeyCtrlD: IntentQuit,
		},
	}
}

// Translate maps a key event to its intent, IntentNone when unbound
func (m *KeyMap) Translate(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if i, ok := m.Runes[r]; ok {
			return i
		}
		// bindings are lower-case; accept caps lock
		if r >= 'A' && r <= 'Z' {
			return m.Runes[r+('a'-'A')]
		}
		return IntentNone
	}
	return m.Keys[ev.Key()]
}

// Event maps any tcell event to an intent
func (m *KeyMap) Event(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.Translate(ev)
	case *tcell.EventResize:
		return IntentResize
	}
	return IntentNone
}
