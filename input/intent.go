// Package input turns terminal key events into per-tick intents
package input

import "strings"

// Intent is a bitset of discrete actions requested during one tick
type Intent uint32

const (
	IntentForward Intent = 1 << iota
	IntentBack
	IntentStrafeLeft
	IntentStrafeRight
	IntentTurnLeft
	IntentTurnRight
	IntentLookUp
	IntentLookDown
	IntentJump
	IntentGravityNormal
	IntentGravityZeroG
	IntentGravityInverted
	IntentAutomap
	IntentQuit
	IntentResize

	IntentNone Intent = 0
)

var intentNames = []string{
	"forward", "back", "strafe-left", "strafe-right", "turn-left", "turn-right",
	"look-up", "look-down", "jump", "gravity-normal", "gravity-zerog",
	"gravity-inverted", "automap", "quit", "resize",
}

// Has reports whether every bit of i is set
func (in Intent) Has(i Intent) bool { return in&i == i && i != 0 }

func (in Intent) String() string {
	if in == IntentNone {
		return "none"
	}
	var parts []string
	for bit, name := range intentNames {
		if in&(1<<bit) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Source supplies the intents gathered since the previous call. Poll never blocks.
type Source interface {
	Poll() Intent
}

// Queue is a scripted Source: each Poll returns the next queued intent,
// then IntentNone once drained
type Queue struct {
	items []Intent
}

// NewQueue returns a Queue preloaded with intents
func NewQueue(intents ...Intent) *Queue {
	return &Queue{items: intents}
}

// Push appends an intent
func (q *Queue) Push(i Intent) { q.items = append(q.items, i) }

// Len returns the number of pending intents
func (q *Queue) Len() int { return len(q.items) }

func (q *Queue) Poll() Intent {
	if len(q.items) == 0 {
		return IntentNone
	}
	i := q.items[0]
	q.items = q.items[1:]
	return i
}
