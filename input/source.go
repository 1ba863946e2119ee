package input

import (
	"github.com/gdamore/tcell/v2"
)

const eventBuffer = 256

// EventPoller is the blocking half of tcell.Screen
type EventPoller interface {
	PollEvent() tcell.Event
}

// TcellSource pumps screen events from a poller goroutine into a buffered
// channel; Poll drains whatever has arrived without blocking. Events arriving
// while the buffer is full are dropped.
type TcellSource struct {
	keys   *KeyMap
	events chan tcell.Event
	done   chan struct{}
}

// NewTcellSource starts polling p. The goroutine exits when PollEvent
// returns nil, which tcell does after Fini.
func NewTcellSource(p EventPoller, keys *KeyMap) *TcellSource {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	s := &TcellSource{
		keys:   keys,
		events: make(chan tcell.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		for {
			ev := p.PollEvent()
			if ev == nil {
				return
			}
			select {
			case s.events <- ev:
			default:
			}
		}
	}()
	return s
}

// Poll returns the union of intents for all pending events
func (s *TcellSource) Poll() Intent {
	var in Intent
	for {
		select {
		case ev := <-s.events:
			in |= s.keys.Event(ev)
		default:
			return in
		}
	}
}

// Done is closed once the poller goroutine has exited
func (s *TcellSource) Done() <-chan struct{} { return s.done }
