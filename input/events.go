package input

import "sync"

// KeyEvent is a single press or release pushed by an event-driven backend.
type KeyEvent struct {
	Code    uint8
	Pressed bool
}

// EventStream folds pushed key events into a pressed set and serves it as a
// digital source. Push may be called from any goroutine.
type EventStream struct {
	mu      sync.Mutex
	pressed map[uint8]struct{}
}

func NewEventStream() *EventStream {
	return &EventStream{pressed: make(map[uint8]struct{})}
}

// Push applies ev.
func (s *EventStream) Push(ev KeyEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.Pressed {
		s.pressed[ev.Code] = struct{}{}
	} else {
		delete(s.pressed, ev.Code)
	}
}

func (s *EventStream) Snapshot(codes []uint8) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(Snapshot, len(codes))
	for _, c := range codes {
		if _, ok := s.pressed[c]; ok {
			out[c] = 1
		}
	}
	return out, nil
}
