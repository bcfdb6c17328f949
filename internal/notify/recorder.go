package notify

import "sync"

// RecordedEvent is one captured notification.
type RecordedEvent struct {
	GameID   string
	PlayerID string // empty for broadcasts
	Event    string
	Payload  any
}

// Recorder is a Notifier for tests: it captures every event instead of
// delivering it.
type Recorder struct {
	mu     sync.Mutex
	events []RecordedEvent
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Broadcast(gameID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RecordedEvent{GameID: gameID, Event: event, Payload: payload})
}

func (r *Recorder) ToPlayer(gameID, playerID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RecordedEvent{GameID: gameID, PlayerID: playerID, Event: event, Payload: payload})
}

// Events returns a snapshot of everything captured so far.
func (r *Recorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

// EventsNamed returns captured events with the given name.
func (r *Recorder) EventsNamed(event string) []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []RecordedEvent
	for _, e := range r.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops everything captured so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
