package library

// Op names a mutation kind in change events.
type Op string

const (
	OpAdd      Op = "add"
	OpDelete   Op = "delete"
	OpMove     Op = "move"
	OpProgress Op = "progress"
	OpRate     Op = "rate"
	OpNotes    Op = "notes"
	OpCover    Op = "cover"
	OpDetails  Op = "details"
	OpFlush    Op = "flush"
)

// Event signals that the collection changed.
type Event struct {
	Op        Op    `json:"op"`
	ID        int64 `json:"id,omitempty"`
	Persisted bool  `json:"persisted"`
}

// subscriberBuffer is the per-subscriber queue length. Slow subscribers
// miss events rather than block mutations.
const subscriberBuffer = 16

// Subscribe registers a listener for change events. The returned cancel
// function closes the channel and must be called once the caller is done.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// publishLocked fans ev out to every subscriber without blocking.
// Callers must hold s.mu.
func (s *Store) publishLocked(ev Event) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
