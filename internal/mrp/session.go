package mrp

import "bytes"

// Observer receives each dispatched event. It runs on the decoding goroutine
// and must not block or call back into the Decoder.
type Observer func(s *Session, ev Event)

// Session carries the observer hook and running counters for a sequence of
// decode calls. A Session is not safe for concurrent use.
type Session struct {
	observer Observer

	staged        []Event
	stagedIgnored int

	counts    [numEventKinds]int
	ignored   int
	accepted  int
	discarded int
	lastErr   error
}

// NewSession creates a session dispatching to obs, which may be nil.
func NewSession(obs Observer) *Session {
	return &Session{observer: obs}
}

// SetObserver replaces the observer hook.
func (s *Session) SetObserver(obs Observer) {
	s.observer = obs
}

// stage queues the events of one vector. LeaveAll precedes the vector's
// occurrences; Ignore positions are counted but not queued.
func (s *Session) stage(va VectorAttribute) {
	if va.Header.LeaveAll {
		s.staged = append(s.staged, Event{
			Kind:          EventLeaveAll,
			AttributeType: va.AttributeType,
			Value:         bytes.Clone(va.FirstValue),
			Position:      -1,
		})
	}
	for occ := range va.Occurrences() {
		if occ.Kind == EventIgnore {
			s.stagedIgnored++
			continue
		}
		s.staged = append(s.staged, Event{
			Kind:          occ.Kind,
			AttributeType: va.AttributeType,
			Value:         occ.Value,
			Declaration:   occ.Declaration,
			Position:      occ.Position,
		})
	}
}

func (s *Session) begin() {
	clear(s.staged)
	s.staged = s.staged[:0]
	s.stagedIgnored = 0
}

// commit forwards the staged events in decode order.
func (s *Session) commit() {
	for _, ev := range s.staged {
		s.counts[ev.Kind]++
		if s.observer != nil {
			s.observer(s, ev)
		}
	}
	s.ignored += s.stagedIgnored
	s.accepted++
	s.lastErr = nil
	s.begin()
}

func (s *Session) discard(err error) {
	s.begin()
	s.discarded++
	s.lastErr = err
}

// Count returns the number of dispatched events of kind.
func (s *Session) Count(kind EventKind) int {
	if int(kind) >= numEventKinds {
		return 0
	}
	return s.counts[kind]
}

// Events returns the total number of dispatched events.
func (s *Session) Events() int {
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// Ignored returns the number of Ignore occurrences in accepted PDUs.
func (s *Session) Ignored() int { return s.ignored }

// Accepted returns the number of PDUs decoded successfully.
func (s *Session) Accepted() int { return s.accepted }

// Discarded returns the number of PDUs rejected.
func (s *Session) Discarded() int { return s.discarded }

// LastError returns the discard reason of the most recent decode, or nil.
func (s *Session) LastError() error { return s.lastErr }

// Reset clears counters and keeps the observer.
func (s *Session) Reset() {
	obs := s.observer
	*s = Session{observer: obs}
}
