package events

import (
	"sync"
)

// InMemoryEventStore keeps per-stream event logs in memory. Handlers are
// notified synchronously on append so that a run's event order is
// deterministic for subscribers such as the CLI's verbose reporter.
type InMemoryEventStore struct {
	mu          sync.RWMutex
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	allEvents   []Event
}

// NewInMemoryEventStore creates an empty store
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
	}
}

// Verify interface compliance
var _ EventStore = (*InMemoryEventStore)(nil)

// AppendEvent assigns the next version in the stream and notifies
// subscribers.
func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mu.Lock()
	versioned := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], versioned)
	s.allEvents = append(s.allEvents, versioned)
	handlers := s.handlersFor(versioned.EventType)
	s.mu.Unlock()

	for _, handler := range handlers {
		// Handler errors do not fail the append; the event is already
		// durable in the stream.
		_ = handler.Handle(versioned)
	}
	return nil
}

func (s *InMemoryEventStore) handlersFor(eventType string) []EventHandler {
	subs := s.subscribers[eventType]
	if len(subs) == 0 {
		return nil
	}
	out := make([]EventHandler, len(subs))
	copy(out, subs)
	return out
}

// ReadEvents returns a stream's events starting at fromVersion (1-based).
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return []Event{}, nil
	}
	out := make([]Event, len(stream)-fromVersion+1)
	copy(out, stream[fromVersion-1:])
	return out, nil
}

// ReadAllEvents returns every event from the global position onward.
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}
	out := make([]Event, len(s.allEvents)-fromPosition)
	copy(out, s.allEvents[fromPosition:])
	return out, nil
}

// Subscribe registers a handler for the given event types.
func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}

// Unsubscribe removes a handler from every event type.
func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for eventType, handlers := range s.subscribers {
		kept := handlers[:0]
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.subscribers[eventType] = kept
	}
	return nil
}
