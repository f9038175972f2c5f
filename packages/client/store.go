package client

import "sync"

// MessageState is a snapshot of the two observable message fields.
type MessageState struct {
	SuccessMessage string
	ErrorMessage   string
}

// MessageStore is the observable-fields flavor of progress reporting: instead
// of forwarding events it keeps the last success and error messages for a UI
// layer to observe. Only success and error phases update state; processing
// events and request keys are ignored. Messages are never cleared
// automatically — a stale message persists until a later call overwrites it,
// and under concurrent completions the later write wins with no ordering
// guarantee.
type MessageStore struct {
	mu    sync.Mutex
	state MessageState
	subs  map[int]func(MessageState)
	next  int
}

// NewMessageStore creates a store with both messages empty.
func NewMessageStore() *MessageStore {
	return &MessageStore{subs: make(map[int]func(MessageState))}
}

// Report implements ProgressReporter.
func (s *MessageStore) Report(_ string, ev ProgressEvent) {
	s.mu.Lock()
	switch ev.Type {
	case ProgressSuccess:
		s.state.SuccessMessage = ev.Message
	case ProgressError:
		s.state.ErrorMessage = ev.Message
	default:
		s.mu.Unlock()
		return
	}
	state := s.state
	subs := make([]func(MessageState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// SuccessMessage returns the last success message.
func (s *MessageStore) SuccessMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SuccessMessage
}

// ErrorMessage returns the last error message.
func (s *MessageStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ErrorMessage
}

// State returns a snapshot of both fields.
func (s *MessageStore) State() MessageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every field change with the new state.
// The returned function cancels the subscription.
func (s *MessageStore) Subscribe(fn func(MessageState)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
