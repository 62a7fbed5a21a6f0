package notify

import "sync"

// FakeSender records sent messages for test assertions.
type FakeSender struct {
	mu sync.Mutex

	// Messages contains all messages that were sent.
	Messages []Message

	// SendError, if set, will be returned by Send.
	SendError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSender creates a FakeSender.
func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

// Send records the message.
func (f *FakeSender) Send(msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendError != nil {
		return f.SendError
	}
	f.Messages = append(f.Messages, msg)
	return nil
}

// Close marks the sender as closed.
func (f *FakeSender) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Sent returns a copy of the recorded messages.
func (f *FakeSender) Sent() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.Messages...)
}
