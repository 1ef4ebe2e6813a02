package cart

import "github.com/google/uuid"

// Event is the outbound notification emitted after cart changes the UI
// should acknowledge (toast-style feedback).
type Event struct {
	ID        uuid.UUID
	Message   string
	CartCount int
}

// Notifier receives cart events. Implementations must not block; the engine
// calls it synchronously.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) {
	f(e)
}
