package heap

// Handle refers to a live entry in a Table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType tells what happened to an entry.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventReleased
	EventExhausted
)

func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventReleased:
		return "released"
	case EventExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Event is a lifecycle notification.
// Handle is zero for EventExhausted.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives lifecycle notifications.
// Observers run synchronously on the allocating or releasing goroutine.
type Observer interface {
	OnHeapEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnHeapEvent(e Event) { f(e) }

// Dropper is optionally implemented by values that need cleanup
// when the table releases them.
type Dropper interface {
	Drop()
}
