package resns

// Event types for namespace lifecycle notifications.
type EventType uint8

const (
	EventShared EventType = iota // slot now aliases another namespace's cell
	EventReset                   // slot replaced with a fresh default cell
	EventClosed                  // namespace released all slots
)

func (t EventType) String() string {
	switch t {
	case EventShared:
		return "shared"
	case EventReset:
		return "reset"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event describes a slot-level change in a namespace. Resource is nil for
// EventClosed. Strong is the target cell's count right after the change.
type Event struct {
	Resource *Descriptor
	Type     EventType
	Strong   int64
}

// Observer receives notifications about namespace slot changes.
type Observer interface {
	OnNamespaceEvent(Event)
}
