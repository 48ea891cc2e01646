package property

// EventKind identifies a property notification.
type EventKind int

// Notifications fired by a property.
const (
	Updated EventKind = iota
	CurrentValueSet
	VisibilityChanged
	KeyframesToggled
	KeyframeAdded
	KeyframeRemoved
	DataBindingEnabled
	DataBindingDisabled
)

func (k EventKind) String() string {
	switch k {
	case Updated:
		return "Updated"
	case CurrentValueSet:
		return "CurrentValueSet"
	case VisibilityChanged:
		return "VisibilityChanged"
	case KeyframesToggled:
		return "KeyframesToggled"
	case KeyframeAdded:
		return "KeyframeAdded"
	case KeyframeRemoved:
		return "KeyframeRemoved"
	case DataBindingEnabled:
		return "DataBindingEnabled"
	case DataBindingDisabled:
		return "DataBindingDisabled"
	default:
		return "Unknown"
	}
}

// Event is delivered synchronously to subscribers, in line with the mutation
// that caused it. Observers may re-read the property's public state.
type Event[T comparable] struct {
	Kind     EventKind
	Property *Property[T]
}

type observer[T comparable] struct {
	id int
	fn func(Event[T])
}

// Subscribe registers fn for every notification of the property. The returned
// function removes the subscription.
func (p *Property[T]) Subscribe(fn func(Event[T])) (unsubscribe func()) {
	p.nextObserverID++
	id := p.nextObserverID
	p.observers = append(p.observers, observer[T]{id: id, fn: fn})

	return func() {
		for i, o := range p.observers {
			if o.id == id {
				p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
				return
			}
		}
	}
}

func (p *Property[T]) emit(kind EventKind) {
	if len(p.observers) == 0 {
		return
	}
	// Observers may unsubscribe while being notified
	observers := append([]observer[T](nil), p.observers...)
	e := Event[T]{Kind: kind, Property: p}
	for _, o := range observers {
		o.fn(e)
	}
}
