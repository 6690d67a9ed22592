package host

import (
	"fmt"
	"sync"

	"github.com/zishang520/engine.io/v2/types"
)

type ownedListener struct {
	owner string
	fn    Listener
}

// Bus is an EventBus on top of the engine.io event emitter. The emitter holds
// one dispatch listener per event name; Bus keeps the owner bookkeeping so
// that DetachAll removes only what a single owner attached.
type Bus struct {
	emitter types.EventEmitter

	mu        sync.Mutex
	listeners map[string][]ownedListener
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{
		emitter:   types.NewEventEmitter(),
		listeners: make(map[string][]ownedListener),
	}
}

// On attaches l to event on behalf of owner.
func (b *Bus) On(owner, event string, l Listener) error {
	if event == "" {
		return fmt.Errorf("event name must not be empty")
	}
	if l == nil {
		return fmt.Errorf("event %q: listener is nil", event)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, wired := b.listeners[event]; !wired {
		b.emitter.On(types.EventName(event), func(args ...any) {
			b.dispatch(event, args)
		})
	}
	b.listeners[event] = append(b.listeners[event], ownedListener{owner: owner, fn: l})
	return nil
}

// Emit calls every listener of event synchronously, in registration order.
func (b *Bus) Emit(event string, args ...any) {
	b.emitter.Emit(types.EventName(event), args...)
}

// DetachAll removes every listener attached by owner.
func (b *Bus) DetachAll(owner string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for event, ls := range b.listeners {
		kept := ls[:0]
		for _, l := range ls {
			if l.owner != owner {
				kept = append(kept, l)
			}
		}
		if len(kept) == 0 {
			delete(b.listeners, event)
			b.emitter.RemoveAllListeners(types.EventName(event))
			continue
		}
		b.listeners[event] = kept
	}
}

// ListenerCount reports how many listeners are attached to event.
func (b *Bus) ListenerCount(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[event])
}

func (b *Bus) dispatch(event string, args []any) {
	b.mu.Lock()
	ls := append([]ownedListener(nil), b.listeners[event]...)
	b.mu.Unlock()

	for _, l := range ls {
		l.fn(args...)
	}
}
