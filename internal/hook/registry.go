package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// DefaultPriority is the priority used by hosts when none is given.
const DefaultPriority = 10

// Action is a listener attached to a named action.
// args are whatever the dispatcher passed to DoAction.
type Action func(ctx context.Context, args ...any) error

// ID identifies a registered listener.
type ID int64

// Dispatcher is the event-subscription surface the host exposes.
type Dispatcher interface {
	// AddAction attaches fn to name. Lower priorities run first.
	AddAction(name string, priority int, fn Action) ID

	// DoAction fires name, running every attached listener in order.
	DoAction(ctx context.Context, name string, args ...any) error
}

type listener struct {
	id       ID
	priority int
	seq      int64
	fn       Action
}

// Registry is a synchronous, in-process Dispatcher.
//
// Thread-safety: registration and dispatch may be called from any goroutine.
// Listeners run without the lock held, so they may add listeners or fire
// other actions.
type Registry struct {
	mu        sync.RWMutex
	clock     seqClock
	listeners map[string][]listener
	counts    map[string]int
	fired     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[string][]listener),
		counts:    make(map[string]int),
	}
}

// AddAction attaches fn to name.
//
// Panics if name is empty or fn is nil; both are programming errors in the
// caller and never depend on runtime input.
func (r *Registry) AddAction(name string, priority int, fn Action) ID {
	if name == "" {
		panic(ErrEmptyName)
	}
	if fn == nil {
		panic(fmt.Errorf("%w: %s", ErrNilAction, name))
	}

	seq := r.clock.next()
	l := listener{id: ID(seq), priority: priority, seq: seq, fn: fn}

	r.mu.Lock()
	defer r.mu.Unlock()

	ls := append(r.listeners[name], l)
	sort.SliceStable(ls, func(i, j int) bool {
		if ls[i].priority != ls[j].priority {
			return ls[i].priority < ls[j].priority
		}
		return ls[i].seq < ls[j].seq
	})
	r.listeners[name] = ls

	slog.Debug("action added", "action", name, "priority", priority, "id", l.id)
	return l.id
}

// RemoveAction detaches the listener with the given ID.
// Returns false if no such listener exists.
func (r *Registry) RemoveAction(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, ls := range r.listeners {
		for i, l := range ls {
			if l.id != id {
				continue
			}
			r.listeners[name] = append(ls[:i:i], ls[i+1:]...)
			if len(r.listeners[name]) == 0 {
				delete(r.listeners, name)
			}
			return true
		}
	}
	return false
}

// HasAction reports whether any listener is attached to name.
func (r *Registry) HasAction(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners[name]) > 0
}

// DoAction fires name.
//
// The listener list is snapshotted before dispatch: listeners added while
// the action is running take effect on the next dispatch.
func (r *Registry) DoAction(ctx context.Context, name string, args ...any) error {
	r.mu.Lock()
	snapshot := append([]listener(nil), r.listeners[name]...)
	r.counts[name]++
	r.fired = append(r.fired, name)
	r.mu.Unlock()

	slog.Debug("doing action", "action", name, "listeners", len(snapshot))

	for _, l := range snapshot {
		if err := ctx.Err(); err != nil {
			return &Error{Action: name, Priority: l.priority, Listener: l.id, Err: err}
		}
		if err := l.fn(ctx, args...); err != nil {
			return &Error{Action: name, Priority: l.priority, Listener: l.id, Err: err}
		}
	}
	return nil
}

// DidAction returns how many times name has been fired.
func (r *Registry) DidAction(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.counts[name]
}

// Fired returns the names of all dispatched actions in firing order.
// Nested dispatches appear in the order they started.
func (r *Registry) Fired() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.fired...)
}
