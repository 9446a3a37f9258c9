// Package eventbus is an in-process publish/subscribe bus for app events.
package eventbus

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/utils/async"
)

type delivery struct {
	ctx  context.Context
	data any
}

// listener receives its events in trigger order, one at a time
type listener struct {
	id string
	fn func(ctx context.Context, data any)

	mu      sync.Mutex
	queue   []delivery
	running bool
}

// enqueue adds an event and reports whether a drain has to be started
func (l *listener) enqueue(d delivery) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue = append(l.queue, d)
	if l.running {
		return false
	}
	l.running = true
	return true
}

func (l *listener) drain(_ context.Context) error {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.running = false
			l.mu.Unlock()
			return nil
		}
		d := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.deliver(d)
	}
}

func (l *listener) deliver(d delivery) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.From(d.ctx).Error("panic in event listener",
				"recover", r,
				"stack", string(debug.Stack()))
		}
	}()
	l.fn(d.ctx, d.data)
}

// Bus delivers triggered events to listeners off the caller's goroutine.
// Each listener sees events in the order they were triggered.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]*listener
	tracker   async.Tracker
}

// New creates an empty Bus
func New() *Bus {
	return &Bus{
		listeners: make(map[string][]*listener),
	}
}

var _ interfaces.EventBus = (*Bus)(nil)

// On registers fn for events named name
func (b *Bus) On(name string, fn func(ctx context.Context, data any)) interfaces.Subscription {
	l := &listener{id: uuid.NewString(), fn: fn}

	b.mu.Lock()
	b.listeners[name] = append(b.listeners[name], l)
	b.mu.Unlock()

	return &subscription{bus: b, name: name, id: l.id}
}

// Trigger delivers data to every listener of name. It does not wait for delivery.
func (b *Bus) Trigger(ctx context.Context, name string, data any) {
	b.mu.RLock()
	targets := make([]*listener, len(b.listeners[name]))
	copy(targets, b.listeners[name])
	b.mu.RUnlock()

	ctxlog.From(ctx).Debug("Triggering event",
		"name", name,
		"listeners", len(targets),
	)

	d := delivery{
		ctx:  ctxlog.With(context.Background(), ctxlog.From(ctx)),
		data: data,
	}
	for _, l := range targets {
		if l.enqueue(d) {
			b.tracker.Go(ctx, l.drain)
		}
	}
}

// Wait blocks until every delivery started so far has finished
func (b *Bus) Wait() {
	b.tracker.Wait()
}

// Listeners returns the number of registrations for name
func (b *Bus) Listeners(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}

func (b *Bus) remove(name, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.listeners[name]
	for i, l := range current {
		if l.id == id {
			b.listeners[name] = append(current[:i:i], current[i+1:]...)
			break
		}
	}
	if len(b.listeners[name]) == 0 {
		delete(b.listeners, name)
	}
}

type subscription struct {
	bus  *Bus
	name string
	id   string
	once sync.Once
}

func (s *subscription) Off() {
	s.once.Do(func() {
		s.bus.remove(s.name, s.id)
	})
}
