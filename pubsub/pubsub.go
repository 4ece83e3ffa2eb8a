/*
Package pubsub implements a minimal synchronous change notifier.

Subscribers are called in the order they subscribed, on the goroutine that
publishes. Publishing a nil event means "everything changed" and reaches every
subscriber regardless of its filter; a typed event only reaches subscribers
without a filter or with a filter equal to the event kind.

A Publisher is not safe for concurrent use.
*/
package pubsub

import "errors"

// ErrReentrant is returned when Publish is called from within a subscriber
// while a dispatch is already in progress.
var ErrReentrant = errors.New("pubsub: publish during dispatch")

// Event describes a change. It must not be modified once published.
type Event struct {
	Kind string
	Data any
}

// NewEvent returns an event of the given kind carrying data.
func NewEvent(kind string, data any) *Event {
	return &Event{
		Kind: kind,
		Data: data,
	}
}

// Subscriber receives events. A nil event means everything changed.
type Subscriber func(e *Event)

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	p      *Publisher
	fn     Subscriber
	kind   string
	filter bool
	active bool
}

// Unsubscribe removes the subscription. If called during a dispatch the
// subscriber is not called for the remainder of it. Calling it more than
// once is harmless.
func (s *Subscription) Unsubscribe() {
	if !s.active {
		return
	}
	s.active = false

	subs := s.p.subs
	for i, sub := range subs {
		if sub == s {
			// Full slice expression forces a copy so an in-progress
			// dispatch keeps iterating over the old slice
			s.p.subs = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (s *Subscription) wants(e *Event) bool {
	return e == nil || !s.filter || s.kind == e.Kind
}

// Publisher dispatches events to its subscribers. The zero value is ready
// to use.
type Publisher struct {
	subs        []*Subscription
	dispatching bool
}

// Subscribe registers fn, optionally filtered to a single event kind. Only
// the first kind is used if more than one is passed.
func (p *Publisher) Subscribe(fn Subscriber, kind ...string) *Subscription {
	s := &Subscription{
		p:      p,
		fn:     fn,
		active: true,
	}
	if len(kind) > 0 {
		s.kind, s.filter = kind[0], true
	}
	p.subs = append(p.subs, s)
	return s
}

// Len returns the number of active subscriptions.
func (p *Publisher) Len() int {
	return len(p.subs)
}

// Dispatching reports whether a Publish call is in progress.
func (p *Publisher) Dispatching() bool {
	return p.dispatching
}

// Publish calls each interested subscriber with e. Subscribers added during
// the dispatch are not called until the next one. A panicking subscriber
// stops the dispatch and the panic is propagated to the caller.
func (p *Publisher) Publish(e *Event) error {
	if p.dispatching {
		return ErrReentrant
	}

	p.dispatching = true
	defer func() { p.dispatching = false }()

	for _, s := range p.subs {
		if s.active && s.wants(e) {
			s.fn(e)
		}
	}

	return nil
}
