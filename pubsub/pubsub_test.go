package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	calls []string
}

func (r *recorder) subscriber(name string) Subscriber {
	return func(e *Event) {
		if e == nil {
			r.calls = append(r.calls, name+":*")
			return
		}
		r.calls = append(r.calls, name+":"+e.Kind)
	}
}

func TestPublishOrder(t *testing.T) {
	var p Publisher
	r := new(recorder)

	p.Subscribe(r.subscriber("a"))
	p.Subscribe(r.subscriber("b"))
	p.Subscribe(r.subscriber("c"))

	assert.NoError(t, p.Publish(NewEvent("pixel", nil)))
	assert.Equal(t, []string{"a:pixel", "b:pixel", "c:pixel"}, r.calls)
}

func TestPublishFilter(t *testing.T) {
	var p Publisher
	r := new(recorder)

	p.Subscribe(r.subscriber("all"))
	p.Subscribe(r.subscriber("bitmap"), "bitmap")
	p.Subscribe(r.subscriber("pixel"), "pixel")

	assert.NoError(t, p.Publish(NewEvent("pixel", nil)))
	assert.Equal(t, []string{"all:pixel", "pixel:pixel"}, r.calls)

	r.calls = nil
	assert.NoError(t, p.Publish(NewEvent("bitmap", nil)))
	assert.Equal(t, []string{"all:bitmap", "bitmap:bitmap"}, r.calls)
}

func TestPublishWildcard(t *testing.T) {
	var p Publisher
	r := new(recorder)

	p.Subscribe(r.subscriber("all"))
	p.Subscribe(r.subscriber("bitmap"), "bitmap")
	p.Subscribe(r.subscriber("pixel"), "pixel")

	assert.NoError(t, p.Publish(nil))
	assert.Equal(t, []string{"all:*", "bitmap:*", "pixel:*"}, r.calls)
}

func TestUnsubscribe(t *testing.T) {
	var p Publisher
	r := new(recorder)

	a := p.Subscribe(r.subscriber("a"))
	p.Subscribe(r.subscriber("b"))
	assert.Equal(t, 2, p.Len())

	a.Unsubscribe()
	a.Unsubscribe()
	assert.Equal(t, 1, p.Len())

	assert.NoError(t, p.Publish(nil))
	assert.Equal(t, []string{"b:*"}, r.calls)
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	var p Publisher
	r := new(recorder)

	var b *Subscription
	p.Subscribe(func(e *Event) {
		r.calls = append(r.calls, "a")
		b.Unsubscribe()
	})
	b = p.Subscribe(r.subscriber("b"))
	p.Subscribe(r.subscriber("c"))

	assert.NoError(t, p.Publish(nil))
	assert.Equal(t, []string{"a", "c:*"}, r.calls)
}

func TestSubscribeDuringDispatch(t *testing.T) {
	var p Publisher
	r := new(recorder)

	p.Subscribe(func(e *Event) {
		r.calls = append(r.calls, "a")
		p.Subscribe(r.subscriber("late"))
	})

	assert.NoError(t, p.Publish(nil))
	assert.Equal(t, []string{"a"}, r.calls)

	r.calls = nil
	assert.NoError(t, p.Publish(NewEvent("pixel", nil)))
	assert.Equal(t, []string{"a", "late:pixel"}, r.calls)
}

func TestReentrantPublish(t *testing.T) {
	var p Publisher

	var inner error
	var during bool
	p.Subscribe(func(e *Event) {
		during = p.Dispatching()
		inner = p.Publish(NewEvent("pixel", nil))
	})

	assert.False(t, p.Dispatching())
	assert.NoError(t, p.Publish(nil))
	assert.True(t, during)
	assert.Equal(t, ErrReentrant, inner)
	assert.False(t, p.Dispatching())
}

func TestPanicStopsDispatch(t *testing.T) {
	var p Publisher
	r := new(recorder)

	p.Subscribe(r.subscriber("a"))
	p.Subscribe(func(e *Event) { panic("boom") })
	p.Subscribe(r.subscriber("c"))

	assert.PanicsWithValue(t, "boom", func() { _ = p.Publish(nil) })
	assert.Equal(t, []string{"a:*"}, r.calls)
	assert.False(t, p.Dispatching())

	// Still usable afterwards
	assert.Panics(t, func() { _ = p.Publish(nil) })
}
