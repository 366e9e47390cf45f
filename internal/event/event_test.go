package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	got []Event
}

func (r *recorder) OnEvent(e Event) { r.got = append(r.got, e) }

func TestDispatchRoutesByType(t *testing.T) {
	d := NewDispatcher()
	hits := &recorder{}
	all := &recorder{}
	d.Subscribe(BallHit, hits)
	d.SubscribeAll(all)

	d.Dispatch(Event{Type: BallHit, Data: 1})
	d.Dispatch(Event{Type: BallMissed})

	assert.Len(t, hits.got, 1)
	assert.Equal(t, 1, hits.got[0].Data)
	assert.Len(t, all.got, 2)
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.Subscribe(BlinkToggled, r)
	d.Unsubscribe(BlinkToggled, r)

	d.Dispatch(Event{Type: BlinkToggled})
	assert.Empty(t, r.got)
}

func TestUnsubscribeAllKeepsOthers(t *testing.T) {
	d := NewDispatcher()
	gone := &recorder{}
	kept := &recorder{}
	d.SubscribeAll(gone)
	d.SubscribeAll(kept)
	d.Subscribe(BallHit, ListenerFunc(func(Event) {}))

	d.UnsubscribeAll(gone)
	d.Dispatch(Event{Type: BallHit})

	assert.Empty(t, gone.got)
	assert.Len(t, kept.got, 1)
}

func TestListenerFunc(t *testing.T) {
	d := NewDispatcher()
	count := 0
	d.Subscribe(SceneReset, ListenerFunc(func(Event) { count++ }))
	d.Dispatch(Event{Type: SceneReset})
	assert.Equal(t, 1, count)
}
