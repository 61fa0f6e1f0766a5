package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/tactile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	require.NotNil(t, store)
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []tactile.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e tactile.GestureEvent) {
		received = append(received, e)
	})

	store.EmitEvent(tactile.GestureEvent{
		Kind:     tactile.KindTap,
		State:    tactile.StateEnded,
		Surface:  42,
		Position: tactile.Vec2{X: 100, Y: 200},
	})
	store.EmitEvent(tactile.GestureEvent{
		Kind:  tactile.KindPinch,
		State: tactile.StateRecognized,
		Scale: 2.0,
	})

	// Events are queued until processed.
	assert.Empty(t, received)
	GestureEventType.ProcessEvents(world)

	require.Len(t, received, 2)
	assert.Equal(t, tactile.KindTap, received[0].Kind)
	assert.Equal(t, tactile.SurfaceID(42), received[0].Surface)
	assert.Equal(t, tactile.Vec2{X: 100, Y: 200}, received[0].Position)
	assert.Equal(t, tactile.KindPinch, received[1].Kind)
	assert.InDelta(t, 2.0, received[1].Scale, 1e-9)
}

func TestDonburiStore_KindFilter(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world, tactile.KindPan)

	var kinds []tactile.GestureKind
	GestureEventType.Subscribe(world, func(w donburi.World, e tactile.GestureEvent) {
		kinds = append(kinds, e.Kind)
	})
	store.EmitEvent(tactile.GestureEvent{Kind: tactile.KindTap})
	store.EmitEvent(tactile.GestureEvent{Kind: tactile.KindPan})
	events.ProcessAllEvents(world)

	assert.Equal(t, []tactile.GestureKind{tactile.KindPan}, kinds)
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e tactile.GestureEvent) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e tactile.GestureEvent) {
		count2++
	})

	store.EmitEvent(tactile.GestureEvent{Kind: tactile.KindLongTap})
	events.ProcessAllEvents(world)

	assert.Equal(t, 1, count1)
	assert.Equal(t, 1, count2)
}

func TestDonburiStore_FromManager(t *testing.T) {
	world := donburi.NewWorld()
	root := tactile.NewNode("root", 100, 100)
	sched := tactile.NewFrameScheduler(time.Unix(0, 0))
	m := tactile.NewManager(root, sched)
	m.Add(tactile.NewTapGesture(tactile.TapConfig{}), root)
	m.SetEventStore(NewDonburiStore(world))

	var received []tactile.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e tactile.GestureEvent) {
		received = append(received, e)
	})

	m.Handle(tactile.NewTouch(1, 0, tactile.TouchDown, tactile.Vec2{X: 10, Y: 10}, 0))
	m.Handle(tactile.NewTouch(1, 0, tactile.TouchUp, tactile.Vec2{X: 10, Y: 10}, 0))
	events.ProcessAllEvents(world)

	require.Len(t, received, 1)
	assert.Equal(t, tactile.StateEnded, received[0].State)
	assert.Equal(t, root.ID, received[0].Surface)
}
