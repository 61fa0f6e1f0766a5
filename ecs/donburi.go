package ecs

import (
	"github.com/phanxgames/tactile"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for tactile gesture updates.
// Subscribe to this in your ECS systems to receive tap, long tap, pan, and
// pinch updates.
var GestureEventType = events.NewEventType[tactile.GestureEvent]()

type donburiStore struct {
	world donburi.World
	kinds map[tactile.GestureKind]bool
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Gesture
// events are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents. If kinds are given, only updates of
// those kinds are published.
func NewDonburiStore(world donburi.World, kinds ...tactile.GestureKind) tactile.EventStore {
	s := &donburiStore{world: world}
	if len(kinds) > 0 {
		s.kinds = make(map[tactile.GestureKind]bool, len(kinds))
		for _, k := range kinds {
			s.kinds[k] = true
		}
	}
	return s
}

func (s *donburiStore) EmitEvent(event tactile.GestureEvent) {
	if s.kinds != nil && !s.kinds[event.Kind] {
		return
	}
	GestureEventType.Publish(s.world, event)
}
