// Package ecs provides ECS adapters for tactile's gesture events.
//
// The primary adapter is [NewDonburiStore], which bridges every recognizer
// update (tap, long tap, pan, pinch) into a [Donburi] world as typed events.
// Subscribe to [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	manager.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
