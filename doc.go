// Package tactile is a multi-touch gesture recognition and routing core for
// large touch tables and walls.
//
// Raw touches from a touch surface, a network relay, or a local driver are
// fed one at a time to a [Manager]. On touch down the manager hit-tests the
// tree of [Surface] values under its root, front to back, carrying a
// coordinate transform that accounts for each surface's origin and y-axis
// orientation, and hands the touch to the deepest visible surface that has
// gestures registered. Every later event for that touch goes to the same
// surface, so drags keep working past the surface's bounds.
//
// Each surface's [GestureHandler] fans touches out to its recognizers:
// [TapGesture] (taps and double taps), [LongTapGesture] (press/release),
// [PanGesture] (averaged multi-finger drag with momentum), and
// [PinchGesture] (scale and rotation with momentum).
//
// # Quick start
//
//	root := tactile.NewNode("table", 1920, 1080)
//	photo := tactile.NewNode("photo", 400, 300)
//	photo.SetPosition(200, 100)
//	root.AddChild(photo)
//
//	sched := tactile.NewFrameScheduler(time.Now())
//	m := tactile.NewManager(root, sched)
//
//	pan := tactile.NewPanGesture(tactile.PanConfig{})
//	pan.OnUpdate = func(g *tactile.PanGesture) {
//		photo.X += g.Delta.X
//		photo.Y += g.Delta.Y
//	}
//	m.Add(pan, photo)
//
//	// every frame, on the game loop goroutine:
//	queue.DrainInto(m)
//	sched.Update(time.Now())
//
// # Threading
//
// Dispatch is single-threaded. The manager, its handlers, and every
// recognizer callback run on the goroutine that calls [Manager.Handle] and
// [FrameScheduler.Update]. Producers on other goroutines push into a
// [TouchQueue], which the dispatch goroutine drains once per frame. The
// tactile/relay package provides WebSocket, TCP, and WebRTC producers, and
// tactile/ebiteninput polls Ebitengine's mouse and touch input.
//
// # Configuration
//
// Every threshold has a default and can be overridden in a [Config], which
// loads from TOML with [LoadConfig].
//
// # ECS
//
// [Manager.SetEventStore] forwards every [GestureEvent] to an [EventStore];
// tactile/ecs implements one for [Donburi].
//
// [Donburi]: https://github.com/yohamta/donburi
package tactile
