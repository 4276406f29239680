// Package ecs bridges stage render lifecycle events into a Donburi world.
//
// [NewDonburiStore] publishes every [stage.RenderEvent] as a typed Donburi
// event. [Tracker] consumes those events and keeps one entity per render
// carrying its [RenderState], so ECS systems can query which renders are
// visible and how large they are.
//
// Usage:
//
//	world := donburi.NewWorld()
//	manager.SetEventStore(ecs.NewDonburiStore(world))
//	tracker := ecs.NewTracker(world)
//	// each tick
//	ecs.RenderEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
