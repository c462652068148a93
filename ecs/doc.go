// Package ecs provides ECS adapters for jamstage's selection events.
//
// The primary adapter is [NewDonburiSink], which bridges resolved selections
// (pause toggles, pattern cells, melody bar switches) into a [Donburi] world
// as typed events. Selections that changed nothing are dropped. Subscribe to
// [SelectionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
