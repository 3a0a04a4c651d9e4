// Package ecs provides ECS adapters for grove's gesture events.
//
// The primary adapter is [NewDonburiStore], which bridges recognized gestures
// (tap, long press, fling, pan, zoom, pinch) into a [Donburi] world as typed
// events. Subscribe to [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	listener.Store = store
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
