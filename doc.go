// Package grove routes pointer input through a 2D scene graph for
// [Ebitengine] and recognizes gestures on its nodes.
//
// # Stage and nodes
//
// A [Stage] owns a tree of [Node]s rooted at [Stage.Root]. Children inherit
// their parent's transform. Each frame, [Stage.Update] polls the mouse and
// touches, hit-tests the tree and delivers [InputEvent]s to the listeners
// registered with [Node.AddListener]. Events bubble from the hit node to the
// root. A listener that handles a touch down keeps receiving that pointer's
// drag and release events even after the pointer leaves the node.
//
//	stage := grove.NewStage(grove.StageConfig{})
//	card := grove.NewNode("card", 120, 80)
//	card.SetPosition(200, 150)
//	stage.Root().AddChild(card)
//
// # Gestures
//
// [ActorGestureListener] turns a node's touch events into taps, long presses,
// flings, pans, zooms and pinches. Positions handed to its hooks are in the
// node's local space:
//
//	l := grove.NewActorGestureListener(grove.DetectorConfig{})
//	l.OnTap = func(e *grove.InputEvent, x, y float64, count, pointer int, button grove.MouseButton) {
//		if count == 2 {
//			// double tap
//		}
//	}
//	l.OnPan = func(e *grove.InputEvent, x, y, dx, dy float64) {
//		card.SetPosition(card.X+dx, card.Y+dy)
//	}
//	card.AddListener(l)
//
// The recognition itself lives in [GestureDetector], which can also be fed
// directly from any input source.
//
// # Testing input
//
// [Stage.InjectPress], [Stage.InjectDrag], [Stage.InjectTouch] and JSON
// scripts loaded with [LoadGestureScript] replay synthetic input through the
// same path as real input. Gestures can be forwarded to an ECS through
// [EntityStore] (see grove/ecs for a [Donburi] adapter), and [TweenFling]
// animates a node with [gween] after a fling.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package grove
