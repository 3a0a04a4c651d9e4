package grove

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenTrack drives one node field.
type tweenTrack struct {
	field *float64
	tw    *gween.Tween
}

// TweenGroup eases a set of Node fields toward their targets. Call Update
// with the frame delta until Done; a disposed node ends the group without
// further writes.
type TweenGroup struct {
	node   *Node
	tracks []tweenTrack
	Done   bool
}

// newTweenGroup pairs each field with its destination in to.
func newTweenGroup(node *Node, fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{node: node, tracks: make([]tweenTrack, len(fields))}
	for i, f := range fields {
		g.tracks[i] = tweenTrack{field: f, tw: gween.New(float32(*f), float32(to[i]), duration, fn)}
	}
	return g
}

// Update advances the group by dt seconds.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.node.IsDisposed() {
		g.Done = true
		return
	}

	done := true
	for _, tr := range g.tracks {
		v, finished := tr.tw.Update(dt)
		*tr.field = float64(v)
		done = done && finished
	}
	g.Done = done
	g.node.MarkDirty()
}

// TweenPosition moves node to (x, y).
func TweenPosition(node *Node, x, y float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, []*float64{&node.X, &node.Y}, []float64{x, y}, duration, fn)
}

// TweenScale scales node to (sx, sy).
func TweenScale(node *Node, sx, sy float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, []*float64{&node.ScaleX, &node.ScaleY}, []float64{sx, sy}, duration, fn)
}

// TweenRotation turns node to angle radians.
func TweenRotation(node *Node, angle float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, []*float64{&node.Rotation}, []float64{angle}, duration, fn)
}

// TweenFling glides node along a fling velocity (units per second) and
// comes to rest after duration seconds. The travelled distance is what
// uniform deceleration from the fling velocity to zero covers, velocity *
// duration / 2, so pair it with a decelerating ease such as ease.OutQuad.
func TweenFling(node *Node, velocityX, velocityY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	d := float64(duration) / 2
	return TweenPosition(node, node.X+velocityX*d, node.Y+velocityY*d, duration, fn)
}
