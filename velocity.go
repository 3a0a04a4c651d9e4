package grove

import "time"

const velocitySampleSize = 10

// VelocityTracker estimates pointer velocity from the most recent movement
// samples. It keeps a ring of the last velocitySampleSize deltas and their
// elapsed times; velocity is the mean delta over the mean elapsed time.
type VelocityTracker struct {
	// DeltaX and DeltaY are the displacement recorded by the latest Update,
	// not the total since Start.
	DeltaX, DeltaY float64

	lastX, lastY float64
	lastTime     time.Time
	numSamples   int
	meanX        [velocitySampleSize]float64
	meanY        [velocitySampleSize]float64
	meanTime     [velocitySampleSize]time.Duration
}

// Start resets the tracker at position (x, y) at time t.
func (v *VelocityTracker) Start(x, y float64, t time.Time) {
	*v = VelocityTracker{lastX: x, lastY: y, lastTime: t}
}

// Update records a movement to (x, y) at time t.
func (v *VelocityTracker) Update(x, y float64, t time.Time) {
	v.DeltaX = x - v.lastX
	v.DeltaY = y - v.lastY
	v.lastX = x
	v.lastY = y
	dt := t.Sub(v.lastTime)
	v.lastTime = t

	i := v.numSamples % velocitySampleSize
	v.meanX[i] = v.DeltaX
	v.meanY[i] = v.DeltaY
	v.meanTime[i] = dt
	v.numSamples++
}

// VelocityX returns the horizontal velocity in units per second.
func (v *VelocityTracker) VelocityX() float64 {
	return v.velocity(&v.meanX)
}

// VelocityY returns the vertical velocity in units per second.
func (v *VelocityTracker) VelocityY() float64 {
	return v.velocity(&v.meanY)
}

func (v *VelocityTracker) velocity(deltas *[velocitySampleSize]float64) float64 {
	n := min(v.numSamples, velocitySampleSize)
	if n == 0 {
		return 0
	}
	var sum float64
	var elapsed time.Duration
	for i := 0; i < n; i++ {
		sum += deltas[i]
		elapsed += v.meanTime[i]
	}
	meanTime := (elapsed / time.Duration(n)).Seconds()
	if meanTime == 0 {
		return 0
	}
	return (sum / float64(n)) / meanTime
}

// reset forgets the last sample time so a stale tracker can't produce a
// velocity spanning two gestures.
func (v *VelocityTracker) reset() {
	v.lastTime = time.Time{}
}
