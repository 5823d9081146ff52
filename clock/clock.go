// Package clock implements the scaled virtual clock every simulation entity
// shares. Virtual time advances only in Update, by the real elapsed time
// since the previous Update multiplied by the current scale. The clock also
// carries the simulation calendar (see calendar.go).
package clock

import "time"

// VirtualClock tracks scaled monotonic simulation time in virtual
// milliseconds. It is single-owner: the host calls Update once per frame
// before driving the engine tick.
type VirtualClock struct {
	provider TimeProvider

	nowMillis uint64
	scale     float64
	paused    bool
	lastTick  time.Time
}

// Snapshot is the persistable form of the clock.
type Snapshot struct {
	NowMillis uint64
	Scale     float64
	Paused    bool
}

// New creates a clock anchored to provider's current time, running at 1x.
func New(provider TimeProvider) *VirtualClock {
	return &VirtualClock{
		provider: provider,
		scale:    1.0,
		lastTick: provider.Now(),
	}
}

// Update advances virtual time by the scaled real elapsed duration since the
// last Update. A paused clock does not advance and does not refresh its
// anchor; Resume refreshes it so pause duration never leaks into virtual time.
func (c *VirtualClock) Update() {
	if c.paused {
		return
	}

	now := c.provider.Now()
	elapsed := now.Sub(c.lastTick).Milliseconds()

	c.nowMillis += uint64(float64(elapsed) * c.scale)
	c.lastTick = now
}

// NowMillis returns current virtual time in milliseconds.
func (c *VirtualClock) NowMillis() uint64 {
	return c.nowMillis
}

// Since returns virtual milliseconds elapsed since startMillis.
func (c *VirtualClock) Since(startMillis uint64) uint64 {
	return c.nowMillis - startMillis
}

// SetScale retargets future advancement. Already-accumulated virtual time is
// not retroactively altered.
func (c *VirtualClock) SetScale(scale float64) {
	c.scale = scale
}

// Scale returns the current time scale.
func (c *VirtualClock) Scale() float64 {
	return c.scale
}

// Pause stops virtual time advancement.
func (c *VirtualClock) Pause() {
	c.paused = true
}

// Resume continues virtual time advancement from the current real time.
func (c *VirtualClock) Resume() {
	c.paused = false
	c.lastTick = c.provider.Now()
}

// IsPaused returns the pause state.
func (c *VirtualClock) IsPaused() bool {
	return c.paused
}

// CheckInterval returns true iff at least interval virtual ms have passed
// since *last, and on true updates *last to now. The canonical throttle for
// periodic engine work.
func (c *VirtualClock) CheckInterval(interval uint64, last *uint64) bool {
	if c.nowMillis-*last < interval {
		return false
	}
	*last = c.nowMillis
	return true
}

// CheckIntervalRealtime is the real-time variant of CheckInterval: it ignores
// the virtual scale and pause state. Intended for UI refresh throttling.
func (c *VirtualClock) CheckIntervalRealtime(interval time.Duration, last *time.Time) bool {
	now := c.provider.Now()
	if now.Sub(*last) < interval {
		return false
	}
	*last = now
	return true
}

// SnapshotState captures the persistable clock state.
func (c *VirtualClock) SnapshotState() Snapshot {
	return Snapshot{NowMillis: c.nowMillis, Scale: c.scale, Paused: c.paused}
}

// RestoreState reinstates a previously captured state and re-anchors the
// clock to the provider's current time.
func (c *VirtualClock) RestoreState(s Snapshot) {
	c.nowMillis = s.NowMillis
	c.scale = s.Scale
	c.paused = s.Paused
	c.lastTick = c.provider.Now()
}
