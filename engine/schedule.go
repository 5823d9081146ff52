package engine

import (
	"sort"

	"github.com/lixenwraith/matchsim/clock"
	"github.com/lixenwraith/matchsim/parameter"
	"github.com/lixenwraith/matchsim/rng"
)

// Window is one desired online span within a virtual day, in ms of day.
// Start < End < MillisPerDay.
type Window struct {
	Start uint64
	End   uint64
}

// generateWindows draws a player's daily online schedule: an even number of
// minute-of-day stamps, each at least the minimum gap from every other,
// sorted and paired into windows, scaled to virtual ms.
func generateWindows(r *rng.Source) []Window {
	numStamps := r.RangeInt(1, parameter.ScheduleMaxSections) * 2

	stamps := make([]int, 0, numStamps)
	for len(stamps) < numStamps {
		candidate := r.RangeInt(0, parameter.MinutesPerDay-1)

		valid := true
		for _, s := range stamps {
			if absInt(s-candidate) < parameter.ScheduleMinGapMinutes {
				valid = false
				break
			}
		}
		if valid {
			stamps = append(stamps, candidate)
		}
	}

	sort.Ints(stamps)

	windows := make([]Window, 0, numStamps/2)
	for i := 0; i+1 < len(stamps); i += 2 {
		windows = append(windows, Window{
			Start: uint64(stamps[i]) * clock.MillisPerMinute,
			End:   uint64(stamps[i+1]) * clock.MillisPerMinute,
		})
	}
	return windows
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Windows returns the player's daily schedule, sorted and disjoint.
func (p *Player) Windows() []Window {
	return p.windows
}

// IsOnlineAt reports whether the day offset falls inside any window,
// boundaries inclusive.
func (p *Player) IsOnlineAt(dayMillis uint64) bool {
	for _, w := range p.windows {
		if dayMillis >= w.Start && dayMillis <= w.End {
			return true
		}
	}
	return false
}

// NextStateChange predicts the player's next scheduled transition from the
// current state. ok is false for states with no schedule (InGame,
// Disconnected, Rejoining).
func (p *Player) NextStateChange(now uint64) (at uint64, target PlayerState, ok bool) {
	switch p.state {
	case StateOnline:
		queueAt := now + p.currentIdle
		offlineAt := p.nextOfflineTime(now)
		if queueAt < offlineAt {
			return queueAt, StateInQueue, true
		}
		return offlineAt, StateOffline, true

	case StateInQueue:
		return p.nextOfflineTime(now), StateOffline, true

	case StateOffline:
		return p.nextOnlineTime(now), StateOnline, true
	}

	return 0, p.state, false
}

// nextOnlineTime returns the absolute virtual time of the next window start
// at or after now, wrapping into tomorrow when today's starts have passed.
func (p *Player) nextOnlineTime(now uint64) uint64 {
	timeOfDay := clock.DayProgressMillisOf(now)
	startOfDay := now - timeOfDay
	nextTimeOfDay := timeOfDay

	if len(p.windows) > 0 {
		found := false
		for _, w := range p.windows {
			if timeOfDay <= w.Start {
				nextTimeOfDay = w.Start
				found = true
				break
			}
		}
		if !found {
			nextTimeOfDay = p.windows[0].Start
		}
	}

	if nextTimeOfDay < timeOfDay {
		nextTimeOfDay += clock.MillisPerDay
	}
	return startOfDay + nextTimeOfDay
}

// nextOfflineTime returns the absolute virtual time of the next window end
// at or after now, wrapping into tomorrow when today's ends have passed.
func (p *Player) nextOfflineTime(now uint64) uint64 {
	timeOfDay := clock.DayProgressMillisOf(now)
	startOfDay := now - timeOfDay
	nextTimeOfDay := timeOfDay

	if len(p.windows) > 0 {
		found := false
		for _, w := range p.windows {
			if timeOfDay <= w.End {
				nextTimeOfDay = w.End
				found = true
				break
			}
		}
		if !found {
			nextTimeOfDay = p.windows[0].End
		}
	}

	if nextTimeOfDay < timeOfDay {
		nextTimeOfDay += clock.MillisPerDay
	}
	return startOfDay + nextTimeOfDay
}
