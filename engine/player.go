package engine

import (
	"github.com/lixenwraith/matchsim/clock"
	"github.com/lixenwraith/matchsim/parameter"
	"github.com/lixenwraith/matchsim/rng"
	"github.com/lixenwraith/matchsim/trait"
)

// Player is one simulated account. The engine owns players by value in a
// dense id-indexed vector; everything else refers to players by id.
type Player struct {
	ID     int
	Traits trait.Trait
	Stats  trait.Stats

	state          PlayerState
	stateChangedAt uint64
	currentIdle    uint64

	totalOnlineMillis uint64
	queueSamples      int
	queueMillisSum    uint64
	gameSamples       int
	gameMillisSum     uint64

	history []int
	won     []int
	lost    []int
	winRate float64

	ongoingMatchID int

	windows  []Window
	activity *ActivityLog
}

// NewPlayer creates a fully randomized player: traits drawn per rarity,
// conflicts resolved, stat deltas applied, online schedule generated. The
// initial state is Online when now falls inside a window, else Offline.
func NewPlayer(id int, now uint64, r *rng.Source) Player {
	p := Player{
		ID:             id,
		ongoingMatchID: -1,
		stateChangedAt: now,
		activity:       NewActivityLog(),
	}

	p.Traits = trait.ResolveConflicts(trait.Random(r), r)
	p.Stats = trait.ApplyModifiers(p.Traits)
	p.windows = generateWindows(r)

	if p.IsOnlineAt(clock.DayProgressMillisOf(now)) {
		p.state = StateOnline
		p.currentIdle = r.Uint64Anchor(parameter.IdleTimeAnchorMS, parameter.IdleTimeDeviationMS)
	} else {
		p.state = StateOffline
	}
	p.activity.Addf("set to state: %s", p.state)

	return p
}

// NewPlayerWithTraits creates a player with the given trait mask verbatim:
// no conflict resolution, no stat deltas, initial state Offline. Intended
// for tests and tooling that validate traits explicitly afterwards.
func NewPlayerWithTraits(id int, traits trait.Trait, r *rng.Source) Player {
	return Player{
		ID:             id,
		Traits:         traits,
		ongoingMatchID: -1,
		windows:        generateWindows(r),
		activity:       NewActivityLog(),
	}
}

// ValidateTraits enforces conflict sets on the player's mask and reapplies
// stat deltas from the surviving traits.
func (p *Player) ValidateTraits(r *rng.Source) {
	p.Traits = trait.ResolveConflicts(p.Traits, r)
	p.Stats = trait.ApplyModifiers(p.Traits)
}

// State returns the current lifecycle state.
func (p *Player) State() PlayerState {
	return p.state
}

// StateChangedAt returns the virtual timestamp of the last state entry.
func (p *Player) StateChangedAt() uint64 {
	return p.stateChangedAt
}

// CurrentIdle returns the idle duration drawn on the last Online entry.
func (p *Player) CurrentIdle() uint64 {
	return p.currentIdle
}

// OngoingMatchID returns the current match id, or -1 outside a match.
func (p *Player) OngoingMatchID() int {
	return p.ongoingMatchID
}

// Activity returns the player's bounded activity log.
func (p *Player) Activity() *ActivityLog {
	return p.activity
}

// canChangeTo applies the legal-transition table. Failures are recorded in
// the activity log and reported as false.
func (p *Player) canChangeTo(target PlayerState) bool {
	if p.state == target {
		p.activity.Addf("failed: tried setting same state: %s", target)
		return false
	}

	forbidden := (p.state == StateInGame && target == StateOffline) ||
		(p.state == StateOffline && target == StateInQueue) ||
		(p.state == StateOffline && target == StateInGame)
	if forbidden {
		p.activity.Addf("failed: tried setting from %s to %s", p.state, target)
		return false
	}

	return true
}

// SetState attempts the transition to target, applying per-state time
// accounting on the state being left. force bypasses the legality check and
// is reserved for post-match restoration. The returned Transition is valid
// only when ok is true; the caller (the engine) reacts to it inline.
func (p *Player) SetState(target PlayerState, force bool, now uint64, r *rng.Source) (Transition, bool) {
	if !p.canChangeTo(target) && !force {
		return Transition{}, false
	}

	if target == StateOnline {
		p.currentIdle = r.Uint64Anchor(parameter.IdleTimeAnchorMS, parameter.IdleTimeDeviationMS)
	}

	duration := now - p.stateChangedAt

	if p.state.countsOnline() {
		p.totalOnlineMillis += duration
	}
	if p.state == StateInQueue {
		p.queueSamples++
		p.queueMillisSum += duration
	}
	if p.state == StateInGame {
		p.gameSamples++
		p.gameMillisSum += duration
	}

	old := p.state
	p.state = target
	p.stateChangedAt = now

	p.activity.Addf("set to state: %s", target)

	return Transition{From: old, To: target}, true
}

// RegisterMatchResult appends the match to the player's history and updates
// the win rate.
func (p *Player) RegisterMatchResult(matchID int, won bool) {
	p.history = append(p.history, matchID)
	if won {
		p.won = append(p.won, matchID)
	} else {
		p.lost = append(p.lost, matchID)
	}

	if len(p.history) == 0 {
		p.winRate = 0
	} else {
		p.winRate = float64(len(p.won)) / float64(len(p.history))
	}
}

// History returns match ids in play order.
func (p *Player) History() []int { return p.history }

// Won returns won match ids in play order.
func (p *Player) Won() []int { return p.won }

// Lost returns lost match ids in play order.
func (p *Player) Lost() []int { return p.lost }

// WinRate returns wins over games played, 0 when unplayed.
func (p *Player) WinRate() float64 { return p.winRate }

// GamesPlayed returns the total number of concluded matches.
func (p *Player) GamesPlayed() int { return len(p.history) }

// TotalOnlineMillis returns cumulative virtual ms spent in online-counting states.
func (p *Player) TotalOnlineMillis() uint64 { return p.totalOnlineMillis }

// TimeInCurrentState returns virtual ms since the last state entry.
func (p *Player) TimeInCurrentState(now uint64) uint64 {
	return now - p.stateChangedAt
}

// AvgQueueTime returns the mean completed queue duration, folding in the
// in-progress wait when the player currently queues.
func (p *Player) AvgQueueTime(now uint64) float64 {
	total := p.queueMillisSum
	samples := p.queueSamples
	if p.state == StateInQueue {
		total += p.TimeInCurrentState(now)
		samples++
	}
	if samples == 0 {
		return 0
	}
	return float64(total) / float64(samples)
}

// AvgGameTime returns the mean completed game duration, folding in the
// in-progress match when the player currently plays.
func (p *Player) AvgGameTime(now uint64) float64 {
	total := p.gameMillisSum
	samples := p.gameSamples
	if p.state == StateInGame {
		total += p.TimeInCurrentState(now)
		samples++
	}
	if samples == 0 {
		return 0
	}
	return float64(total) / float64(samples)
}

// SkillRating returns the player's matchmaking rating. Deliberately flat
// until a progression formula exists; the skill-gap check still runs
// against it.
func (p *Player) SkillRating() int {
	return 0
}

// TotalScore returns the sum of the seven stat axes.
func (p *Player) TotalScore() int {
	return p.Stats.Total()
}

// StatFor returns the player's value under a leaderboard sort key.
func (p *Player) StatFor(key SortKey) float64 {
	switch key {
	case SortWinRate:
		return p.winRate
	case SortAggressiveness:
		return float64(p.Stats.Agr)
	case SortFlexibility:
		return float64(p.Stats.Fle)
	case SortGrit:
		return float64(p.Stats.Gri)
	case SortEndurance:
		return float64(p.Stats.Edr)
	case SortInstinct:
		return float64(p.Stats.Ins)
	case SortCreativity:
		return float64(p.Stats.Cre)
	case SortPrecision:
		return float64(p.Stats.Pre)
	case SortTotalScore:
		return float64(p.TotalScore())
	}
	return 0
}

// Snapshot captures the player's identity and stats at this instant. Match
// teams and leaderboards hold snapshots, never references.
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:      p.ID,
		Traits:  p.Traits,
		Stats:   p.Stats,
		WinRate: p.winRate,
		Skill:   p.SkillRating(),
	}
}

// PlayerSnapshot is an immutable copy of a player's stats at capture time.
type PlayerSnapshot struct {
	ID      int
	Traits  trait.Trait
	Stats   trait.Stats
	WinRate float64
	Skill   int
}

// TotalScore returns the snapshot's summed stat axes.
func (s PlayerSnapshot) TotalScore() int {
	return s.Stats.Total()
}

// StatFor returns the snapshot's value under a leaderboard sort key.
func (s PlayerSnapshot) StatFor(key SortKey) float64 {
	switch key {
	case SortWinRate:
		return s.WinRate
	case SortAggressiveness:
		return float64(s.Stats.Agr)
	case SortFlexibility:
		return float64(s.Stats.Fle)
	case SortGrit:
		return float64(s.Stats.Gri)
	case SortEndurance:
		return float64(s.Stats.Edr)
	case SortInstinct:
		return float64(s.Stats.Ins)
	case SortCreativity:
		return float64(s.Stats.Cre)
	case SortPrecision:
		return float64(s.Stats.Pre)
	case SortTotalScore:
		return float64(s.TotalScore())
	}
	return 0
}
