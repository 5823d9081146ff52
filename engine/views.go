package engine

import (
	"gonum.org/v1/gonum/stat"
)

// Read views. All accessors return copies or snapshots; none mutate engine
// state. They are meant to be called between ticks by a single-threaded
// host.

// PlayerCount returns the number of created players.
func (s *System) PlayerCount() int {
	return len(s.players)
}

// Players returns a copy of every player, id-ordered.
func (s *System) Players() []Player {
	out := make([]Player, len(s.players))
	copy(out, s.players)
	return out
}

// PlayerByID returns a copy of the player, false when the id is unknown.
func (s *System) PlayerByID(id int) (Player, bool) {
	p := s.playerByID(id)
	if p == nil {
		return Player{}, false
	}
	return *p, true
}

// MatchCount returns the number of started matches.
func (s *System) MatchCount() int {
	return len(s.matches)
}

// Matches returns a copy of every match, id-ordered.
func (s *System) Matches() []Match {
	out := make([]Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// MatchByID returns a copy of the match, false when the id is unknown.
func (s *System) MatchByID(id int) (Match, bool) {
	m := s.matchByID(id)
	if m == nil {
		return Match{}, false
	}
	return *m, true
}

// OngoingMatchIDs returns the live match ids in start order.
func (s *System) OngoingMatchIDs() []int {
	out := make([]int, len(s.ongoing))
	copy(out, s.ongoing)
	return out
}

// PlayerStateCounts returns the lifecycle-state histogram.
func (s *System) PlayerStateCounts() map[PlayerState]int {
	out := make(map[PlayerState]int, stateCount)
	for st := PlayerState(0); st < stateCount; st++ {
		out[st] = s.stateCounts[st]
	}
	return out
}

// NumPlayersInState returns the histogram count for one state.
func (s *System) NumPlayersInState(st PlayerState) int {
	if st < 0 || st >= stateCount {
		return 0
	}
	return s.stateCounts[st]
}

// QueueLen returns the number of players waiting in the queue deque.
func (s *System) QueueLen() int {
	return len(s.queue)
}

// QueuedIDs returns the queue deque front to back.
func (s *System) QueuedIDs() []int {
	out := make([]int, len(s.queue))
	copy(out, s.queue)
	return out
}

// DraftedPools returns a deep copy of the open pools.
func (s *System) DraftedPools() [][]int {
	out := make([][]int, len(s.pools))
	for i, pool := range s.pools {
		cp := make([]int, len(pool))
		copy(cp, pool)
		out[i] = cp
	}
	return out
}

// SortedPlayers returns the cached leaderboard for the key: bottom list when
// ascending, top list otherwise.
func (s *System) SortedPlayers(key SortKey, ascending bool) []PlayerSnapshot {
	cached := s.boards.sorted(key, ascending)
	out := make([]PlayerSnapshot, len(cached))
	copy(out, cached)
	return out
}

// AvgQueueTime returns the mean per-player average queue wait, in virtual ms.
func (s *System) AvgQueueTime() float64 {
	if len(s.players) == 0 {
		return 0
	}
	now := s.clk.NowMillis()
	values := make([]float64, len(s.players))
	for i := range s.players {
		values[i] = s.players[i].AvgQueueTime(now)
	}
	return stat.Mean(values, nil)
}

// AvgGameTime returns the mean per-player average game duration, in virtual ms.
func (s *System) AvgGameTime() float64 {
	if len(s.players) == 0 {
		return 0
	}
	now := s.clk.NowMillis()
	values := make([]float64, len(s.players))
	for i := range s.players {
		values[i] = s.players[i].AvgGameTime(now)
	}
	return stat.Mean(values, nil)
}

// PendingEventCount returns the scheduled event backlog size.
func (s *System) PendingEventCount() int {
	return s.events.Len()
}
