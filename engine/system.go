package engine

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/matchsim/clock"
	"github.com/lixenwraith/matchsim/parameter"
	"github.com/lixenwraith/matchsim/rng"
	"github.com/lixenwraith/matchsim/status"
)

// System simulates the matchmaking process: it owns all players and matches,
// drives scheduled player routines, drafts queued players into pools, and
// starts and concludes matches. Single-threaded: the host calls
// clock.Update followed by Tick once per frame.
type System struct {
	world     WorldSetting
	match     MatchSetting
	algorithm Algorithm

	clk *clock.VirtualClock
	rnd *rng.Source
	log *logrus.Logger

	// Dense id-indexed stores; ids are assigned in creation/start order
	players []Player
	matches []Match

	// ongoing lists live match ids in start order
	ongoing []int

	stateCounts [stateCount]int

	// pools hold drafted player ids awaiting a full NumTeams*TeamSize set
	pools [][]int

	// queue is the waiting deque; queued mirrors it for membership checks
	queue  []int
	queued map[int]struct{}

	events *EventQueue

	playersToCreate int

	boards leaderBoards

	lastPoolCheck     uint64
	lastCreationCheck uint64

	registry *status.Registry

	statTicks            *atomic.Int64
	statPlayersCreated   *atomic.Int64
	statEventsProcessed  *atomic.Int64
	statPlayersDrafted   *atomic.Int64
	statMatchesStarted   *atomic.Int64
	statMatchesCompleted *atomic.Int64
	statQueueRejections  *atomic.Int64
}

// New creates a matchmaking system on the given clock and randomness source.
// The host owns both and seeds the source once before construction. A nil
// logger discards engine logs.
func New(algorithm Algorithm, clk *clock.VirtualClock, rnd *rng.Source, log *logrus.Logger) *System {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	s := &System{
		world:     DefaultWorldSetting(),
		match:     DefaultMatchSetting(),
		algorithm: algorithm,
		clk:       clk,
		rnd:       rnd,
		log:       log,
		queued:    make(map[int]struct{}),
		events:    NewEventQueue(),
		registry:  status.NewRegistry(),
	}

	s.statTicks = s.registry.Ints.Get("engine.ticks")
	s.statPlayersCreated = s.registry.Ints.Get("engine.players_created")
	s.statEventsProcessed = s.registry.Ints.Get("engine.events_processed")
	s.statPlayersDrafted = s.registry.Ints.Get("engine.players_drafted")
	s.statMatchesStarted = s.registry.Ints.Get("engine.matches_started")
	s.statMatchesCompleted = s.registry.Ints.Get("engine.matches_completed")
	s.statQueueRejections = s.registry.Ints.Get("engine.queue_rejections")

	return s
}

// Status exposes the engine's metric registry.
func (s *System) Status() *status.Registry {
	return s.registry
}

// AlgorithmKind returns the draft policy chosen at construction.
func (s *System) AlgorithmKind() Algorithm {
	return s.algorithm
}

// WorldSetting returns the active world configuration.
func (s *System) WorldSetting() WorldSetting { return s.world }

// SetWorldSetting replaces the world configuration.
func (s *System) SetWorldSetting(w WorldSetting) { s.world = w }

// MatchSetting returns the active matchmaking configuration.
func (s *System) MatchSetting() MatchSetting { return s.match }

// SetMatchSetting replaces the matchmaking configuration.
func (s *System) SetMatchSetting(m MatchSetting) { s.match = m }

// AddToCreationQueue adds n players to the creation backlog; they
// materialize in batches on subsequent ticks.
func (s *System) AddToCreationQueue(n int) {
	s.playersToCreate += n
}

// PlayersToCreate returns the remaining creation backlog.
func (s *System) PlayersToCreate() int {
	return s.playersToCreate
}

// Tick drives one engine cycle. The host updates the virtual clock first;
// within the tick the sub-steps run in fixed order and each sees the
// effects of its predecessors. A tick at an unchanged virtual time is a
// no-op apart from throttle bookkeeping.
func (s *System) Tick() {
	s.checkPlayerCreation()
	s.updateMatches()
	s.updatePlayerRoutine()
	s.draftQueuedPlayers()
	s.startMatchesFromPools()

	s.statTicks.Add(1)
}

// checkPlayerCreation drains the creation backlog in randomized batches.
func (s *System) checkPlayerCreation() {
	if !s.clk.CheckInterval(s.world.PlayerCreationCheckInterval, &s.lastCreationCheck) {
		return
	}

	count := 0
	if s.playersToCreate > 0 {
		batch := s.rnd.IntAnchor(s.world.AvgPlayerPerBatch, s.world.AvgPlayerPerBatch/2)
		count = min(s.playersToCreate, batch)
	}

	for i := 0; i < count; i++ {
		s.createPlayer()
	}
	s.playersToCreate -= count

	if count > 0 {
		s.log.WithFields(logrus.Fields{
			"count":   count,
			"total":   len(s.players),
			"backlog": s.playersToCreate,
		}).Debug("created player batch")
	}
}

// createPlayer materializes the next player, seeds its routine schedule, and
// reports its stats to the leaderboards.
func (s *System) createPlayer() {
	id := len(s.players)
	now := s.clk.NowMillis()

	s.players = append(s.players, NewPlayer(id, now, s.rnd))
	p := &s.players[id]

	s.stateCounts[p.State()]++
	s.scheduleNext(p, now)

	for _, key := range statKeys {
		s.boards.report(key, p.Snapshot(), s.match.MaxLeaderListSize)
	}

	s.statPlayersCreated.Add(1)
}

// playerByID resolves an id against the dense store; nil when unknown.
func (s *System) playerByID(id int) *Player {
	if id < 0 || id >= len(s.players) {
		return nil
	}
	return &s.players[id]
}

// matchByID resolves a match id against the dense store; nil when unknown.
func (s *System) matchByID(id int) *Match {
	if id < 0 || id >= len(s.matches) {
		return nil
	}
	return &s.matches[id]
}

// scheduleNext pushes the player's next predicted transition onto the event
// queue, when the current state has one.
func (s *System) scheduleNext(p *Player, now uint64) {
	at, target, ok := p.NextStateChange(now)
	if !ok {
		return
	}
	s.events.Push(StateEvent{Time: at, PlayerID: p.ID, Target: target})
	p.Activity().Addf("scheduled to %s", target)
}

// setPlayerState applies a transition through the player's state machine and
// reacts to it inline: queue membership, event scheduling, histogram.
// Returns false when the transition was rejected.
func (s *System) setPlayerState(p *Player, target PlayerState, force bool) bool {
	tr, ok := p.SetState(target, force, s.clk.NowMillis(), s.rnd)
	if !ok {
		return false
	}
	s.onStateChange(p, tr)
	return true
}

// onStateChange is the engine's reaction to an applied transition.
func (s *System) onStateChange(p *Player, tr Transition) {
	// Queue->InGame keeps queue bookkeeping from the draft path; every
	// other exit from InQueue clears it here
	if tr.From == StateInQueue && tr.To != StateInGame {
		s.DequeuePlayer(p.ID)
	}

	if tr.To == StateInQueue {
		if !s.QueuePlayer(p.ID) {
			p.Activity().Add("failed to join queue")
			s.statQueueRejections.Add(1)
			s.log.WithField("player", p.ID).Debug("queue admission rejected")

			s.stateCounts[tr.From]--
			s.stateCounts[tr.To]++
			s.setPlayerState(p, StateOnline, false)
			return
		}
	}

	s.scheduleNext(p, s.clk.NowMillis())

	s.stateCounts[tr.From]--
	s.stateCounts[tr.To]++
}

// updatePlayerRoutine drains due scheduled events up to the per-tick cap.
// Stale events fail the transition rules inside setPlayerState and drop out
// quietly.
func (s *System) updatePlayerRoutine() {
	maxEvents := len(s.players)/parameter.EventBudgetDivisor + parameter.EventBudgetBase
	now := s.clk.NowMillis()

	processed := 0
	for processed < maxEvents {
		ev, ok := s.events.Peek()
		if !ok || ev.Time > now {
			break
		}
		s.events.Pop()
		processed++

		p := s.playerByID(ev.PlayerID)
		if p == nil {
			continue
		}
		s.setPlayerState(p, ev.Target, false)
	}

	if processed > 0 {
		s.statEventsProcessed.Add(int64(processed))
	}
}

// QueuePlayer appends the player to the waiting queue. Returns false when
// the player is already queued.
func (s *System) QueuePlayer(id int) bool {
	if _, ok := s.queued[id]; ok {
		return false
	}
	s.queued[id] = struct{}{}
	s.queue = append(s.queue, id)
	return true
}

// DequeuePlayer removes the player from the queue and from any drafted pool
// holding it. An emptied pool is swap-removed.
func (s *System) DequeuePlayer(id int) {
	delete(s.queued, id)

	for i, qid := range s.queue {
		if qid == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}

	for i := range s.pools {
		for j, pid := range s.pools[i] {
			if pid != id {
				continue
			}
			s.pools[i] = append(s.pools[i][:j], s.pools[i][j+1:]...)
			if len(s.pools[i]) == 0 {
				s.pools[i] = s.pools[len(s.pools)-1]
				s.pools = s.pools[:len(s.pools)-1]
			}
			return
		}
	}
}

// draftQueuedPlayers empties the queue into pools, up to the pool ceiling.
// LIFO drafts from the tail; every other algorithm drafts from the head.
func (s *System) draftQueuedPlayers() {
	drafted := 0
	for len(s.queue) > 0 && len(s.pools) < parameter.MaxDraftablePools {
		var id int
		if s.algorithm == LIFO {
			id = s.queue[len(s.queue)-1]
			s.queue = s.queue[:len(s.queue)-1]
		} else {
			id = s.queue[0]
			s.queue = s.queue[1:]
		}
		delete(s.queued, id)

		s.assignToPool(id)
		drafted++
	}

	if drafted > 0 {
		s.statPlayersDrafted.Add(int64(drafted))
	}
}

// assignToPool places the player in the first admitting pool, or opens a new
// one. Players no longer in queue state are skipped.
func (s *System) assignToPool(id int) {
	p := s.playerByID(id)
	if p == nil || p.State() != StateInQueue {
		return
	}

	for i := range s.pools {
		if s.canAdmit(p, s.pools[i]) {
			s.pools[i] = append(s.pools[i], id)
			return
		}
	}

	s.pools = append(s.pools, []int{id})
}

// canAdmit checks pool capacity and the algorithm's compatibility policy.
func (s *System) canAdmit(p *Player, pool []int) bool {
	if len(pool) >= s.match.TotalPlayers() {
		return false
	}

	if s.algorithm == SkillBased {
		for _, memberID := range pool {
			member := s.playerByID(memberID)
			if member == nil {
				continue
			}
			if absInt(p.SkillRating()-member.SkillRating()) > s.match.MaxSkillGap {
				return false
			}
		}
	}

	return true
}

// startMatchesFromPools promotes complete pools into matches, throttled by
// the pool check interval and capped per cycle.
func (s *System) startMatchesFromPools() {
	if !s.clk.CheckInterval(s.match.DraftedPoolCheckInterval, &s.lastPoolCheck) {
		return
	}

	started := 0
	for i := 0; i < len(s.pools); {
		if len(s.pools[i]) != s.match.TotalPlayers() {
			i++
			continue
		}

		s.startMatch(s.pools[i])
		s.pools = append(s.pools[:i], s.pools[i+1:]...)

		started++
		if started >= s.match.MatchesPerCycle {
			break
		}
	}
}

// startMatch snapshots the pool into teams by row-major layout, marks every
// participant InGame, and registers the ongoing match.
func (s *System) startMatch(pool []int) {
	id := len(s.matches)
	now := s.clk.NowMillis()

	m := Match{ID: id, WinningTeam: -1}
	m.Teams = make([][]PlayerSnapshot, s.match.NumTeams)

	for t := 0; t < s.match.NumTeams; t++ {
		team := make([]PlayerSnapshot, 0, s.match.TeamSize)
		for j := 0; j < s.match.TeamSize; j++ {
			index := t*s.match.TeamSize + j
			if index >= len(pool) {
				s.log.WithField("match", id).Warn("starting a match with a short pool")
				continue
			}

			p := s.playerByID(pool[index])
			if p == nil {
				continue
			}

			team = append(team, p.Snapshot())
			p.ongoingMatchID = id
			s.setPlayerState(p, StateInGame, false)
			p.Activity().Addf("joined match: %d", id)
		}
		m.Teams[t] = team
	}

	m.Start(now, s.match.MatchDuration, s.rnd)

	s.matches = append(s.matches, m)
	s.ongoing = append(s.ongoing, id)

	s.statMatchesStarted.Add(1)
	s.log.WithFields(logrus.Fields{
		"match":    id,
		"duration": m.DurationMillis,
	}).Debug("match started")
}

// updateMatches concludes every ongoing match past its duration: draws the
// winner, writes results back to live players, and restores each participant
// to its scheduled state.
func (s *System) updateMatches() {
	if len(s.ongoing) == 0 {
		return
	}

	now := s.clk.NowMillis()

	still := s.ongoing[:0]
	var due []int
	for _, id := range s.ongoing {
		m := s.matchByID(id)
		if m == nil {
			continue
		}
		if now-m.StartMillis >= m.DurationMillis {
			due = append(due, id)
		} else {
			still = append(still, id)
		}
	}
	s.ongoing = still

	for _, id := range due {
		s.concludeMatch(s.matchByID(id))
	}
}

// concludeMatch ends one due match and settles its participants.
func (s *System) concludeMatch(m *Match) {
	m.End(s.rnd)

	now := s.clk.NowMillis()
	for _, team := range m.Teams {
		for _, snap := range team {
			p := s.playerByID(snap.ID)
			if p == nil {
				continue
			}

			p.RegisterMatchResult(m.ID, m.IsPlayerWinner(p.ID))
			p.Activity().Addf("match %d ended", m.ID)

			// Post-match restoration bypasses the transition table:
			// InGame->Offline is otherwise forbidden
			target := StateOffline
			if p.IsOnlineAt(clock.DayProgressMillisOf(now)) {
				target = StateOnline
			}
			s.setPlayerState(p, target, true)

			if p.GamesPlayed() > s.match.MinGameThresholdForList {
				s.boards.report(SortWinRate, p.Snapshot(), s.match.MaxLeaderListSize)
			}

			p.ongoingMatchID = -1
		}
	}

	s.statMatchesCompleted.Add(1)
	s.log.WithFields(logrus.Fields{
		"match":  m.ID,
		"winner": m.WinningTeam,
	}).Debug("match completed")
}
