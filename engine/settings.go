package engine

import "github.com/lixenwraith/matchsim/parameter"

// Algorithm selects the draft policy: where players pop from the queue and
// which pools admit them.
type Algorithm int

const (
	// LIFO drafts the most recently queued player first
	LIFO Algorithm = iota
	// FIFO drafts the longest-waiting player first
	FIFO
	// SkillBased drafts FIFO but only admits players within MaxSkillGap of
	// every current pool member
	SkillBased
	// TraitGrouping drafts FIFO; pool admission is currently permissive,
	// the grouping policy itself is undefined
	TraitGrouping
)

func (a Algorithm) String() string {
	switch a {
	case LIFO:
		return "LIFO"
	case FIFO:
		return "FIFO"
	case SkillBased:
		return "SkillBased"
	case TraitGrouping:
		return "TraitGrouping"
	}
	return "Unknown"
}

// ParseAlgorithm maps a config string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch s {
	case "LIFO", "lifo":
		return LIFO, true
	case "FIFO", "fifo":
		return FIFO, true
	case "SkillBased", "skill", "skillbased":
		return SkillBased, true
	case "TraitGrouping", "trait", "traitgrouping":
		return TraitGrouping, true
	}
	return FIFO, false
}

// WorldSetting carries population parameters of the simulated world.
type WorldSetting struct {
	// AvgPlayerPerBatch is the expected creation batch size; actual batches
	// draw anchor +-50%
	AvgPlayerPerBatch int

	// PlayerCreationCheckInterval spaces creation batches, in virtual ms
	PlayerCreationCheckInterval uint64
}

// DefaultWorldSetting returns the stock world configuration.
func DefaultWorldSetting() WorldSetting {
	return WorldSetting{
		AvgPlayerPerBatch:           parameter.DefaultAvgPlayerPerBatch,
		PlayerCreationCheckInterval: parameter.DefaultPlayerCreationCheckInterval,
	}
}

// MatchSetting carries matchmaking and match parameters.
type MatchSetting struct {
	// DraftInterval is a virtual-ms drafting interval carried in the
	// settings; the engine does not read it and drafts on every tick
	DraftInterval uint64

	// DraftedPoolCheckInterval throttles promotion of complete pools
	DraftedPoolCheckInterval uint64

	// RoutineCheckInterval is a virtual-ms routine-sweep interval carried in
	// the settings; the engine does not read it and sweeps on every tick
	RoutineCheckInterval uint64

	// MatchesPerCycle bounds match starts per tick
	MatchesPerCycle int

	// MaxLeaderListSize bounds each cached leaderboard list
	MaxLeaderListSize int

	// MinGameThresholdForList gates win-rate leaderboard reporting
	MinGameThresholdForList int

	// NumTeams and TeamSize shape matches; a pool matures at NumTeams*TeamSize
	NumTeams int
	TeamSize int

	// MatchDuration is the expected virtual-ms match length; actual matches
	// draw anchor +-50%
	MatchDuration uint64

	// MaxSkillGap is the widest admissible rating spread under SkillBased
	MaxSkillGap int
}

// DefaultMatchSetting returns the stock matchmaking configuration.
func DefaultMatchSetting() MatchSetting {
	return MatchSetting{
		DraftInterval:            parameter.DefaultDraftInterval,
		DraftedPoolCheckInterval: parameter.DefaultDraftedPoolCheckInterval,
		RoutineCheckInterval:     parameter.DefaultRoutineCheckInterval,
		MatchesPerCycle:          parameter.DefaultMatchesPerCycle,
		MaxLeaderListSize:        parameter.DefaultMaxLeaderListSize,
		MinGameThresholdForList:  parameter.DefaultMinGameThresholdForList,
		NumTeams:                 parameter.DefaultNumTeams,
		TeamSize:                 parameter.DefaultTeamSize,
		MatchDuration:            parameter.DefaultMatchDuration,
		MaxSkillGap:              parameter.DefaultMaxSkillGap,
	}
}

// TotalPlayers returns the full pool size NumTeams * TeamSize.
func (m MatchSetting) TotalPlayers() int {
	return m.NumTeams * m.TeamSize
}
