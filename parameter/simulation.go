package parameter

// World Population Defaults
const (
	// DefaultAvgPlayerPerBatch is the expected number of players that
	// materialize from the creation backlog per batch (actual batch is
	// anchor +-50%)
	DefaultAvgPlayerPerBatch = 25

	// DefaultPlayerCreationCheckInterval is the virtual-ms spacing between
	// creation batches
	DefaultPlayerCreationCheckInterval = 15
)

// Matchmaking Defaults
const (
	// DefaultDraftInterval is the default MatchSetting.DraftInterval, in
	// virtual ms. The engine does not read it; drafting runs every tick
	DefaultDraftInterval = 1000

	// DefaultDraftedPoolCheckInterval throttles promotion of complete pools
	// into matches
	DefaultDraftedPoolCheckInterval = 500

	// DefaultRoutineCheckInterval is the default
	// MatchSetting.RoutineCheckInterval, in virtual ms. The engine does not
	// read it; the routine sweep runs every tick under the event budget
	DefaultRoutineCheckInterval = 200

	// DefaultMatchesPerCycle bounds match starts per tick
	DefaultMatchesPerCycle = 30

	// DefaultMaxLeaderListSize bounds cached top/bottom leaderboard lists
	DefaultMaxLeaderListSize = 24

	// DefaultMinGameThresholdForList gates win-rate leaderboard reporting
	DefaultMinGameThresholdForList = 0

	// DefaultNumTeams / DefaultTeamSize shape the drafted pool
	DefaultNumTeams = 2
	DefaultTeamSize = 1

	// DefaultMatchDuration is the expected virtual-ms match length (actual
	// duration is anchor +-50%)
	DefaultMatchDuration = 16000

	// DefaultMaxSkillGap is the widest admissible rating spread within a
	// pool under the skill-based algorithm
	DefaultMaxSkillGap = 10
)

// Engine Limits
const (
	// MaxDraftablePools is the backpressure ceiling on open pools
	MaxDraftablePools = 100

	// EventBudgetBase and EventBudgetDivisor size the per-tick routine
	// event cap: players/divisor + base
	EventBudgetBase    = 5
	EventBudgetDivisor = 100

	// ActivityLogCap bounds each player's activity ring; oldest entries
	// are overwritten first
	ActivityLogCap = 64
)

// Player Behavior
const (
	// IdleTimeAnchorMS and IdleTimeDeviationMS shape the Online idle draw
	// before a player joins the queue
	IdleTimeAnchorMS    = 4000
	IdleTimeDeviationMS = 1500

	// ScheduleMaxSections bounds online windows per virtual day
	ScheduleMaxSections = 6

	// ScheduleMinGapMinutes is the minimum spacing between window stamps,
	// in minute-of-day units
	ScheduleMinGapMinutes = 60

	// MinutesPerDay is the stamp space for online-window generation
	MinutesPerDay = 1440
)

// Match Prediction
const (
	// SoftmaxTemperature flattens the win-probability distribution; higher
	// values bring predictions closer to uniform
	SoftmaxTemperature = 10.0
)
