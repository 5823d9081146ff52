package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lixenwraith/matchsim/parameter"
	"github.com/lixenwraith/matchsim/rng"
)

// MatchState is a match's lifecycle state.
type MatchState int

const (
	MatchInitiated MatchState = iota
	MatchOngoing
	MatchFinished
	MatchCompleted
)

func (s MatchState) String() string {
	switch s {
	case MatchInitiated:
		return "Initiated"
	case MatchOngoing:
		return "Ongoing"
	case MatchFinished:
		return "Finished"
	case MatchCompleted:
		return "Completed"
	}
	return "Unknown"
}

// Match is one synthetic game. Teams hold snapshots captured at start;
// results are written back to live players by id when the engine concludes
// the match.
type Match struct {
	ID    int
	Teams [][]PlayerSnapshot

	StartMillis    uint64
	DurationMillis uint64
	State          MatchState

	// PredictedWinRates holds one probability per team, nonnegative,
	// summing to 1
	PredictedWinRates []float64

	// WinningTeam is the concluded winner's team index, -1 until then
	WinningTeam int
}

// Start randomizes the match duration around the configured expectation,
// stamps the start time, and computes the per-team win prediction.
func (m *Match) Start(now uint64, avgDuration uint64, r *rng.Source) {
	m.StartMillis = now
	m.DurationMillis = r.Uint64Anchor(avgDuration, avgDuration/2)
	m.State = MatchOngoing
	m.PredictedWinRates = predictWinRates(m.Teams)
}

// predictWinRates scores each team by summed snapshot stats and applies a
// softmax at the configured temperature. A single team gets probability 1.
func predictWinRates(teams [][]PlayerSnapshot) []float64 {
	if len(teams) == 0 {
		return nil
	}
	if len(teams) == 1 {
		return []float64{1.0}
	}

	exps := make([]float64, len(teams))
	for i, team := range teams {
		score := 0
		for _, snap := range team {
			score += snap.TotalScore()
		}
		exps[i] = math.Exp(float64(score) / parameter.SoftmaxTemperature)
	}

	floats.Scale(1/floats.Sum(exps), exps)
	return exps
}

// End draws the winner from the predicted distribution and completes the
// match. Float error that leaves the prefix total short of the draw clamps
// the winner to the last team.
func (m *Match) End(r *rng.Source) {
	u := r.Float64()

	winner := len(m.PredictedWinRates) - 1
	cumulative := 0.0
	for i, p := range m.PredictedWinRates {
		cumulative += p
		if cumulative >= u {
			winner = i
			break
		}
	}

	m.WinningTeam = winner
	m.State = MatchCompleted
}

// IsPlayerWinner reports whether the player fought on the winning team.
func (m *Match) IsPlayerWinner(playerID int) bool {
	if m.WinningTeam < 0 || m.WinningTeam >= len(m.Teams) {
		return false
	}
	for _, snap := range m.Teams[m.WinningTeam] {
		if snap.ID == playerID {
			return true
		}
	}
	return false
}

// ParticipantIDs returns every participant id in team order.
func (m *Match) ParticipantIDs() []int {
	var ids []int
	for _, team := range m.Teams {
		for _, snap := range team {
			ids = append(ids, snap.ID)
		}
	}
	return ids
}
