package engine

import (
	"math"
	"testing"

	"github.com/lixenwraith/matchsim/rng"
	"github.com/lixenwraith/matchsim/trait"
)

func snapshotWithStats(id int, stats trait.Stats) PlayerSnapshot {
	return PlayerSnapshot{ID: id, Stats: stats}
}

func TestPredictEqualTeams(t *testing.T) {
	stats := trait.Stats{Agr: 3, Fle: 1, Gri: 2, Edr: 1, Ins: 1, Cre: 1, Pre: 1}
	teams := [][]PlayerSnapshot{
		{snapshotWithStats(0, stats)},
		{snapshotWithStats(1, stats)},
	}

	rates := predictWinRates(teams)
	if len(rates) != 2 {
		t.Fatalf("Expected 2 rates, got %d", len(rates))
	}
	for i, r := range rates {
		if math.Abs(r-0.5) > 1e-6 {
			t.Errorf("Equal teams rate[%d] = %v, want 0.5 within 1e-6", i, r)
		}
	}
}

func TestPredictNormalizedAndOrdered(t *testing.T) {
	weak := trait.Stats{Agr: 1}
	strong := trait.Stats{Agr: 9, Gri: 5}
	teams := [][]PlayerSnapshot{
		{snapshotWithStats(0, weak)},
		{snapshotWithStats(1, strong)},
		{snapshotWithStats(2, weak)},
	}

	rates := predictWinRates(teams)

	sum := 0.0
	for i, r := range rates {
		if r < 0 {
			t.Errorf("rate[%d] = %v, want nonnegative", i, r)
		}
		sum += r
	}
	if math.Abs(sum-1.0) > 1e-5 {
		t.Errorf("Rates sum to %v, want 1 within 1e-5", sum)
	}

	if rates[1] <= rates[0] {
		t.Errorf("Expected the stronger team favored: %v vs %v", rates[1], rates[0])
	}
	if math.Abs(rates[0]-rates[2]) > 1e-9 {
		t.Errorf("Expected identical teams to share a rate: %v vs %v", rates[0], rates[2])
	}
}

func TestPredictSingleTeam(t *testing.T) {
	teams := [][]PlayerSnapshot{{snapshotWithStats(0, trait.Stats{})}}

	rates := predictWinRates(teams)
	if len(rates) != 1 || rates[0] != 1.0 {
		t.Errorf("Single-team rates = %v, want [1.0]", rates)
	}
}

func TestStartRandomizesDuration(t *testing.T) {
	r := rng.New(42)

	m := Match{ID: 0, WinningTeam: -1}
	m.Teams = [][]PlayerSnapshot{{snapshotWithStats(0, trait.Stats{})}}
	m.Start(500, 16000, r)

	if m.State != MatchOngoing {
		t.Errorf("State = %s, want Ongoing", m.State)
	}
	if m.StartMillis != 500 {
		t.Errorf("StartMillis = %d, want 500", m.StartMillis)
	}
	if m.DurationMillis < 8000 || m.DurationMillis > 24000 {
		t.Errorf("DurationMillis = %d, want within [8000, 24000]", m.DurationMillis)
	}
}

func TestEndPicksWinnerFromDistribution(t *testing.T) {
	r := rng.New(7)

	wins := make([]int, 2)
	for i := 0; i < 2000; i++ {
		m := Match{WinningTeam: -1, PredictedWinRates: []float64{0.5, 0.5}}
		m.Teams = [][]PlayerSnapshot{
			{snapshotWithStats(0, trait.Stats{})},
			{snapshotWithStats(1, trait.Stats{})},
		}
		m.End(r)

		if m.State != MatchCompleted {
			t.Fatalf("State = %s, want Completed", m.State)
		}
		if m.WinningTeam < 0 || m.WinningTeam > 1 {
			t.Fatalf("WinningTeam = %d, want 0 or 1", m.WinningTeam)
		}
		wins[m.WinningTeam]++
	}

	if wins[0] < 800 || wins[0] > 1200 {
		t.Errorf("Fair coin produced %d/%d split", wins[0], wins[1])
	}
}

func TestEndClampsOnFloatUnderrun(t *testing.T) {
	r := rng.New(3)

	// A prefix total short of any realistic draw must still resolve to the
	// last team rather than leaving the winner unset
	m := Match{WinningTeam: -1, PredictedWinRates: []float64{0.0, 0.0}}
	m.Teams = [][]PlayerSnapshot{
		{snapshotWithStats(0, trait.Stats{})},
		{snapshotWithStats(1, trait.Stats{})},
	}
	m.End(r)

	if m.WinningTeam != len(m.PredictedWinRates)-1 {
		t.Errorf("WinningTeam = %d, want clamp to last index", m.WinningTeam)
	}
}

func TestIsPlayerWinner(t *testing.T) {
	m := Match{
		WinningTeam: 1,
		Teams: [][]PlayerSnapshot{
			{snapshotWithStats(10, trait.Stats{})},
			{snapshotWithStats(20, trait.Stats{})},
		},
	}

	if m.IsPlayerWinner(10) {
		t.Error("Expected player 10 on the losing team")
	}
	if !m.IsPlayerWinner(20) {
		t.Error("Expected player 20 on the winning team")
	}
	if m.IsPlayerWinner(99) {
		t.Error("Expected unknown player to not be a winner")
	}
}

func TestParticipantIDs(t *testing.T) {
	m := Match{
		Teams: [][]PlayerSnapshot{
			{snapshotWithStats(1, trait.Stats{}), snapshotWithStats(2, trait.Stats{})},
			{snapshotWithStats(3, trait.Stats{}), snapshotWithStats(4, trait.Stats{})},
		},
	}

	ids := m.ParticipantIDs()
	want := []int{1, 2, 3, 4}
	if len(ids) != len(want) {
		t.Fatalf("ParticipantIDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ParticipantIDs[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}
