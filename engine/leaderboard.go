package engine

import "sort"

// SortKey selects the stat a leaderboard ranks by.
type SortKey int

const (
	SortWinRate SortKey = iota
	SortAggressiveness
	SortFlexibility
	SortGrit
	SortEndurance
	SortInstinct
	SortCreativity
	SortPrecision
	SortTotalScore

	sortKeyCount
)

func (k SortKey) String() string {
	switch k {
	case SortWinRate:
		return "WinRate"
	case SortAggressiveness:
		return "Aggressiveness"
	case SortFlexibility:
		return "Flexibility"
	case SortGrit:
		return "Grit"
	case SortEndurance:
		return "Endurance"
	case SortInstinct:
		return "Instinct"
	case SortCreativity:
		return "Creativity"
	case SortPrecision:
		return "Precision"
	case SortTotalScore:
		return "TotalScore"
	}
	return "Undefined"
}

// SortKeys lists every leaderboard key in declaration order.
func SortKeys() []SortKey {
	keys := make([]SortKey, 0, sortKeyCount)
	for k := SortKey(0); k < sortKeyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// statKeys are the keys reported at player creation: the seven axes plus
// total score. WinRate is only reported on match conclusion.
var statKeys = []SortKey{
	SortAggressiveness,
	SortFlexibility,
	SortGrit,
	SortEndurance,
	SortInstinct,
	SortCreativity,
	SortPrecision,
	SortTotalScore,
}

// SortKeyDisplay is presentation metadata for one sort key.
type SortKeyDisplay struct {
	Name    string
	Abbrev  string
	AutoFit bool
	Min     float64
	Max     float64
	Format  string
}

// DisplayFor returns the display metadata of a sort key.
func DisplayFor(k SortKey) SortKeyDisplay {
	switch k {
	case SortWinRate:
		return SortKeyDisplay{Name: "Win Rate", Abbrev: "WR", Min: 0, Max: 1, Format: "%.2f"}
	case SortAggressiveness:
		return SortKeyDisplay{Name: "Aggressiveness", Abbrev: "AGR", AutoFit: true, Format: "%.0f"}
	case SortFlexibility:
		return SortKeyDisplay{Name: "Flexibility", Abbrev: "FLE", AutoFit: true, Format: "%.0f"}
	case SortGrit:
		return SortKeyDisplay{Name: "Grit", Abbrev: "GRI", AutoFit: true, Format: "%.0f"}
	case SortEndurance:
		return SortKeyDisplay{Name: "Endurance", Abbrev: "EDR", AutoFit: true, Format: "%.0f"}
	case SortInstinct:
		return SortKeyDisplay{Name: "Instinct", Abbrev: "INS", AutoFit: true, Format: "%.0f"}
	case SortCreativity:
		return SortKeyDisplay{Name: "Creativity", Abbrev: "CRE", AutoFit: true, Format: "%.0f"}
	case SortPrecision:
		return SortKeyDisplay{Name: "Precision", Abbrev: "PRE", AutoFit: true, Format: "%.0f"}
	case SortTotalScore:
		return SortKeyDisplay{Name: "Total Score", Abbrev: "TOT", AutoFit: true, Format: "%.0f"}
	}
	return SortKeyDisplay{Name: "Undefined", Abbrev: "N/A", Format: "%.2f"}
}

// leaderBoards caches top (descending) and bottom (ascending) snapshot lists
// per sort key, truncated to the configured size.
type leaderBoards struct {
	top    [sortKeyCount][]PlayerSnapshot
	bottom [sortKeyCount][]PlayerSnapshot
}

// report upserts the snapshot (identity by player id) into both lists for
// the key, re-sorts, and truncates.
func (b *leaderBoards) report(key SortKey, snap PlayerSnapshot, maxSize int) {
	b.top[key] = upsert(b.top[key], snap)
	b.bottom[key] = upsert(b.bottom[key], snap)

	sort.SliceStable(b.top[key], func(i, j int) bool {
		return b.top[key][i].StatFor(key) > b.top[key][j].StatFor(key)
	})
	sort.SliceStable(b.bottom[key], func(i, j int) bool {
		return b.bottom[key][i].StatFor(key) < b.bottom[key][j].StatFor(key)
	})

	if len(b.top[key]) > maxSize {
		b.top[key] = b.top[key][:maxSize]
	}
	if len(b.bottom[key]) > maxSize {
		b.bottom[key] = b.bottom[key][:maxSize]
	}
}

func upsert(list []PlayerSnapshot, snap PlayerSnapshot) []PlayerSnapshot {
	for i := range list {
		if list[i].ID == snap.ID {
			list[i] = snap
			return list
		}
	}
	return append(list, snap)
}

// sorted returns the cached list: bottom when ascending, top otherwise.
func (b *leaderBoards) sorted(key SortKey, ascending bool) []PlayerSnapshot {
	if key < 0 || key >= sortKeyCount {
		return nil
	}
	if ascending {
		return b.bottom[key]
	}
	return b.top[key]
}
