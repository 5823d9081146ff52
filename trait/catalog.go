package trait

// Rarity bands a trait's selection probability.
type Rarity int

const (
	Majority Rarity = iota
	Common
	Uncommon
	Rare
	Unique
)

func (r Rarity) String() string {
	switch r {
	case Majority:
		return "Majority"
	case Common:
		return "Common"
	case Uncommon:
		return "Uncommon"
	case Rare:
		return "Rare"
	case Unique:
		return "Unique"
	}
	return "Unknown"
}

// RarityInfo carries the integer selection percentage of a rarity band.
type RarityInfo struct {
	Percent int
}

// Rarities maps each band to its selection probability.
var Rarities = map[Rarity]RarityInfo{
	Majority: {70},
	Common:   {55},
	Uncommon: {25},
	Rare:     {10},
	Unique:   {5},
}

// Info describes one catalog trait: rarity, stat deltas, display metadata.
type Info struct {
	Rarity      Rarity
	Deltas      Stats
	Name        string
	Description string
}

// Catalog is the global trait lookup table.
var Catalog = map[Trait]Info{
	Aggressive:    {Common, Stats{+3, +0, -2, -1, +2, +1, -1}, "Aggressive", "Prefers risky, high-damage plays"},
	Casual:        {Majority, Stats{-1, +1, -1, -1, +0, +0, -1}, "Casual", "Plays for fun, not highly competitive"},
	Competitive:   {Common, Stats{+2, +1, +2, +2, +1, -1, +2}, "Competitive", "Prefers ranked play, always tries to win"},
	Confident:     {Common, Stats{+2, +0, +2, +1, +1, -1, +0}, "Confident", "More aggressive after wins"},
	Defensive:     {Common, Stats{-2, +1, +3, +2, -1, -2, +2}, "Defensive", "Avoids risk, plays conservatively"},
	Leader:        {Rare, Stats{+1, +2, +2, +1, +2, +1, +2}, "Leader", "Plays better when leading a team"},
	LoneWolf:      {Uncommon, Stats{+2, -2, +1, +1, +1, +1, +0}, "LoneWolf", "Prefers solo play, avoids teamwork"},
	MetaAdaptive:  {Rare, Stats{+1, +3, +1, +1, +3, +0, +1}, "MetaAdaptive", "Learns from opponents, adjusts strategy"},
	Nervous:       {Uncommon, Stats{-2, -1, -3, -2, -1, -1, -1}, "Nervous", "Worse performance under high-pressure"},
	RiskAverse:    {Rare, Stats{-3, -1, +2, +2, -1, -3, +3}, "RiskAverse", "Avoids unnecessary risks, values survival"},
	Specialist:    {Rare, Stats{+1, -3, +2, +2, -1, -2, +3}, "Specialist", "Sticks to one play-style or weapon"},
	Streaky:       {Uncommon, Stats{+2, -1, -2, -1, -1, +3, -1}, "Streaky", "Recent results affects performance"},
	TeamOriented:  {Uncommon, Stats{-1, +2, +2, +1, +1, +0, +1}, "TeamOriented", "Performs better in familiar teams"},
	TiltProne:     {Rare, Stats{+3, -3, -3, -2, -1, +3, -1}, "TiltProne", "Becomes reckless after consecutive losses"},
	Unpredictable: {Rare, Stats{+1, +1, -2, -1, +1, +3, -1}, "Unpredictable", "Inconsistent performance, high variance"},
	Versatile:     {Rare, Stats{+0, +3, +1, +1, +2, +1, +1}, "Versatile", "Adapts frequently, changes play-style"},
}
