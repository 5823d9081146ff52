// Package trait holds the static catalog of player traits: a 16-bit mask
// with per-trait rarity and stat deltas. The catalog is read-only lookup
// data; randomized generation and conflict resolution live in this file.
package trait

import (
	"math/bits"
	"strings"

	"github.com/lixenwraith/matchsim/rng"
)

// Trait is a bitmask over the 16 catalog traits.
type Trait uint32

const (
	None          Trait = 0
	Aggressive    Trait = 1 << 0
	Defensive     Trait = 1 << 1
	Unpredictable Trait = 1 << 2
	Casual        Trait = 1 << 3
	Competitive   Trait = 1 << 4
	MetaAdaptive  Trait = 1 << 5
	Specialist    Trait = 1 << 6
	Versatile     Trait = 1 << 7
	RiskAverse    Trait = 1 << 8
	Streaky       Trait = 1 << 9
	Confident     Trait = 1 << 10
	Nervous       Trait = 1 << 11
	TiltProne     Trait = 1 << 12
	Leader        Trait = 1 << 13
	LoneWolf      Trait = 1 << 14
	TeamOriented  Trait = 1 << 15

	// All is every catalog trait combined
	All Trait = 1<<16 - 1
)

// Has reports whether every bit of other is set in t.
func (t Trait) Has(other Trait) bool {
	return t&other == other
}

// With returns t with the bits of other set.
func (t Trait) With(other Trait) Trait {
	return t | other
}

// Without returns t with the bits of other cleared.
func (t Trait) Without(other Trait) Trait {
	return t &^ other
}

// Count returns the number of traits set in t.
func (t Trait) Count() int {
	return bits.OnesCount32(uint32(t))
}

// String renders the set trait names in bit order, or "None" when empty.
func (t Trait) String() string {
	var names []string
	for bit := Trait(1); bit <= TeamOriented; bit <<= 1 {
		if t.Has(bit) {
			names = append(names, Catalog[bit].Name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, " ")
}

// Stats is the seven-axis stat vector traits contribute to.
type Stats struct {
	Agr int
	Fle int
	Gri int
	Edr int
	Ins int
	Cre int
	Pre int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Agr += other.Agr
	s.Fle += other.Fle
	s.Gri += other.Gri
	s.Edr += other.Edr
	s.Ins += other.Ins
	s.Cre += other.Cre
	s.Pre += other.Pre
}

// Total returns the sum of all seven axes.
func (s Stats) Total() int {
	return s.Agr + s.Fle + s.Gri + s.Edr + s.Ins + s.Cre + s.Pre
}

// ApplyModifiers sums the stat deltas of every trait set in mask.
func ApplyModifiers(mask Trait) Stats {
	var out Stats
	for bit := Trait(1); bit <= TeamOriented; bit <<= 1 {
		if mask.Has(bit) {
			out.Add(Catalog[bit].Deltas)
		}
	}
	return out
}

// conflictSets lists trait groups where a player may keep at most one member.
var conflictSets = [][]Trait{
	{Aggressive, Defensive},
	{Casual, Competitive},
}

// Random draws a trait mask: each catalog trait is set independently with its
// rarity's selection probability. An empty draw falls back to Casual.
// Conflict sets are not enforced here; call ResolveConflicts on the result.
func Random(r *rng.Source) Trait {
	mask := None
	for bit := Trait(1); bit <= TeamOriented; bit <<= 1 {
		if r.Percent(Rarities[Catalog[bit].Rarity].Percent) {
			mask = mask.With(bit)
		}
	}
	if mask == None {
		return Casual
	}
	return mask
}

// ResolveConflicts enforces the conflict sets: when more than one member of a
// set is present, one is retained uniformly at random and the rest removed.
func ResolveConflicts(mask Trait, r *rng.Source) Trait {
	for _, set := range conflictSets {
		found := 0
		for _, t := range set {
			if mask.Has(t) {
				found++
			}
		}
		if found <= 1 {
			continue
		}

		keep := r.RangeInt(0, len(set)-1)
		for i, t := range set {
			if i != keep {
				mask = mask.Without(t)
			}
		}
	}
	return mask
}
