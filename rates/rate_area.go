package rates

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"
)

// ErrFrozen is returned when a record is added to a builder after Build.
var ErrFrozen = errors.New("rates: index already built")

// rateSet deduplicates rates by numeric value. The key is the canonical
// decimal text, so "10.50" and "10.500" collapse into one entry.
type rateSet map[string]decimal.Decimal

func (s rateSet) add(d decimal.Decimal) {
	s[d.String()] = d
}

// sorted returns the distinct rates in ascending order.
func (s rateSet) sorted() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(s))
	for _, d := range s {
		out = append(out, d)
	}
	slices.SortFunc(out, decimal.Decimal.Cmp)
	return out
}

// RateAreaBuilder accumulates Silver plan rates per rate area. It is a
// two-phase builder: Add every plan, then call Build once to freeze and sort.
type RateAreaBuilder struct {
	areas map[int]rateSet
	rows  int
	index *RateAreaIndex
}

func NewRateAreaBuilder() *RateAreaBuilder {
	return &RateAreaBuilder{areas: make(map[int]rateSet)}
}

// Add records a plan. Non-Silver plans are counted but otherwise ignored.
func (b *RateAreaBuilder) Add(p PlanRecord) error {
	if b.index != nil {
		return ErrFrozen
	}
	b.rows++
	if p.MetalLevel != MetalSilver {
		return nil
	}
	set, ok := b.areas[p.RateArea]
	if !ok {
		set = make(rateSet)
		b.areas[p.RateArea] = set
	}
	set.add(p.Rate)
	return nil
}

// Rows returns how many plan records were added, Silver or not.
func (b *RateAreaBuilder) Rows() int {
	return b.rows
}

// Build sorts every area's rates and returns the immutable index.
// Calling Build again returns the same index.
func (b *RateAreaBuilder) Build() *RateAreaIndex {
	if b.index != nil {
		return b.index
	}
	idx := &RateAreaIndex{areas: make(map[int][]decimal.Decimal, len(b.areas))}
	for area, set := range b.areas {
		idx.areas[area] = set.sorted()
	}
	b.index = idx
	b.areas = nil
	return idx
}

// BuildRateAreaIndex builds an index from a complete plan catalog.
func BuildRateAreaIndex(plans []PlanRecord) (*RateAreaIndex, error) {
	b := NewRateAreaBuilder()
	for _, p := range plans {
		if err := b.Add(p); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// RateAreaIndex maps a rate area to its distinct Silver rates, lowest first.
// Areas without any Silver plan are absent.
type RateAreaIndex struct {
	areas map[int][]decimal.Decimal
}

// Rates returns a copy of the sorted distinct Silver rates for area.
func (x *RateAreaIndex) Rates(area int) ([]decimal.Decimal, bool) {
	r, ok := x.areas[area]
	if !ok {
		return nil, false
	}
	return slices.Clone(r), true
}

// SecondLowest returns the rank-1 rate for area. It reports false when the
// area has fewer than two distinct Silver rates.
func (x *RateAreaIndex) SecondLowest(area int) (decimal.Decimal, bool) {
	r := x.areas[area]
	if len(r) < 2 {
		return decimal.Decimal{}, false
	}
	return r[1], true
}

// Len returns the number of rate areas with at least one Silver plan.
func (x *RateAreaIndex) Len() int {
	return len(x.areas)
}
