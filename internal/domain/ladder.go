package domain

import (
	"fmt"
	"math"
)

// Band is a half-open range [Min, Max). Max 0 means the band is unbounded.
type Band struct {
	Name string
	Min  float64
	Max  float64
}

func (b Band) Contains(value float64) bool {
	if value < b.Min {
		return false
	}
	return b.Max == 0 || value < b.Max
}

// Ladder is a list of non-overlapping bands ordered from worst to best
type Ladder struct {
	Bands []Band
	// The bands' values are costs, where lower is better
	Inverted bool
}

// Classify returns the index of the band containing value, or -1 if it falls
// below every band
func (l Ladder) Classify(value float64) int {
	for i, band := range l.Bands {
		if band.Contains(value) {
			return i
		}
	}
	return -1
}

func (l Ladder) Band(index int) Band {
	if index < 0 || index >= len(l.Bands) {
		panic(fmt.Sprintf("logic error: band index %d out of range [0, %d)", index, len(l.Bands)))
	}
	return l.Bands[index]
}

func (l Ladder) ValidBand(index int) bool {
	return index >= 0 && index < len(l.Bands)
}

const (
	MilestoneNickel  = "nickel"
	MilestoneDime    = "dime"
	MilestoneQuarter = "quarter"
	MilestoneDollar  = "dollar"
)

// MilestoneLadder returns the lifetime milestone bands for the metric
func MilestoneLadder(metric Metric) Ladder {
	if !metric.Valid() {
		panic(fmt.Sprintf("logic error: unknown metric %q", string(metric)))
	}
	// Every metric shares the same round-number thresholds
	return Ladder{
		Bands: []Band{
			{Name: MilestoneNickel, Min: 5, Max: 10},
			{Name: MilestoneDime, Min: 10, Max: 25},
			{Name: MilestoneQuarter, Min: 25, Max: 100},
			{Name: MilestoneDollar, Min: 100},
		},
	}
}

// ValueClubThresholds are the cost-per-metric limits of each club, worst first
var ValueClubThresholds = []float64{5, 2.5, 1, 0.5}

// ValueClubLadder returns the cost-per-metric clubs.
//
// A club holds costs in (next threshold, threshold]; the cheapest club holds
// everything at or below its threshold.
func ValueClubLadder() Ladder {
	bands := make([]Band, len(ValueClubThresholds))
	for i, threshold := range ValueClubThresholds {
		lower := 0.0
		if i+1 < len(ValueClubThresholds) {
			lower = ValueClubThresholds[i+1]
		}
		bands[i] = Band{
			Name: fmt.Sprintf("$%.2f", threshold),
			// Costs are "or less", so the range is (lower, threshold].
			// Stored negated to reuse the half-open [Min, Max) semantics.
			Min: -threshold,
			Max: -lower,
		}
	}
	return Ladder{Bands: bands, Inverted: true}
}

// ClassifyCost places a cost in a value club ladder. Infinite or NaN costs are
// in no club.
func (l Ladder) ClassifyCost(cost float64) int {
	if !l.Inverted {
		panic("logic error: ClassifyCost called on a non-cost ladder")
	}
	if math.IsInf(cost, 0) || math.IsNaN(cost) {
		return -1
	}
	if cost <= 0 {
		// Free games are in the cheapest club
		return len(l.Bands) - 1
	}
	return l.Classify(-cost)
}
