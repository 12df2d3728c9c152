package domain

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Age and score bounds accepted by the model
const (
	MinAge            = 30
	MaxAge            = 100
	MinLifestyleScore = 0
	MaxLifestyleScore = 10
)

// Weight bounds: weights must lie in (MinConditionWeight, MaxConditionWeight]
var (
	MinConditionWeight = decimal.NewFromInt(1)
	MaxConditionWeight = decimal.NewFromInt(3)
)

// AgeBand is an inclusive integer age range
type AgeBand struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Contains reports whether age falls inside the band
func (b AgeBand) Contains(age int) bool {
	return age >= b.Min && age <= b.Max
}

// String renders the band the way the source data labels it ("30-39", "60+")
func (b AgeBand) String() string {
	if b.Max >= MaxAge {
		return strconv.Itoa(b.Min) + "+"
	}
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// BaseCostEntry is one row of the region/age base cost table
type BaseCostEntry struct {
	Region   Region          `yaml:"region" json:"region"`
	Band     AgeBand         `yaml:"age_band" json:"age_band"`
	BaseCost decimal.Decimal `yaml:"base_cost" json:"base_cost"`
}

// RegionBaseCostTable maps (region, age band) to an annual base cost
type RegionBaseCostTable struct {
	bands map[Region][]BaseCostEntry
}

// NewRegionBaseCostTable validates entries and builds the table. Every region must be
// present and its bands must partition [MinAge, MaxAge] without gaps or overlaps.
func NewRegionBaseCostTable(entries []BaseCostEntry) (*RegionBaseCostTable, error) {
	const source = "base cost table"
	bands := make(map[Region][]BaseCostEntry)
	for _, e := range entries {
		if !e.Region.Valid() {
			return nil, NewDataLoadError(source, fmt.Sprintf("unknown region %q", e.Region), nil)
		}
		if e.Band.Min > e.Band.Max {
			return nil, NewDataLoadError(source, fmt.Sprintf("%s band %d-%d is inverted", e.Region, e.Band.Min, e.Band.Max), nil)
		}
		if !e.BaseCost.IsPositive() {
			return nil, NewDataLoadError(source, fmt.Sprintf("%s %s base cost must be positive, got %s", e.Region, e.Band, e.BaseCost), nil)
		}
		for _, existing := range bands[e.Region] {
			if existing.Band == e.Band {
				return nil, NewDataLoadError(source, fmt.Sprintf("duplicate entry for %s %s", e.Region, e.Band), nil)
			}
		}
		bands[e.Region] = append(bands[e.Region], e)
	}

	for _, region := range AllRegions() {
		rows := bands[region]
		if len(rows) == 0 {
			return nil, NewDataLoadError(source, fmt.Sprintf("region %s has no entries", region), nil)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Band.Min < rows[j].Band.Min })

		next := MinAge
		for _, row := range rows {
			switch {
			case row.Band.Min > next:
				return nil, NewDataLoadError(source, fmt.Sprintf("region %s has a gap at ages %d-%d", region, next, row.Band.Min-1), nil)
			case row.Band.Min < next:
				return nil, NewDataLoadError(source, fmt.Sprintf("region %s band %s overlaps the previous band", region, row.Band), nil)
			}
			next = row.Band.Max + 1
		}
		if next <= MaxAge {
			return nil, NewDataLoadError(source, fmt.Sprintf("region %s does not cover ages %d-%d", region, next, MaxAge), nil)
		}
		bands[region] = rows
	}

	return &RegionBaseCostTable{bands: bands}, nil
}

// LookupBaseCost returns the base cost for the band containing age
func (t *RegionBaseCostTable) LookupBaseCost(region Region, age int) (decimal.Decimal, error) {
	if t != nil {
		for _, row := range t.bands[region] {
			if row.Band.Contains(age) {
				return row.BaseCost, nil
			}
		}
	}
	return decimal.Zero, &LookupError{Table: "base cost", Key: fmt.Sprintf("region %s age %d", region, age)}
}

// LookupEntry returns the full row matching region and age
func (t *RegionBaseCostTable) LookupEntry(region Region, age int) (BaseCostEntry, error) {
	if t != nil {
		for _, row := range t.bands[region] {
			if row.Band.Contains(age) {
				return row, nil
			}
		}
	}
	return BaseCostEntry{}, &LookupError{Table: "base cost", Key: fmt.Sprintf("region %s age %d", region, age)}
}

// Entries returns a copy of all rows, grouped by region in display order
func (t *RegionBaseCostTable) Entries() []BaseCostEntry {
	var out []BaseCostEntry
	for _, region := range AllRegions() {
		out = append(out, t.bands[region]...)
	}
	return out
}

// ConditionWeight is one row of the condition weight table
type ConditionWeight struct {
	Condition Condition       `json:"-" yaml:"-"`
	Name      string          `json:"condition" yaml:"condition"`
	Weight    decimal.Decimal `json:"weight" yaml:"weight"`
}

// ConditionWeightTable maps each recognized condition to a cost multiplier
type ConditionWeightTable struct {
	weights [conditionCount]decimal.Decimal
}

// NewConditionWeightTable validates weights and builds the table. All recognized
// conditions must be present with weights in (1.0, 3.0].
func NewConditionWeightTable(weights map[Condition]decimal.Decimal) (*ConditionWeightTable, error) {
	const source = "condition weight table"
	t := &ConditionWeightTable{}
	for _, c := range AllConditions() {
		w, ok := weights[c]
		if !ok {
			return nil, NewDataLoadError(source, fmt.Sprintf("missing weight for %s", c), nil)
		}
		if w.LessThanOrEqual(MinConditionWeight) || w.GreaterThan(MaxConditionWeight) {
			return nil, NewDataLoadError(source, fmt.Sprintf("weight for %s must be in (%s, %s], got %s", c, MinConditionWeight, MaxConditionWeight, w), nil)
		}
		t.weights[c] = w
	}
	for c := range weights {
		if !c.Valid() {
			return nil, NewDataLoadError(source, fmt.Sprintf("unknown condition %s", c), nil)
		}
	}
	return t, nil
}

// LookupWeight returns the multiplier for a condition
func (t *ConditionWeightTable) LookupWeight(c Condition) (decimal.Decimal, error) {
	if t == nil || !c.Valid() {
		return decimal.Zero, &LookupError{Table: "condition weight", Key: c.String()}
	}
	return t.weights[c], nil
}

// Entries returns all weights in canonical condition order
func (t *ConditionWeightTable) Entries() []ConditionWeight {
	out := make([]ConditionWeight, 0, conditionCount)
	for _, c := range AllConditions() {
		out = append(out, ConditionWeight{Condition: c, Name: c.String(), Weight: t.weights[c]})
	}
	return out
}

// ReferenceData bundles the immutable tables the model depends on. It is built once
// and shared read-only by every request.
type ReferenceData struct {
	BaseCosts *RegionBaseCostTable
	Weights   *ConditionWeightTable
	Source    string // where the tables were loaded from
}
