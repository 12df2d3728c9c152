package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Condition is one of the ten recognized chronic condition identifiers.
// The set is closed: extending it requires a code change so the risk model stays auditable.
type Condition uint8

const (
	Diabetes Condition = iota
	Hypertension
	HeartDisease
	Asthma
	Arthritis
	Cancer
	ChronicKidneyDisease
	COPD
	Depression
	Obesity

	conditionCount
)

var conditionNames = [conditionCount]string{
	Diabetes:             "diabetes",
	Hypertension:         "hypertension",
	HeartDisease:         "heart_disease",
	Asthma:               "asthma",
	Arthritis:            "arthritis",
	Cancer:               "cancer",
	ChronicKidneyDisease: "chronic_kidney_disease",
	COPD:                 "copd",
	Depression:           "depression",
	Obesity:              "obesity",
}

// conditionSources lists the reference material behind each condition's weight
var conditionSources = [conditionCount]string{
	Diabetes:             "https://www.cdc.gov/diabetes/data/statistics-report/index.html",
	Hypertension:         "https://www.heart.org/en/health-topics/high-blood-pressure",
	HeartDisease:         "https://www.heart.org/en/health-topics/consumer-healthcare/what-is-cardiovascular-disease",
	Asthma:               "https://www.lung.org/lung-health-diseases/lung-disease-lookup/asthma",
	Arthritis:            "https://www.cdc.gov/arthritis/data-research/statistics/index.html",
	Cancer:               "https://www.cancer.org/cancer/cancer-basics/cancer-facts-and-figures.html",
	ChronicKidneyDisease: "https://www.cdc.gov/kidney-disease/php/data-research/index.html",
	COPD:                 "https://www.lung.org/lung-health-diseases/lung-disease-lookup/copd",
	Depression:           "https://www.nimh.nih.gov/health/statistics/major-depression",
	Obesity:              "https://www.cdc.gov/obesity/data/index.html",
}

// AllConditions returns every recognized condition in canonical order.
func AllConditions() []Condition {
	all := make([]Condition, 0, conditionCount)
	for c := Condition(0); c < conditionCount; c++ {
		all = append(all, c)
	}
	return all
}

// String returns the canonical identifier (e.g. "heart_disease").
func (c Condition) String() string {
	if !c.Valid() {
		return fmt.Sprintf("condition(%d)", uint8(c))
	}
	return conditionNames[c]
}

// Valid reports whether c is one of the recognized conditions.
func (c Condition) Valid() bool {
	return c < conditionCount
}

// Source returns the reference URL backing the condition's risk weight.
func (c Condition) Source() string {
	if !c.Valid() {
		return ""
	}
	return conditionSources[c]
}

// Label returns a human readable name ("heart disease").
func (c Condition) Label() string {
	return strings.ReplaceAll(c.String(), "_", " ")
}

// ParseCondition resolves an exact canonical identifier. Free-text resolution
// (aliases, separators) belongs to the input normalizer.
func ParseCondition(s string) (Condition, bool) {
	for c := Condition(0); c < conditionCount; c++ {
		if conditionNames[c] == s {
			return c, true
		}
	}
	return 0, false
}

// ConditionSet is a set of recognized conditions. Iteration always follows
// canonical order regardless of insertion order.
type ConditionSet uint16

// NewConditionSet builds a set from the given conditions, collapsing duplicates.
func NewConditionSet(conditions ...Condition) ConditionSet {
	var s ConditionSet
	for _, c := range conditions {
		s = s.With(c)
	}
	return s
}

// With returns a copy of s including c.
func (s ConditionSet) With(c Condition) ConditionSet {
	if !c.Valid() {
		return s
	}
	return s | 1<<c
}

// Without returns a copy of s excluding c.
func (s ConditionSet) Without(c Condition) ConditionSet {
	if !c.Valid() {
		return s
	}
	return s &^ (1 << c)
}

// Has reports whether c is a member of s.
func (s ConditionSet) Has(c Condition) bool {
	return c.Valid() && s&(1<<c) != 0
}

// Len returns the number of members.
func (s ConditionSet) Len() int {
	n := 0
	for c := Condition(0); c < conditionCount; c++ {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (s ConditionSet) IsEmpty() bool {
	return s&(1<<conditionCount-1) == 0
}

// Conditions returns the members in canonical order.
func (s ConditionSet) Conditions() []Condition {
	out := make([]Condition, 0, s.Len())
	for c := Condition(0); c < conditionCount; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the canonical identifiers of the members in canonical order.
func (s ConditionSet) Names() []string {
	conditions := s.Conditions()
	names := make([]string, len(conditions))
	for i, c := range conditions {
		names[i] = c.String()
	}
	return names
}

// String renders the set as a comma separated list ("" when empty).
func (s ConditionSet) String() string {
	return strings.Join(s.Names(), ", ")
}

func (s ConditionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *ConditionSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	return s.setNames(names)
}

func (s ConditionSet) MarshalYAML() (interface{}, error) {
	return s.Names(), nil
}

func (s *ConditionSet) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	return s.setNames(names)
}

func (s *ConditionSet) setNames(names []string) error {
	var set ConditionSet
	for _, name := range names {
		c, ok := ParseCondition(name)
		if !ok {
			return fmt.Errorf("unrecognized condition %q", name)
		}
		set = set.With(c)
	}
	*s = set
	return nil
}
