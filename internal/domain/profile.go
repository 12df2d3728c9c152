package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RawInput is the user input as the presentation layer collected it
type RawInput struct {
	Age           string `yaml:"age" json:"age"`
	Region        string `yaml:"region" json:"region"`
	Conditions    string `yaml:"chronic_conditions" json:"chronic_conditions"`
	FamilyHistory string `yaml:"family_history" json:"family_history"`
	Lifestyle     string `yaml:"lifestyle_score" json:"lifestyle_score"`
	Insurance     string `yaml:"has_insurance" json:"has_insurance"`
}

// Profile is the canonical, validated representation of a person's input
type Profile struct {
	Age               int          `yaml:"age" json:"age"`
	Region            Region       `yaml:"region" json:"region"`
	ChronicConditions ConditionSet `yaml:"chronic_conditions" json:"chronic_conditions"`
	FamilyHistory     ConditionSet `yaml:"family_history" json:"family_history"`
	LifestyleScore    int          `yaml:"lifestyle_score" json:"lifestyle_score"`
	HasInsurance      bool         `yaml:"has_insurance" json:"has_insurance"`
}

// Validate re-checks the canonical invariants for profiles built in code
func (p Profile) Validate() error {
	if p.Age < MinAge || p.Age > MaxAge {
		return NewValidationError(FieldAge, fmt.Sprintf("must be between %d and %d, got %d", MinAge, MaxAge, p.Age))
	}
	if !p.Region.Valid() {
		return NewValidationError(FieldRegion, fmt.Sprintf("unsupported region %q", p.Region))
	}
	if p.LifestyleScore < MinLifestyleScore || p.LifestyleScore > MaxLifestyleScore {
		return NewValidationError(FieldLifestyle, fmt.Sprintf("must be between %d and %d, got %d", MinLifestyleScore, MaxLifestyleScore, p.LifestyleScore))
	}
	return nil
}

// Raw re-serializes the profile into the raw form the normalizer accepts
func (p Profile) Raw() RawInput {
	return RawInput{
		Age:           strconv.Itoa(p.Age),
		Region:        string(p.Region),
		Conditions:    p.ChronicConditions.String(),
		FamilyHistory: p.FamilyHistory.String(),
		Lifestyle:     strconv.Itoa(p.LifestyleScore),
		Insurance:     strconv.FormatBool(p.HasInsurance),
	}
}

// PersonalDetails are report-only facts about the person. The predictor never reads them.
type PersonalDetails struct {
	Name     string          `yaml:"name,omitempty" json:"name,omitempty"`
	Gender   string          `yaml:"gender,omitempty" json:"gender,omitempty"`
	HeightCM decimal.Decimal `yaml:"height_cm,omitempty" json:"height_cm,omitempty"`
	WeightKG decimal.Decimal `yaml:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	Smoker   bool            `yaml:"smoker" json:"smoker"`
	Alcohol  bool            `yaml:"alcohol" json:"alcohol"`
}

// IsZero reports whether no personal details were supplied
func (d PersonalDetails) IsZero() bool {
	return d.Name == "" && d.Gender == "" && d.HeightCM.IsZero() && d.WeightKG.IsZero() && !d.Smoker && !d.Alcohol
}

// BMI returns the body-mass index, or false when height or weight is missing
func (d PersonalDetails) BMI() (decimal.Decimal, bool) {
	if !d.HeightCM.IsPositive() || !d.WeightKG.IsPositive() {
		return decimal.Zero, false
	}
	meters := d.HeightCM.Div(decimal.NewFromInt(100))
	return d.WeightKG.Div(meters.Mul(meters)).Round(1), true
}

// Validate checks supplied personal details are plausible
func (d PersonalDetails) Validate() error {
	if !d.HeightCM.IsZero() && (d.HeightCM.LessThan(decimal.NewFromInt(100)) || d.HeightCM.GreaterThan(decimal.NewFromInt(250))) {
		return NewValidationError("height_cm", "must be between 100 and 250")
	}
	if !d.WeightKG.IsZero() && (d.WeightKG.LessThan(decimal.NewFromInt(30)) || d.WeightKG.GreaterThan(decimal.NewFromInt(250))) {
		return NewValidationError("weight_kg", "must be between 30 and 250")
	}
	switch strings.ToLower(d.Gender) {
	case "", "male", "female", "other":
	default:
		return NewValidationError("gender", fmt.Sprintf("must be male, female or other, got %q", d.Gender))
	}
	return nil
}

// LifestyleHabits are the weekly habits a lifestyle score can be derived from
type LifestyleHabits struct {
	ExerciseDays     int `yaml:"exercise_days" json:"exercise_days"`         // days per week with 30+ minutes of exercise
	FruitVegPortions int `yaml:"fruit_veg_portions" json:"fruit_veg_portions"` // portions per day
	SleepHours       int `yaml:"sleep_hours" json:"sleep_hours"`             // hours per day
}
