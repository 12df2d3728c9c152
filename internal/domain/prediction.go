package domain

import (
	"github.com/shopspring/decimal"
)

// Step identifies which model stage produced a breakdown entry
type Step string

const (
	StepBaseCost         Step = "base_cost"
	StepChronicCondition Step = "chronic_condition"
	StepFamilyHistory    Step = "family_history"
	StepLifestyle        Step = "lifestyle"
	StepInsurance        Step = "insurance"
)

// FactorNone labels the no-op entry recorded when a condition set is empty
const FactorNone = "none"

// BreakdownEntry records one applied factor
type BreakdownEntry struct {
	Step        Step            `json:"step" yaml:"step"`
	Factor      string          `json:"factor" yaml:"factor"`
	Value       decimal.Decimal `json:"value" yaml:"value"`               // base cost for the first entry, multiplier otherwise
	RunningCost decimal.Decimal `json:"running_cost" yaml:"running_cost"` // unrounded cost after this entry
	Description string          `json:"description" yaml:"description"`
	Source      string          `json:"source,omitempty" yaml:"source,omitempty"`
}

// IsMultiplier reports whether Value is a multiplier rather than an amount
func (e BreakdownEntry) IsMultiplier() bool {
	return e.Step != StepBaseCost
}

// PredictionResult is the predictor's output for one profile
type PredictionResult struct {
	PredictedAnnualCost decimal.Decimal  `json:"predicted_annual_cost" yaml:"predicted_annual_cost"`
	BaseCost            decimal.Decimal  `json:"base_cost" yaml:"base_cost"`
	RiskMultiplier      decimal.Decimal  `json:"risk_multiplier" yaml:"risk_multiplier"`
	AgeBand             string           `json:"age_band" yaml:"age_band"`
	Breakdown           []BreakdownEntry `json:"breakdown" yaml:"breakdown"`
}

// EntriesFor returns the breakdown entries produced by a step, in order
func (r *PredictionResult) EntriesFor(step Step) []BreakdownEntry {
	var out []BreakdownEntry
	for _, e := range r.Breakdown {
		if e.Step == step {
			out = append(out, e)
		}
	}
	return out
}

// MonthlyCost returns the predicted cost spread over twelve months
func (r *PredictionResult) MonthlyCost() decimal.Decimal {
	return r.PredictedAnnualCost.Div(decimal.NewFromInt(12)).Round(2)
}
