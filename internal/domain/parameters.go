package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ModelParameters holds the fixed adjustment constants of the cost model
type ModelParameters struct {
	// FamilyHistoryFraction is the share of a condition's excess weight applied
	// when the condition appears only in family history
	FamilyHistoryFraction decimal.Decimal `yaml:"family_history_fraction" json:"family_history_fraction"`

	// Lifestyle multiplier at score 0 and at score 10; linear in between
	LifestyleWorstMultiplier decimal.Decimal `yaml:"lifestyle_worst_multiplier" json:"lifestyle_worst_multiplier"`
	LifestyleBestMultiplier  decimal.Decimal `yaml:"lifestyle_best_multiplier" json:"lifestyle_best_multiplier"`

	// InsuranceFactor multiplies the cost of insured profiles
	InsuranceFactor decimal.Decimal `yaml:"insurance_factor" json:"insurance_factor"`
}

// DefaultModelParameters returns the standard model constants
func DefaultModelParameters() ModelParameters {
	return ModelParameters{
		FamilyHistoryFraction:    decimal.NewFromFloat(0.5),
		LifestyleWorstMultiplier: decimal.NewFromFloat(1.30), // 3% per missing lifestyle point
		LifestyleBestMultiplier:  decimal.NewFromInt(1),
		InsuranceFactor:          decimal.NewFromFloat(0.70), // 30% insurance discount
	}
}

// Validate checks the parameters keep the model monotone and positive
func (p ModelParameters) Validate() error {
	one := decimal.NewFromInt(1)
	if p.FamilyHistoryFraction.IsNegative() || p.FamilyHistoryFraction.GreaterThan(one) {
		return fmt.Errorf("family history fraction must be between 0 and 1, got %s", p.FamilyHistoryFraction)
	}
	if !p.LifestyleBestMultiplier.IsPositive() {
		return fmt.Errorf("best lifestyle multiplier must be positive, got %s", p.LifestyleBestMultiplier)
	}
	if p.LifestyleWorstMultiplier.LessThan(p.LifestyleBestMultiplier) {
		return fmt.Errorf("worst lifestyle multiplier (%s) cannot be below best (%s)", p.LifestyleWorstMultiplier, p.LifestyleBestMultiplier)
	}
	if !p.InsuranceFactor.IsPositive() || p.InsuranceFactor.GreaterThan(one) {
		return fmt.Errorf("insurance factor must be in (0, 1], got %s", p.InsuranceFactor)
	}
	return nil
}

// InsuranceDiscountPercent returns the insurance discount as a percentage (30 for 0.70)
func (p ModelParameters) InsuranceDiscountPercent() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(p.InsuranceFactor).Mul(decimal.NewFromInt(100))
}
