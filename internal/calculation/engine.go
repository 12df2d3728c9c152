package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/shopspring/decimal"
)

// PredictionEngine applies the cost model to canonical profiles
type PredictionEngine struct {
	Ref    *domain.ReferenceData
	Params domain.ModelParameters
	Logger Logger
}

// NewPredictionEngine creates an engine over ref using params
func NewPredictionEngine(ref *domain.ReferenceData, params domain.ModelParameters) (*PredictionEngine, error) {
	if ref == nil || ref.BaseCosts == nil || ref.Weights == nil {
		return nil, fmt.Errorf("reference data is required")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model parameters: %w", err)
	}
	return &PredictionEngine{Ref: ref, Params: params, Logger: NopLogger{}}, nil
}

// SetLogger sets the engine logger; nil installs a no-op logger
func (e *PredictionEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Predict estimates the annual cost for profile
func (e *PredictionEngine) Predict(profile domain.Profile) (*domain.PredictionResult, error) {
	result, err := Predict(profile, e.Ref, e.Params)
	if err != nil {
		var lookupErr *domain.LookupError
		if errors.As(err, &lookupErr) {
			e.logger().Errorf("reference data lookup failed for %s age %d: %v", profile.Region, profile.Age, err)
		}
		return nil, err
	}
	e.logger().Debugf("predicted %s for %s age %d (risk multiplier %s)",
		FormatCurrency(result.PredictedAnnualCost), profile.Region, profile.Age, result.RiskMultiplier.StringFixed(4))
	return result, nil
}

func (e *PredictionEngine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// Predict applies base cost, condition, family history, lifestyle and insurance
// factors in that order. Rounding to cents happens once, at the end.
func Predict(profile domain.Profile, ref *domain.ReferenceData, params domain.ModelParameters) (*domain.PredictionResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, &domain.PredictionError{Err: &domain.LookupError{Table: "reference data", Key: "tables"}}
	}

	entry, err := ref.BaseCosts.LookupEntry(profile.Region, profile.Age)
	if err != nil {
		return nil, &domain.PredictionError{Err: err}
	}

	b := &breakdownBuilder{base: entry.BaseCost, product: decimal.NewFromInt(1)}
	b.breakdown = append(b.breakdown, domain.BreakdownEntry{
		Step:        domain.StepBaseCost,
		Factor:      string(profile.Region),
		Value:       entry.BaseCost,
		RunningCost: entry.BaseCost,
		Description: fmt.Sprintf("Base cost for %s, age group %s", profile.Region, entry.Band),
	})

	// Chronic conditions
	if profile.ChronicConditions.IsEmpty() {
		b.apply(domain.StepChronicCondition, domain.FactorNone, decimal.NewFromInt(1), "No chronic conditions", "")
	}
	for _, c := range profile.ChronicConditions.Conditions() {
		w, err := ref.Weights.LookupWeight(c)
		if err != nil {
			return nil, &domain.PredictionError{Err: err}
		}
		b.apply(domain.StepChronicCondition, c.String(), w,
			fmt.Sprintf("Chronic condition: %s (x%s)", c.Label(), w.StringFixed(2)), c.Source())
	}

	// Family history
	if profile.FamilyHistory.IsEmpty() {
		b.apply(domain.StepFamilyHistory, domain.FactorNone, decimal.NewFromInt(1), "No family history", "")
	}
	for _, c := range profile.FamilyHistory.Conditions() {
		w, err := ref.Weights.LookupWeight(c)
		if err != nil {
			return nil, &domain.PredictionError{Err: err}
		}
		m := FamilyHistoryMultiplier(w, params)
		b.apply(domain.StepFamilyHistory, c.String(), m,
			fmt.Sprintf("Family history: %s (1 + %s x (%s - 1))", c.Label(), params.FamilyHistoryFraction.String(), w.StringFixed(2)), c.Source())
	}

	// Lifestyle
	b.apply(domain.StepLifestyle, fmt.Sprintf("score_%d", profile.LifestyleScore), LifestyleMultiplier(profile.LifestyleScore, params),
		fmt.Sprintf("Lifestyle score %d/%d", profile.LifestyleScore, domain.MaxLifestyleScore), "")

	// Insurance
	if profile.HasInsurance {
		b.apply(domain.StepInsurance, "insured", params.InsuranceFactor,
			fmt.Sprintf("Insured: %s%% discount", params.InsuranceDiscountPercent().String()), "")
	} else {
		b.apply(domain.StepInsurance, "uninsured", decimal.NewFromInt(1), "Uninsured: no discount", "")
	}

	return &domain.PredictionResult{
		PredictedAnnualCost: b.base.Mul(b.product).Round(2),
		BaseCost:            b.base,
		RiskMultiplier:      b.product,
		AgeBand:             entry.Band.String(),
		Breakdown:           b.breakdown,
	}, nil
}

type breakdownBuilder struct {
	base      decimal.Decimal
	product   decimal.Decimal
	breakdown []domain.BreakdownEntry
}

func (b *breakdownBuilder) apply(step domain.Step, factor string, multiplier decimal.Decimal, desc, source string) {
	b.product = b.product.Mul(multiplier)
	b.breakdown = append(b.breakdown, domain.BreakdownEntry{
		Step:        step,
		Factor:      factor,
		Value:       multiplier,
		RunningCost: b.base.Mul(b.product),
		Description: desc,
		Source:      source,
	})
}

// FamilyHistoryMultiplier dampens a condition weight for family history:
// 1 + fraction * (weight - 1)
func FamilyHistoryMultiplier(weight decimal.Decimal, params domain.ModelParameters) decimal.Decimal {
	one := decimal.NewFromInt(1)
	return one.Add(params.FamilyHistoryFraction.Mul(weight.Sub(one)))
}

// LifestyleMultiplier interpolates linearly from the worst multiplier at score 0
// to the best at score 10
func LifestyleMultiplier(score int, params domain.ModelParameters) decimal.Decimal {
	span := params.LifestyleWorstMultiplier.Sub(params.LifestyleBestMultiplier)
	step := span.Mul(decimal.NewFromInt(int64(score))).Div(decimal.NewFromInt(domain.MaxLifestyleScore))
	return params.LifestyleWorstMultiplier.Sub(step)
}

// FormatCurrency renders an amount as dollars with two decimals
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
