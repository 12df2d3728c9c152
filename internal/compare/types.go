package compare

import (
	"fmt"

	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComparisonResult represents a single profile variant with calculated metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description,omitempty"`
	Profile      domain.Profile           `json:"profile"`
	Prediction   *domain.PredictionResult `json:"-"`

	// Key Metrics
	AnnualCost     decimal.Decimal `json:"annualCost"`
	MonthlyCost    decimal.Decimal `json:"monthlyCost"`
	RiskMultiplier decimal.Decimal `json:"riskMultiplier"`
	AgeBand        string          `json:"ageBand"`

	// Comparison to Base
	CostDiffFromBase decimal.Decimal `json:"costDiffFromBase"`
	CostPctFromBase  decimal.Decimal `json:"costPctFromBase"`
}

// ComparisonSet represents a collection of profile comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"inputPath,omitempty"`
}

// MetricsCalculator extracts key metrics from predictions
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one prediction
func (mc *MetricsCalculator) CalculateMetrics(name string, profile domain.Profile, prediction *domain.PredictionResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:   name,
		Profile:        profile,
		Prediction:     prediction,
		AnnualCost:     prediction.PredictedAnnualCost,
		MonthlyCost:    prediction.MonthlyCost(),
		RiskMultiplier: prediction.RiskMultiplier,
		AgeBand:        prediction.AgeBand,
	}
}

// CalculateComparison computes the difference between a variant and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.CostDiffFromBase = scenario.AnnualCost.Sub(base.AnnualCost)

	if !base.AnnualCost.IsZero() {
		scenario.CostPctFromBase = scenario.CostDiffFromBase.
			Div(base.AnnualCost).
			Mul(hundred).
			Round(2)
	}

	return scenario
}

// GenerateRecommendations summarises which variants change the cost most
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	lowest := compSet.BaseResult
	highest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.AnnualCost.LessThan(lowest.AnnualCost) {
			lowest = alt
		}
		if alt.AnnualCost.GreaterThan(highest.AnnualCost) {
			highest = alt
		}
	}

	if lowest != compSet.BaseResult {
		savings := compSet.BaseResult.AnnualCost.Sub(lowest.AnnualCost)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Cost: %s saves $%s per year (%s%%)",
				lowest.ScenarioName, savings.StringFixed(2), lowest.CostPctFromBase.Abs().StringFixed(1)))
	} else {
		recommendations = append(recommendations, "Lowest Cost: none of the alternatives is cheaper than the base profile")
	}

	if highest != compSet.BaseResult {
		extra := highest.AnnualCost.Sub(compSet.BaseResult.AnnualCost)
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Risk: %s adds $%s per year (%s%%)",
				highest.ScenarioName, extra.StringFixed(2), highest.CostPctFromBase.StringFixed(1)))
	}

	return recommendations
}
