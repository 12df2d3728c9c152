package compare

import (
	"testing"

	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/shopspring/decimal"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	prediction := &domain.PredictionResult{
		PredictedAnnualCost: decimal.RequireFromString("5074.60"),
		BaseCost:            decimal.NewFromInt(1200),
		RiskMultiplier:      decimal.RequireFromString("4.22883328"),
		AgeBand:             "40-49",
	}

	result := calc.CalculateMetrics("Test Profile", exampleProfile(), prediction)

	if result.ScenarioName != "Test Profile" {
		t.Errorf("Expected scenario name 'Test Profile', got %s", result.ScenarioName)
	}
	if !result.AnnualCost.Equal(decimal.RequireFromString("5074.60")) {
		t.Errorf("Expected annual cost 5074.60, got %s", result.AnnualCost)
	}
	if result.MonthlyCost.StringFixed(2) != "422.88" {
		t.Errorf("Expected monthly cost 422.88, got %s", result.MonthlyCost)
	}
	if result.AgeBand != "40-49" || result.Prediction != prediction {
		t.Errorf("Expected prediction details to be carried, got %+v", result)
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{ScenarioName: "Base", AnnualCost: decimal.NewFromInt(2000)}
	scenario := ComparisonResult{ScenarioName: "Alternative", AnnualCost: decimal.NewFromInt(1500)}

	result := calc.CalculateComparison(scenario, base)

	if !result.CostDiffFromBase.Equal(decimal.NewFromInt(-500)) {
		t.Errorf("Expected cost diff -500, got %s", result.CostDiffFromBase)
	}
	if !result.CostPctFromBase.Equal(decimal.NewFromInt(-25)) {
		t.Errorf("Expected cost pct -25, got %s", result.CostPctFromBase)
	}
}

func TestMetricsCalculator_CalculateComparison_ZeroBase(t *testing.T) {
	calc := NewMetricsCalculator()

	result := calc.CalculateComparison(
		ComparisonResult{AnnualCost: decimal.NewFromInt(100)},
		ComparisonResult{AnnualCost: decimal.Zero},
	)

	if !result.CostPctFromBase.IsZero() {
		t.Errorf("Expected zero pct for zero base, got %s", result.CostPctFromBase)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{ScenarioName: "Base", AnnualCost: decimal.NewFromInt(2000)},
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "cheaper", AnnualCost: decimal.NewFromInt(1500), CostPctFromBase: decimal.NewFromInt(-25)},
			{ScenarioName: "cheapest", AnnualCost: decimal.NewFromInt(1000), CostPctFromBase: decimal.NewFromInt(-50)},
			{ScenarioName: "pricier", AnnualCost: decimal.NewFromInt(3000), CostPctFromBase: decimal.NewFromInt(50)},
		},
	}

	recs := GenerateRecommendations(compSet)

	if len(recs) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d: %v", len(recs), recs)
	}
	if recs[0] != "Lowest Cost: cheapest saves $1000.00 per year (50.0%)" {
		t.Errorf("Unexpected lowest cost recommendation: %s", recs[0])
	}
	if recs[1] != "Highest Risk: pricier adds $1000.00 per year (50.0%)" {
		t.Errorf("Unexpected highest risk recommendation: %s", recs[1])
	}
}

func TestGenerateRecommendations_EmptyAlternatives(t *testing.T) {
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{ScenarioName: "Base", AnnualCost: decimal.NewFromInt(2000)},
	}

	if recs := GenerateRecommendations(compSet); len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}
}

func TestGenerateRecommendations_NoCheaperThanBase(t *testing.T) {
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{ScenarioName: "Base", AnnualCost: decimal.NewFromInt(2000)},
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "same", AnnualCost: decimal.NewFromInt(2000)},
		},
	}

	recs := GenerateRecommendations(compSet)

	if len(recs) != 1 {
		t.Fatalf("Expected 1 recommendation, got %v", recs)
	}
	if recs[0] != "Lowest Cost: none of the alternatives is cheaper than the base profile" {
		t.Errorf("Unexpected recommendation: %s", recs[0])
	}
}
