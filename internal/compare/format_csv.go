package compare

import (
	"encoding/csv"
	"strings"

	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Age",
		"Region",
		"Chronic Conditions",
		"Family History",
		"Lifestyle Score",
		"Insured",
		"Annual Cost",
		"Monthly Cost",
		"Risk Multiplier",
		"Cost Diff from Base",
		"Cost % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	p := result.Profile
	raw := p.Raw()
	return []string{
		result.ScenarioName,
		scenarioType,
		raw.Age,
		raw.Region,
		conditionList(p.ChronicConditions),
		conditionList(p.FamilyHistory),
		raw.Lifestyle,
		raw.Insurance,
		result.AnnualCost.StringFixed(2),
		result.MonthlyCost.StringFixed(2),
		result.RiskMultiplier.StringFixed(4),
		result.CostDiffFromBase.StringFixed(2),
		result.CostPctFromBase.StringFixed(2),
	}
}

// conditionList joins with ";" so a set stays in one column
func conditionList(s domain.ConditionSet) string {
	return strings.Join(s.Names(), ";")
}
