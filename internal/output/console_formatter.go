package output

import (
	"fmt"
	"strings"
)

// ConsoleFormatter renders a plain text report for terminals
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Result == nil {
		return nil, fmt.Errorf("report has no prediction result")
	}
	var sb strings.Builder
	p := r.Profile

	sb.WriteString(strings.ToUpper(reportTitle(r)) + "\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Report ID: %s\n", r.ID))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05")))

	sb.WriteString("PROFILE\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("  Age:                %d (age group %s)\n", p.Age, r.Result.AgeBand))
	sb.WriteString(fmt.Sprintf("  Region:             %s\n", p.Region))
	sb.WriteString(fmt.Sprintf("  Chronic conditions: %s\n", conditionsOrNone(p.ChronicConditions)))
	sb.WriteString(fmt.Sprintf("  Family history:     %s\n", conditionsOrNone(p.FamilyHistory)))
	sb.WriteString(fmt.Sprintf("  Lifestyle score:    %d/10\n", p.LifestyleScore))
	sb.WriteString(fmt.Sprintf("  Insured:            %s\n", YesNo(p.HasInsurance)))

	if d := r.Personal; d != nil {
		sb.WriteString("\nPERSONAL DETAILS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		if d.Gender != "" {
			sb.WriteString(fmt.Sprintf("  Gender:             %s\n", d.Gender))
		}
		if d.HeightCM.IsPositive() {
			sb.WriteString(fmt.Sprintf("  Height:             %s cm\n", d.HeightCM.String()))
		}
		if d.WeightKG.IsPositive() {
			sb.WriteString(fmt.Sprintf("  Weight:             %s kg\n", d.WeightKG.String()))
		}
		if bmi := r.BMI(); bmi != "" {
			sb.WriteString(fmt.Sprintf("  BMI:                %s\n", bmi))
		}
		sb.WriteString(fmt.Sprintf("  Smoker:             %s\n", YesNo(d.Smoker)))
		sb.WriteString(fmt.Sprintf("  Alcohol:            %s\n", YesNo(d.Alcohol)))
	}

	sb.WriteString("\nCOST BREAKDOWN\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-18s %-24s %12s %14s\n", "Step", "Factor", "Value", "Running Cost"))
	for _, e := range r.Result.Breakdown {
		sb.WriteString(fmt.Sprintf("%-18s %-24s %12s %14s\n", e.Step, e.Factor, FormatEntryValue(e), FormatCurrency(e.RunningCost)))
	}
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Risk multiplier:       %s\n", FormatMultiplier(r.Result.RiskMultiplier)))
	sb.WriteString(fmt.Sprintf("PREDICTED ANNUAL COST: %s\n", FormatCurrency(r.Result.PredictedAnnualCost)))
	sb.WriteString(fmt.Sprintf("Monthly equivalent:    %s\n", FormatCurrency(r.Result.MonthlyCost())))

	if len(r.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for i, rec := range r.Recommendations {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
		}
	}

	if len(r.Assumptions) > 0 {
		sb.WriteString("\nASSUMPTIONS\n")
		for _, a := range r.Assumptions {
			sb.WriteString("  - " + a + "\n")
		}
	}

	return []byte(sb.String()), nil
}
