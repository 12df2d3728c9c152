package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders the report as a Markdown document
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Result == nil {
		return nil, fmt.Errorf("report has no prediction result")
	}
	var sb strings.Builder
	p := r.Profile

	sb.WriteString("# " + reportTitle(r) + "\n\n")
	sb.WriteString(fmt.Sprintf("_Report %s, generated %s_\n\n", r.ID, r.GeneratedAt.Format("2006-01-02 15:04")))

	sb.WriteString("## Profile\n\n")
	sb.WriteString("| Field | Value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Age | %d (%s) |\n", p.Age, r.Result.AgeBand))
	sb.WriteString(fmt.Sprintf("| Region | %s |\n", p.Region))
	sb.WriteString(fmt.Sprintf("| Chronic conditions | %s |\n", conditionsOrNone(p.ChronicConditions)))
	sb.WriteString(fmt.Sprintf("| Family history | %s |\n", conditionsOrNone(p.FamilyHistory)))
	sb.WriteString(fmt.Sprintf("| Lifestyle score | %d/10 |\n", p.LifestyleScore))
	sb.WriteString(fmt.Sprintf("| Insured | %s |\n", YesNo(p.HasInsurance)))
	if d := r.Personal; d != nil {
		if d.Gender != "" {
			sb.WriteString(fmt.Sprintf("| Gender | %s |\n", d.Gender))
		}
		if bmi := r.BMI(); bmi != "" {
			sb.WriteString(fmt.Sprintf("| BMI | %s |\n", bmi))
		}
		sb.WriteString(fmt.Sprintf("| Smoker | %s |\n", YesNo(d.Smoker)))
		sb.WriteString(fmt.Sprintf("| Alcohol | %s |\n", YesNo(d.Alcohol)))
	}

	sb.WriteString("\n## Cost Breakdown\n\n")
	sb.WriteString("| Step | Factor | Value | Running Cost | Source |\n|---|---|---:|---:|---|\n")
	for _, e := range r.Result.Breakdown {
		source := ""
		if e.Source != "" {
			source = fmt.Sprintf("[source](%s)", e.Source)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n", e.Step, e.Factor, FormatEntryValue(e), FormatCurrency(e.RunningCost), source))
	}
	sb.WriteString(fmt.Sprintf("\n**Predicted annual cost: %s** (risk multiplier %s, monthly %s)\n",
		FormatCurrency(r.Result.PredictedAnnualCost), FormatMultiplier(r.Result.RiskMultiplier), FormatCurrency(r.Result.MonthlyCost())))

	if len(r.Recommendations) > 0 {
		sb.WriteString("\n## Recommendations\n\n")
		for _, rec := range r.Recommendations {
			sb.WriteString("- " + rec + "\n")
		}
	}
	if len(r.Assumptions) > 0 {
		sb.WriteString("\n## Assumptions\n\n")
		for _, a := range r.Assumptions {
			sb.WriteString("- " + a + "\n")
		}
	}
	return []byte(sb.String()), nil
}
