package output

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything a rendered prediction document contains
type Report struct {
	ID              string                   `json:"id" yaml:"id"`
	GeneratedAt     time.Time                `json:"generatedAt" yaml:"generated_at"`
	Profile         domain.Profile           `json:"profile" yaml:"profile"`
	Personal        *domain.PersonalDetails  `json:"personal,omitempty" yaml:"personal,omitempty"`
	Result          *domain.PredictionResult `json:"result" yaml:"result"`
	Recommendations []string                 `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Assumptions     []string                 `json:"assumptions" yaml:"assumptions"`
}

// NewReport assembles a report. Personal details are dropped when empty.
func NewReport(profile domain.Profile, personal domain.PersonalDetails, result *domain.PredictionResult, recommendations []string) *Report {
	r := &Report{
		ID:              uuid.NewString(),
		GeneratedAt:     time.Now(),
		Profile:         profile,
		Result:          result,
		Recommendations: recommendations,
		Assumptions:     DefaultAssumptions,
	}
	if !personal.IsZero() {
		p := personal
		r.Personal = &p
	}
	return r
}

// WithAssumptions replaces the default assumption notes with ones describing params
func (r *Report) WithAssumptions(params domain.ModelParameters) *Report {
	r.Assumptions = ModelAssumptions(params)
	return r
}

// BMI returns the formatted BMI or "" when unknown
func (r *Report) BMI() string {
	if r.Personal == nil {
		return ""
	}
	bmi, ok := r.Personal.BMI()
	if !ok {
		return ""
	}
	return bmi.StringFixed(1)
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatMultiplier formats a risk factor ("x1.96")
func FormatMultiplier(m decimal.Decimal) string {
	return "x" + m.StringFixed(2)
}

// FormatEntryValue renders a breakdown value as money for the base cost and as a multiplier otherwise
func FormatEntryValue(e domain.BreakdownEntry) string {
	if e.IsMultiplier() {
		return FormatMultiplier(e.Value)
	}
	return FormatCurrency(e.Value)
}

// YesNo renders a bool for humans
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func conditionsOrNone(s domain.ConditionSet) string {
	if s.IsEmpty() {
		return "None"
	}
	return s.String()
}

func reportTitle(r *Report) string {
	if r.Personal != nil && r.Personal.Name != "" {
		return fmt.Sprintf("Health Cost Prediction for %s", r.Personal.Name)
	}
	return "Health Cost Prediction"
}
