package output

import (
	"fmt"

	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = ModelAssumptions(domain.DefaultModelParameters())

// ModelAssumptions describes the model constants in effect
func ModelAssumptions(params domain.ModelParameters) []string {
	return []string{
		"Base cost: regional annual cost for the person's age group",
		"Chronic conditions: each condition multiplies cost by its weight",
		fmt.Sprintf("Family history: %s of a condition's excess weight applies", FormatPercentage(params.FamilyHistoryFraction.Mul(hundred))),
		fmt.Sprintf("Lifestyle: %s at score 0 down to %s at score 10", FormatMultiplier(params.LifestyleWorstMultiplier), FormatMultiplier(params.LifestyleBestMultiplier)),
		fmt.Sprintf("Insurance: %s discount when insured", FormatPercentage(params.InsuranceDiscountPercent())),
		"A condition listed as both chronic and family history counts twice",
	}
}
