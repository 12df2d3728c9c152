package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/rgehrsitz/hcpredict/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// BreakdownTable renders the step-by-step derivation of a prediction
type BreakdownTable struct {
	Result *domain.PredictionResult
}

// NewBreakdownTable creates a table for result
func NewBreakdownTable(result *domain.PredictionResult) *BreakdownTable {
	return &BreakdownTable{Result: result}
}

// Render returns the table, one row per breakdown entry
func (b *BreakdownTable) Render() string {
	if b.Result == nil || len(b.Result.Breakdown) == 0 {
		return tuistyles.SubtitleStyle.Render("No breakdown available")
	}

	var sb strings.Builder
	sb.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-28s %10s %12s", "Factor", "Value", "Running")))
	sb.WriteString("\n")

	for _, e := range b.Result.Breakdown {
		value := tuistyles.FormatCurrency(e.Value)
		if e.IsMultiplier() {
			value = "x" + e.Value.StringFixed(2)
		}
		row := fmt.Sprintf("%-28s %10s %12s", truncate(e.Factor, 28), value, tuistyles.FormatCurrency(e.RunningCost.Round(2)))
		if e.IsMultiplier() && e.Value.GreaterThan(decimal.NewFromInt(1)) {
			sb.WriteString(tuistyles.TableHighlightStyle.Render(row))
		} else {
			sb.WriteString(tuistyles.TableCellStyle.Render(row))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-28s %10s %12s", "Predicted annual cost", "",
		tuistyles.FormatCurrency(b.Result.PredictedAnnualCost))))
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
