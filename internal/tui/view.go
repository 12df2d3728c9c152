package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/hcpredict/internal/output"
	"github.com/rgehrsitz/hcpredict/internal/tui/components"
)

// View renders the current scene
func (m Model) View() string {
	var content string
	switch m.scene {
	case SceneResult:
		content = m.renderResult()
	default:
		content = m.renderForm()
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title and status bars
func (m Model) renderApp(content string) string {
	title := TitleStyle.Render("HCPREDICT") + " " + SubtitleStyle.Render("Health Cost Predictor · "+m.scene.String())
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
		m.renderStatusBar(),
	))
}

func (m Model) renderStatusBar() string {
	bindings := m.keys.formBindings()
	if m.scene == SceneResult {
		bindings = m.keys.resultBindings()
	}
	bar := StatusBarStyle
	if m.width > 4 {
		bar = bar.Width(m.width - 4)
	}
	return bar.Render(m.help.ShortHelpView(bindings))
}

func (m Model) renderForm() string {
	var sb strings.Builder
	for i, f := range formFields {
		label := FieldLabelStyle.Render(f.label)
		if i == m.focus {
			label = FocusedFieldLabelStyle.Render(f.label)
		}
		sb.WriteString(label)
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n")
		sb.WriteString(FieldLabelStyle.Render(""))
		sb.WriteString(FieldHintStyle.Render(f.hint))
		sb.WriteString("\n")
	}

	switch {
	case m.busy:
		sb.WriteString("\n" + InfoStyle.Render("Predicting..."))
	case m.err != nil:
		sb.WriteString("\n" + ErrorStyle.Render("Error: "+m.err.Error()))
	}

	return ActiveBorderStyle.Render(sb.String())
}

func (m Model) renderResult() string {
	if m.result == nil {
		return BorderStyle.Render("No prediction yet")
	}
	r := m.result

	annual := components.NewMetricCard("Annual cost", FormatCurrency(r.PredictedAnnualCost)).
		WithTrend(r.RiskMultiplier.GreaterThan(one), "x"+r.RiskMultiplier.StringFixed(2)+" vs base")
	cards := []*components.MetricCard{
		annual,
		components.NewMetricCard("Monthly cost", FormatCurrency(r.MonthlyCost())),
		components.NewMetricCard("Base cost", FormatCurrency(r.BaseCost)).
			WithDescription(fmt.Sprintf("%s, age %s", m.profile.Region, r.AgeBand)),
	}
	columns := 3
	if m.width > 0 && m.width < 84 {
		columns = 1
	}

	var sb strings.Builder
	sb.WriteString(components.MetricGrid(cards, columns))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderProfileSummary())
	sb.WriteString("\n\n")
	sb.WriteString(components.NewBreakdownTable(r).Render())

	if len(m.recommendations) > 0 {
		sb.WriteString("\n\n" + TableHeaderStyle.Render("Recommendations") + "\n")
		for _, rec := range m.recommendations {
			sb.WriteString("  - " + rec + "\n")
		}
	}

	switch {
	case m.busy:
		sb.WriteString("\n" + InfoStyle.Render("Saving report..."))
	case m.err != nil:
		sb.WriteString("\n" + ErrorStyle.Render("Error: "+m.err.Error()))
	case m.status != "":
		sb.WriteString("\n" + SuccessStyle.Render(m.status))
	}

	return BorderStyle.Render(sb.String())
}

func (m Model) renderProfileSummary() string {
	p := m.profile
	conditions := "none"
	if !p.ChronicConditions.IsEmpty() {
		conditions = p.ChronicConditions.String()
	}
	family := "none"
	if !p.FamilyHistory.IsEmpty() {
		family = p.FamilyHistory.String()
	}
	lines := []string{
		fmt.Sprintf("Age %d, %s, lifestyle %d/10, insured: %s", p.Age, p.Region, p.LifestyleScore, output.YesNo(p.HasInsurance)),
		"Chronic conditions: " + conditions,
		"Family history: " + family,
	}
	return SubtitleStyle.Render(strings.Join(lines, "\n"))
}
