// Package tuistyles holds the lipgloss palette and styles shared by the TUI and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#2E86AB")
	ColorSecondary = lipgloss.Color("#A23B72")
	ColorAccent    = lipgloss.Color("#F18F01")
	ColorSuccess   = lipgloss.Color("#3BB273")
	ColorDanger    = lipgloss.Color("#E84855")
	ColorInfo      = lipgloss.Color("#5BC0EB")

	ColorForeground = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#EDEDED"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#C8C8C8", Dark: "#444444"}
)

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorder)

	StatusKeyStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	FieldLabelStyle        = lipgloss.NewStyle().Foreground(ColorForeground).Width(22)
	FocusedFieldLabelStyle = FieldLabelStyle.Foreground(ColorPrimary).Bold(true)
	FieldHintStyle         = lipgloss.NewStyle().Foreground(ColorMuted)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)

	TableHeaderStyle    = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)

	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
)

// MetricTrendStyle colors a trend. Cost increases are bad news, so "up" is red.
func MetricTrendStyle(isIncrease bool) lipgloss.Style {
	if isIncrease {
		return lipgloss.NewStyle().Foreground(ColorDanger)
	}
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// TrendIndicator returns an arrow for the trend direction
func TrendIndicator(isIncrease bool) string {
	if isIncrease {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders an amount as $1234.56
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
