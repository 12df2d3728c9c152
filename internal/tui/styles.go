package tui

import (
	"github.com/rgehrsitz/hcpredict/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Re-export styles from tuistyles to avoid import cycles with components
var (
	AppStyle               = tuistyles.AppStyle
	TitleStyle             = tuistyles.TitleStyle
	SubtitleStyle          = tuistyles.SubtitleStyle
	StatusBarStyle         = tuistyles.StatusBarStyle
	BorderStyle            = tuistyles.BorderStyle
	ActiveBorderStyle      = tuistyles.ActiveBorderStyle
	FieldLabelStyle        = tuistyles.FieldLabelStyle
	FocusedFieldLabelStyle = tuistyles.FocusedFieldLabelStyle
	FieldHintStyle         = tuistyles.FieldHintStyle
	TableHeaderStyle       = tuistyles.TableHeaderStyle
	ErrorStyle             = tuistyles.ErrorStyle
	InfoStyle              = tuistyles.InfoStyle
	SuccessStyle           = tuistyles.SuccessStyle
)

var FormatCurrency = tuistyles.FormatCurrency

var one = decimal.NewFromInt(1)
