package tui

import "github.com/rgehrsitz/hcpredict/internal/domain"

// Scene identifies which screen is showing
type Scene int

const (
	SceneForm Scene = iota
	SceneResult
)

// String returns the scene name
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Profile"
	case SceneResult:
		return "Prediction"
	default:
		return "Unknown"
	}
}

// PredictionCompleteMsg carries the outcome of a submitted form
type PredictionCompleteMsg struct {
	Profile         domain.Profile
	Result          *domain.PredictionResult
	Recommendations []string
	Err             error
}

// ReportSavedMsg is sent after an HTML report was written
type ReportSavedMsg struct {
	Path string
	Err  error
}
