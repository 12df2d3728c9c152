package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/rgehrsitz/hcpredict/internal/output"
)

const recommendTimeout = 20 * time.Second

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case PredictionCompleteMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			var verr *domain.ValidationError
			if errors.As(msg.Err, &verr) {
				if i := fieldIndex(verr.Field); i >= 0 {
					cmd := m.setFocus(i)
					return m, cmd
				}
			}
			return m, nil
		}
		m.err = nil
		m.status = ""
		m.profile = msg.Profile
		m.result = msg.Result
		m.recommendations = msg.Recommendations
		m.scene = SceneResult
		return m, nil

	case ReportSavedMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = "Report saved to " + msg.Path
		return m, nil
	}

	if m.scene == SceneForm {
		return m.updateFocusedInput(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.scene {
	case SceneForm:
		switch {
		case key.Matches(msg, m.keys.Force):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		case key.Matches(msg, m.keys.Prev):
			cmd := m.setFocus(m.focus - 1)
			return m, cmd
		case key.Matches(msg, m.keys.Clear):
			cmd := m.clearForm()
			return m, cmd
		case key.Matches(msg, m.keys.Submit):
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.err = nil
			return m, predictCmd(m.deps, m.rawInput())
		}
		return m.updateFocusedInput(msg)

	case SceneResult:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Edit):
			m.scene = SceneForm
			m.status = ""
			cmd := m.setFocus(m.focus)
			return m, cmd
		case key.Matches(msg, m.keys.New):
			m.scene = SceneForm
			m.result = nil
			m.recommendations = nil
			cmd := m.clearForm()
			return m, cmd
		case key.Matches(msg, m.keys.Save):
			if m.busy || m.result == nil {
				return m, nil
			}
			m.busy = true
			return m, saveReportCmd(m.report(), m.deps.ReportsDir)
		}
	}

	return m, nil
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) report() *output.Report {
	report := output.NewReport(m.profile, domain.PersonalDetails{}, m.result, m.recommendations)
	if m.deps.Engine != nil {
		report = report.WithAssumptions(m.deps.Engine.Params)
	}
	return report
}

// predictCmd normalizes raw input and runs the model off the UI goroutine
func predictCmd(deps Deps, raw domain.RawInput) tea.Cmd {
	return func() tea.Msg {
		profile, err := deps.Normalizer.Normalize(raw)
		if err != nil {
			return PredictionCompleteMsg{Err: err}
		}
		if deps.Engine == nil {
			return PredictionCompleteMsg{Err: errors.New("prediction engine is not configured")}
		}
		result, err := deps.Engine.Predict(profile)
		if err != nil {
			return PredictionCompleteMsg{Err: err}
		}

		var recs []string
		if deps.Recommender != nil {
			ctx, cancel := context.WithTimeout(context.Background(), recommendTimeout)
			defer cancel()
			// Recommendations are optional; the prediction stands without them.
			recs, _ = deps.Recommender.Recommend(ctx, profile, result)
		}

		return PredictionCompleteMsg{Profile: profile, Result: result, Recommendations: recs}
	}
}

// saveReportCmd writes the HTML report into dir
func saveReportCmd(report *output.Report, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := output.WriteFormatted(output.HTMLFormatter{}, report, dir, "html")
		return ReportSavedMsg{Path: path, Err: err}
	}
}
