// Package tui is the interactive terminal front end: a profile form and a
// prediction screen.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/hcpredict/internal/advice"
	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/config"
	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// Deps are the services the TUI drives
type Deps struct {
	Engine      *calculation.PredictionEngine
	Normalizer  *config.Normalizer
	Recommender advice.Recommender // nil disables recommendations
	ReportsDir  string
}

// field describes one form input
type field struct {
	label       string
	name        string // ValidationError field it maps to
	placeholder string
	hint        string
	charLimit   int
}

var formFields = []field{
	{label: "Age", name: domain.FieldAge, placeholder: "45", hint: "30 to 100", charLimit: 3},
	{label: "Region", name: domain.FieldRegion, placeholder: "Turkey", hint: "USA, Europe, Asia or Turkey", charLimit: 16},
	{label: "Chronic conditions", name: domain.FieldConditions, placeholder: "diabetes, hypertension", hint: "comma separated, blank for none", charLimit: 200},
	{label: "Family history", name: domain.FieldFamilyHistory, placeholder: "heart disease", hint: "comma separated, blank for none", charLimit: 200},
	{label: "Lifestyle score", name: domain.FieldLifestyle, placeholder: "6", hint: "0 (poor) to 10 (excellent)", charLimit: 2},
	{label: "Insured", name: domain.FieldInsurance, placeholder: "yes", hint: "yes or no", charLimit: 5},
}

// Model is the root bubbletea model
type Model struct {
	deps Deps

	scene  Scene
	inputs []textinput.Model
	focus  int

	keys keyMap
	help help.Model

	width  int
	height int

	busy            bool
	err             error
	status          string
	profile         domain.Profile
	result          *domain.PredictionResult
	recommendations []string
}

// NewModel creates the TUI model
func NewModel(deps Deps) Model {
	if deps.Normalizer == nil {
		deps.Normalizer = config.NewNormalizer(nil)
	}

	m := Model{
		deps:   deps,
		scene:  SceneForm,
		inputs: make([]textinput.Model, len(formFields)),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	for i, f := range formFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.CharLimit = f.charLimit
		ti.Width = 32
		ti.Prompt = "› "
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// rawInput collects the form values
func (m Model) rawInput() domain.RawInput {
	return domain.RawInput{
		Age:           m.inputs[0].Value(),
		Region:        m.inputs[1].Value(),
		Conditions:    m.inputs[2].Value(),
		FamilyHistory: m.inputs[3].Value(),
		Lifestyle:     m.inputs[4].Value(),
		Insurance:     m.inputs[5].Value(),
	}
}

// SetInput fills the form from raw values
func (m *Model) SetInput(raw domain.RawInput) {
	values := []string{raw.Age, raw.Region, raw.Conditions, raw.FamilyHistory, raw.Lifestyle, raw.Insurance}
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
}

// setFocus moves focus to input i, wrapping around
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	i = ((i % n) + n) % n
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) clearForm() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.err = nil
	m.status = ""
	return m.setFocus(0)
}

// fieldIndex maps a ValidationError field to its input, or -1
func fieldIndex(name string) int {
	for i, f := range formFields {
		if f.name == name {
			return i
		}
	}
	return -1
}
