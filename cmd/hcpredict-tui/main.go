package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/hcpredict/internal/advice"
	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/config"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/rgehrsitz/hcpredict/internal/refdata"
	"github.com/rgehrsitz/hcpredict/internal/tui"
)

func main() {
	// Optional settings file as the only argument
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	settings, err := config.LoadSettings(configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var ref *domain.ReferenceData
	if settings.DataDir != "" {
		ref, err = refdata.Load(settings.DataDir)
	} else {
		ref, err = refdata.LoadDefault()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	engine, err := calculation.NewPredictionEngine(ref, settings.Model)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Logging would draw over the alternate screen, so the TUI stays quiet
	model := tui.NewModel(tui.Deps{
		Engine:      engine,
		Normalizer:  config.NewNormalizer(nil),
		Recommender: advice.RuleBased{},
		ReportsDir:  settings.ReportsDir,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
