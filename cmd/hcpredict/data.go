package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/spf13/cobra"
)

func validateDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-data [dir]",
		Short: "Validate reference data files",
		Long: `Load and validate the region base cost CSV and the condition weight YAML.
Without a directory the --data-dir flag, the settings file, or the embedded
tables are checked, in that order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("data-dir")
			if len(args) == 1 {
				dir = args[0]
			} else if dir == "" {
				configPath, _ := cmd.Flags().GetString("config")
				if configPath != "" {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					defer a.close()
					dir = a.settings.DataDir
				}
			}

			ref, err := loadReferenceData(dir)
			if err != nil {
				return fmt.Errorf("reference data is invalid: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reference data OK (%s): %d base costs, %d condition weights\n",
				ref.Source, len(ref.BaseCosts.Entries()), len(ref.Weights.Entries()))
			return nil
		},
	}
}

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the reference tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reference data: %s\n\n", a.engine.Ref.Source)
			fmt.Fprintln(out, renderBaseCosts(a.engine.Ref))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderWeights(a.engine.Ref))
			return nil
		},
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func styledTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderBaseCosts lays out one row per region, one column per age group
func renderBaseCosts(ref *domain.ReferenceData) string {
	entries := ref.BaseCosts.Entries()

	var bands []string
	seen := map[string]bool{}
	for _, e := range entries {
		if b := e.Band.String(); !seen[b] {
			seen[b] = true
			bands = append(bands, b)
		}
	}

	t := styledTable(append([]string{"Region"}, bands...)...)
	for _, region := range domain.AllRegions() {
		row := []string{region.String()}
		for _, band := range bands {
			cost := "-"
			for _, e := range entries {
				if e.Region == region && e.Band.String() == band {
					cost = "$" + e.BaseCost.StringFixed(2)
				}
			}
			row = append(row, cost)
		}
		t.Row(row...)
	}
	return t.Render()
}

func renderWeights(ref *domain.ReferenceData) string {
	t := styledTable("Condition", "Weight")
	for _, w := range ref.Weights.Entries() {
		t.Row(w.Name, w.Weight.StringFixed(2))
	}
	return t.Render()
}

func lifestyleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lifestyle",
		Short: "Derive a lifestyle score from weekly habits",
		Long: `Derive a 0-10 lifestyle score from exercise, diet and sleep habits.

Example:
  hcpredict lifestyle --exercise-days 4 --fruit-veg 5 --sleep-hours 7
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exercise, _ := cmd.Flags().GetInt("exercise-days")
			fruitVeg, _ := cmd.Flags().GetInt("fruit-veg")
			sleep, _ := cmd.Flags().GetInt("sleep-hours")

			score, err := calculation.LifestyleScore(domain.LifestyleHabits{
				ExerciseDays:     exercise,
				FruitVegPortions: fruitVeg,
				SleepHours:       sleep,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Lifestyle score: %d/%d\n", score, domain.MaxLifestyleScore)
			return nil
		},
	}

	cmd.Flags().Int("exercise-days", 0, "Days per week with 30+ minutes of exercise (0-7)")
	cmd.Flags().Int("fruit-veg", 0, "Fruit and vegetable portions per day (0-10)")
	cmd.Flags().Int("sleep-hours", 0, "Hours of sleep per day (0-24)")
	return cmd
}
