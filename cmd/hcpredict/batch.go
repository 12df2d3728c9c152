package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <csv-file>",
		Short: "Predict every row of a CSV file",
		Long: `Predict every row of a CSV file with the columns
age,region,conditions,family_history,lifestyle,insurance.

Rows that fail validation are reported with the offending field instead of a cost.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown output format: %s (valid: csv, json)", format)
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			inputs, err := config.NewInputParser().LoadBatchFile(args[0])
			if err != nil {
				return err
			}

			workers, _ := cmd.Flags().GetInt("workers")
			rows, err := a.engine.PredictBatch(cmd.Context(), a.normalizer, inputs, workers)
			if err != nil {
				return fmt.Errorf("batch failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create output file %s: %w", path, err)
				}
				defer f.Close()
				out = f
			}

			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(rows)
			} else {
				err = writeBatchCSV(out, rows)
			}
			if err != nil {
				return err
			}

			rejected := 0
			for _, r := range rows {
				if !r.OK() {
					rejected++
				}
			}
			a.logger.Info("batch written", zap.String("input", args[0]), zap.Int("rows", len(rows)), zap.Int("rejected", rejected))
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "csv", "Output format (csv, json)")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	cmd.Flags().Int("workers", 0, "Concurrent workers (default GOMAXPROCS)")
	return cmd
}

var batchHeader = []string{
	"row", "age", "region", "chronic_conditions", "family_history", "lifestyle_score", "has_insurance",
	"age_band", "risk_multiplier", "annual_cost", "monthly_cost", "error_field", "error_reason",
}

func writeBatchCSV(w io.Writer, rows []calculation.BatchRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(batchHeader); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{strconv.Itoa(r.Index + 1)}
		if r.OK() {
			p := r.Profile
			record = append(record,
				strconv.Itoa(p.Age),
				p.Region.String(),
				p.ChronicConditions.String(),
				p.FamilyHistory.String(),
				strconv.Itoa(p.LifestyleScore),
				strconv.FormatBool(p.HasInsurance),
				r.Result.AgeBand,
				r.Result.RiskMultiplier.StringFixed(4),
				r.Result.PredictedAnnualCost.StringFixed(2),
				r.Result.MonthlyCost().StringFixed(2),
				"", "",
			)
		} else {
			in := r.Input
			record = append(record, in.Age, in.Region, in.Conditions, in.FamilyHistory, in.Lifestyle, in.Insurance,
				"", "", "", "")
			if r.Err != nil {
				record = append(record, r.Err.Field, r.Err.Reason)
			} else {
				record = append(record, "", "")
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
