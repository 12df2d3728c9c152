package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/hcpredict/internal/advice"
	"github.com/rgehrsitz/hcpredict/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the annual healthcare cost of one profile",
		Long: `Predict the annual healthcare cost of one profile.

Examples:
  hcpredict predict --age 45 --region Turkey --conditions "diabetes, hypertension" \
      --family-history "heart disease" --lifestyle 6 --insurance yes
  hcpredict predict --input profile.yaml --format html --save
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			format, _ := cmd.Flags().GetString("format")
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown output format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			req, profile, err := a.readProfile(cmd)
			if err != nil {
				return err
			}
			result, err := a.engine.Predict(profile)
			if err != nil {
				return err
			}

			var recs []string
			if recommend, _ := cmd.Flags().GetBool("recommend"); recommend {
				recommender, closeFn, err := a.recommender(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()

				ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
				defer cancel()
				recs, err = recommender.Recommend(ctx, profile, result)
				if err != nil {
					a.logger.Warn("recommendations unavailable", zap.Error(err))
				}
			}

			report := output.NewReport(profile, req.Personal, result, recs).WithAssumptions(a.engine.Params)

			if save, _ := cmd.Flags().GetBool("save"); save {
				dir, _ := cmd.Flags().GetString("output-dir")
				if dir == "" {
					dir = a.settings.ReportsDir
				}
				path, err := output.WriteFormatted(formatter, report, dir, output.ExtensionFor(formatter))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
				return nil
			}

			data, err := formatter.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	addProfileFlags(cmd)
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("save", false, "Write the report to the reports directory instead of stdout")
	cmd.Flags().String("output-dir", "", "Reports directory (default from settings)")
	cmd.Flags().Bool("recommend", false, "Include recommendations (Gemini when GEMINI_API_KEY is set, rule based otherwise)")
	return cmd
}

// recommender returns the rule based recommender, fronted by Gemini when a key
// is configured. The returned func releases the Gemini client.
func (a *app) recommender(ctx context.Context) (advice.Recommender, func(), error) {
	rules := advice.RuleBased{}
	if !a.settings.Gemini.Enabled() {
		return rules, func() {}, nil
	}

	client, err := advice.NewGeminiClient(ctx, a.settings.Gemini.APIKey, a.settings.Gemini.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	a.logger.Debug("using Gemini recommendations", zap.String("model", a.settings.Gemini.Model))
	return advice.WithFallback(advice.NewGeminiRecommender(client), rules, a.logger.Sugar()), client.Close, nil
}
