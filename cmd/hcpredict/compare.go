package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/hcpredict/internal/compare"
	"github.com/rgehrsitz/hcpredict/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a profile against what-if variants",
		Long: `Compare a base profile against variants built from templates and transforms.

Examples:
  hcpredict compare --input profile.yaml --with uninsured,healthy_lifestyle
  hcpredict compare --age 45 --region Turkey --lifestyle 6 --insurance yes \
      --transform set_lifestyle:score=10 --transform add_condition:condition=diabetes
  hcpredict compare --list-templates
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if list, _ := cmd.Flags().GetBool("list-transforms"); list {
				fmt.Fprintln(out, "Available Transforms:")
				for _, name := range transform.NewTransformRegistry().List() {
					fmt.Fprintf(out, "  %s\n", name)
				}
				fmt.Fprintln(out, "\nSpec format: name:key=value[,key=value]")
				return nil
			}

			with, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			templates := transform.ParseTemplateList(with)
			if len(templates) == 0 && len(transforms) == 0 {
				return fmt.Errorf("--with or --transform is required (use --list-templates to see available templates)")
			}

			format, _ := cmd.Flags().GetString("format")
			format = strings.ToLower(format)
			switch format {
			case "table", "console", "", "csv", "json", "compact":
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, csv, json, compact)", format)
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			_, profile, err := a.readProfile(cmd)
			if err != nil {
				return err
			}

			baseName, _ := cmd.Flags().GetString("base")
			inputPath, _ := cmd.Flags().GetString("input")
			compSet, err := compare.NewCompareEngine(a.engine).Compare(cmd.Context(), profile, compare.CompareOptions{
				BaseScenarioName: baseName,
				Templates:        templates,
				Transforms:       transforms,
				InputPath:        inputPath,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			switch format {
			case "csv":
				formatter := &compare.CSVFormatter{}
				text, err := formatter.Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, text)
			case "json":
				formatter := &compare.JSONFormatter{Pretty: true}
				text, err := formatter.Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprint(out, text)
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
			default:
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			}
			return nil
		},
	}

	addProfileFlags(cmd)
	cmd.Flags().String("base", "base", "Display name of the base profile")
	cmd.Flags().String("with", "", "Comma separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Transform spec, repeatable (e.g. set_lifestyle:score=8)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json, compact)")
	cmd.Flags().Bool("list-templates", false, "List all built-in templates")
	cmd.Flags().Bool("list-transforms", false, "List all transforms")
	return cmd
}
