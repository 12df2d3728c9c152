package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/rgehrsitz/hcpredict/internal/refdata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildTestReport(t *testing.T) *Report {
	t.Helper()
	profile := domain.Profile{
		Age:               45,
		Region:            domain.RegionTurkey,
		ChronicConditions: domain.NewConditionSet(domain.Diabetes, domain.Hypertension),
		FamilyHistory:     domain.NewConditionSet(domain.HeartDisease),
		LifestyleScore:    6,
		HasInsurance:      true,
	}
	result, err := calculation.Predict(profile, refdata.MustLoadDefault(), domain.DefaultModelParameters())
	require.NoError(t, err)

	personal := domain.PersonalDetails{
		Name:     "Ayse",
		Gender:   "female",
		HeightCM: decimal.NewFromInt(170),
		WeightKG: decimal.NewFromInt(65),
		Alcohol:  true,
	}
	report := NewReport(profile, personal, result, []string{"Walk 30 minutes a day", "Review your diabetes care plan"})
	report.GeneratedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return report
}

func TestNewReport(t *testing.T) {
	report := buildTestReport(t)

	assert.Len(t, report.ID, 36, "Should assign a UUID")
	require.NotNil(t, report.Personal)
	assert.Equal(t, "22.5", report.BMI())
	assert.Equal(t, DefaultAssumptions, report.Assumptions)

	bare := NewReport(report.Profile, domain.PersonalDetails{}, report.Result, nil)
	assert.Nil(t, bare.Personal, "Empty personal details should be dropped")
	assert.Equal(t, "", bare.BMI())
	assert.NotEqual(t, report.ID, bare.ID)
}

func TestReport_WithAssumptions(t *testing.T) {
	report := buildTestReport(t)
	params := domain.DefaultModelParameters()
	params.InsuranceFactor = decimal.RequireFromString("0.8")

	report.WithAssumptions(params)
	assert.Contains(t, strings.Join(report.Assumptions, "\n"), "Insurance: 20.00% discount")
}

func TestFormatterFunc_Format(t *testing.T) {
	called := false
	var received *Report

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(r *Report) ([]byte, error) {
			called = true
			received = r
			return []byte("test output"), nil
		},
	}

	report := buildTestReport(t)
	out, err := formatter.Format(report)

	assert.NoError(t, err, "Should not error")
	assert.True(t, called, "Should call the function")
	assert.Equal(t, report, received, "Should pass the report")
	assert.Equal(t, []byte("test output"), out, "Should return the function output")
	assert.Equal(t, "test-formatter", formatter.Name(), "Should return the ID")
}

func TestWriteFormatted(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	formatter := FormatterFunc{
		ID: "test-formatter",
		F:  func(r *Report) ([]byte, error) { return []byte("test output content"), nil },
	}

	report := buildTestReport(t)
	report.ID = "3f2a9c1e-7b4d-4e2a-9c1e-5d6f7a8b9c0d"

	path, err := WriteFormatted(formatter, report, dir, "txt")
	require.NoError(t, err, "Should not error")

	assert.Equal(t, filepath.Join(dir, "health_cost_prediction_20260314_092653_3f2a9c1e.txt"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err, "Should be able to read the file")
	assert.Equal(t, "test output content", string(content), "Should have correct content")
}

func TestWriteFormatted_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	report := buildTestReport(t)
	report.ID = "3f2a9c1e-7b4d-4e2a-9c1e-5d6f7a8b9c0d"

	first, err := WriteFormatted(FormatterFunc{ID: "a", F: func(*Report) ([]byte, error) { return []byte("first"), nil }}, report, dir, "txt")
	require.NoError(t, err)
	second, err := WriteFormatted(FormatterFunc{ID: "b", F: func(*Report) ([]byte, error) { return []byte("second"), nil }}, report, dir, "txt")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "Same report saved twice should get a new name")
	assert.Equal(t, filepath.Join(dir, "health_cost_prediction_20260314_092653_3f2a9c1e_2.txt"), second)

	content, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content), "First report should be untouched")
	content, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	// Reports generated in the same second differ by ID
	other := buildTestReport(t)
	assert.NotEqual(t, ReportFilename(report, "txt"), ReportFilename(other, "txt"))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F:  func(r *Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") },
	}

	path, err := WriteFormatted(formatter, buildTestReport(t), t.TempDir(), "txt")

	assert.Error(t, err, "Should error when formatter fails")
	assert.Empty(t, path, "Should return empty path on error")
	assert.Contains(t, err.Error(), "formatter error", "Should propagate formatter error")
}

func TestConsoleFormatter_Format(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "HEALTH COST PREDICTION FOR AYSE", "Should have header")
	assert.Contains(t, content, "PREDICTED ANNUAL COST: $5074.60")
	assert.Contains(t, content, "age group 40-49")
	assert.Contains(t, content, "heart_disease")
	assert.Contains(t, content, "BMI:                22.5")
	assert.Contains(t, content, "1. Walk 30 minutes a day")
	assert.Contains(t, content, "x1.96")
}

func TestConsoleFormatter_NoResult(t *testing.T) {
	_, err := ConsoleFormatter{}.Format(&Report{})
	assert.Error(t, err)
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 8, "Header, six entries and a total row")
	assert.Equal(t, []string{"Step", "Factor", "Value", "RunningCost", "Description", "Source"}, records[0])
	assert.Equal(t, "base_cost", records[1][0])
	assert.Equal(t, "total", records[7][0])
	assert.Equal(t, "5074.60", records[7][3])
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := JSONFormatter{Pretty: true}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "id")
	result := decoded["result"].(map[string]any)
	assert.Equal(t, "5074.6", result["predicted_annual_cost"])
	profile := decoded["profile"].(map[string]any)
	assert.Equal(t, []any{"diabetes", "hypertension"}, profile["chronic_conditions"])
}

func TestYAMLFormatter_Format(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded struct {
		Profile struct {
			Region            string   `yaml:"region"`
			ChronicConditions []string `yaml:"chronic_conditions"`
		} `yaml:"profile"`
	}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "Turkey", decoded.Profile.Region)
	assert.Equal(t, []string{"diabetes", "hypertension"}, decoded.Profile.ChronicConditions)
}

func TestMarkdownFormatter_Format(t *testing.T) {
	out, err := MarkdownFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "# Health Cost Prediction for Ayse")
	assert.Contains(t, content, "**Predicted annual cost: $5074.60**")
	assert.Contains(t, content, "| chronic_condition | diabetes | x1.96 |")
	assert.Contains(t, content, "[source](https://")
}

func TestHTMLFormatter_Format(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>", "Should have HTML structure")
	assert.Contains(t, content, "<title>Health Cost Prediction for Ayse</title>")
	assert.Contains(t, content, "$5074.60")
	assert.Contains(t, content, "<li>Walk 30 minutes a day</li>")
	assert.Contains(t, content, "<th>BMI</th><td>22.5</td>")
}

func TestHTMLFormatter_EscapesInput(t *testing.T) {
	report := buildTestReport(t)
	report.Recommendations = []string{"<script>alert(1)</script>"}

	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json", "markdown", "yaml"}, AvailableFormatterNames())
	assert.Equal(t, []string{"md", "text", "yml"}, AvailableFormatAliases())
}

func TestGetFormatterByName(t *testing.T) {
	formatter := GetFormatterByName("HTML")
	require.NotNil(t, formatter, "Should return formatter")
	assert.Equal(t, "html", formatter.Name())
	assert.Equal(t, "html", ExtensionFor(formatter))

	alias := GetFormatterByName("md")
	require.NotNil(t, alias)
	assert.Equal(t, "markdown", alias.Name())
	assert.Equal(t, "md", ExtensionFor(alias))

	assert.Nil(t, GetFormatterByName("pdf"), "Should return nil for unknown names")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1200.00", FormatCurrency(decimal.NewFromInt(1200)))
	assert.Equal(t, "x1.60", FormatMultiplier(decimal.RequireFromString("1.6")))
	assert.Equal(t, "12.50%", FormatPercentage(decimal.RequireFromString("12.5")))
	assert.Equal(t, "Yes", YesNo(true))
}
