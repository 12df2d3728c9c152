package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/rgehrsitz/hcpredict/internal/transform"
)

// CompareEngine orchestrates what-if comparisons
type CompareEngine struct {
	Predictor         *calculation.PredictionEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(predictor *calculation.PredictionEngine) *CompareEngine {
	return &CompareEngine{
		Predictor:         predictor,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Display name of the base profile
	Templates        []string // Built-in template names to apply
	Transforms       []string // Ad hoc transform specs ("set_lifestyle:score=8")
	InputPath        string   // Source file of the base profile, for display
}

// Alternative is an explicitly supplied variant profile
type Alternative struct {
	Name    string
	Profile domain.Profile
}

// Compare predicts the base profile and one variant per template and transform spec
func (ce *CompareEngine) Compare(ctx context.Context, base domain.Profile, options CompareOptions) (*ComparisonSet, error) {
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	baseResult, err := ce.run(baseName, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base profile: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult, err := ce.run(template.Name, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate template %s: %w", templateName, err)
		}
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(*altResult, *baseResult))
	}

	for _, spec := range options.Transforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(base, []transform.ProfileTransform{t})
		if err != nil {
			return nil, err
		}

		altResult, err := ce.run(spec, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate transform %s: %w", spec, err)
		}
		altResult.Description = t.Description()
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(*altResult, *baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         baseResult,
		AlternativeResults: alternatives,
		InputPath:          options.InputPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareProfiles compares explicit variant profiles (not using templates)
func (ce *CompareEngine) CompareProfiles(ctx context.Context, baseName string, base domain.Profile, alts []Alternative) (*ComparisonSet, error) {
	baseResult, err := ce.run(baseName, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base profile: %w", err)
	}

	alternatives := make([]ComparisonResult, 0, len(alts))
	for _, alt := range alts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		altResult, err := ce.run(alt.Name, alt.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate profile %s: %w", alt.Name, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(*altResult, *baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) run(name string, profile domain.Profile) (*ComparisonResult, error) {
	prediction, err := ce.Predictor.Predict(profile)
	if err != nil {
		return nil, err
	}
	result := ce.MetricsCalculator.CalculateMetrics(name, profile, prediction)
	return &result, nil
}
