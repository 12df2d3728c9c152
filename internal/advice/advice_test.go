package advice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/rgehrsitz/hcpredict/internal/refdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func exampleProfile() domain.Profile {
	return domain.Profile{
		Age:               45,
		Region:            domain.RegionTurkey,
		ChronicConditions: domain.NewConditionSet(domain.Diabetes, domain.Hypertension),
		FamilyHistory:     domain.NewConditionSet(domain.HeartDisease),
		LifestyleScore:    6,
		HasInsurance:      true,
	}
}

func examplePrediction(t *testing.T, p domain.Profile) *domain.PredictionResult {
	t.Helper()
	result, err := calculation.Predict(p, refdata.MustLoadDefault(), domain.DefaultModelParameters())
	require.NoError(t, err)
	return result
}

func TestRuleBased_Recommend(t *testing.T) {
	p := exampleProfile()

	recs, err := RuleBased{}.Recommend(context.Background(), p, examplePrediction(t, p))
	require.NoError(t, err)

	joined := strings.Join(recs, "\n")
	assert.Contains(t, joined, "HbA1c", "Should advise on diabetes")
	assert.Contains(t, joined, "blood pressure", "Should advise on hypertension")
	assert.Contains(t, joined, "family history of heart disease")
	assert.Contains(t, joined, "5 exercise days")
	assert.NotContains(t, joined, "insurance options", "Insured profiles need no insurance advice")
}

func TestRuleBased_SkipsFamilyHistoryAlreadyPresent(t *testing.T) {
	p := domain.Profile{
		Age:               35,
		Region:            domain.RegionUSA,
		ChronicConditions: domain.NewConditionSet(domain.Diabetes),
		FamilyHistory:     domain.NewConditionSet(domain.Diabetes, domain.Depression),
		LifestyleScore:    10,
	}

	recs, err := RuleBased{}.Recommend(context.Background(), p, nil)
	require.NoError(t, err)

	joined := strings.Join(recs, "\n")
	assert.NotContains(t, joined, "family history of diabetes")
	assert.Contains(t, joined, "family history of depression")
	assert.Contains(t, joined, "insurance options")
}

func TestRuleBased_HealthyProfile(t *testing.T) {
	p := domain.Profile{Age: 30, Region: domain.RegionAsia, LifestyleScore: 10, HasInsurance: true}

	recs, err := RuleBased{}.Recommend(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Maintain yearly preventive check-ups"}, recs)
}

func TestGeminiRecommender_Recommend(t *testing.T) {
	gen := &mockGenerator{}
	p := exampleProfile()
	result := examplePrediction(t, p)

	gen.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Age: 45 years") &&
			strings.Contains(prompt, "diabetes, hypertension") &&
			strings.Contains(prompt, "Predicted annual cost: $5074.60")
	})).Return("**Preventive care:**\n- Get an HbA1c test every 3 months\n* Walk 30 minutes daily\n\n2. Get an HbA1c test every 3 months\n", nil)

	recs, err := NewGeminiRecommender(gen).Recommend(context.Background(), p, result)
	require.NoError(t, err)
	assert.Equal(t, []string{"Get an HbA1c test every 3 months", "Walk 30 minutes daily"}, recs)
	gen.AssertExpectations(t)
}

func TestGeminiRecommender_Errors(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()
	gen.On("Generate", mock.Anything, mock.Anything).Return("  \n\n", nil).Once()

	rec := NewGeminiRecommender(gen)
	_, err := rec.Recommend(context.Background(), exampleProfile(), nil)
	assert.ErrorContains(t, err, "quota exceeded")

	_, err = rec.Recommend(context.Background(), exampleProfile(), nil)
	assert.ErrorContains(t, err, "no recommendations")
	gen.AssertExpectations(t)
}

func TestWithFallback(t *testing.T) {
	failing := RecommenderFunc(func(context.Context, domain.Profile, *domain.PredictionResult) ([]string, error) {
		return nil, errors.New("offline")
	})
	working := Static{"primary advice"}

	recs, err := WithFallback(working, Static{FallbackMessage}, nil).Recommend(context.Background(), exampleProfile(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"primary advice"}, recs)

	recs, err = WithFallback(failing, Static{FallbackMessage}, nil).Recommend(context.Background(), exampleProfile(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{FallbackMessage}, recs)

	recs, err = WithFallback(Static{}, RuleBased{}, nil).Recommend(context.Background(), exampleProfile(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, recs, "Empty primary output should fall back")

	_, err = WithFallback(failing, failing, nil).Recommend(context.Background(), exampleProfile(), nil)
	assert.ErrorContains(t, err, "fallback recommender failed")
}

func TestParseRecommendations(t *testing.T) {
	text := "1. Eat more fiber\n2) Sleep 8 hours\n  - eat more fiber\n### Heading:\n• Stretch daily"
	assert.Equal(t, []string{"Eat more fiber", "Sleep 8 hours", "Stretch daily"}, ParseRecommendations(text))

	var many strings.Builder
	for i := 0; i < 20; i++ {
		many.WriteString("- tip " + string(rune('a'+i)) + "\n")
	}
	assert.Len(t, ParseRecommendations(many.String()), maxRecommendations)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	assert.ErrorContains(t, err, "API key")
}
