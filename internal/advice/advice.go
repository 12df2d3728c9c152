// Package advice produces health recommendations for a prediction. Recommendations
// are informational and never feed back into the estimate.
package advice

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// FallbackMessage is returned when no recommendation source is available
const FallbackMessage = "Unable to generate recommendations at this time. Please consult with your healthcare provider."

// Recommender produces advice for a profile and its prediction
type Recommender interface {
	Recommend(ctx context.Context, profile domain.Profile, result *domain.PredictionResult) ([]string, error)
}

// RecommenderFunc adapts a function to Recommender
type RecommenderFunc func(ctx context.Context, profile domain.Profile, result *domain.PredictionResult) ([]string, error)

func (f RecommenderFunc) Recommend(ctx context.Context, profile domain.Profile, result *domain.PredictionResult) ([]string, error) {
	return f(ctx, profile, result)
}

// Static always returns the same recommendations
type Static []string

func (s Static) Recommend(context.Context, domain.Profile, *domain.PredictionResult) ([]string, error) {
	return append([]string(nil), s...), nil
}

type fallback struct {
	primary  Recommender
	fallback Recommender
	logger   calculation.Logger
}

// WithFallback returns a Recommender that uses fb when primary fails or returns nothing
func WithFallback(primary, fb Recommender, logger calculation.Logger) Recommender {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &fallback{primary: primary, fallback: fb, logger: logger}
}

func (f *fallback) Recommend(ctx context.Context, profile domain.Profile, result *domain.PredictionResult) ([]string, error) {
	recs, err := f.primary.Recommend(ctx, profile, result)
	if err == nil && len(recs) > 0 {
		return recs, nil
	}
	if err != nil {
		f.logger.Warnf("recommendations unavailable, using fallback: %v", err)
	}
	recs, fbErr := f.fallback.Recommend(ctx, profile, result)
	if fbErr != nil {
		return nil, fmt.Errorf("fallback recommender failed: %w", fbErr)
	}
	return recs, nil
}
