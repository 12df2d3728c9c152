package calculation

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rgehrsitz/hcpredict/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Normalizer turns raw input into a canonical profile
type Normalizer interface {
	Normalize(raw domain.RawInput) (domain.Profile, error)
}

// BatchRow is the outcome for one input row
type BatchRow struct {
	Index   int                      `json:"index"`
	Input   domain.RawInput          `json:"input"`
	Profile *domain.Profile          `json:"profile,omitempty"`
	Result  *domain.PredictionResult `json:"result,omitempty"`
	Err     *domain.ValidationError  `json:"error,omitempty"`
}

// OK reports whether the row produced a prediction
func (r BatchRow) OK() bool {
	return r.Err == nil && r.Result != nil
}

// PredictBatch normalizes and predicts every input concurrently, keeping input
// order. Validation failures are recorded on their row; any other error aborts.
func (e *PredictionEngine) PredictBatch(ctx context.Context, n Normalizer, inputs []domain.RawInput, workers int) ([]BatchRow, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rows := make([]BatchRow, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, raw := range inputs {
		i, raw := i, raw
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := BatchRow{Index: i, Input: raw}

			profile, err := n.Normalize(raw)
			if err != nil {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) {
					return fmt.Errorf("row %d: %w", i+1, err)
				}
				row.Err = ve
				rows[i] = row
				return nil
			}
			row.Profile = &profile

			result, err := e.Predict(profile)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			row.Result = result
			rows[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range rows {
		if !r.OK() {
			failed++
		}
	}
	e.logger().Infof("batch complete: %d rows, %d rejected", len(rows), failed)
	return rows, nil
}
