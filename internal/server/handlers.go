package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rgehrsitz/hcpredict/internal/config"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/rgehrsitz/hcpredict/internal/output"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

var contentTypes = map[string]string{
	"console":  "text/plain; charset=utf-8",
	"csv":      "text/csv; charset=utf-8",
	"html":     "text/html; charset=utf-8",
	"json":     "application/json",
	"markdown": "text/markdown; charset=utf-8",
	"yaml":     "application/yaml",
}

type predictionResponse struct {
	Profile         domain.Profile           `json:"profile"`
	Result          *domain.PredictionResult `json:"result"`
	Recommendations []string                 `json:"recommendations,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"source": s.engine.Ref.Source,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	_, profile, ok := s.decodeAndNormalize(w, r)
	if !ok {
		return
	}

	result, ok := s.predict(w, profile)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, predictionResponse{
		Profile:         profile,
		Result:          result,
		Recommendations: s.recommend(r.Context(), profile, result),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q (available: %s)",
			format, strings.Join(output.AvailableFormatterNames(), ", ")))
		return
	}

	req, profile, ok := s.decodeAndNormalize(w, r)
	if !ok {
		return
	}
	result, ok := s.predict(w, profile)
	if !ok {
		return
	}

	report := output.NewReport(profile, req.Personal, result, s.recommend(r.Context(), profile, result)).
		WithAssumptions(s.engine.Params)
	body, err := formatter.Format(report)
	if err != nil {
		s.logger.Error("report formatting failed", zap.String("format", formatter.Name()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", contentTypes[formatter.Name()])
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%q", output.ReportFilename(report, output.ExtensionFor(formatter))))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	type baseCostRow struct {
		Region   domain.Region `json:"region"`
		AgeGroup string        `json:"age_group"`
		BaseCost string        `json:"base_cost"`
	}

	ref := s.engine.Ref
	rows := make([]baseCostRow, 0)
	for _, e := range ref.BaseCosts.Entries() {
		rows = append(rows, baseCostRow{Region: e.Region, AgeGroup: e.Band.String(), BaseCost: e.BaseCost.StringFixed(2)})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"source":            ref.Source,
		"regions":           domain.AllRegions(),
		"base_costs":        rows,
		"condition_weights": ref.Weights.Entries(),
		"model":             s.engine.Params,
	})
}

// decodeAndNormalize reads a JSON (or YAML) request body and normalizes it into a
// profile, writing the error response itself when it fails
func (s *Server) decodeAndNormalize(w http.ResponseWriter, r *http.Request) (*config.Request, domain.Profile, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "failed to read request body")
		}
		return nil, domain.Profile{}, false
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		writeError(w, http.StatusBadRequest, "request body is required")
		return nil, domain.Profile{}, false
	}

	req, err := s.parser.ParseRequest(data)
	if err != nil {
		if writeValidationError(w, err) {
			return nil, domain.Profile{}, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, domain.Profile{}, false
	}

	profile, err := s.normalizer.Normalize(req.Input)
	if err != nil {
		s.metrics.predictionsTotal.WithLabelValues("invalid").Inc()
		if !writeValidationError(w, err) {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return nil, domain.Profile{}, false
	}
	return req, profile, true
}

func (s *Server) predict(w http.ResponseWriter, profile domain.Profile) (*domain.PredictionResult, bool) {
	result, err := s.engine.Predict(profile)
	if err != nil {
		if writeValidationError(w, err) {
			s.metrics.predictionsTotal.WithLabelValues("invalid").Inc()
			return nil, false
		}
		s.metrics.predictionsTotal.WithLabelValues("error").Inc()
		s.logger.Error("prediction failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "prediction failed")
		return nil, false
	}
	s.metrics.predictionsTotal.WithLabelValues("ok").Inc()
	s.metrics.predictedCost.Observe(result.PredictedAnnualCost.InexactFloat64())
	return result, true
}

func (s *Server) recommend(ctx context.Context, profile domain.Profile, result *domain.PredictionResult) []string {
	if s.recommender == nil {
		return nil
	}
	recs, err := s.recommender.Recommend(ctx, profile, result)
	if err != nil {
		s.logger.Warn("recommendations unavailable", zap.Error(err))
		return nil
	}
	return recs
}

// writeValidationError writes a 422 when err carries a ValidationError
func writeValidationError(w http.ResponseWriter, err error) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:  "validation failed",
		Field:  verr.Field,
		Reason: verr.Reason,
	})
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
