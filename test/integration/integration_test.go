package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rgehrsitz/hcpredict/internal/advice"
	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/compare"
	"github.com/rgehrsitz/hcpredict/internal/config"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/rgehrsitz/hcpredict/internal/output"
	"github.com/rgehrsitz/hcpredict/internal/refdata"
	"github.com/rgehrsitz/hcpredict/internal/server"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	profileFile = "../testdata/profile.yaml"
	batchFile   = "../testdata/batch.csv"
	dataDir     = "../../internal/refdata/data"
)

func newEngine(t *testing.T) *calculation.PredictionEngine {
	t.Helper()
	ref, err := refdata.Load(dataDir)
	require.NoError(t, err, "Reference data on disk should load")
	engine, err := calculation.NewPredictionEngine(ref, domain.DefaultModelParameters())
	require.NoError(t, err)
	return engine
}

// TestEndToEndPrediction runs request file -> normalize -> predict -> report
func TestEndToEndPrediction(t *testing.T) {
	engine := newEngine(t)

	req, err := config.NewInputParser().LoadRequestFile(profileFile)
	require.NoError(t, err)

	profile, err := config.NewNormalizer(nil).Normalize(req.Input)
	require.NoError(t, err)

	result, err := engine.Predict(profile)
	require.NoError(t, err)
	assert.Equal(t, "5074.60", result.PredictedAnnualCost.StringFixed(2))
	assert.Equal(t, "422.88", result.MonthlyCost().StringFixed(2))
	assert.Len(t, result.Breakdown, 6)

	recs, err := advice.RuleBased{}.Recommend(context.Background(), profile, result)
	require.NoError(t, err)
	assert.NotEmpty(t, recs)

	report := output.NewReport(profile, req.Personal, result, recs).WithAssumptions(engine.Params)
	dir := t.TempDir()
	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			f := output.GetFormatterByName(name)
			require.NotNil(t, f)
			path, err := output.WriteFormatted(f, report, dir, output.ExtensionFor(f))
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "5074.6", "Every format should carry the predicted cost")
		})
	}
}

func TestEmbeddedAndDiskDataAgree(t *testing.T) {
	disk := newEngine(t)
	embedded, err := calculation.NewPredictionEngine(refdata.MustLoadDefault(), domain.DefaultModelParameters())
	require.NoError(t, err)

	for _, region := range domain.AllRegions() {
		for age := domain.MinAge; age <= domain.MaxAge; age += 7 {
			p := domain.Profile{Age: age, Region: region, LifestyleScore: 5}
			a, err := disk.Predict(p)
			require.NoError(t, err)
			b, err := embedded.Predict(p)
			require.NoError(t, err)
			assert.True(t, a.PredictedAnnualCost.Equal(b.PredictedAnnualCost), "%s age %d", region, age)
		}
	}
}

func TestBatchFile(t *testing.T) {
	engine := newEngine(t)

	inputs, err := config.NewInputParser().LoadBatchFile(batchFile)
	require.NoError(t, err)
	require.Len(t, inputs, 5)

	rows, err := engine.PredictBatch(context.Background(), config.NewNormalizer(nil), inputs, 2)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "5074.60", rows[0].Result.PredictedAnnualCost.StringFixed(2))
	assert.Equal(t, "7249.43", rows[1].Result.PredictedAnnualCost.StringFixed(2))
	assert.True(t, rows[3].OK(), "Age 100 is inside the model range")
	assert.False(t, rows[4].OK())
	require.NotNil(t, rows[4].Err)
	assert.Equal(t, domain.FieldAge, rows[4].Err.Field)
}

func TestCompareFromFile(t *testing.T) {
	engine := newEngine(t)

	req, err := config.NewInputParser().LoadRequestFile(profileFile)
	require.NoError(t, err)
	profile, err := config.NewNormalizer(nil).Normalize(req.Input)
	require.NoError(t, err)

	compSet, err := compare.NewCompareEngine(engine).Compare(context.Background(), profile, compare.CompareOptions{
		Templates:  []string{"uninsured", "healthy_lifestyle"},
		Transforms: []string{"remove_condition:condition=diabetes"},
		InputPath:  profileFile,
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 3)

	uninsured := compSet.AlternativeResults[0]
	assert.Equal(t, "2174.83", uninsured.CostDiffFromBase.StringFixed(2))

	for _, alt := range compSet.AlternativeResults[1:] {
		assert.True(t, alt.CostDiffFromBase.IsNegative(), "%s should be cheaper than the base", alt.ScenarioName)
	}
	assert.NotEmpty(t, compSet.Recommendations)
}

func TestHTTPRoundTrip(t *testing.T) {
	srv, err := server.New(server.Options{
		Engine:      newEngine(t),
		Recommender: advice.RuleBased{},
		Logger:      zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	body, err := os.ReadFile(profileFile)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/v1/predictions", "application/yaml", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded struct {
		Result struct {
			PredictedAnnualCost decimal.Decimal `json:"predicted_annual_cost"`
		} `json:"result"`
		Recommendations []string `json:"recommendations"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, "5074.60", decoded.Result.PredictedAnnualCost.StringFixed(2))
	assert.NotEmpty(t, decoded.Recommendations)

	report, err := http.Post(ts.URL+"/v1/reports?format=html", "application/yaml", bytes.NewReader(body))
	require.NoError(t, err)
	defer report.Body.Close()
	assert.Equal(t, http.StatusOK, report.StatusCode)
	assert.Contains(t, report.Header.Get("Content-Disposition"), ".html")
}
