package refdata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCosts = `region,age_group,base_cost
USA,30-39,2000
USA,40-49,3000
USA,50-59,4000
USA,60+,6000
Europe,30-39,1500
Europe,40-49,2250
Europe,50-59,3000
Europe,60+,4500
Asia,30-39,1000
Asia,40-49,1500
Asia,50-59,2000
Asia,60+,3000
Turkey,30-39,800
Turkey,40-49,1200
Turkey,50-59,1600
Turkey,60+,2400
`

const validWeights = `diabetes: 1.96
hypertension: 1.72
heart_disease: 2.20
asthma: 1.33
arthritis: 1.40
cancer: 2.44
chronic_kidney_disease: 2.10
copd: 1.96
depression: 1.48
obesity: 1.72
`

func testFS(costs, weights string) fstest.MapFS {
	fsys := fstest.MapFS{}
	if costs != "" {
		fsys[BaseCostFile] = &fstest.MapFile{Data: []byte(costs)}
	}
	if weights != "" {
		fsys[WeightsFile] = &fstest.MapFile{Data: []byte(weights)}
	}
	return fsys
}

func TestLoadDefault(t *testing.T) {
	ref, err := LoadDefault()
	require.NoError(t, err, "Embedded reference data should load")

	assert.Equal(t, "embedded defaults", ref.Source)

	cost, err := ref.BaseCosts.LookupBaseCost(domain.RegionEurope, 75)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4500).Equal(cost), "60+ band should run to 100")

	w, err := ref.Weights.LookupWeight(domain.ChronicKidneyDisease)
	require.NoError(t, err)
	assert.Equal(t, "2.1", w.String())
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, BaseCostFile), []byte(validCosts), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, WeightsFile), []byte(validWeights), 0o644))

	ref, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, ref.Source)

	_, err = Load(filepath.Join(dir, "missing"))
	var dle *domain.DataLoadError
	assert.True(t, errors.As(err, &dle), "Missing directory should be a DataLoadError")
}

func TestLoadFS_AcceptsJSONWeights(t *testing.T) {
	weights := `{"diabetes": 1.96, "hypertension": 1.72, "heart_disease": 2.2, "asthma": 1.33,
"arthritis": 1.4, "cancer": 2.44, "chronic_kidney_disease": 2.1, "copd": 1.96,
"depression": 1.48, "obesity": 1.72}`

	_, err := LoadFS(testFS(validCosts, weights))
	assert.NoError(t, err)
}

func TestLoadFS_Failures(t *testing.T) {
	tests := []struct {
		name    string
		costs   string
		weights string
		reason  string
	}{
		{"missing costs file", "", validWeights, "cannot open file"},
		{"missing weights file", validCosts, "", "cannot open file"},
		{"empty costs", "region,age_group,base_cost\n", validWeights, "no data rows"},
		{"bad header", "place,ages,cost\nUSA,30-39,1\n", validWeights, "missing column"},
		{"unknown region", validCosts + "Mars,30-39,10\n", validWeights, "unknown region"},
		{"bad age group", strings.Replace(validCosts, "USA,40-49", "USA,forty", 1), validWeights, "invalid age group"},
		{"bad cost", strings.Replace(validCosts, "USA,40-49,3000", "USA,40-49,lots", 1), validWeights, "invalid base cost"},
		{"negative cost", strings.Replace(validCosts, "USA,40-49,3000", "USA,40-49,-3000", 1), validWeights, "must be positive"},
		{"gap", strings.Replace(validCosts, "Asia,40-49", "Asia,41-49", 1), validWeights, "gap"},
		{"overlap", strings.Replace(validCosts, "Asia,40-49", "Asia,35-49", 1), validWeights, "overlaps"},
		{"duplicate row", validCosts + "Asia,40-49,1500\n", validWeights, "duplicate"},
		{"missing region", strings.SplitAfter(validCosts, "USA,60+,6000\n")[0], validWeights, "has no entries"},
		{"unknown condition", validCosts, validWeights + "gout: 1.2\n", "unknown condition"},
		{"missing condition", validCosts, strings.Replace(validWeights, "obesity: 1.72\n", "", 1), "missing weight for obesity"},
		{"weight too low", validCosts, strings.Replace(validWeights, "asthma: 1.33", "asthma: 0.33", 1), "must be in"},
		{"weight too high", validCosts, strings.Replace(validWeights, "cancer: 2.44", "cancer: 3.5", 1), "must be in"},
		{"non numeric weight", validCosts, strings.Replace(validWeights, "copd: 1.96", "copd: high", 1), "invalid weight"},
		{"weights not a mapping", validCosts, "- diabetes\n- asthma\n", "expected a mapping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := LoadFS(testFS(tt.costs, tt.weights))
			require.Error(t, err)
			assert.Nil(t, ref)

			var dle *domain.DataLoadError
			assert.True(t, errors.As(err, &dle), "Should be a DataLoadError, got %T", err)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestLoadFS_DuplicateWeightKey(t *testing.T) {
	_, err := LoadFS(testFS(validCosts, validWeights+"diabetes: 1.5\n"))
	assert.Error(t, err, "Duplicate condition keys should be rejected")
}

func TestParseAgeGroup(t *testing.T) {
	band, err := ParseAgeGroup("30-39")
	require.NoError(t, err)
	assert.Equal(t, domain.AgeBand{Min: 30, Max: 39}, band)

	band, err = ParseAgeGroup(" 60+ ")
	require.NoError(t, err)
	assert.Equal(t, domain.AgeBand{Min: 60, Max: domain.MaxAge}, band)

	for _, bad := range []string{"", "sixty+", "30", "30-x"} {
		_, err := ParseAgeGroup(bad)
		assert.Error(t, err, "Should reject %q", bad)
	}
}
