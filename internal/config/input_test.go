package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParser_LoadRequestFile(t *testing.T) {
	parser := NewInputParser()

	yamlContent := `
age: 45
region: Turkey
chronic_conditions: [diabetes, hypertension]
family_history: heart_disease
lifestyle_score: 6
has_insurance: yes
personal:
  name: Ayse
  gender: female
  height_cm: 165
  weight_kg: 70
  smoker: false
  alcohol: true
`
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	req, err := parser.LoadRequestFile(path)
	require.NoError(t, err, "Should load a valid request file")

	assert.Equal(t, "45", req.Input.Age)
	assert.Equal(t, "diabetes, hypertension", req.Input.Conditions, "Lists should be joined")
	assert.Equal(t, "heart_disease", req.Input.FamilyHistory)
	assert.Equal(t, "yes", req.Input.Insurance)
	assert.Equal(t, "Ayse", req.Personal.Name)
	assert.True(t, req.Personal.Alcohol)
	assert.Equal(t, "165", req.Personal.HeightCM.String())

	profile, err := NewNormalizer(nil).Normalize(req.Input)
	require.NoError(t, err, "Request input should normalize")
	assert.True(t, profile.HasInsurance)
}

func TestInputParser_ParseRequest_JSON(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.ParseRequest([]byte(`{"age": "52", "region": "asia", "has_insurance": false,
		"habits": {"exercise_days": 3, "fruit_veg_portions": 5, "sleep_hours": 8}}`))
	require.NoError(t, err)

	assert.Equal(t, "52", req.Input.Age)
	assert.Equal(t, "false", req.Input.Insurance)
	assert.Equal(t, "9", req.Input.Lifestyle, "Lifestyle score should come from habits")
}

func TestInputParser_ParseRequest_ExplicitScoreWins(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.ParseRequest([]byte("lifestyle_score: 2\nhabits: {exercise_days: 7, fruit_veg_portions: 7, sleep_hours: 8}\n"))
	require.NoError(t, err)
	assert.Equal(t, "2", req.Input.Lifestyle)
}

func TestInputParser_ParseRequest_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.ParseRequest([]byte("age: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = parser.ParseRequest([]byte("habits: {exercise_days: 9}"))
	assert.ErrorContains(t, err, "exercise_days")

	_, err = parser.ParseRequest([]byte("personal: {height_cm: 20}"))
	assert.ErrorContains(t, err, "personal details")

	_, err = parser.ParseRequest([]byte("chronic_conditions: {diabetes: true}"))
	assert.Error(t, err, "Mappings are not a valid condition list")

	_, err = parser.LoadRequestFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
}

func TestInputParser_ParseBatch(t *testing.T) {
	parser := NewInputParser()

	csvContent := `age,region,conditions,family_history,lifestyle,insurance
45,Turkey,"diabetes, hypertension",heart_disease,6,yes
30,USA,,,10,no
62,Europe,cancer;copd,,3,true
`
	inputs, err := parser.ParseBatch(strings.NewReader(csvContent))
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	assert.Equal(t, "diabetes, hypertension", inputs[0].Conditions)
	assert.Equal(t, "", inputs[1].Conditions)
	assert.Equal(t, "cancer,copd", inputs[2].Conditions, "Semicolons should separate conditions")

	profile, err := NewNormalizer(nil).Normalize(inputs[2])
	require.NoError(t, err)
	assert.Equal(t, 2, profile.ChronicConditions.Len())
}

func TestInputParser_ParseBatch_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.ParseBatch(strings.NewReader(""))
	assert.ErrorContains(t, err, "empty")

	_, err = parser.ParseBatch(strings.NewReader("age,region\n45,USA\n"))
	assert.ErrorContains(t, err, "missing column")

	_, err = parser.ParseBatch(strings.NewReader("age,region,conditions,family_history,lifestyle,insurance\n45,USA\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = parser.LoadBatchFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "failed to open batch file")
}
