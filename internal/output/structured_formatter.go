package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// JSONFormatter renders the report as JSON
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(r, "", "  ")
	}
	return json.Marshal(r)
}

// YAMLFormatter renders the report as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVFormatter renders one row per breakdown entry plus a total row
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Result == nil {
		return nil, fmt.Errorf("report has no prediction result")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Step", "Factor", "Value", "RunningCost", "Description", "Source"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range r.Result.Breakdown {
		row := []string{
			string(e.Step),
			e.Factor,
			e.Value.String(),
			e.RunningCost.StringFixed(2),
			e.Description,
			e.Source,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	total := []string{"total", "", r.Result.RiskMultiplier.String(), r.Result.PredictedAnnualCost.StringFixed(2), "Predicted annual cost", ""}
	if err := w.Write(total); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
