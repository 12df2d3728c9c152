package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"gopkg.in/yaml.v3"
)

// Request is a prediction request as stored in a YAML or JSON file
type Request struct {
	Input    domain.RawInput
	Habits   *domain.LifestyleHabits
	Personal domain.PersonalDetails
}

// textList accepts either "a, b" or a YAML/JSON list of strings
type textList string

func (t *textList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = textList(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*t = textList(strings.Join(items, ", "))
		return nil
	}
	return fmt.Errorf("line %d: expected a list or comma separated text", value.Line)
}

type requestFile struct {
	Age           string                  `yaml:"age"`
	Region        string                  `yaml:"region"`
	Conditions    textList                `yaml:"chronic_conditions"`
	FamilyHistory textList                `yaml:"family_history"`
	Lifestyle     string                  `yaml:"lifestyle_score"`
	Insurance     string                  `yaml:"has_insurance"`
	Habits        *domain.LifestyleHabits `yaml:"habits"`
	Personal      domain.PersonalDetails  `yaml:"personal"`
}

// InputParser handles parsing of request and batch files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRequestFile loads a prediction request from a YAML or JSON file
func (ip *InputParser) LoadRequestFile(filename string) (*Request, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	req, err := ip.ParseRequest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return req, nil
}

// ParseRequest parses request file contents
func (ip *InputParser) ParseRequest(data []byte) (*Request, error) {
	var file requestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	req := &Request{
		Input: domain.RawInput{
			Age:           file.Age,
			Region:        file.Region,
			Conditions:    string(file.Conditions),
			FamilyHistory: string(file.FamilyHistory),
			Lifestyle:     file.Lifestyle,
			Insurance:     file.Insurance,
		},
		Habits:   file.Habits,
		Personal: file.Personal,
	}

	if err := ip.validateRequest(req); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}
	return req, nil
}

// validateRequest fills the lifestyle score from habits and checks personal details.
// Profile fields are left to the normalizer.
func (ip *InputParser) validateRequest(req *Request) error {
	if req.Habits != nil {
		score, err := calculation.LifestyleScore(*req.Habits)
		if err != nil {
			return fmt.Errorf("habits: %w", err)
		}
		if strings.TrimSpace(req.Input.Lifestyle) == "" {
			req.Input.Lifestyle = strconv.Itoa(score)
		}
	}
	if err := req.Personal.Validate(); err != nil {
		return fmt.Errorf("personal details: %w", err)
	}
	return nil
}

// batchColumns is the required header of a batch CSV file
var batchColumns = []string{"age", "region", "conditions", "family_history", "lifestyle", "insurance"}

// LoadBatchFile reads raw inputs from a batch CSV file
func (ip *InputParser) LoadBatchFile(filename string) ([]domain.RawInput, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file %s: %w", filename, err)
	}
	defer f.Close()

	inputs, err := ip.ParseBatch(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return inputs, nil
}

// ParseBatch reads raw inputs from CSV. Condition lists may be quoted and
// comma separated, or separated with semicolons.
func (ip *InputParser) ParseBatch(r io.Reader) ([]domain.RawInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("batch file is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range batchColumns {
		if _, ok := pos[col]; !ok {
			return nil, fmt.Errorf("batch file is missing column %q", col)
		}
	}

	var inputs []domain.RawInput
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		inputs = append(inputs, domain.RawInput{
			Age:           record[pos["age"]],
			Region:        record[pos["region"]],
			Conditions:    strings.ReplaceAll(record[pos["conditions"]], ";", ","),
			FamilyHistory: strings.ReplaceAll(record[pos["family_history"]], ";", ","),
			Lifestyle:     record[pos["lifestyle"]],
			Insurance:     record[pos["insurance"]],
		})
	}
	return inputs, nil
}
