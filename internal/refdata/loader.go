// Package refdata loads the reference tables the cost model depends on.
package refdata

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File names looked up in a reference data directory
const (
	BaseCostFile = "health_costs_by_region.csv"
	WeightsFile  = "chronic_condition_weights.yaml"
)

//go:embed data/*
var defaultFS embed.FS

// Load reads both reference files from dir
func Load(dir string) (*domain.ReferenceData, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, domain.NewDataLoadError(dir, "cannot open data directory", err)
	}
	if !info.IsDir() {
		return nil, domain.NewDataLoadError(dir, "not a directory", nil)
	}
	ref, err := LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	ref.Source = dir
	return ref, nil
}

// LoadDefault loads the reference data compiled into the binary
func LoadDefault() (*domain.ReferenceData, error) {
	sub, err := fs.Sub(defaultFS, "data")
	if err != nil {
		return nil, domain.NewDataLoadError("embedded", "cannot open embedded data", err)
	}
	ref, err := LoadFS(sub)
	if err != nil {
		return nil, err
	}
	ref.Source = "embedded defaults"
	return ref, nil
}

// MustLoadDefault is LoadDefault for callers that cannot proceed without data
func MustLoadDefault() *domain.ReferenceData {
	ref, err := LoadDefault()
	if err != nil {
		panic(err)
	}
	return ref
}

// LoadFS reads and validates both reference files from fsys
func LoadFS(fsys fs.FS) (*domain.ReferenceData, error) {
	baseCosts, err := loadBaseCosts(fsys)
	if err != nil {
		return nil, err
	}
	weights, err := loadWeights(fsys)
	if err != nil {
		return nil, err
	}
	return &domain.ReferenceData{BaseCosts: baseCosts, Weights: weights}, nil
}

func loadBaseCosts(fsys fs.FS) (*domain.RegionBaseCostTable, error) {
	f, err := fsys.Open(BaseCostFile)
	if err != nil {
		return nil, domain.NewDataLoadError(BaseCostFile, "cannot open file", err)
	}
	defer f.Close()

	entries, err := ParseBaseCosts(f)
	if err != nil {
		return nil, err
	}
	return domain.NewRegionBaseCostTable(entries)
}

// ParseBaseCosts reads base cost rows from CSV with a region,age_group,base_cost header
func ParseBaseCosts(r io.Reader) ([]domain.BaseCostEntry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewDataLoadError(BaseCostFile, "file is empty", nil)
		}
		return nil, domain.NewDataLoadError(BaseCostFile, "cannot read header", err)
	}
	cols, err := columnIndex(header, "region", "age_group", "base_cost")
	if err != nil {
		return nil, domain.NewDataLoadError(BaseCostFile, "bad header", err)
	}

	var entries []domain.BaseCostEntry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewDataLoadError(BaseCostFile, fmt.Sprintf("line %d", line), err)
		}

		region, ok := domain.ParseRegion(record[cols[0]])
		if !ok {
			return nil, domain.NewDataLoadError(BaseCostFile, fmt.Sprintf("line %d: unknown region %q", line, record[cols[0]]), nil)
		}
		band, err := ParseAgeGroup(record[cols[1]])
		if err != nil {
			return nil, domain.NewDataLoadError(BaseCostFile, fmt.Sprintf("line %d", line), err)
		}
		cost, err := decimal.NewFromString(strings.TrimSpace(record[cols[2]]))
		if err != nil {
			return nil, domain.NewDataLoadError(BaseCostFile, fmt.Sprintf("line %d: invalid base cost %q", line, record[cols[2]]), err)
		}
		entries = append(entries, domain.BaseCostEntry{Region: region, Band: band, BaseCost: cost})
	}

	if len(entries) == 0 {
		return nil, domain.NewDataLoadError(BaseCostFile, "no data rows", nil)
	}
	return entries, nil
}

// ParseAgeGroup parses "30-39" or the open-ended "60+" (which runs to MaxAge)
func ParseAgeGroup(s string) (domain.AgeBand, error) {
	s = strings.TrimSpace(s)
	if lower, ok := strings.CutSuffix(s, "+"); ok {
		from, err := strconv.Atoi(lower)
		if err != nil {
			return domain.AgeBand{}, fmt.Errorf("invalid age group %q", s)
		}
		return domain.AgeBand{Min: from, Max: domain.MaxAge}, nil
	}

	lower, upper, ok := strings.Cut(s, "-")
	if !ok {
		return domain.AgeBand{}, fmt.Errorf("invalid age group %q", s)
	}
	from, err := strconv.Atoi(strings.TrimSpace(lower))
	if err != nil {
		return domain.AgeBand{}, fmt.Errorf("invalid age group %q", s)
	}
	to, err := strconv.Atoi(strings.TrimSpace(upper))
	if err != nil {
		return domain.AgeBand{}, fmt.Errorf("invalid age group %q", s)
	}
	return domain.AgeBand{Min: from, Max: to}, nil
}

func loadWeights(fsys fs.FS) (*domain.ConditionWeightTable, error) {
	data, err := fs.ReadFile(fsys, WeightsFile)
	if err != nil {
		return nil, domain.NewDataLoadError(WeightsFile, "cannot open file", err)
	}
	weights, err := ParseWeights(data)
	if err != nil {
		return nil, err
	}
	return domain.NewConditionWeightTable(weights)
}

// ParseWeights reads a flat name: weight mapping. JSON objects are accepted too.
func ParseWeights(data []byte) (map[domain.Condition]decimal.Decimal, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.NewDataLoadError(WeightsFile, "invalid YAML", err)
	}
	if len(doc.Content) == 0 {
		return nil, domain.NewDataLoadError(WeightsFile, "file is empty", nil)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, domain.NewDataLoadError(WeightsFile, "expected a mapping of condition to weight", nil)
	}

	weights := make(map[domain.Condition]decimal.Decimal, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		c, ok := domain.ParseCondition(strings.ToLower(strings.TrimSpace(key.Value)))
		if !ok {
			return nil, domain.NewDataLoadError(WeightsFile, fmt.Sprintf("line %d: unknown condition %q", key.Line, key.Value), nil)
		}
		if _, dup := weights[c]; dup {
			return nil, domain.NewDataLoadError(WeightsFile, fmt.Sprintf("line %d: duplicate condition %q", key.Line, key.Value), nil)
		}
		if value.Kind != yaml.ScalarNode {
			return nil, domain.NewDataLoadError(WeightsFile, fmt.Sprintf("line %d: weight for %s must be a number", value.Line, c), nil)
		}
		w, err := decimal.NewFromString(value.Value)
		if err != nil {
			return nil, domain.NewDataLoadError(WeightsFile, fmt.Sprintf("line %d: invalid weight %q for %s", value.Line, value.Value, c), err)
		}
		weights[c] = w
	}
	return weights, nil
}

func columnIndex(header []string, names ...string) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	idx := make([]int, len(names))
	for i, name := range names {
		pos, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		idx[i] = pos
	}
	return idx, nil
}
