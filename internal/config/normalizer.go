package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// conditionAliases maps common free-text spellings onto canonical identifiers.
// Keys are already tokenized (lower case, underscores).
var conditionAliases = map[string]domain.Condition{
	"diabetes_mellitus": domain.Diabetes,
	"type_1_diabetes":   domain.Diabetes,
	"type_2_diabetes":   domain.Diabetes,

	"high_blood_pressure": domain.Hypertension,
	"htn":                 domain.Hypertension,

	"heart_attack":            domain.HeartDisease,
	"heart_condition":         domain.HeartDisease,
	"cardiovascular_disease":  domain.HeartDisease,
	"coronary_artery_disease": domain.HeartDisease,

	"ckd":            domain.ChronicKidneyDisease,
	"kidney_disease": domain.ChronicKidneyDisease,
	"chronic_kidney": domain.ChronicKidneyDisease,
	"renal_disease":  domain.ChronicKidneyDisease,

	"chronic_obstructive_pulmonary_disease": domain.COPD,
	"emphysema":                             domain.COPD,

	"osteoarthritis":       domain.Arthritis,
	"rheumatoid_arthritis": domain.Arthritis,
	"obese":                domain.Obesity,
	"major_depression":     domain.Depression,
}

var insuranceValues = map[string]bool{
	"true": true, "yes": true, "y": true, "1": true, "on": true,
	"false": false, "no": false, "n": false, "0": false, "off": false,
}

// Normalizer converts raw presentation-layer input into canonical profiles.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	Logger calculation.Logger
}

// NewNormalizer creates a normalizer that logs discarded tokens to logger
func NewNormalizer(logger calculation.Logger) *Normalizer {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Normalizer{Logger: logger}
}

// Normalize validates raw and returns the canonical profile. Unrecognized
// condition tokens are dropped, every other problem is a ValidationError.
func (n *Normalizer) Normalize(raw domain.RawInput) (domain.Profile, error) {
	age, err := parseWholeNumber(raw.Age)
	if err != nil {
		return domain.Profile{}, domain.NewValidationError(domain.FieldAge, err.Error())
	}
	if age < domain.MinAge || age > domain.MaxAge {
		return domain.Profile{}, domain.NewValidationError(domain.FieldAge,
			fmt.Sprintf("must be between %d and %d, got %d", domain.MinAge, domain.MaxAge, age))
	}

	region, ok := domain.ParseRegion(raw.Region)
	if !ok {
		return domain.Profile{}, domain.NewValidationError(domain.FieldRegion,
			fmt.Sprintf("must be one of USA, Europe, Asia, Turkey, got %q", strings.TrimSpace(raw.Region)))
	}

	score, err := parseWholeNumber(raw.Lifestyle)
	if err != nil {
		return domain.Profile{}, domain.NewValidationError(domain.FieldLifestyle, err.Error())
	}
	if score < domain.MinLifestyleScore || score > domain.MaxLifestyleScore {
		return domain.Profile{}, domain.NewValidationError(domain.FieldLifestyle,
			fmt.Sprintf("must be between %d and %d, got %d", domain.MinLifestyleScore, domain.MaxLifestyleScore, score))
	}

	insured, err := ParseInsurance(raw.Insurance)
	if err != nil {
		return domain.Profile{}, domain.NewValidationError(domain.FieldInsurance, err.Error())
	}

	conditions, dropped := ParseConditions(raw.Conditions)
	n.logDropped(domain.FieldConditions, dropped)
	family, dropped := ParseConditions(raw.FamilyHistory)
	n.logDropped(domain.FieldFamilyHistory, dropped)

	return domain.Profile{
		Age:               age,
		Region:            region,
		ChronicConditions: conditions,
		FamilyHistory:     family,
		LifestyleScore:    score,
		HasInsurance:      insured,
	}, nil
}

func (n *Normalizer) logDropped(field string, tokens []string) {
	if len(tokens) == 0 || n.Logger == nil {
		return
	}
	n.Logger.Debugf("ignoring unrecognized %s: %s", field, strings.Join(tokens, ", "))
}

// ParseConditions tokenizes comma separated free text into a condition set.
// It returns the tokens that matched nothing.
func ParseConditions(text string) (domain.ConditionSet, []string) {
	var set domain.ConditionSet
	var dropped []string
	for _, part := range strings.Split(text, ",") {
		token := tokenize(part)
		if token == "" {
			continue
		}
		c, ok := ResolveCondition(token)
		if !ok {
			dropped = append(dropped, token)
			continue
		}
		set = set.With(c)
	}
	return set, dropped
}

// ResolveCondition maps a single free-text token to a condition
func ResolveCondition(text string) (domain.Condition, bool) {
	token := tokenize(text)
	if c, ok := domain.ParseCondition(token); ok {
		return c, true
	}
	c, ok := conditionAliases[token]
	return c, ok
}

// tokenize lower-cases s and collapses whitespace and hyphen runs to a single underscore
func tokenize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '_':
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseInsurance accepts true/false, yes/no, y/n, 1/0 and on/off in any case
func ParseInsurance(s string) (bool, error) {
	v, ok := insuranceValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return false, fmt.Errorf("must be yes or no, got %q", strings.TrimSpace(s))
	}
	return v, nil
}

// wholeNumber matches integers with an optional zero fraction ("45", "45.0").
// Exponent forms are rejected so parsing stays linear in the input length.
var wholeNumber = regexp.MustCompile(`^([+-]?[0-9]+)(\.0*)?$`)

// parseWholeNumber accepts integers and integral decimals ("45", "45.0")
func parseWholeNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("is required")
	}
	m := wholeNumber.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("must be a whole number, got %q", s)
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v > 1_000_000 || v < -1_000_000 {
		return 0, fmt.Errorf("is out of range, got %q", s)
	}
	return v, nil
}
