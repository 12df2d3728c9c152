package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// Helper function to create a basic test profile
func createTestProfile() domain.Profile {
	return domain.Profile{
		Age:               45,
		Region:            domain.RegionTurkey,
		ChronicConditions: domain.NewConditionSet(domain.Diabetes, domain.Hypertension),
		FamilyHistory:     domain.NewConditionSet(domain.HeartDisease),
		LifestyleScore:    6,
		HasInsurance:      true,
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestProfile()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if result != base {
		t.Errorf("Expected unchanged profile, got %+v", result)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	transforms := []ProfileTransform{
		&SetLifestyle{Score: 8},
		nil,
	}

	_, err := ApplyTransforms(createTestProfile(), transforms)
	if err == nil {
		t.Error("Expected error for nil transform, got nil")
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := createTestProfile()
	transforms := []ProfileTransform{
		&RemoveCondition{Condition: domain.Diabetes},
		&AddCondition{Condition: domain.Asthma},
		&SetInsurance{Insured: false},
		&AgeBy{Years: 10},
		&SetRegion{Region: domain.RegionEurope},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.ChronicConditions != domain.NewConditionSet(domain.Asthma, domain.Hypertension) {
		t.Errorf("Expected asthma, hypertension, got %s", result.ChronicConditions)
	}
	if result.HasInsurance {
		t.Error("Expected insurance removed")
	}
	if result.Age != 55 {
		t.Errorf("Expected age 55, got %d", result.Age)
	}
	if result.Region != domain.RegionEurope {
		t.Errorf("Expected Europe, got %s", result.Region)
	}

	// Base must be untouched
	if base.Age != 45 || !base.ChronicConditions.Has(domain.Diabetes) || !base.HasInsurance {
		t.Errorf("Base profile was modified: %+v", base)
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	base := createTestProfile()
	base.Age = 95

	_, err := ApplyTransforms(base, []ProfileTransform{&AgeBy{Years: 10}})
	if err == nil {
		t.Fatal("Expected error when aging past the supported range")
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransformError, got %T", err)
	}
	if te.TransformName != "age_by" {
		t.Errorf("Expected transform name age_by, got %s", te.TransformName)
	}
}

func TestTransformValidation(t *testing.T) {
	base := createTestProfile()
	tests := []struct {
		name      string
		transform ProfileTransform
		wantErr   bool
	}{
		{"lifestyle in range", &SetLifestyle{Score: 10}, false},
		{"lifestyle too high", &SetLifestyle{Score: 11}, true},
		{"lifestyle negative", &SetLifestyle{Score: -1}, true},
		{"age lower bound", &SetAge{Age: 30}, false},
		{"age too low", &SetAge{Age: 29}, true},
		{"age too high", &SetAge{Age: 101}, true},
		{"younger within range", &AgeBy{Years: -15}, false},
		{"younger out of range", &AgeBy{Years: -16}, true},
		{"valid region", &SetRegion{Region: domain.RegionAsia}, false},
		{"lowercase region rejected", &SetRegion{Region: "asia"}, true},
		{"invalid condition", &AddCondition{Condition: domain.Condition(42)}, true},
		{"family history", &AddFamilyHistory{Condition: domain.Cancer}, false},
		{"insurance", &SetInsurance{Insured: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFamilyHistoryTransforms(t *testing.T) {
	base := createTestProfile()

	added, err := (&AddFamilyHistory{Condition: domain.Diabetes}).Apply(base)
	if err != nil {
		t.Fatal(err)
	}
	if added.FamilyHistory.Len() != 2 {
		t.Errorf("Expected two family history entries, got %s", added.FamilyHistory)
	}

	removed, err := (&RemoveFamilyHistory{Condition: domain.HeartDisease}).Apply(added)
	if err != nil {
		t.Fatal(err)
	}
	if removed.FamilyHistory != domain.NewConditionSet(domain.Diabetes) {
		t.Errorf("Expected only diabetes, got %s", removed.FamilyHistory)
	}

	// Removing an absent entry is a no-op
	same, err := (&RemoveFamilyHistory{Condition: domain.COPD}).Apply(removed)
	if err != nil {
		t.Fatal(err)
	}
	if same != removed {
		t.Error("Expected no change when removing an absent condition")
	}
}

func TestTransformError(t *testing.T) {
	inner := errors.New("inner")
	err := NewTransformError("set_age", "validate", "bad age", inner)

	if err.Error() != "transform set_age (validate): bad age: inner" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Expected TransformError to unwrap")
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()
	base := createTestProfile()

	tests := []struct {
		spec  string
		check func(domain.Profile) bool
	}{
		{"set_lifestyle:score=9", func(p domain.Profile) bool { return p.LifestyleScore == 9 }},
		{"set_insurance:insured=no", func(p domain.Profile) bool { return !p.HasInsurance }},
		{"add_condition:condition=High Blood Pressure", func(p domain.Profile) bool { return p.ChronicConditions.Len() == 2 }},
		{"add_condition:condition=copd", func(p domain.Profile) bool { return p.ChronicConditions.Has(domain.COPD) }},
		{"remove_condition:condition=diabetes", func(p domain.Profile) bool { return !p.ChronicConditions.Has(domain.Diabetes) }},
		{"add_family_history:condition=cancer", func(p domain.Profile) bool { return p.FamilyHistory.Has(domain.Cancer) }},
		{"remove_family_history:condition=heart disease", func(p domain.Profile) bool { return p.FamilyHistory.IsEmpty() }},
		{"set_age:age=60", func(p domain.Profile) bool { return p.Age == 60 }},
		{"age_by:years=5", func(p domain.Profile) bool { return p.Age == 50 }},
		{"set_region: region = europe", func(p domain.Profile) bool { return p.Region == domain.RegionEurope }},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			transform, err := registry.ParseTransformSpec(tt.spec)
			if err != nil {
				t.Fatalf("ParseTransformSpec() error = %v", err)
			}
			result, err := ApplyTransforms(base, []ProfileTransform{transform})
			if err != nil {
				t.Fatalf("ApplyTransforms() error = %v", err)
			}
			if !tt.check(result) {
				t.Errorf("Unexpected result for %s: %+v", tt.spec, result)
			}
		})
	}
}

func TestTransformRegistry_Errors(t *testing.T) {
	registry := NewTransformRegistry()

	specs := []string{
		"set_lifestyle",
		"set_lifestyle:8",
		"set_lifestyle:level=8",
		"set_lifestyle:score=high",
		"set_insurance:insured=maybe",
		"add_condition:condition=flu",
		"set_region:region=Mars",
		"unknown_transform:x=1",
	}

	for _, spec := range specs {
		if _, err := registry.ParseTransformSpec(spec); err == nil {
			t.Errorf("Expected error for %q", spec)
		}
	}
}

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	if len(names) != 9 {
		t.Fatalf("Expected 9 transforms, got %d: %v", len(names), names)
	}
	if names[0] != "add_condition" || names[len(names)-1] != "set_region" {
		t.Errorf("Expected sorted names, got %v", names)
	}
}
