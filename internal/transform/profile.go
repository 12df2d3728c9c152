package transform

import (
	"fmt"

	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// SetLifestyle replaces the lifestyle score.
type SetLifestyle struct {
	Score int
}

func (t *SetLifestyle) Name() string {
	return "set_lifestyle"
}

func (t *SetLifestyle) Description() string {
	return fmt.Sprintf("Set lifestyle score to %d", t.Score)
}

func (t *SetLifestyle) Validate(domain.Profile) error {
	if t.Score < domain.MinLifestyleScore || t.Score > domain.MaxLifestyleScore {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("score must be between %d and %d, got %d", domain.MinLifestyleScore, domain.MaxLifestyleScore, t.Score), nil)
	}
	return nil
}

func (t *SetLifestyle) Apply(base domain.Profile) (domain.Profile, error) {
	base.LifestyleScore = t.Score
	return base, nil
}

// SetInsurance sets insurance coverage on or off.
type SetInsurance struct {
	Insured bool
}

func (t *SetInsurance) Name() string {
	return "set_insurance"
}

func (t *SetInsurance) Description() string {
	if t.Insured {
		return "Add health insurance coverage"
	}
	return "Remove health insurance coverage"
}

func (t *SetInsurance) Validate(domain.Profile) error {
	return nil
}

func (t *SetInsurance) Apply(base domain.Profile) (domain.Profile, error) {
	base.HasInsurance = t.Insured
	return base, nil
}

// AddCondition adds a chronic condition.
type AddCondition struct {
	Condition domain.Condition
}

func (t *AddCondition) Name() string {
	return "add_condition"
}

func (t *AddCondition) Description() string {
	return fmt.Sprintf("Add chronic condition %s", t.Condition.Label())
}

func (t *AddCondition) Validate(domain.Profile) error {
	return validCondition(t.Name(), t.Condition)
}

func (t *AddCondition) Apply(base domain.Profile) (domain.Profile, error) {
	base.ChronicConditions = base.ChronicConditions.With(t.Condition)
	return base, nil
}

// RemoveCondition removes a chronic condition. Removing an absent condition is a no-op.
type RemoveCondition struct {
	Condition domain.Condition
}

func (t *RemoveCondition) Name() string {
	return "remove_condition"
}

func (t *RemoveCondition) Description() string {
	return fmt.Sprintf("Remove chronic condition %s", t.Condition.Label())
}

func (t *RemoveCondition) Validate(domain.Profile) error {
	return validCondition(t.Name(), t.Condition)
}

func (t *RemoveCondition) Apply(base domain.Profile) (domain.Profile, error) {
	base.ChronicConditions = base.ChronicConditions.Without(t.Condition)
	return base, nil
}

// AddFamilyHistory adds a condition to the family history.
type AddFamilyHistory struct {
	Condition domain.Condition
}

func (t *AddFamilyHistory) Name() string {
	return "add_family_history"
}

func (t *AddFamilyHistory) Description() string {
	return fmt.Sprintf("Add family history of %s", t.Condition.Label())
}

func (t *AddFamilyHistory) Validate(domain.Profile) error {
	return validCondition(t.Name(), t.Condition)
}

func (t *AddFamilyHistory) Apply(base domain.Profile) (domain.Profile, error) {
	base.FamilyHistory = base.FamilyHistory.With(t.Condition)
	return base, nil
}

// RemoveFamilyHistory removes a condition from the family history.
type RemoveFamilyHistory struct {
	Condition domain.Condition
}

func (t *RemoveFamilyHistory) Name() string {
	return "remove_family_history"
}

func (t *RemoveFamilyHistory) Description() string {
	return fmt.Sprintf("Remove family history of %s", t.Condition.Label())
}

func (t *RemoveFamilyHistory) Validate(domain.Profile) error {
	return validCondition(t.Name(), t.Condition)
}

func (t *RemoveFamilyHistory) Apply(base domain.Profile) (domain.Profile, error) {
	base.FamilyHistory = base.FamilyHistory.Without(t.Condition)
	return base, nil
}

// SetAge replaces the age.
type SetAge struct {
	Age int
}

func (t *SetAge) Name() string {
	return "set_age"
}

func (t *SetAge) Description() string {
	return fmt.Sprintf("Set age to %d", t.Age)
}

func (t *SetAge) Validate(domain.Profile) error {
	return validAge(t.Name(), t.Age)
}

func (t *SetAge) Apply(base domain.Profile) (domain.Profile, error) {
	base.Age = t.Age
	return base, nil
}

// AgeBy shifts the age by a number of years, relative to the base profile.
type AgeBy struct {
	Years int
}

func (t *AgeBy) Name() string {
	return "age_by"
}

func (t *AgeBy) Description() string {
	if t.Years < 0 {
		return fmt.Sprintf("Make %d years younger", -t.Years)
	}
	return fmt.Sprintf("Make %d years older", t.Years)
}

func (t *AgeBy) Validate(base domain.Profile) error {
	return validAge(t.Name(), base.Age+t.Years)
}

func (t *AgeBy) Apply(base domain.Profile) (domain.Profile, error) {
	base.Age += t.Years
	return base, nil
}

// SetRegion replaces the pricing region.
type SetRegion struct {
	Region domain.Region
}

func (t *SetRegion) Name() string {
	return "set_region"
}

func (t *SetRegion) Description() string {
	return fmt.Sprintf("Move to region %s", t.Region)
}

func (t *SetRegion) Validate(domain.Profile) error {
	if !t.Region.Valid() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unsupported region %q", t.Region), nil)
	}
	return nil
}

func (t *SetRegion) Apply(base domain.Profile) (domain.Profile, error) {
	base.Region = t.Region
	return base, nil
}

func validCondition(name string, c domain.Condition) error {
	if !c.Valid() {
		return NewTransformError(name, "validate", fmt.Sprintf("unknown condition %d", c), nil)
	}
	return nil
}

func validAge(name string, age int) error {
	if age < domain.MinAge || age > domain.MaxAge {
		return NewTransformError(name, "validate",
			fmt.Sprintf("age must be between %d and %d, got %d", domain.MinAge, domain.MaxAge, age), nil)
	}
	return nil
}
