package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/hcpredict/internal/config"
	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_lifestyle", createSetLifestyle)
	registry.Register("set_insurance", createSetInsurance)
	registry.Register("add_condition", conditionFactory("add_condition", func(c domain.Condition) ProfileTransform {
		return &AddCondition{Condition: c}
	}))
	registry.Register("remove_condition", conditionFactory("remove_condition", func(c domain.Condition) ProfileTransform {
		return &RemoveCondition{Condition: c}
	}))
	registry.Register("add_family_history", conditionFactory("add_family_history", func(c domain.Condition) ProfileTransform {
		return &AddFamilyHistory{Condition: c}
	}))
	registry.Register("remove_family_history", conditionFactory("remove_family_history", func(c domain.Condition) ProfileTransform {
		return &RemoveFamilyHistory{Condition: c}
	}))
	registry.Register("set_age", createSetAge)
	registry.Register("age_by", createAgeBy)
	registry.Register("set_region", createSetRegion)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in alphabetical order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_lifestyle:score=8"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createSetLifestyle(params map[string]string) (ProfileTransform, error) {
	score, err := intParam("set_lifestyle", "score", params)
	if err != nil {
		return nil, err
	}
	return &SetLifestyle{Score: score}, nil
}

func createSetInsurance(params map[string]string) (ProfileTransform, error) {
	value, ok := params["insured"]
	if !ok {
		return nil, fmt.Errorf("set_insurance requires 'insured' parameter")
	}
	insured, err := config.ParseInsurance(value)
	if err != nil {
		return nil, fmt.Errorf("invalid insured value: %w", err)
	}
	return &SetInsurance{Insured: insured}, nil
}

func conditionFactory(name string, build func(domain.Condition) ProfileTransform) TransformFactory {
	return func(params map[string]string) (ProfileTransform, error) {
		value, ok := params["condition"]
		if !ok {
			return nil, fmt.Errorf("%s requires 'condition' parameter", name)
		}
		c, ok := config.ResolveCondition(value)
		if !ok {
			return nil, fmt.Errorf("unknown condition: %s", value)
		}
		return build(c), nil
	}
}

func createSetAge(params map[string]string) (ProfileTransform, error) {
	age, err := intParam("set_age", "age", params)
	if err != nil {
		return nil, err
	}
	return &SetAge{Age: age}, nil
}

func createAgeBy(params map[string]string) (ProfileTransform, error) {
	years, err := intParam("age_by", "years", params)
	if err != nil {
		return nil, err
	}
	return &AgeBy{Years: years}, nil
}

func createSetRegion(params map[string]string) (ProfileTransform, error) {
	value, ok := params["region"]
	if !ok {
		return nil, fmt.Errorf("set_region requires 'region' parameter")
	}
	region, ok := domain.ParseRegion(value)
	if !ok {
		return nil, fmt.Errorf("unknown region: %s", value)
	}
	return &SetRegion{Region: region}, nil
}

func intParam(transform, key string, params map[string]string) (int, error) {
	value, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}
