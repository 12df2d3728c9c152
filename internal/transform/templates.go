package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/hcpredict/internal/domain"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in alphabetical order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common what-if questions
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "insured",
		Description: "With health insurance coverage",
		Transforms:  []ProfileTransform{&SetInsurance{Insured: true}},
	})

	registry.Register(Template{
		Name:        "uninsured",
		Description: "Without health insurance coverage",
		Transforms:  []ProfileTransform{&SetInsurance{Insured: false}},
	})

	registry.Register(Template{
		Name:        "healthy_lifestyle",
		Description: "Best possible lifestyle score (10)",
		Transforms:  []ProfileTransform{&SetLifestyle{Score: domain.MaxLifestyleScore}},
	})

	registry.Register(Template{
		Name:        "sedentary_lifestyle",
		Description: "Worst possible lifestyle score (0)",
		Transforms:  []ProfileTransform{&SetLifestyle{Score: domain.MinLifestyleScore}},
	})

	registry.Register(Template{
		Name:        "ten_years_older",
		Description: "Same profile ten years from now",
		Transforms:  []ProfileTransform{&AgeBy{Years: 10}},
	})

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base domain.Profile, template Template) (domain.Profile, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  hcpredict compare --input profile.yaml --with insured,healthy_lifestyle\n")
	sb.WriteString("  hcpredict compare --input profile.yaml --transform set_lifestyle:score=8\n")

	return sb.String()
}
