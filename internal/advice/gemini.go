package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model name is configured
const DefaultGeminiModel = "gemini-1.5-flash"

const maxRecommendations = 12

// TextGenerator turns a prompt into free text
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient generates text through the Gemini API
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a client for modelName using apiKey
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.8)
	model.SetTopK(40)
	model.SetMaxOutputTokens(2048)

	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

// Generate sends prompt and returns the concatenated text parts of the first candidate
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
			continue
		}
		sb.WriteString(fmt.Sprintf("%v", part))
	}
	return sb.String(), nil
}

// GeminiRecommender asks a language model for personalised advice
type GeminiRecommender struct {
	gen TextGenerator
}

// NewGeminiRecommender wraps gen, usually a *GeminiClient
func NewGeminiRecommender(gen TextGenerator) *GeminiRecommender {
	return &GeminiRecommender{gen: gen}
}

func (g *GeminiRecommender) Recommend(ctx context.Context, profile domain.Profile, result *domain.PredictionResult) ([]string, error) {
	text, err := g.gen.Generate(ctx, BuildPrompt(profile, result))
	if err != nil {
		return nil, err
	}
	recs := ParseRecommendations(text)
	if len(recs) == 0 {
		return nil, fmt.Errorf("model returned no recommendations")
	}
	return recs, nil
}

// BuildPrompt describes the profile and cost breakdown for the model
func BuildPrompt(profile domain.Profile, result *domain.PredictionResult) string {
	var sb strings.Builder
	sb.WriteString("As a healthcare professional, provide personalized health recommendations for the following patient.\n\n")
	sb.WriteString("Patient profile:\n")
	sb.WriteString(fmt.Sprintf("- Age: %d years\n", profile.Age))
	sb.WriteString(fmt.Sprintf("- Region: %s\n", profile.Region))
	sb.WriteString(fmt.Sprintf("- Chronic conditions: %s\n", noneReported(profile.ChronicConditions)))
	sb.WriteString(fmt.Sprintf("- Family medical history: %s\n", noneReported(profile.FamilyHistory)))
	sb.WriteString(fmt.Sprintf("- Lifestyle score: %d/10\n", profile.LifestyleScore))
	if profile.HasInsurance {
		sb.WriteString("- Insurance coverage: present\n")
	} else {
		sb.WriteString("- Insurance coverage: not present\n")
	}

	if result != nil {
		sb.WriteString("\nCost analysis:\n")
		for _, e := range result.Breakdown {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", e.Step, e.Description))
		}
		sb.WriteString(fmt.Sprintf("- Predicted annual cost: $%s\n", result.PredictedAnnualCost.StringFixed(2)))
	}

	sb.WriteString(`
Cover preventive care and screenings, lifestyle changes (diet, activity, stress, sleep),
management of existing conditions, prevention for family-history conditions, and
cost-effective use of healthcare and insurance.
Write one actionable recommendation per line with a measurable goal where possible.
Cite the guideline in parentheses when one applies. Do not repeat recommendations or add headings.`)
	return sb.String()
}

// ParseRecommendations splits model output into unique, non-empty lines with
// bullets and numbering removed
func ParseRecommendations(text string) []string {
	seen := make(map[string]bool)
	var recs []string
	for _, line := range strings.Split(text, "\n") {
		rec := cleanLine(line)
		if rec == "" || strings.HasSuffix(rec, ":") {
			continue
		}
		key := strings.ToLower(rec)
		if seen[key] {
			continue
		}
		seen[key] = true
		recs = append(recs, rec)
		if len(recs) == maxRecommendations {
			break
		}
	}
	return recs
}

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•# ")
	// drop "1." / "12)" numbering
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = line[i+1:]
	}
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "*")
	return strings.TrimSpace(line)
}

func noneReported(s domain.ConditionSet) string {
	if s.IsEmpty() {
		return "none reported"
	}
	return s.String()
}
