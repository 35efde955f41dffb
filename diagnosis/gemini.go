package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/agriaide/agriaide-backend/config"
	"github.com/agriaide/agriaide-backend/models"
)

const diagnosisPrompt = `You are an expert in plant diseases. Analyze the image of the plant leaf.
First, identify the plant species and report it as plantType.
Then diagnose the health of the plant:
- If the plant is healthy, set isHealthy to true, set diseaseDetected to "No disease detected" and leave probableCause, preventionAdvice, biologicalTreatment and chemicalTreatment as empty strings.
- If a disease is detected, set isHealthy to false, name the disease in diseaseDetected, describe its probable cause, give prevention advice, and suggest exactly one biological treatment and one chemical treatment.`

// diagnosisResponseSchema constrains the model output to the seven fields of
// the diagnosis contract. Any deviation fails the attempt.
var diagnosisResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"plantType":           {Type: genai.TypeString, Description: "The identified plant species."},
		"diseaseDetected":     {Type: genai.TypeString, Description: "The detected disease, or the literal sentinel when healthy."},
		"isHealthy":           {Type: genai.TypeBoolean, Description: "Whether the plant is healthy."},
		"probableCause":       {Type: genai.TypeString, Description: "Probable cause of the disease, empty when healthy."},
		"preventionAdvice":    {Type: genai.TypeString, Description: "Advice to prevent the disease, empty when healthy."},
		"biologicalTreatment": {Type: genai.TypeString, Description: "One biological treatment, empty when healthy."},
		"chemicalTreatment":   {Type: genai.TypeString, Description: "One chemical treatment, empty when healthy."},
	},
	Required: []string{"plantType", "diseaseDetected", "isHealthy", "probableCause", "preventionAdvice", "biologicalTreatment", "chemicalTreatment"},
}

// GeminiDiagnoser diagnoses plant leaf images using a hosted Gemini model.
type GeminiDiagnoser struct {
	ModelName string
}

// NewGeminiDiagnoser returns a Diagnoser backed by the default Gemini model.
func NewGeminiDiagnoser() *GeminiDiagnoser {
	return &GeminiDiagnoser{ModelName: "gemini-2.5-flash"}
}

// Diagnose sends the image with the diagnosis prompt and decodes the
// schema-constrained JSON response. Single attempt, no retry.
func (g *GeminiDiagnoser) Diagnose(ctx context.Context, imageFormat string, image []byte) (*models.PlantDiagnosis, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.ModelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = diagnosisResponseSchema

	resp, err := model.GenerateContent(ctx,
		genai.Text(diagnosisPrompt),
		genai.ImageData(imageFormat, image),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type: %T", resp.Candidates[0].Content.Parts[0])
	}

	var result models.PlantDiagnosis
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to decode model output: %v", err)
	}

	if err := ValidateDiagnosis(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
