package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"maganghub-radar/internal/observability"
)

const (
	defaultModel = "gemini-2.5-flash"

	// The classifier batches at most this many records per call.
	maxClassifyBatch = 500
	// Descriptions are clipped before entering the classifier prompt.
	maxClassifyDescription = 150
	// The recommender asks for at most this many picks.
	maxPicks = 20

	categoryITRelated = "IT-RELATED"
	categoryNonIT     = "NON-IT"
)

// generator abstracts the two Gemini call shapes we use: text-only and
// text-plus-uploaded-document, both constrained to JSON output.
type generator interface {
	generateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	generateJSONWithFile(ctx context.Context, prompt, path, mimeType string, schema *genai.Schema) (string, error)
}

// GeminiClient implements Client on top of the Google GenAI SDK.
type GeminiClient struct {
	gen    generator
	logger *zap.Logger
}

// NewGeminiClient builds a Gemini-backed client. An empty model falls back
// to the default.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrDisabled
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &GeminiClient{
		gen:    &geminiGenerator{client: client, model: model, logger: logger},
		logger: logger,
	}, nil
}

func (c *GeminiClient) Enabled() bool { return true }

// Classify sends a batch of vacancy summaries to the model and parses the
// returned labels into an id-to-category map. At most the first 500 items
// are sent; categories are upper-cased on the way out. Any failure yields an
// empty map so listing callers can degrade to the NON-IT default.
func (c *GeminiClient) Classify(ctx context.Context, items []ClassifyItem) (map[string]string, error) {
	empty := map[string]string{}
	if len(items) == 0 {
		return empty, nil
	}
	if len(items) > maxClassifyBatch {
		items = items[:maxClassifyBatch]
	}

	observability.IncAICall("classify")

	raw, err := c.gen.generateJSON(ctx, classifyPrompt(items), classifySchema())
	if err != nil {
		observability.IncError("classifier")
		return empty, fmt.Errorf("classify call: %w", err)
	}

	var labels []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &labels); err != nil {
		observability.IncError("classifier")
		return empty, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	result := make(map[string]string, len(labels))
	for _, l := range labels {
		if l.ID == "" {
			continue
		}
		result[l.ID] = strings.ToUpper(strings.TrimSpace(l.Category))
	}

	c.logger.Debug("classification complete",
		zap.Int("requested", len(items)),
		zap.Int("labeled", len(result)),
	)
	return result, nil
}

// Recommend uploads the resume and asks the model to pick up to 20 vacancies
// from the manifest. The remote copy of the document is deleted before the
// call returns, whatever the outcome.
func (c *GeminiClient) Recommend(ctx context.Context, pdfPath, manifest string) ([]Pick, error) {
	observability.IncAICall("recommend")

	raw, err := c.gen.generateJSONWithFile(ctx, recommendPrompt(manifest), pdfPath, "application/pdf", recommendSchema())
	if err != nil {
		observability.IncError("recommender")
		return nil, fmt.Errorf("recommend call: %w", err)
	}

	var picks []Pick
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &picks); err != nil {
		observability.IncError("recommender")
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(picks) > maxPicks {
		picks = picks[:maxPicks]
	}

	c.logger.Debug("recommendation complete", zap.Int("picks", len(picks)))
	return picks, nil
}

func classifyPrompt(items []ClassifyItem) string {
	var sb strings.Builder
	sb.WriteString("Classify each internship vacancy below as IT-RELATED or NON-IT.\n")
	sb.WriteString("IT-RELATED covers software, data, networking, and other computing roles.\n")
	sb.WriteString("Return a JSON array with exactly one {id, category} object per vacancy.\n\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "id: %s\nposition: %s\ndescription: %s\n---\n",
			item.ID, item.Position, truncateText(item.Description, maxClassifyDescription))
	}
	return sb.String()
}

func classifySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id": {
					Type:        genai.TypeString,
					Description: "Vacancy id, must match the input id.",
				},
				"category": {
					Type: genai.TypeString,
					Enum: []string{categoryITRelated, categoryNonIT},
				},
			},
			Required: []string{"id", "category"},
		},
	}
}

func recommendPrompt(manifest string) string {
	var sb strings.Builder
	sb.WriteString("The attached document is an applicant's resume.\n")
	fmt.Fprintf(&sb, "From the vacancy inventory below, select up to %d positions that best match the applicant's background.\n", maxPicks)
	sb.WriteString("Return a JSON array of {id, position, reason} objects, best match first.\n")
	sb.WriteString("The id must be copied verbatim from the inventory; the reason is one short sentence.\n\n")
	sb.WriteString("Vacancy inventory:\n")
	sb.WriteString(manifest)
	return sb.String()
}

func recommendSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id": {
					Type:        genai.TypeString,
					Description: "Vacancy id copied from the inventory.",
				},
				"position": {
					Type: genai.TypeString,
				},
				"reason": {
					Type:        genai.TypeString,
					Description: "One sentence on why this vacancy fits the resume.",
				},
			},
			Required: []string{"id", "reason"},
		},
	}
}

// geminiGenerator is the real SDK-backed generator.
type geminiGenerator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func (g *geminiGenerator) generateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	return g.call(ctx, genai.Text(prompt), schema)
}

func (g *geminiGenerator) generateJSONWithFile(ctx context.Context, prompt, path, mimeType string, schema *genai.Schema) (string, error) {
	file, err := g.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{MIMEType: mimeType})
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	defer func() {
		// Remote copies are transient; a failed delete is an operational
		// nuisance, not a request failure.
		if _, err := g.client.Files.Delete(ctx, file.Name, nil); err != nil {
			g.logger.Warn("delete uploaded file", zap.String("file", file.Name), zap.Error(err))
		}
	}()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(file.URI, file.MIMEType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	return g.call(ctx, contents, schema)
}

func (g *geminiGenerator) call(ctx context.Context, contents []*genai.Content, schema *genai.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr[float32](0.1),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty response from gemini")
	}
	return text, nil
}

// truncateText limits text to maxLen bytes, cutting on a rune boundary so
// multibyte text never ends in a broken sequence.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// cleanJSON removes markdown code fences if the model added them.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
