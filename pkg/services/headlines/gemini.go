package headlines

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// GeminiGenerator asks Gemini for the headline set with a structured-output
// schema. A missing API key, transport failure, timeout or non-conforming
// response all degrade to the deterministic fallback; Generate never fails.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

type Settings struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewGeminiGenerator never returns an error: an absent credential or a
// client construction failure produces a generator that always falls back,
// per the degrade-not-fail contract.
func NewGeminiGenerator(ctx context.Context, settings Settings) *GeminiGenerator {
	g := &GeminiGenerator{
		model:   settings.Model,
		timeout: settings.Timeout,
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if g.timeout <= 0 {
		g.timeout = 30 * time.Second
	}
	if settings.APIKey == "" {
		return g
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: settings.APIKey})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("gemini client unavailable, headline generation will use fallback")
		return g
	}
	g.client = client
	return g
}

func (g *GeminiGenerator) Generate(
	ctx context.Context,
	analysis *domain.AnalysisResult,
	ds *domain.FinancialDataset,
) []domain.BrutalHeadline {
	logger := zerolog.Ctx(ctx)
	if g.client == nil {
		return Fallback(analysis)
	}

	payload, err := buildPayload(analysis, ds)
	if err != nil {
		logger.Warn().Err(err).Msg("headline prompt build failed, using fallback")
		return Fallback(analysis)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(string(payload)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    headlineSchema(),
		})
	if err != nil {
		logger.Warn().Err(err).Msg("headline generation failed, using fallback")
		return Fallback(analysis)
	}

	var parsed struct {
		Headlines []domain.BrutalHeadline `json:"headlines"`
	}
	if err := json.Unmarshal([]byte(resp.Text()), &parsed); err != nil {
		logger.Warn().Err(err).Msg("headline response unparsable, using fallback")
		return Fallback(analysis)
	}
	if len(parsed.Headlines) != HeadlineCount {
		logger.Warn().Int("count", len(parsed.Headlines)).Msg("headline response has wrong cardinality, using fallback")
		return Fallback(analysis)
	}
	return parsed.Headlines
}
