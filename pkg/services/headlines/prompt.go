package headlines

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"google.golang.org/genai"
)

const systemPrompt = `You are a ruthless fractional CFO.
Input: {revenues[], costs[], dates[]}
Return exactly 5 objects: {
  headline (<=90 chars),
  action (<=140 chars, single concrete task),
  impact (number, RM or %),
  confidence (0-1)
}
Tone: brutal, concise, professional.`

type promptEntry struct {
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type promptPayload struct {
	Revenues     []promptEntry `json:"revenues"`
	Costs        []promptEntry `json:"costs"`
	Dates        []string      `json:"dates"`
	TotalRevenue float64       `json:"totalRevenue"`
	TotalCosts   float64       `json:"totalCosts"`
	BurnRate     float64       `json:"burnRate"`
	Runway       float64       `json:"runway"`
}

func buildPayload(analysis *domain.AnalysisResult, ds *domain.FinancialDataset) ([]byte, error) {
	payload := promptPayload{
		Revenues:     mapPromptEntries(ds.Revenues),
		Costs:        mapPromptEntries(ds.Costs),
		Dates:        append([]string{}, ds.Dates...),
		TotalRevenue: finite(analysis.TotalRevenue),
		TotalCosts:   finite(analysis.TotalCosts),
		BurnRate:     finite(analysis.BurnRate),
		Runway:       finite(analysis.Runway),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal prompt payload: %w", err)
	}
	return data, nil
}

func mapPromptEntries(entries []domain.FinancialEntry) []promptEntry {
	res := make([]promptEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, promptEntry{Amount: finite(e.Amount), Date: e.Date, Description: e.Description})
	}
	return res
}

// finite zeroes out NaN/Inf values; the prompt payload must be valid JSON.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// headlineSchema forces the structured response: a headlines array of
// exactly 5 {headline, action, impact, confidence} tuples.
func headlineSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"headlines": {
				Type:        genai.TypeArray,
				Description: "Exactly 5 headline-action pairs",
				MinItems:    genai.Ptr[int64](HeadlineCount),
				MaxItems:    genai.Ptr[int64](HeadlineCount),
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"headline": {
							Type:        genai.TypeString,
							Description: "Brutal, concise financial headline (<=90 chars)",
						},
						"action": {
							Type:        genai.TypeString,
							Description: "Single concrete action to fix the issue (<=140 chars)",
						},
						"impact": {
							Type:        genai.TypeString,
							Description: "Estimated financial impact as an amount or a percentage",
						},
						"confidence": {
							Type:        genai.TypeNumber,
							Description: "Confidence score between 0-1",
						},
					},
					Required: []string{"headline", "action", "impact", "confidence"},
				},
			},
		},
		Required: []string{"headlines"},
	}
}
