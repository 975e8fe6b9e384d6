package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ImpactKind string

const (
	ImpactAmount     ImpactKind = "amount"     // absolute currency value
	ImpactPercentage ImpactKind = "percentage" // e.g. "35%"
)

// Impact is the estimated effect of a headline action. Upstream models return
// either a plain number or a percentage string, so it is a tagged variant
// rather than an untyped value.
type Impact struct {
	Kind       ImpactKind
	Amount     float64
	Percentage string
}

func AmountImpact(v float64) Impact {
	return Impact{Kind: ImpactAmount, Amount: v}
}

func PercentageImpact(p string) Impact {
	return Impact{Kind: ImpactPercentage, Percentage: p}
}

func (i Impact) MarshalJSON() ([]byte, error) {
	if i.Kind == ImpactPercentage {
		return json.Marshal(i.Percentage)
	}
	if math.IsNaN(i.Amount) || math.IsInf(i.Amount, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(i.Amount)
}

func (i *Impact) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*i = AmountImpact(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil && trimmed != s {
			*i = PercentageImpact(fmt.Sprintf("%g%%", v))
			return nil
		}
		*i = PercentageImpact(s)
		return nil
	}
	if string(data) == "null" {
		*i = AmountImpact(0)
		return nil
	}
	return fmt.Errorf("impact must be a number or a percentage string, got %s", data)
}

// BrutalHeadline is one generated insight tuple. Exactly 5 exist per report.
type BrutalHeadline struct {
	Headline   string  `json:"headline"` // <= 90 chars
	Action     string  `json:"action"`   // <= 140 chars
	Impact     Impact  `json:"impact"`
	Confidence float64 `json:"confidence"` // in [0,1]
	Completed  bool    `json:"completed"`
}
