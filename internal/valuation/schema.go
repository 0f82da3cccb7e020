package valuation

import "valuescan/internal/advisor"

// ReportSchema declares the structured response shape for the extract phase:
// the full valuation report minus citation sources, which come from the
// gather phase's grounding metadata instead.
func ReportSchema() advisor.Schema {
	return advisor.Schema{
		"type": "object",
		"properties": map[string]any{
			"companyName": map[string]any{
				"type":        "string",
				"description": "Full legal company name",
			},
			"currentPrice": map[string]any{
				"type":        "number",
				"description": "Latest share price in USD, 0 if unknown",
			},
			"intrinsicValue": map[string]any{
				"type":        "number",
				"description": "Blended intrinsic value per share in USD",
			},
			"marginOfSafety": map[string]any{
				"type":        "number",
				"description": "Signed percent gap between intrinsic value and price",
			},
			"recommendation": map[string]any{
				"type": "string",
				"enum": []string{"BUY", "HOLD", "SELL"},
			},
			"valuationMetrics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"method": map[string]any{
							"type": "string",
							"enum": []string{"DCF", "RELATIVE", "GRAHAM"},
						},
						"value": map[string]any{
							"type":        "number",
							"description": "Intrinsic value per share from this method",
						},
						"details": map[string]any{
							"type":        "string",
							"description": "Key assumptions behind the estimate",
						},
					},
					"required": []string{"method", "value", "details"},
				},
			},
			"sentimentScore": map[string]any{
				"type":        "number",
				"description": "Aggregate sentiment from -100 to 100",
			},
			"sentimentLabel": map[string]any{
				"type": "string",
				"enum": []string{"POSITIVE", "NEUTRAL", "NEGATIVE"},
			},
			"sentimentSummary": map[string]any{
				"type":        "string",
				"description": "One or two sentences on prevailing sentiment",
			},
			"sectorMomentum": map[string]any{
				"type":        "string",
				"description": "One sentence on the sector's current momentum",
			},
			"strengths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"risks": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{
			"companyName", "currentPrice", "intrinsicValue", "marginOfSafety",
			"recommendation", "valuationMetrics", "sentimentScore",
			"sentimentLabel", "sentimentSummary", "sectorMomentum",
			"strengths", "risks",
		},
	}
}
