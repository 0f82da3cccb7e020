package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"valuescan/internal/config"
	"valuescan/internal/domain"
	"valuescan/internal/util"
)

// Compile-time interface check.
var _ Service = (*Gemini)(nil)

// retryBaseDelay is the initial backoff between failed query attempts.
const retryBaseDelay = 2 * time.Second

// Gemini implements the Service interface using the Gemini API. Grounded
// queries attach the GoogleSearch tool and harvest citation URLs from the
// response's grounding metadata; structured queries declare a response
// schema so the API enforces JSON output.
type Gemini struct {
	client      *genai.Client
	textModel   string
	reportModel string
	timeout     time.Duration
	maxAttempts int
	limiter     *util.RateLimiter
	logger      *slog.Logger
}

// NewGemini creates a Gemini service from configuration. It returns
// ErrNoCredential when no API key is configured.
func NewGemini(ctx context.Context, cfg config.Gemini, logger *slog.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoCredential
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	return &Gemini{
		client:      client,
		textModel:   cfg.TextModel,
		reportModel: cfg.ReportModel,
		timeout:     timeout,
		maxAttempts: maxAttempts,
		limiter:     util.NewRateLimiter(cfg.RateLimitPerMin),
		logger:      logger,
	}, nil
}

// Name returns "gemini".
func (g *Gemini) Name() string {
	return "gemini"
}

// GroundedText issues a search-grounded free-text query and returns the
// response text plus the citation sources the model consulted.
func (g *Gemini) GroundedText(ctx context.Context, prompt string) (Grounded, error) {
	genCfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := g.generate(ctx, g.textModel, prompt, genCfg)
	if err != nil {
		return Grounded{}, err
	}

	out := Grounded{Text: resp.Text()}
	if strings.TrimSpace(out.Text) == "" {
		return Grounded{}, ErrEmptyResponse
	}

	if gm := resp.Candidates[0].GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk.Web != nil {
				out.Sources = append(out.Sources, domain.Source{
					Title: chunk.Web.Title,
					URI:   chunk.Web.URI,
				})
			}
		}
	}

	g.logger.Debug("grounded query completed",
		"model", g.textModel,
		"response_len", len(out.Text),
		"sources", len(out.Sources))

	return out, nil
}

// StructuredJSON issues a schema-constrained query and returns the raw JSON
// response text.
func (g *Gemini) StructuredJSON(ctx context.Context, prompt string, schema Schema) (string, error) {
	genaiSchema, err := convertSchema(schema)
	if err != nil {
		return "", fmt.Errorf("converting response schema: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.2)),
		ResponseMIMEType: "application/json",
		ResponseSchema:   genaiSchema,
	}

	resp, err := g.generate(ctx, g.reportModel, prompt, genCfg)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	g.logger.Debug("structured query completed",
		"model", g.reportModel,
		"response_len", len(text))

	return text, nil
}

// generate performs one rate-limited, retried GenerateContent call with the
// per-call timeout applied.
func (g *Gemini) generate(ctx context.Context, model, prompt string, genCfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	var resp *genai.GenerateContentResponse
	err := util.Retry(callCtx, g.maxAttempts, retryBaseDelay, func() error {
		var callErr error
		resp, callErr = g.client.Models.GenerateContent(callCtx, model, contents, genCfg)
		if callErr != nil {
			g.logger.Warn("query attempt failed", "model", model, "error", callErr)
			return callErr
		}
		if resp == nil || len(resp.Candidates) == 0 {
			return ErrEmptyResponse
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query to %s failed: %w", model, err)
	}

	return resp, nil
}

// convertSchema translates the provider-agnostic Schema map into the genai
// schema structure. Unknown keys are ignored.
func convertSchema(m Schema) (*genai.Schema, error) {
	if len(m) == 0 {
		return nil, nil
	}

	schema := &genai.Schema{}

	if typeStr, ok := m["type"].(string); ok {
		switch strings.ToLower(typeStr) {
		case "object":
			schema.Type = genai.TypeObject
		case "array":
			schema.Type = genai.TypeArray
		case "string":
			schema.Type = genai.TypeString
		case "number":
			schema.Type = genai.TypeNumber
		case "integer":
			schema.Type = genai.TypeInteger
		case "boolean":
			schema.Type = genai.TypeBoolean
		default:
			return nil, fmt.Errorf("unknown schema type %q", typeStr)
		}
	}

	if desc, ok := m["description"].(string); ok {
		schema.Description = desc
	}

	switch enumVals := m["enum"].(type) {
	case []string:
		schema.Enum = enumVals
	case []any:
		for _, v := range enumVals {
			if s, ok := v.(string); ok {
				schema.Enum = append(schema.Enum, s)
			}
		}
	}

	switch reqVals := m["required"].(type) {
	case []string:
		schema.Required = reqVals
	case []any:
		for _, v := range reqVals {
			if s, ok := v.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}

	if itemsMap, ok := m["items"].(map[string]any); ok {
		items, err := convertSchema(itemsMap)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		schema.Items = items
	}

	if propsMap, ok := m["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(propsMap))
		for name, val := range propsMap {
			propMap, ok := val.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %q is not a schema map", name)
			}
			prop, err := convertSchema(propMap)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			schema.Properties[name] = prop
		}
	}

	return schema, nil
}
