// Package genai turns free-form LLM output into validated JSON values.
//
// Models routinely wrap JSON in markdown fences or prepend commentary, so
// every response goes through the same pipeline: strip fences, scan for the
// first balanced JSON value, unmarshal, check required fields. Any failure
// at any stage (including the chat call itself) counts as a failed attempt;
// when attempts run out the caller substitutes its fallback value.
package genai

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/prism-learn/prism/internal/domain"
	"github.com/prism-learn/prism/internal/jsonx"
	"github.com/prism-learn/prism/internal/metrics"
)

// Spec describes one structured generation call.
type Spec struct {
	Task        string // metrics label and log field
	System      string // optional system prompt
	Prompt      string
	Temperature float32
	MaxTokens   int
	Retries     int      // extra attempts after the first
	Required    []string // top-level fields that must be present (array: per element)
	MinItems    int      // arrays only: minimum element count
}

// Client runs structured generations against a chat model.
type Client struct {
	model  ChatModel
	logger *zap.Logger
}

// New creates a structured generation client.
func New(model ChatModel, logger *zap.Logger) *Client {
	return &Client{model: model, logger: logger}
}

// Object generates a JSON object and unmarshals it into out.
// Returns an error only after all attempts fail; callers fall back.
func (c *Client) Object(ctx context.Context, spec Spec, out any) error {
	return c.generate(ctx, spec, jsonx.Object, out)
}

// Array generates a JSON array and unmarshals it into out.
func (c *Client) Array(ctx context.Context, spec Spec, out any) error {
	return c.generate(ctx, spec, jsonx.Array, out)
}

func (c *Client) generate(ctx context.Context, spec Spec, kind jsonx.Kind, out any) error {
	messages := make([]domain.Message, 0, 2)
	if spec.System != "" {
		messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: spec.System})
	}
	messages = append(messages, domain.Message{Role: domain.RoleUser, Content: spec.Prompt})

	opts := domain.ChatOptions{
		Temperature: spec.Temperature,
		MaxTokens:   spec.MaxTokens,
		Task:        spec.Task,
	}

	var lastErr error
	for attempt := 0; attempt <= spec.Retries; attempt++ {
		raw, err := c.model.Chat(ctx, messages, opts)
		if err != nil {
			lastErr = err
			c.logger.Warn("structured generation chat failed",
				zap.String("task", spec.Task), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		if err := parse(raw, spec, kind, out); err != nil {
			lastErr = err
			metrics.LLMParseFailuresTotal.WithLabelValues(spec.Task).Inc()
			c.logger.Warn("structured generation parse failed",
				zap.String("task", spec.Task), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		return nil
	}

	metrics.LLMFallbacksTotal.WithLabelValues(spec.Task).Inc()
	return fmt.Errorf("structured generation %s exhausted %d attempts: %w",
		spec.Task, spec.Retries+1, lastErr)
}

// parse extracts and validates a JSON value of the expected kind from raw
// model output, then unmarshals it into out.
func parse(raw string, spec Spec, kind jsonx.Kind, out any) error {
	cleaned := jsonx.StripFence(raw)
	value, ok := jsonx.FirstValue(cleaned, kind)
	if !ok {
		return fmt.Errorf("no balanced JSON %s in response", kindName(kind))
	}

	if kind == jsonx.Object {
		if err := checkObject([]byte(value), spec.Required); err != nil {
			return err
		}
	} else {
		if err := checkArray([]byte(value), spec); err != nil {
			return err
		}
	}

	if err := json.Unmarshal([]byte(value), out); err != nil {
		return fmt.Errorf("unmarshal into target: %w", err)
	}
	return nil
}

func checkObject(value []byte, required []string) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(value, &m); err != nil {
		return fmt.Errorf("unmarshal object: %w", err)
	}
	for _, field := range required {
		if _, ok := m[field]; !ok {
			return fmt.Errorf("missing required field %q", field)
		}
	}
	return nil
}

func checkArray(value []byte, spec Spec) error {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		return fmt.Errorf("unmarshal array: %w", err)
	}
	if len(items) < spec.MinItems {
		return fmt.Errorf("array has %d items, need at least %d", len(items), spec.MinItems)
	}
	for i, item := range items {
		for _, field := range spec.Required {
			if _, ok := item[field]; !ok {
				return fmt.Errorf("element %d missing required field %q", i, field)
			}
		}
	}
	return nil
}

func kindName(kind jsonx.Kind) string {
	if kind == jsonx.Array {
		return "array"
	}
	return "object"
}
