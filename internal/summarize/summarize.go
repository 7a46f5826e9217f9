// Package summarize condenses events into briefing summaries using the
// Groq chat completions API (OpenAI-compatible).
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jonesrussell/gobrief/internal/config"
	"github.com/jonesrussell/gobrief/internal/domain"
	"github.com/jonesrussell/gobrief/internal/logger"
)

// Interface defines the summarization operations the pipeline needs.
type Interface interface {
	// SummarizeEvent condenses one event into a three-point summary.
	SummarizeEvent(ctx context.Context, event *domain.Event) (*domain.Summary, error)
	// InterestingFact generates one piece of trivia for the briefing trailer.
	InterestingFact(ctx context.Context) (*domain.Fact, error)
}

// ErrNoJSON is returned when the completion text contains no JSON object.
var ErrNoJSON = errors.New("no valid JSON object found in the model response")

// jsonObjectPattern extracts the outermost JSON object from completion
// text. Models wrap the object in prose often enough that decoding the
// raw response directly is not reliable.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Client talks to the Groq API.
type Client struct {
	api    *openai.Client
	cfg    config.GroqConfig
	logger logger.Interface
}

// Ensure Client implements Interface.
var _ Interface = (*Client)(nil)

// NewClient creates a Groq-backed summarization client.
func NewClient(cfg config.GroqConfig, log logger.Interface) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	if cfg.RequestTimeout > 0 {
		apiCfg.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &Client{
		api:    openai.NewClientWithConfig(apiCfg),
		cfg:    cfg,
		logger: log.WithComponent("summarize"),
	}
}

// summaryEnvelope mirrors the JSON shape the summary prompt demands.
type summaryEnvelope struct {
	Summary domain.Summary `json:"summary"`
}

// SummarizeEvent condenses one event into a three-point summary.
func (c *Client) SummarizeEvent(ctx context.Context, event *domain.Event) (*domain.Summary, error) {
	prompt := fmt.Sprintf(summaryPromptTemplate, event.Title, event.Title, event.Text)

	c.logger.Debug("Requesting event summary", "title", event.Title)

	content, err := c.complete(ctx, prompt, 0)
	if err != nil {
		return nil, fmt.Errorf("summarize event: %w", err)
	}

	var envelope summaryEnvelope
	if decodeErr := decodeJSONObject(content, &envelope); decodeErr != nil {
		return nil, fmt.Errorf("summarize event: %w", decodeErr)
	}

	if envelope.Summary.Title == "" {
		envelope.Summary.Title = event.Title
	}

	return &envelope.Summary, nil
}

// InterestingFact generates one piece of trivia for the briefing trailer.
func (c *Client) InterestingFact(ctx context.Context) (*domain.Fact, error) {
	c.logger.Debug("Requesting interesting fact")

	content, err := c.complete(ctx, factPrompt, c.cfg.FactTemperature)
	if err != nil {
		return nil, fmt.Errorf("interesting fact: %w", err)
	}

	var fact domain.Fact
	if decodeErr := decodeJSONObject(content, &fact); decodeErr != nil {
		return nil, fmt.Errorf("interesting fact: %w", decodeErr)
	}

	return &fact, nil
}

// complete sends one user message and returns the completion text.
// A zero temperature leaves the model default in place.
func (c *Client) complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if temperature > 0 {
		req.Temperature = temperature
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// decodeJSONObject extracts the JSON object embedded in completion
// text and decodes it into result.
func decodeJSONObject(content string, result any) error {
	match := jsonObjectPattern.FindString(content)
	if match == "" {
		return ErrNoJSON
	}

	if err := json.Unmarshal([]byte(match), result); err != nil {
		return fmt.Errorf("decode model JSON: %w", err)
	}

	return nil
}
