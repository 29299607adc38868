package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when no API key is set; callers degrade
// instead of crashing.
var ErrNotConfigured = errors.New("genai: api key not configured")

// Config mirrors the GENAI section of the gateway configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Client talks to the generative-language REST API. It backs both exercise
// generation and the tutor chat.
type Client struct {
	http  *resty.Client
	model string
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://generativelanguage.googleapis.com"
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	c := &Client{model: model}
	if cfg.APIKey == "" {
		// Left unconfigured on purpose: callers get ErrNotConfigured and
		// degrade instead of sending unauthenticated requests.
		return c
	}
	c.http = resty.New().
		SetBaseURL(base).
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey)
	return c
}

// Turn is one prior message in a chat history.
type Turn struct {
	Role string `json:"role"` // "user" | "model"
	Text string `json:"text"`
}

type genPart struct {
	Text string `json:"text"`
}

type genContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []genPart `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	TopK             int     `json:"topK,omitempty"`
	TopP             float64 `json:"topP,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	SystemInstruction *genContent      `json:"system_instruction,omitempty"`
	Contents          []genContent     `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
}

// generateContent sends one request and returns the first candidate's text.
func (c *Client) generateContent(ctx context.Context, system string, contents []genContent, gc generationConfig) (string, error) {
	if c.http == nil {
		return "", ErrNotConfigured
	}
	req := generateRequest{
		Contents:         contents,
		GenerationConfig: gc,
	}
	if system != "" {
		req.SystemInstruction = &genContent{Parts: []genPart{{Text: system}}}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("genai: %s: %s", resp.Status(), strings.TrimSpace(resp.String()))
	}
	// Decode the body directly so a missing or odd Content-Type header on the
	// response cannot leave the payload unparsed.
	var out generateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("genai: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("genai: empty response")
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
