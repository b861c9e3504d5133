// Package gemini is a minimal client for the Gemini generateContent API,
// used to draft multiple-choice questions for a topic.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// placeholderKey is the sample value shipped in example env files.
const placeholderKey = "YOUR_GEMINI_API_KEY"

const promptTemplate = "Generate %d multiple choice questions about '%s' for students. " +
	"Return ONLY a JSON array of objects. Each object must have: 'question' (string), " +
	"'options' (array of 4 strings), and 'correctAnswer' (string which must be one of the options). " +
	"Do not include any markdown formatting or explanations."

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

var (
	ErrNotConfigured = errors.New("gemini: api key not configured")
	ErrEmptyResponse = errors.New("gemini: response has no candidate text")
)

// Config configures a Client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls generateContent over HTTP.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewClient creates a Client. A zero Timeout defaults to 20 seconds.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a usable API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.apiKey != placeholderKey
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate asks the model for count questions about topic and returns the
// model's text with any markdown code fences removed. The text is expected,
// but not guaranteed, to be a JSON array of questions.
func (c *Client) Generate(ctx context.Context, topic string, count int) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(promptTemplate, count, topic)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	text := StripCodeFence(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// StripCodeFence removes ```json / ``` markers the model sometimes wraps
// its answer in, and trims surrounding whitespace.
func StripCodeFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
