// Package aiclient generates narrative summaries through the OpenAI API.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"
	model           = "gpt-4o-mini"
	maxTokens       = 2000
	temperature     = 0.7

	// bodyPreviewLimit caps how much of each PR description enters the
	// prompt, keeping the request well under the model context window.
	bodyPreviewLimit = 200
)

// Client implements the contract.SummaryClient interface against the
// OpenAI chat completions API.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ contract.SummaryClient = &Client{} // Compile-time check

// NewClient creates an OpenAI summary client.
func NewClient() *Client {
	return &Client{endpoint: defaultEndpoint, http: http.DefaultClient}
}

// NewClientWithEndpoint creates a client against a custom endpoint, used by
// tests to point at a local server.
func NewClientWithEndpoint(endpoint string) *Client {
	return &Client{endpoint: endpoint, http: http.DefaultClient}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateSummary implements the SummaryClient interface.
func (c *Client) GenerateSummary(ctx context.Context, apiKey string, merged []schema.PullRequest, dateRange, orgLabel string) (string, error) {
	if apiKey == "" {
		return "", &contract.ValidationError{Message: "Please configure your OpenAI API key in settings"}
	}
	if len(merged) == 0 {
		return "", &contract.ValidationError{Message: "no pull requests to summarize"}
	}

	payload, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(merged, dateRange, orgLabel)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call OpenAI API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read OpenAI response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &contract.BoundaryError{Message: fmt.Sprintf("Failed to parse OpenAI response: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", &contract.BoundaryError{Message: fmt.Sprintf("OpenAI API error: %s", msg)}
	}
	if len(parsed.Choices) == 0 {
		return "", &contract.BoundaryError{Message: "OpenAI API returned no choices"}
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

const systemPrompt = "You are a helpful assistant that writes concise, " +
	"first-person summaries of a software engineer's GitHub contributions. " +
	"Highlight themes and impact rather than listing every change."

// BuildPrompt renders the records into the user prompt. Each line carries
// the repo, the title and a capped description preview.
func BuildPrompt(merged []schema.PullRequest, dateRange, orgLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize my %d merged pull requests for %s (%s).\n\n", len(merged), orgLabel, dateRange)
	for _, pr := range merged {
		fmt.Fprintf(&b, "- [%s] %s", pr.Repository.NameWithOwner, pr.Title)
		if pr.Body != nil {
			if preview := bodyPreview(*pr.Body); preview != "" {
				fmt.Fprintf(&b, ": %s", preview)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// bodyPreview collapses whitespace and truncates to the preview limit.
func bodyPreview(body string) string {
	flat := strings.Join(strings.Fields(body), " ")
	runes := []rune(flat)
	if len(runes) > bodyPreviewLimit {
		return string(runes[:bodyPreviewLimit]) + "..."
	}
	return flat
}
