package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

func samplePRs() []schema.PullRequest {
	body := "Adds retry logic to the ingestion pipeline so transient failures recover automatically."
	return []schema.PullRequest{
		{
			Title:      "Add retry logic",
			Body:       &body,
			ClosedAt:   "2024-11-05T10:00:00Z",
			Repository: schema.Repository{Name: "pipeline", NameWithOwner: "acme/pipeline"},
		},
		{
			Title:      "Fix flaky test",
			ClosedAt:   "2024-11-06T10:00:00Z",
			Repository: schema.Repository{Name: "api", NameWithOwner: "acme/api"},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(samplePRs(), "Jun 1, 2024 - Dec 1, 2024", "acme")

	assert.Contains(t, prompt, "2 merged pull requests")
	assert.Contains(t, prompt, "acme (Jun 1, 2024 - Dec 1, 2024)")
	assert.Contains(t, prompt, "[acme/pipeline] Add retry logic: Adds retry logic")
	assert.Contains(t, prompt, "[acme/api] Fix flaky test\n")
}

func TestBodyPreviewTruncates(t *testing.T) {
	long := strings.Repeat("word ", 100)
	preview := bodyPreview(long)
	assert.LessOrEqual(t, len([]rune(preview)), bodyPreviewLimit+3)
	assert.True(t, strings.HasSuffix(preview, "..."))
}

func TestBodyPreviewCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "one two three", bodyPreview("one\n\ntwo\t three"))
}

func TestGenerateSummarySuccess(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  I shipped two changes.  "}},
			},
		})
	}))
	defer srv.Close()

	c := NewClientWithEndpoint(srv.URL)
	got, err := c.GenerateSummary(context.Background(), "sk-test", samplePRs(), "Jun 1, 2024 - Dec 1, 2024", "acme")
	require.NoError(t, err)

	assert.Equal(t, "I shipped two changes.", got)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, model, gotReq.Model)
	assert.Equal(t, maxTokens, gotReq.MaxTokens)
	assert.InDelta(t, temperature, gotReq.Temperature, 0.001)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestGenerateSummaryAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Incorrect API key provided"},
		})
	}))
	defer srv.Close()

	c := NewClientWithEndpoint(srv.URL)
	_, err := c.GenerateSummary(context.Background(), "sk-bad", samplePRs(), "range", "org")

	var berr *contract.BoundaryError
	require.ErrorAs(t, err, &berr)
	assert.Contains(t, berr.Message, "Incorrect API key provided")
}

func TestGenerateSummaryGuards(t *testing.T) {
	c := NewClient()

	_, err := c.GenerateSummary(context.Background(), "", samplePRs(), "range", "org")
	var verr *contract.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please configure your OpenAI API key in settings", verr.Message)

	_, err = c.GenerateSummary(context.Background(), "sk-test", nil, "range", "org")
	require.ErrorAs(t, err, &verr)
}
