package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"abctrack/internal/domain"
	"abctrack/internal/domain/models"
)

const (
	// DefaultCompletionBaseURL is the default chat-completion endpoint.
	DefaultCompletionBaseURL = "https://api.openai.com/v1/chat/completions"
	// DefaultCompletionTimeout is the client-side wall-clock budget for one
	// suggestion request. There is no retry beyond this single attempt.
	DefaultCompletionTimeout = 10 * time.Second
)

// Client fetches suggestion lists for a behavior label from the remote
// text-completion endpoint.
type Client interface {
	Fetch(ctx context.Context, behavior string) (*models.SuggestionSet, error)
}

// CompletionClient implements Client against an OpenAI-style chat-completion
// API: one user-role prompt, bearer-token auth, JSON payload parsed from the
// first choice's message content.
type CompletionClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewCompletionClient creates a suggestion client with the default endpoint
// and timeout.
func NewCompletionClient(apiKey, model string) *CompletionClient {
	return &CompletionClient{
		apiKey:  apiKey,
		baseURL: DefaultCompletionBaseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: DefaultCompletionTimeout,
		},
	}
}

// NewCompletionClientWithConfig creates a client with custom endpoint and
// timeout, used by tests and self-hosted gateways.
func NewCompletionClientWithConfig(apiKey, model, baseURL string, timeout time.Duration) *CompletionClient {
	return &CompletionClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Fetch requests exactly 15 antecedents and 15 consequences for the behavior
// and parses them from the completion content.
func (c *CompletionClient) Fetch(ctx context.Context, behavior string) (*models.SuggestionSet, error) {
	prompt := fmt.Sprintf(
		`A caregiver logged that a child showed the behavior %q. `+
			`Respond with JSON only, exactly this shape: `+
			`{"antecedents":[{"text":"...","emoji":"..."}],"consequences":[{"text":"...","emoji":"..."}]}. `+
			`Provide exactly 15 antecedents (common triggers that may precede this behavior) `+
			`and exactly 15 consequences (constructive caregiver responses). `+
			`Keep each text under 8 words and pick one fitting emoji each.`,
		behavior,
	)

	payload, err := json.Marshal(completionRequest{
		Model:    c.model,
		Messages: []completionMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, &domain.RemoteCallError{Reason: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &domain.RemoteCallError{Reason: "create request", Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.RemoteCallError{Reason: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // Error ignored: response consumed

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.RemoteCallError{Reason: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.RemoteCallError{
			Reason: fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(string(body), 200)),
		}
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, &domain.RemoteCallError{Reason: "parse response", Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &domain.RemoteCallError{Reason: "empty choices"}
	}

	content := stripJSONFences(completion.Choices[0].Message.Content)

	var set models.SuggestionSet
	if err := json.Unmarshal([]byte(content), &set); err != nil {
		return nil, &domain.RemoteCallError{Reason: "parse completion content", Err: err}
	}
	if len(set.Antecedents) == 0 || len(set.Consequences) == 0 {
		return nil, &domain.RemoteCallError{Reason: "incomplete suggestion payload"}
	}

	return &set, nil
}

// stripJSONFences tolerates models that wrap the JSON payload in markdown
// code fences.
func stripJSONFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
