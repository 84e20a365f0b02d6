package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/revyse/core/internal/config"
)

// compatProvider speaks the chat/completions protocol directly. It serves
// both generic OpenAI-compatible gateways and OpenRouter.
type compatProvider struct {
	id        string
	modelID   string
	apiKey    string
	endpoint  string
	maxTokens int
	client    *http.Client
}

// NewOpenAICompatible builds a provider that talks chat/completions over
// plain HTTP against any OpenAI-compatible endpoint.
func NewOpenAICompatible(p config.AIProvider, timeout time.Duration, maxTokens int) (Provider, error) {
	apiKey := strings.TrimSpace(p.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai-compatible provider api key is empty")
	}

	modelID := strings.TrimSpace(p.DefaultModel)
	if modelID == "" {
		modelID = defaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &compatProvider{
		id:        p.ID,
		modelID:   modelID,
		apiKey:    apiKey,
		endpoint:  normalizeCompatibleEndpoint(p.Endpoint),
		maxTokens: normalizeMaxTokens(maxTokens),
		client:    &http.Client{Timeout: timeout},
	}, nil
}

func (p *compatProvider) ID() string      { return p.id }
func (p *compatProvider) ModelID() string { return p.modelID }

func (p *compatProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = p.maxTokens
	}

	messages := make([]map[string]string, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, map[string]string{
			"role":    "system",
			"content": req.System,
		})
	}
	messages = append(messages, map[string]string{
		"role":    "user",
		"content": req.Prompt,
	})

	body, _ := json.Marshal(map[string]interface{}{
		"model":      p.modelID,
		"messages":   messages,
		"max_tokens": maxTokens,
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        errors.New(strings.TrimSpace(string(respBody))),
		}
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &UnavailableError{Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("chat completions error: %s", strings.TrimSpace(string(respBody)))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &MalformedResponseError{Content: string(respBody), Err: err}
	}
	if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
		return nil, fmt.Errorf("chat completions error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return nil, &MalformedResponseError{Content: string(respBody), Err: errors.New("no choices in response")}
	}

	out := &Response{
		Text:         result.Choices[0].Message.Content,
		InputTokens:  result.Usage.PromptTokens,
		OutputTokens: result.Usage.CompletionTokens,
	}
	if out.InputTokens == 0 {
		out.InputTokens = EstimateTokens(req.System + req.Prompt)
	}
	if out.OutputTokens == 0 {
		out.OutputTokens = EstimateTokens(out.Text)
	}
	return out, nil
}

func parseRetryAfter(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Second
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Second
}

func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		if path == "" {
			path = "/v1"
		} else {
			path += "/v1"
		}
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

func normalizeCompatibleEndpoint(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return "https://api.openai.com"
	}

	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		cleaned := strings.TrimRight(base, "/")
		return strings.TrimSuffix(cleaned, "/v1")
	}

	path := strings.TrimRight(parsed.Path, "/")
	path = strings.TrimSuffix(path, "/v1")
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
