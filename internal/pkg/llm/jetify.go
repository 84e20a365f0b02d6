package llm

import (
	"context"
	"errors"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"

	"github.com/revyse/core/internal/config"
)

const (
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultMaxTokens      = 4096
)

// jetifyProvider serves Anthropic and OpenAI via jetify's unified client.
type jetifyProvider struct {
	id        string
	modelID   string
	model     jetapi.LanguageModel
	maxTokens int
}

// NewAnthropic builds a provider backed by the Anthropic SDK.
func NewAnthropic(p config.AIProvider, maxTokens int) (Provider, error) {
	apiKey := strings.TrimSpace(p.APIKey)
	if apiKey == "" {
		return nil, errors.New("anthropic provider api key is empty")
	}

	modelID := strings.TrimSpace(p.DefaultModel)
	if modelID == "" {
		modelID = defaultAnthropicModel
	}

	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(apiKey),
		anthropicoption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(p.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	client := anthropicclient.NewClient(opts...)
	model := jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client))
	return &jetifyProvider{
		id:        p.ID,
		modelID:   modelID,
		model:     model,
		maxTokens: normalizeMaxTokens(maxTokens),
	}, nil
}

// NewOpenAI builds a provider backed by the OpenAI SDK.
func NewOpenAI(p config.AIProvider, maxTokens int) (Provider, error) {
	apiKey := strings.TrimSpace(p.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai provider api key is empty")
	}

	modelID := strings.TrimSpace(p.DefaultModel)
	if modelID == "" {
		modelID = defaultOpenAIModel
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(p.Endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}

	client := openaiclient.NewClient(opts...)
	model := jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client))
	return &jetifyProvider{
		id:        p.ID,
		modelID:   modelID,
		model:     model,
		maxTokens: normalizeMaxTokens(maxTokens),
	}, nil
}

func (p *jetifyProvider) ID() string      { return p.id }
func (p *jetifyProvider) ModelID() string { return p.modelID }

func (p *jetifyProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = p.maxTokens
	}

	resp, err := jetai.GenerateText(
		ctx,
		buildPromptMessages(req.System, req.Prompt),
		jetai.WithModel(p.model),
		jetai.WithMaxOutputTokens(maxTokens),
	)
	if err != nil {
		if Transient(err) {
			return nil, err
		}
		return nil, &UnavailableError{Err: err}
	}

	text, err := extractResponseText(resp)
	if err != nil {
		return nil, err
	}

	out := &Response{
		Text:         text,
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}
	if out.InputTokens == 0 {
		out.InputTokens = EstimateTokens(req.System + req.Prompt)
	}
	if out.OutputTokens == 0 {
		out.OutputTokens = EstimateTokens(text)
	}
	return out, nil
}

func buildPromptMessages(system, prompt string) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: system})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)})
	return messages
}

func extractResponseText(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", &MalformedResponseError{Err: errors.New("empty response")}
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", &MalformedResponseError{Err: errors.New("empty response")}
	}
	return text, nil
}

func normalizeMaxTokens(n int) int {
	if n <= 0 {
		return defaultMaxTokens
	}
	return n
}
