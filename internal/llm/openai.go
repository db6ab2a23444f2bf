package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to the OpenAI chat completions API or any compatible
// server.
type OpenAIProvider struct {
	Client ChatClient
	Model  string
}

// NewOpenAIProvider creates a provider backed by *openai.Client.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}
	return &OpenAIProvider{Client: openai.NewClientWithConfig(oc), Model: cfg.Model}, nil
}

func (p *OpenAIProvider) Name() string    { return ProviderOpenAI }
func (p *OpenAIProvider) ModelID() string { return p.Model }

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (Response, error) {
	resp, err := p.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.Model,
		Messages:    []openai.ChatCompletionMessage{openAIMessage(req)},
		Temperature: float32(req.Temperature),
		TopP:        float32(req.TopP),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return Response{}, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, &ErrStatus{Provider: ProviderOpenAI, Err: ErrEmptyResponse}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Response{}, &ErrStatus{Provider: ProviderOpenAI, Err: ErrEmptyResponse}
	}
	model := resp.Model
	if model == "" {
		model = p.Model
	}
	return Response{Text: text, Model: model}, nil
}

// openAIMessage builds the user message. Images travel as a data URL part.
func openAIMessage(req Request) openai.ChatCompletionMessage {
	if len(req.Image) == 0 {
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt}
	}
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
				URL:    dataURL(req.ImageMIME, req.Image),
				Detail: openai.ImageURLDetailAuto,
			}},
		},
	}
}

func dataURL(mime string, data []byte) string {
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Check lists models when the client supports it.
func (p *OpenAIProvider) Check(ctx context.Context) error {
	ml, ok := p.Client.(ModelLister)
	if !ok {
		return nil
	}
	if _, err := ml.ListModels(ctx); err != nil {
		return mapOpenAIError(err)
	}
	return nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ErrStatus{Provider: ProviderOpenAI, Code: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ErrStatus{Provider: ProviderOpenAI, Code: reqErr.HTTPStatusCode, Err: err}
	}
	return &ErrStatus{Provider: ProviderOpenAI, Err: err}
}
