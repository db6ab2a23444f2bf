package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Provider sends one prompt, optionally with an image, to a model and returns
// its text reply.
type Provider interface {
	Complete(ctx context.Context, req Request) (Response, error)
	// Name identifies the vendor, e.g. "gemini".
	Name() string
	// ModelID is the model the provider is configured for.
	ModelID() string
}

// Checker is an optional capability: verifying that the credential works,
// typically by listing models. Callers detect it with a type assertion.
type Checker interface {
	Check(ctx context.Context) error
}

// Request is a single-turn prompt.
type Request struct {
	Prompt string

	// Image, when set, is sent inline next to the prompt.
	Image     []byte
	ImageMIME string

	// Sampling settings. Zero values leave the vendor default in place.
	Temperature float64
	MaxTokens   int
	TopP        float64
	TopK        int
}

// Response is the model's reply.
type Response struct {
	Text  string
	Model string
}

// DefaultSampling mirrors the settings the answer prompts were tuned with:
// low temperature and a short reply.
func DefaultSampling(r Request) Request {
	r.Temperature = 0.2
	r.MaxTokens = 800
	r.TopP = 0.9
	r.TopK = 10
	return r
}

// ChatClient is the part of the OpenAI client the provider needs. Any
// OpenAI-compatible backend, or a test fake, can stand in.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ModelLister is an optional capability of a ChatClient.
type ModelLister interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}
