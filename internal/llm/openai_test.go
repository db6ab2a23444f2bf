package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type fakeChat struct {
	got    openai.ChatCompletionRequest
	reply  string
	err    error
	listed bool
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.got = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Model:   "served-model",
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.reply}}},
	}, nil
}

func (f *fakeChat) ListModels(context.Context) (openai.ModelsList, error) {
	f.listed = true
	return openai.ModelsList{}, f.err
}

func TestOpenAIProvider_TextPrompt(t *testing.T) {
	fc := &fakeChat{reply: "  Warszawa \n"}
	p := &OpenAIProvider{Client: fc, Model: "gpt-test"}
	resp, err := p.Complete(context.Background(), DefaultSampling(Request{Prompt: "Pytanie?"}))
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Text != "Warszawa" || resp.Model != "served-model" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if fc.got.Model != "gpt-test" || fc.got.MaxTokens != 800 {
		t.Fatalf("unexpected request: %+v", fc.got)
	}
	if len(fc.got.Messages) != 1 || fc.got.Messages[0].Content != "Pytanie?" || fc.got.Messages[0].MultiContent != nil {
		t.Fatalf("unexpected messages: %+v", fc.got.Messages)
	}
}

func TestOpenAIProvider_ImageAsDataURL(t *testing.T) {
	fc := &fakeChat{reply: "B) Paryż"}
	p := &OpenAIProvider{Client: fc, Model: "gpt-test"}
	_, err := p.Complete(context.Background(), Request{Prompt: "Co widać?", Image: []byte{0xff, 0xd8}, ImageMIME: "image/jpeg"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	parts := fc.got.Messages[0].MultiContent
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Text != "Co widać?" {
		t.Fatalf("text part: %+v", parts[0])
	}
	if parts[1].ImageURL == nil || parts[1].ImageURL.URL != "data:image/jpeg;base64,/9g=" {
		t.Fatalf("image part: %+v", parts[1].ImageURL)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	p := &OpenAIProvider{Client: &fakeChat{reply: "   "}, Model: "m"}
	_, err := p.Complete(context.Background(), Request{Prompt: "x"})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}

	apiErr := &openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "bad key"}
	p = &OpenAIProvider{Client: &fakeChat{err: apiErr}, Model: "m"}
	_, err = p.Complete(context.Background(), Request{Prompt: "x"})
	var st *ErrStatus
	if !errors.As(err, &st) || st.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad key") {
		t.Fatalf("message lost: %v", err)
	}
}

func TestOpenAIProvider_Check(t *testing.T) {
	fc := &fakeChat{}
	p := &OpenAIProvider{Client: fc}
	if err := p.Check(context.Background()); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !fc.listed {
		t.Fatal("expected ListModels call")
	}
}
