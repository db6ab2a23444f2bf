// Package oracle asks a language model which answer option is correct.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/quizlens/internal/cache"
	"github.com/hyperifyio/quizlens/internal/llm"
)

// Oracle turns a question into a free-text answer.
type Oracle interface {
	ResolveText(ctx context.Context, question string, answers []string) (string, error)
	ResolveImage(ctx context.Context, image []byte, mimeType string) (string, error)
}

// ServiceError is any failure talking to the answer service. Message is fit
// to show to the user as is.
type ServiceError struct {
	Op      string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Client is an Oracle backed by an llm.Provider.
type Client struct {
	Provider llm.Provider
	// Language picks the prompt wording: "pl" (default) or "en".
	Language string
	// Cache, when set, serves repeated prompts from disk.
	Cache *cache.AnswerCache
	// Timeout bounds each call. Zero means no timeout.
	Timeout time.Duration
}

// ResolveText asks which of answers is correct.
func (c *Client) ResolveText(ctx context.Context, question string, answers []string) (string, error) {
	prompt := TextPrompt(c.Language, question, answers)
	return c.complete(ctx, "resolve text", llm.DefaultSampling(llm.Request{Prompt: prompt}))
}

// ResolveImage asks the model to read the question off a screenshot.
func (c *Client) ResolveImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", &ServiceError{Op: "resolve image", Message: "empty screenshot"}
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	req := llm.DefaultSampling(llm.Request{Prompt: ImagePrompt(c.Language), Image: image, ImageMIME: mimeType})
	return c.complete(ctx, "resolve image", req)
}

func (c *Client) cacheKey(req llm.Request) string {
	model := c.Provider.Name() + "/" + c.Provider.ModelID()
	if len(req.Image) > 0 {
		return cache.KeyFromImage(model, req.Prompt, req.Image)
	}
	return cache.KeyFrom(model, req.Prompt)
}

func (c *Client) complete(ctx context.Context, op string, req llm.Request) (string, error) {
	if c.Provider == nil {
		return "", &ServiceError{Op: op, Message: "no answer provider configured"}
	}
	var key string
	if c.Cache != nil {
		key = c.cacheKey(req)
		if a, ok, err := c.Cache.Get(ctx, key); err == nil && ok {
			log.Debug().Str("op", op).Str("key", key[:12]).Msg("answer cache hit")
			return a.Text, nil
		}
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	start := time.Now()
	resp, err := c.Provider.Complete(ctx, req)
	if err != nil {
		return "", &ServiceError{Op: op, Message: describe(err), Err: err}
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", &ServiceError{Op: op, Message: "the model returned an answer in an unexpected format", Err: llm.ErrEmptyResponse}
	}
	log.Debug().
		Str("op", op).
		Str("provider", c.Provider.Name()).
		Str("model", resp.Model).
		Dur("elapsed", time.Since(start)).
		Msg("oracle answered")
	if c.Cache != nil {
		if err := c.Cache.Save(ctx, key, cache.Answer{Model: resp.Model, Text: text}); err != nil {
			log.Warn().Err(err).Msg("answer cache save failed")
		}
	}
	return text, nil
}

func describe(err error) string {
	var st *llm.ErrStatus
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "the answer service did not reply in time"
	case errors.Is(err, llm.ErrEmptyResponse):
		return "the model returned an answer in an unexpected format"
	case errors.As(err, &st) && st.Code > 0:
		return fmt.Sprintf("API (%d): %v", st.Code, st.Err)
	}
	return err.Error()
}
