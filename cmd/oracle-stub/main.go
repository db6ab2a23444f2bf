// Command oracle-stub is an OpenAI-compatible server that answers quiz
// prompts offline, for trying quizlens without a vendor key.
//
// It replies with ANSWER when set; otherwise with the option at
// ANSWER_INDEX (default 0) of the "- option" lines in the prompt.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

type stub struct {
	model  string
	answer string
	index  int
}

func main() {
	s := stub{model: envOr("MODEL_ID", "test-model"), answer: os.Getenv("ANSWER")}
	if n, err := strconv.Atoi(os.Getenv("ANSWER_INDEX")); err == nil && n >= 0 {
		s.index = n
	}
	addr := envOr("ADDR", ":8081")
	log.Printf("oracle-stub listening on %s (model=%s)", addr, s.model)
	if err := http.ListenAndServe(addr, s.routes()); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (s stub) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   []map[string]any{{"id": s.model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		prompt := ""
		if n := len(req.Messages); n > 0 {
			prompt = textOf(req.Messages[n-1].Content)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "stub",
			"object": "chat.completion",
			"model":  s.model,
			"choices": []map[string]any{
				{"index": 0, "finish_reason": "stop", "message": map[string]string{"role": "assistant", "content": s.reply(prompt)}},
			},
		})
	})
	return mux
}

// textOf accepts both a plain string and an array of content parts.
func textOf(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}
	var b strings.Builder
	for _, p := range parts {
		if p.Type == "text" {
			b.WriteString(p.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s stub) reply(prompt string) string {
	if s.answer != "" {
		return s.answer
	}
	var options []string
	for _, line := range strings.Split(prompt, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "- "); ok {
			options = append(options, strings.TrimSpace(rest))
		}
	}
	if len(options) == 0 {
		return "A"
	}
	if s.index < len(options) {
		return options[s.index]
	}
	return options[len(options)-1]
}
