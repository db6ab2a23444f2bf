package app

import (
	"fmt"
	"strings"
)

// The wording follows the language of the prompts: Polish unless an English
// language code is configured.
type messages struct {
	chose           string
	detectionFailed string
	manual          string
	missingKey      string
	errorPrefix     string
	found           string
	asking          string
}

var polish = messages{
	chose:           "AI wybrało: %s...",
	detectionFailed: "Nie udało się automatycznie wykryć pytania i odpowiedzi. Spróbuj trybu ze zrzutem ekranu.",
	manual:          "AI odpowiedziało: %q\n\nNie znaleziono dokładnie pasującego elementu na stronie. Sprawdź odpowiedź manualnie.",
	missingKey:      "Błąd: Brak klucza API.",
	errorPrefix:     "Błąd: %s",
	found:           "Znaleziono pytanie i %d odpowiedzi.",
	asking:          "Pytam AI...",
}

var english = messages{
	chose:           "AI chose: %s...",
	detectionFailed: "Could not detect the question and answers automatically. Try screenshot mode.",
	manual:          "AI answered: %q\n\nNo matching element was found on the page. Check the answer manually.",
	missingKey:      "Error: no API key.",
	errorPrefix:     "Error: %s",
	found:           "Found a question and %d answers.",
	asking:          "Asking the AI...",
}

func messagesFor(lang string) messages {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(lang)), "en") {
		return english
	}
	return polish
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (m messages) status(answer string) string {
	return fmt.Sprintf(m.chose, prefix(answer, 50))
}
