package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Questions(t *testing.T) {
	c := Default()
	yes := []string{
		"1. Jaka jest stolica Polski?",
		"Pytanie 3: Ile to jest dwa plus dwa?",
		"Question: what colour is the sky?",
		"Stolica Francji to?",
		"Które z poniższych miast leży nad Wisłą",
		"Wybierz prawidłową odpowiedź",
		"Zaznacz poprawną odpowiedź",
		"Which of the following is a prime number",
		"Choose the correct answer",
		"Gdzie leży Kraków",
		"Tell me why this happens",
	}
	for _, s := range yes {
		assert.True(t, c.LooksLikeQuestion(s), s)
	}
	no := []string{
		"Warszawa",
		"Strona główna",
		"Copyright 2024",
		"Jakość obsługi",
	}
	for _, s := range no {
		assert.False(t, c.LooksLikeQuestion(s), s)
	}
}

func TestDefault_InterrogativeNeedsWholeWord(t *testing.T) {
	c := Default()
	r, ok := c.Question.Match("Gdzie można kupić bilet")
	require.True(t, ok)
	assert.Equal(t, "pl-interrogative", r.Name)

	_, ok = c.Question.Match("Kiedyś było lepiej")
	assert.False(t, ok)
}

func TestDefault_Answers(t *testing.T) {
	c := Default()
	yes := []string{"a) Warszawa", "B. Kraków", "1) Gdańsk", "2. Łódź", "- Poznań", "• Opole", "* Lublin", "Tak", "nie", "iv) Toruń", "Yes"}
	for _, s := range yes {
		assert.True(t, c.LooksLikeAnswer(s), s)
	}
	no := []string{"Warszawa", "a)Warszawa", "Tak, oczywiście", "12) za długi numer"}
	for _, s := range no {
		assert.False(t, c.LooksLikeAnswer(s), s)
	}
}

func TestBuiltin(t *testing.T) {
	pl, err := Builtin("PL")
	require.NoError(t, err)
	assert.True(t, pl.LooksLikeAnswer("tak"))
	assert.False(t, pl.LooksLikeAnswer("yes"))

	en, err := Builtin("en")
	require.NoError(t, err)
	assert.True(t, en.LooksLikeQuestion("What is the capital of Poland"))
	assert.False(t, en.LooksLikeQuestion("Jak się nazywa stolica Polski"))

	_, err = Builtin("xx")
	assert.ErrorContains(t, err, "unknown rule set")
	assert.Equal(t, []string{"default", "en", "pl"}, BuiltinNames())
}

func TestDefault_NoDuplicateRuleNames(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Default().Question {
		assert.False(t, seen[r.Name], r.Name)
		seen[r.Name] = true
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "de.yaml")
	body := `extends: en
question:
  - name: frage
    pattern: '(?i)welche[rs]?\s'
answer:
  - pattern: '(?i)^(ja|nein)$'
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, c.LooksLikeQuestion("Welche Stadt ist die Hauptstadt"))
	assert.True(t, c.LooksLikeQuestion("What is it"))
	assert.True(t, c.LooksLikeAnswer("Nein"))

	r, ok := c.Answer.Match("ja")
	require.True(t, ok)
	assert.Equal(t, "answer-1", r.Name)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("question:\n  - name: x\n    pattern: '(['\nanswer:\n  - pattern: a\n"), 0o644))
	_, err := LoadFile(bad)
	assert.ErrorContains(t, err, `rule "x"`)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("question: []\n"), 0o644))
	_, err = LoadFile(empty)
	assert.ErrorContains(t, err, "at least one")

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, len(Default().Question), len(c.Question))

	_, err = Load("pl")
	require.NoError(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "neither a built-in")
}
