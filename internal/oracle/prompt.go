package oracle

import (
	"fmt"
	"strings"
)

const textPromptPL = `Jesteś ekspertem w rozwiązywaniu quizów. Przeanalizuj poniższe pytanie i listę odpowiedzi. Twoim zadaniem jest wybrać jedną, poprawną odpowiedź.

PYTANIE:
"%s"

MOŻLIWE ODPOWIEDZI:
%s

INSTRUKCJE:
1. Uważnie przeczytaj pytanie i wszystkie odpowiedzi.
2. Wykorzystaj swoją wiedzę, aby wybrać najlepszą odpowiedź.
3. Zwróć TYLKO I WYŁĄCZNIE DOKŁADNY TEKST wybranej odpowiedzi z powyższej listy.
4. Nie dodawaj żadnych wyjaśnień, numeracji, ani słów typu "Odpowiedź:". Skopiuj tekst 1:1.

PRAWIDŁOWA ODPOWIEDŹ:`

const textPromptEN = `You are an expert at solving quizzes. Read the question and the list of answers below. Your task is to pick the one correct answer.

QUESTION:
"%s"

POSSIBLE ANSWERS:
%s

INSTRUCTIONS:
1. Read the question and every answer carefully.
2. Use your knowledge to choose the best answer.
3. Return ONLY the EXACT TEXT of the chosen answer from the list above.
4. Do not add explanations, numbering or words such as "Answer:". Copy the text verbatim.

CORRECT ANSWER:`

const imagePromptPL = `Przeanalizuj zrzut ekranu przedstawiający pytanie z testu wielokrotnego wyboru.

TWOJE ZADANIE:
1. Zidentyfikuj pytanie na obrazku.
2. Zidentyfikuj wszystkie możliwe opcje odpowiedzi.
3. Wybierz jedną, prawidłową odpowiedź.

INSTRUKCJE DOTYCZĄCE ODPOWIEDZI:
- Zwróć TYLKO I WYŁĄCZNIE DOKŁADNY TEKST prawidłowej odpowiedzi, tak jak jest widoczny na obrazku.
- Skopiuj odpowiedź 1:1, wliczając w to litery lub cyfry na początku.
- Nie dodawaj żadnych wyjaśnień ani komentarzy.

PRAWIDŁOWA ODPOWIEDŹ:`

const imagePromptEN = `Analyse the screenshot showing a multiple-choice test question.

YOUR TASK:
1. Identify the question in the image.
2. Identify every answer option.
3. Choose the one correct answer.

ANSWER INSTRUCTIONS:
- Return ONLY the EXACT TEXT of the correct answer as it appears in the image.
- Copy it verbatim, including any leading letters or digits.
- Do not add explanations or comments.

CORRECT ANSWER:`

func isEnglish(lang string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(lang)), "en")
}

// TextPrompt renders the question and its options, one "- option" line each.
func TextPrompt(lang, question string, answers []string) string {
	lines := make([]string, len(answers))
	for i, a := range answers {
		lines[i] = "- " + a
	}
	tmpl := textPromptPL
	if isEnglish(lang) {
		tmpl = textPromptEN
	}
	return fmt.Sprintf(tmpl, question, strings.Join(lines, "\n"))
}

// ImagePrompt is the instruction sent with a screenshot.
func ImagePrompt(lang string) string {
	if isEnglish(lang) {
		return imagePromptEN
	}
	return imagePromptPL
}
