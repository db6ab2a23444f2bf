package actuate

import "github.com/hyperifyio/quizlens/internal/dom"

// Marker is a named set of inline style declarations.
type Marker struct {
	Name  string
	Style []dom.Declaration
}

var (
	// QuestionMarker outlines the detected question.
	QuestionMarker = Marker{Name: "question", Style: []dom.Declaration{
		{Property: "border", Value: "3px solid blue"},
		{Property: "background-color", Value: "rgba(0, 0, 255, 0.1)"},
	}}
	// CandidateMarker outlines each detected answer option.
	CandidateMarker = Marker{Name: "candidate", Style: []dom.Declaration{
		{Property: "border", Value: "2px solid orange"},
		{Property: "background-color", Value: "rgba(255, 165, 0, 0.1)"},
	}}
	// AnswerMarker is the persistent highlight of the chosen answer.
	AnswerMarker = Marker{Name: "answer", Style: []dom.Declaration{
		{Property: "background-color", Value: "lightgreen"},
		{Property: "border", Value: "4px solid green"},
		{Property: "padding", Value: "5px"},
		{Property: "border-radius", Value: "5px"},
	}}
)
