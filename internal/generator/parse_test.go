package generator

import (
	"errors"
	"testing"

	"trivia-quiz-service/internal/domain"
)

func TestStripCodeFence(t *testing.T) {
	payload := `[{"question":"q","options":["a","b"],"correctAnswer":0}]`
	cases := []struct {
		name string
		in   string
	}{
		{"bare", payload},
		{"json fence", "```json\n" + payload + "\n```"},
		{"plain fence", "```\n" + payload + "\n```"},
		{"padded", "\n\n```json\n" + payload + "\n```\n\n"},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != payload {
			t.Fatalf("%s: got %q", tc.name, got)
		}
	}
}

func TestParseQuestionsRejections(t *testing.T) {
	cases := []struct {
		name string
		in   string
		pos  int
	}{
		{"not json", "here you go: questions!", -1},
		{"not array", `{"questions": []}`, -1},
		{"missing text", `[{"options":["a","b"],"correctAnswer":0}]`, 0},
		{"options not array", `[{"question":"q","options":"ab","correctAnswer":0}]`, 0},
		{"correct not numeric", `[{"question":"q","options":["a","b"],"correctAnswer":"0"}]`, 0},
		{"correct not integer", `[{"question":"q","options":["a","b"],"correctAnswer":1.7}]`, 0},
		{"correct out of range", `[{"question":"q","options":["a","b"],"correctAnswer":2}]`, 0},
		{"negative correct", `[{"question":"q","options":["a","b"],"correctAnswer":-1}]`, 0},
		{"second element bad", `[{"question":"q","options":["a","b"],"correctAnswer":1},{"question":"q2","options":[],"correctAnswer":0}]`, 1},
	}
	for _, tc := range cases {
		_, err := parseQuestions(tc.in)
		if !errors.Is(err, domain.ErrMalformedResponse) {
			t.Fatalf("%s: expected malformed response, got %v", tc.name, err)
		}
		var malformed *MalformedError
		if !errors.As(err, &malformed) {
			t.Fatalf("%s: expected MalformedError, got %T", tc.name, err)
		}
		if malformed.Pos != tc.pos {
			t.Fatalf("%s: expected pos %d, got %d", tc.name, tc.pos, malformed.Pos)
		}
	}
}

func TestParseQuestionsEmptyArray(t *testing.T) {
	questions, err := parseQuestions(`[]`)
	if err != nil {
		t.Fatalf("empty array should parse: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(questions))
	}
}
