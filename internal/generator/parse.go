package generator

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"trivia-quiz-service/internal/domain"
)

// MalformedError describes an AI payload that failed the validation
// pipeline. Raw keeps the offending text for diagnostic logging; it is never
// returned to end users. Pos is the 0-based index of the failing element, or
// -1 when the failure is not element-specific.
type MalformedError struct {
	Reason string
	Pos    int
	Raw    string
}

func (e *MalformedError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%v: %s at index %d", domain.ErrMalformedResponse, e.Reason, e.Pos)
	}
	return fmt.Sprintf("%v: %s", domain.ErrMalformedResponse, e.Reason)
}

func (e *MalformedError) Unwrap() error { return domain.ErrMalformedResponse }

// RawPayload returns the offending upstream text for diagnostic retention.
func (e *MalformedError) RawPayload() string { return e.Raw }

type parsedQuestion struct {
	text    string
	options []string
	correct int
}

// parseQuestions validates a completion payload, in order: strip an optional
// markdown fence, parse as JSON, require a top-level array, then check every
// element for question text, string options and an in-range correctAnswer.
func parseQuestions(content string) ([]parsedQuestion, error) {
	cleaned := stripCodeFence(content)

	if !json.Valid([]byte(cleaned)) {
		return nil, &MalformedError{Reason: "response is not valid JSON", Pos: -1, Raw: content}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &elements); err != nil {
		return nil, &MalformedError{Reason: "response is not a JSON array", Pos: -1, Raw: content}
	}

	questions := make([]parsedQuestion, 0, len(elements))
	for i, element := range elements {
		var raw struct {
			Question *string  `json:"question"`
			Options  []string `json:"options"`
			Correct  *float64 `json:"correctAnswer"`
		}
		if err := json.Unmarshal(element, &raw); err != nil {
			return nil, &MalformedError{Reason: "invalid question object", Pos: i, Raw: content}
		}
		if raw.Question == nil || strings.TrimSpace(*raw.Question) == "" {
			return nil, &MalformedError{Reason: "missing question text", Pos: i, Raw: content}
		}
		if raw.Options == nil {
			return nil, &MalformedError{Reason: "missing options array", Pos: i, Raw: content}
		}
		if raw.Correct == nil {
			return nil, &MalformedError{Reason: "missing numeric correctAnswer", Pos: i, Raw: content}
		}
		if *raw.Correct != math.Trunc(*raw.Correct) {
			return nil, &MalformedError{Reason: "correctAnswer is not an integer", Pos: i, Raw: content}
		}
		correct := int(*raw.Correct)
		if correct < 0 || correct >= len(raw.Options) {
			return nil, &MalformedError{Reason: "correctAnswer out of range", Pos: i, Raw: content}
		}
		questions = append(questions, parsedQuestion{
			text:    *raw.Question,
			options: raw.Options,
			correct: correct,
		})
	}
	return questions, nil
}

// stripCodeFence removes a surrounding markdown code fence (``` or ```json)
// so fenced and unfenced payloads parse identically.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	// Drop the opening fence line, including any language tag.
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
