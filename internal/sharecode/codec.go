// Package sharecode turns an authored quiz into a shareable token and back.
// The token is the quiz's only persistence: standard base64 of a minified
// JSON projection {t, d, q: [{q, o, c}]}. Percent-escaping belongs to the
// layer that embeds the token in a URL; Decode also accepts tokens that still
// carry their escapes, so links minted by the original web client resolve.
package sharecode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"trivia-quiz-service/internal/domain"
)

type wireQuiz struct {
	Title       string         `json:"t"`
	Description string         `json:"d"`
	Questions   []wireQuestion `json:"q"`
}

type wireQuestion struct {
	Text    string   `json:"q"`
	Options []string `json:"o"`
	Correct int      `json:"c"`
}

// Encode projects the quiz to its minimal field set and renders it as a
// base64 token. Lossless for arbitrary text content. Callers embedding the
// token in a URL escape it there; query parsing undoes that escape, so the
// token reaching Decode is this exact string.
func Encode(quiz domain.AuthoredQuiz) (string, error) {
	wire := wireQuiz{
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   make([]wireQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		wire.Questions = append(wire.Questions, wireQuestion{
			Text:    q.Text,
			Options: q.Options,
			Correct: q.CorrectAnswer,
		})
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encode share token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode reverses Encode. Tokens read out of a URL query arrive already
// percent-decoded; a second unescape would corrupt any '+' in the base64, so
// the token is parsed as-is, with one unescape-and-retry for tokens passed
// around verbatim in their escaped form. Any malformed token yields
// domain.ErrDecodeFailure; callers fall back to a blank authored quiz.
func Decode(token string) (domain.AuthoredQuiz, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		unescaped, uerr := url.QueryUnescape(token)
		if uerr != nil {
			return domain.AuthoredQuiz{}, fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
		}
		data, uerr = base64.StdEncoding.DecodeString(unescaped)
		if uerr != nil {
			return domain.AuthoredQuiz{}, fmt.Errorf("%w: %v", domain.ErrDecodeFailure, uerr)
		}
	}
	var wire wireQuiz
	if err := json.Unmarshal(data, &wire); err != nil {
		return domain.AuthoredQuiz{}, fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}
	if len(wire.Questions) == 0 {
		return domain.AuthoredQuiz{}, fmt.Errorf("%w: no questions", domain.ErrDecodeFailure)
	}
	quiz := domain.AuthoredQuiz{
		Title:       wire.Title,
		Description: wire.Description,
		Questions:   make([]domain.AuthoredQuestion, 0, len(wire.Questions)),
	}
	for i, q := range wire.Questions {
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return domain.AuthoredQuiz{}, fmt.Errorf("%w: question %d marks option %d of %d as correct",
				domain.ErrDecodeFailure, i, q.Correct, len(q.Options))
		}
		quiz.Questions = append(quiz.Questions, domain.AuthoredQuestion{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.Correct,
		})
	}
	return quiz, nil
}
