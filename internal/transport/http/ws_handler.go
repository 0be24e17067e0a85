package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

// WSHandler drives one quiz session interactively over a websocket: the
// client submits answers, the server streams state snapshots, answer results
// and the final reward. One connection per session; transitions stay
// serialized because the single read loop is the only writer.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	OptionIndex int `json:"optionIndex"`
}

type answerResult struct {
	QuestionIndex  int  `json:"questionIndex"`
	SelectedAnswer int  `json:"selectedAnswer"`
	IsCorrect      bool `json:"isCorrect"`
	CorrectAnswer  int  `json:"correctAnswer"`
	Score          int  `json:"score"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and wires the connection into the session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}

	state, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	h.send(conn, "state", state)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.send(conn, "error", errorPayload{Message: "invalid answer payload"})
				continue
			}
			record, state, err := h.service.SubmitAnswer(r.Context(), sessionID, payload.OptionIndex)
			if err != nil {
				h.send(conn, "error", errorPayload{Message: err.Error()})
				continue
			}
			h.send(conn, "answerResult", answerResult{
				QuestionIndex:  record.QuestionIndex,
				SelectedAnswer: record.SelectedAnswer,
				IsCorrect:      record.IsCorrect,
				CorrectAnswer:  state.QuestionSet.Questions[record.QuestionIndex].CorrectAnswer,
				Score:          state.Score,
			})
			h.send(conn, "state", state)
			if state.Phase == domain.PhaseResults {
				view, err := h.service.Results(r.Context(), sessionID)
				if err == nil {
					h.send(conn, "results", view)
				}
			}
		case "reset":
			state, err := h.service.Reset(r.Context(), sessionID)
			if err != nil {
				h.send(conn, "error", errorPayload{Message: err.Error()})
				continue
			}
			h.send(conn, "state", state)
		default:
			h.send(conn, "error", errorPayload{Message: "unsupported message type"})
		}
	}
}

func (h *WSHandler) send(conn *websocket.Conn, msgType string, payload any) {
	if err := conn.WriteJSON(outboundMessage[any]{Type: msgType, Payload: payload}); err != nil {
		if !errors.Is(err, websocket.ErrCloseSent) {
			log.Printf("ws write error: %v", err)
		}
	}
}
