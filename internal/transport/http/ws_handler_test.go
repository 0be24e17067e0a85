package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
)

func newWSTestServer(t *testing.T) (*httptest.Server, *app.QuizService) {
	t.Helper()
	service := app.NewQuizService(memory.NewSessionStore(), &stubSource{set: testSet()}, nil)
	wsHandler := NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, service
}

func dialWS(t *testing.T, server *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(server.URL, "http://", "ws://", 1) + "/ws?sessionId=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, wantType string, payload any) {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != wantType {
		t.Fatalf("expected %q message, got %q (%s)", wantType, msg.Type, msg.Payload)
	}
	if payload != nil {
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			t.Fatalf("unmarshal %s payload: %v", wantType, err)
		}
	}
}

func sendMessage(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := conn.WriteJSON(map[string]any{"type": msgType, "payload": json.RawMessage(data)}); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestWSAnswerFlow(t *testing.T) {
	server, service := newWSTestServer(t)
	ctx := context.Background()

	state, err := service.CreateSession(ctx, domain.ModeGenerated)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := service.GenerateAndBegin(ctx, state.ID, domain.QuizParameters{
		NumberOfQuestions: 2, Category: "science", Level: domain.DifficultyEasy, Type: domain.TypeMultiple,
	}); err != nil {
		t.Fatalf("begin: %v", err)
	}

	conn := dialWS(t, server, state.ID)

	var snapshot domain.SessionState
	readMessage(t, conn, "state", &snapshot)
	if snapshot.Phase != domain.PhasePlaying || len(snapshot.QuestionSet.Questions) != 2 {
		t.Fatalf("unexpected initial state: %+v", snapshot)
	}

	sendMessage(t, conn, "answer", answerPayload{OptionIndex: 1})
	var result answerResult
	readMessage(t, conn, "answerResult", &result)
	if !result.IsCorrect || result.Score != 1 || result.CorrectAnswer != 1 {
		t.Fatalf("unexpected answer result: %+v", result)
	}
	readMessage(t, conn, "state", &snapshot)
	if snapshot.CurrentIndex != 1 {
		t.Fatalf("expected advance to question 1, got %d", snapshot.CurrentIndex)
	}

	// The final answer yields result, state and the reward view.
	sendMessage(t, conn, "answer", answerPayload{OptionIndex: 2})
	readMessage(t, conn, "answerResult", &result)
	if result.IsCorrect {
		t.Fatalf("expected wrong answer, got %+v", result)
	}
	readMessage(t, conn, "state", &snapshot)
	if snapshot.Phase != domain.PhaseResults {
		t.Fatalf("expected results phase, got %s", snapshot.Phase)
	}
	var view app.ResultsView
	readMessage(t, conn, "results", &view)
	if view.Reward.Score != 1 || view.Reward.Total != 2 {
		t.Fatalf("unexpected reward: %+v", view.Reward)
	}
}

func TestWSReset(t *testing.T) {
	server, service := newWSTestServer(t)
	ctx := context.Background()

	state, err := service.CreateSession(ctx, domain.ModeGenerated)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	conn := dialWS(t, server, state.ID)
	readMessage(t, conn, "state", nil)

	sendMessage(t, conn, "reset", struct{}{})
	var snapshot domain.SessionState
	readMessage(t, conn, "state", &snapshot)
	if snapshot.Phase != domain.PhaseSetup {
		t.Fatalf("expected setup after reset, got %s", snapshot.Phase)
	}
}

func TestWSRejectsUnknownSession(t *testing.T) {
	server, _ := newWSTestServer(t)

	wsURL := strings.Replace(server.URL, "http://", "ws://", 1) + "/ws?sessionId=nope"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 handshake response, got %+v", resp)
	}
}

func TestWSAnswerOutsidePlaying(t *testing.T) {
	server, service := newWSTestServer(t)

	state, err := service.CreateSession(context.Background(), domain.ModeGenerated)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	conn := dialWS(t, server, state.ID)
	readMessage(t, conn, "state", nil)

	sendMessage(t, conn, "answer", answerPayload{OptionIndex: 0})
	var errMsg errorPayload
	readMessage(t, conn, "error", &errMsg)
	if errMsg.Message == "" {
		t.Fatalf("expected error message for answer in setup phase")
	}
}
