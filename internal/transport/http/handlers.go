package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/sharecode"
)

// Handler exposes the quiz lifecycle over a JSON REST API.
type Handler struct {
	service      *app.QuizService
	shareBaseURL string
}

func NewHandler(service *app.QuizService, shareBaseURL string) *Handler {
	return &Handler{service: service, shareBaseURL: shareBaseURL}
}

// Register mounts all REST routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/generate-quiz", h.handleGenerateQuiz)
	mux.HandleFunc("POST /api/sessions", h.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/generate", h.handleSessionGenerate)
	mux.HandleFunc("POST /api/sessions/{id}/begin", h.handleSessionBegin)
	mux.HandleFunc("POST /api/sessions/{id}/answers", h.handleSubmitAnswer)
	mux.HandleFunc("GET /api/sessions/{id}/results", h.handleResults)
	mux.HandleFunc("POST /api/sessions/{id}/reset", h.handleReset)
	mux.HandleFunc("POST /api/share", h.handleShareEncode)
	mux.HandleFunc("GET /api/share", h.handleShareDecode)
}

type generateResponse struct {
	Success   bool                       `json:"success"`
	Questions []domain.Question          `json:"questions"`
	Metadata  domain.QuestionSetMetadata `json:"metadata"`
}

// handleGenerateQuiz is the standalone generation endpoint: parameters in,
// validated question set out. Sessions are not involved.
func (h *Handler) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var params domain.QuizParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	set, err := h.service.GenerateQuestions(r.Context(), params)
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{
		Success:   true,
		Questions: set.Questions,
		Metadata:  set.Metadata,
	})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode domain.SessionMode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	state, err := h.service.CreateSession(r.Context(), body.Mode)
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleSessionGenerate(w http.ResponseWriter, r *http.Request) {
	var params domain.QuizParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	state, err := h.service.GenerateAndBegin(r.Context(), r.PathValue("id"), params)
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleSessionBegin(w http.ResponseWriter, r *http.Request) {
	var quiz domain.AuthoredQuiz
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	state, err := h.service.BeginAuthored(r.Context(), r.PathValue("id"), quiz)
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OptionIndex int `json:"optionIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record, state, err := h.service.SubmitAnswer(r.Context(), r.PathValue("id"), body.OptionIndex)
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Record domain.AnswerRecord `json:"record"`
		State  domain.SessionState `json:"state"`
	}{record, state})
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Results(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Reset(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErrorFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleShareEncode(w http.ResponseWriter, r *http.Request) {
	var quiz domain.AuthoredQuiz
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := sharecode.Encode(quiz)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode quiz")
		return
	}
	resp := struct {
		Token string `json:"token"`
		URL   string `json:"url,omitempty"`
	}{Token: token}
	if h.shareBaseURL != "" {
		resp.URL = h.shareBaseURL + "?quiz=" + url.QueryEscape(token)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleShareDecode never fails outward: an unusable token falls back to the
// blank authoring quiz with decoded=false.
func (h *Handler) handleShareDecode(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	quiz, err := sharecode.Decode(token)
	decoded := err == nil
	if !decoded {
		quiz = domain.NewBlankAuthoredQuiz()
	}
	writeJSON(w, http.StatusOK, struct {
		Decoded bool                `json:"decoded"`
		Quiz    domain.AuthoredQuiz `json:"quiz"`
	}{decoded, quiz})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{message})
}

// writeErrorFor maps domain errors onto HTTP statuses. Raw AI payloads never
// reach the response; typed error messages do.
func writeErrorFor(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidParameters),
		errors.Is(err, domain.ErrOptionOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyQuestionSet),
		errors.Is(err, domain.ErrIncompleteAuthoring):
		return http.StatusUnprocessableEntity
	default:
		// MissingCredential, UpstreamFailure, MalformedResponse.
		return http.StatusInternalServerError
	}
}
