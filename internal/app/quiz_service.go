package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"trivia-quiz-service/internal/domain"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Create(mode domain.SessionMode) *Session
	Get(id string) (*Session, bool)
	// Save persists the session's current snapshot; in-memory stores may no-op.
	Save(session *Session)
	Delete(id string)
}

// QuestionSource produces a validated question set for the given parameters.
type QuestionSource interface {
	RequestQuestions(ctx context.Context, params domain.QuizParameters) (domain.QuestionSet, error)
}

// FailureSink retains diagnostic records of failed acquisition attempts.
type FailureSink interface {
	Record(ctx context.Context, failure domain.GenerationFailure) error
}

// NopFailureSink discards diagnostics.
type NopFailureSink struct{}

func (NopFailureSink) Record(context.Context, domain.GenerationFailure) error { return nil }

// rawCarrier is implemented by errors that retain the offending upstream
// payload for diagnostics.
type rawCarrier interface {
	RawPayload() string
}

// QuizService contains the quiz lifecycle use cases.
type QuizService struct {
	sessions SessionRepository
	source   QuestionSource
	failures FailureSink
	sf       singleflight.Group
}

func NewQuizService(sessions SessionRepository, source QuestionSource, failures FailureSink) *QuizService {
	if failures == nil {
		failures = NopFailureSink{}
	}
	return &QuizService{sessions: sessions, source: source, failures: failures}
}

// CreateSession starts a fresh session in the mode's initial phase.
func (s *QuizService) CreateSession(_ context.Context, mode domain.SessionMode) (domain.SessionState, error) {
	if !mode.Valid() {
		return domain.SessionState{}, fmt.Errorf("%w: unknown session mode %q", domain.ErrInvalidParameters, mode)
	}
	session := s.sessions.Create(mode)
	return session.Snapshot(), nil
}

// GetSession returns the current snapshot of a session.
func (s *QuizService) GetSession(_ context.Context, id string) (domain.SessionState, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// GenerateQuestions runs one acquisition request outside any session,
// backing the public generate endpoint. Failed attempts are recorded for
// diagnostics before the error is returned.
func (s *QuizService) GenerateQuestions(ctx context.Context, params domain.QuizParameters) (domain.QuestionSet, error) {
	set, err := s.source.RequestQuestions(ctx, params)
	if err != nil {
		s.recordFailure(ctx, params, err)
		return domain.QuestionSet{}, err
	}
	return set, nil
}

// GenerateAndBegin configures the session, acquires questions and moves the
// session into Playing. Overlapping requests for the same session coalesce
// into a single upstream call; per-session transitions are never concurrent.
func (s *QuizService) GenerateAndBegin(ctx context.Context, id string, params domain.QuizParameters) (domain.SessionState, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}

	_, err, _ := s.sf.Do(id, func() (interface{}, error) {
		if err := session.configure(params); err != nil {
			return nil, err
		}
		set, err := s.source.RequestQuestions(ctx, params)
		if err != nil {
			s.recordFailure(ctx, params, err)
			return nil, err
		}
		if err := session.beginWithQuestions(set); err != nil {
			return nil, err
		}
		s.sessions.Save(session)
		return nil, nil
	})
	if err != nil {
		return domain.SessionState{}, err
	}
	return session.Snapshot(), nil
}

// BeginAuthored starts play with hand-written questions (or a decoded share
// quiz). Authoring validation applies when the session is in Authoring.
func (s *QuizService) BeginAuthored(_ context.Context, id string, quiz domain.AuthoredQuiz) (domain.SessionState, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	if err := session.beginWithQuestions(questionSetFromAuthored(quiz)); err != nil {
		return domain.SessionState{}, err
	}
	s.sessions.Save(session)
	return session.Snapshot(), nil
}

// SubmitAnswer applies one answer and returns the record plus the new state.
func (s *QuizService) SubmitAnswer(_ context.Context, id string, selected int) (domain.AnswerRecord, domain.SessionState, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return domain.AnswerRecord{}, domain.SessionState{}, domain.ErrSessionNotFound
	}
	record, err := session.submitAnswer(selected)
	if err != nil {
		return domain.AnswerRecord{}, domain.SessionState{}, err
	}
	s.sessions.Save(session)
	return record, session.Snapshot(), nil
}

// ResultsView bundles everything the results screen needs.
type ResultsView struct {
	Reward  domain.Reward         `json:"reward"`
	Answers []domain.AnswerRecord `json:"answers"`
}

// Results computes the reward for a finished session.
func (s *QuizService) Results(_ context.Context, id string) (ResultsView, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return ResultsView{}, domain.ErrSessionNotFound
	}
	reward, err := session.computeReward()
	if err != nil {
		return ResultsView{}, err
	}
	return ResultsView{Reward: reward, Answers: session.Snapshot().Answers}, nil
}

// Reset returns the session to its initial phase, clearing all fields.
func (s *QuizService) Reset(_ context.Context, id string) (domain.SessionState, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	session.reset()
	s.sessions.Save(session)
	return session.Snapshot(), nil
}

func (s *QuizService) recordFailure(ctx context.Context, params domain.QuizParameters, cause error) {
	if errors.Is(cause, domain.ErrInvalidParameters) || errors.Is(cause, domain.ErrMissingCredential) {
		// Nothing upstream happened; not worth a diagnostic row.
		return
	}
	failure := domain.GenerationFailure{
		Category:  params.Category,
		Level:     params.Level,
		Type:      params.Type,
		Requested: params.NumberOfQuestions,
		Reason:    cause.Error(),
	}
	var raw rawCarrier
	if errors.As(cause, &raw) {
		failure.RawResponse = raw.RawPayload()
	}
	if err := s.failures.Record(ctx, failure); err != nil {
		log.Printf("failed to record generation failure: %v", err)
	}
}

// questionSetFromAuthored projects an authored quiz into a playable set,
// stamping positional ids the same way the acquisition path does.
func questionSetFromAuthored(quiz domain.AuthoredQuiz) domain.QuestionSet {
	questions := make([]domain.Question, 0, len(quiz.Questions))
	for i, q := range quiz.Questions {
		qType := domain.TypeMultiple
		if len(q.Options) == 2 {
			qType = domain.TypeBoolean
		}
		questions = append(questions, domain.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Type:          qType,
		})
	}
	return domain.QuestionSet{
		Questions: questions,
		Metadata:  domain.QuestionSetMetadata{Total: len(questions)},
	}
}
