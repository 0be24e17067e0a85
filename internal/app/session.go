package app

import (
	"fmt"
	"strings"
	"sync"

	"trivia-quiz-service/internal/domain"
)

// Session owns the lifecycle of a single quiz attempt. All transitions go
// through the methods below; state is never mutated from outside. Score and
// answers are always updated together inside one locked transition, so the
// score stays recomputable from the answer list.
type Session struct {
	mu    sync.Mutex
	state domain.SessionState
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string, mode domain.SessionMode) *Session {
	return &Session{state: domain.SessionState{
		ID:      id,
		Mode:    mode,
		Phase:   mode.InitialPhase(),
		Answers: []domain.AnswerRecord{},
	}}
}

// RestoreSession rebuilds a session from a persisted snapshot.
func RestoreSession(state domain.SessionState) *Session {
	if state.Answers == nil {
		state.Answers = []domain.AnswerRecord{}
	}
	return &Session{state: state}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ID
}

// Snapshot returns a defensive copy of the current state.
func (s *Session) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() domain.SessionState {
	snap := s.state
	snap.Answers = append([]domain.AnswerRecord(nil), s.state.Answers...)
	snap.QuestionSet.Questions = append([]domain.Question(nil), s.state.QuestionSet.Questions...)
	if s.state.Params != nil {
		params := *s.state.Params
		snap.Params = &params
	}
	return snap
}

// configure stores quiz parameters. Valid only in Setup; the question count
// is clamped into range here, out-of-range values are rejected later by the
// acquisition call.
func (s *Session) configure(params domain.QuizParameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != domain.PhaseSetup {
		return fmt.Errorf("%w: configure requires setup, session is %s", domain.ErrInvalidTransition, s.state.Phase)
	}
	params.Clamp()
	s.state.Params = &params
	return nil
}

// beginWithQuestions binds a question set and transitions to Playing,
// resetting index, answers and score. Valid from Setup or Authoring.
func (s *Session) beginWithQuestions(set domain.QuestionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != domain.PhaseSetup && s.state.Phase != domain.PhaseAuthoring {
		return fmt.Errorf("%w: cannot begin from %s", domain.ErrInvalidTransition, s.state.Phase)
	}
	if set.Len() == 0 {
		return domain.ErrEmptyQuestionSet
	}
	if s.state.Phase == domain.PhaseAuthoring {
		if err := validateAuthored(set); err != nil {
			return err
		}
	}
	for i, q := range set.Questions {
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %d has no options", domain.ErrEmptyQuestionSet, i)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("%w: question %d marks option %d of %d as correct",
				domain.ErrIncompleteAuthoring, i, q.CorrectAnswer, len(q.Options))
		}
	}
	s.state.QuestionSet = set
	s.state.Phase = domain.PhasePlaying
	s.state.CurrentIndex = 0
	s.state.Answers = []domain.AnswerRecord{}
	s.state.Score = 0
	return nil
}

// validateAuthored enforces the authoring rules: every question needs text
// and at least two populated options.
func validateAuthored(set domain.QuestionSet) error {
	for i, q := range set.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: question %d has no text", domain.ErrIncompleteAuthoring, i)
		}
		populated := 0
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) != "" {
				populated++
			}
		}
		if populated < 2 {
			return fmt.Errorf("%w: question %d needs at least 2 options", domain.ErrIncompleteAuthoring, i)
		}
	}
	return nil
}

// submitAnswer records the answer for the current question, applied
// atomically: any reveal delay before advancing belongs to the view layer,
// not here. The last answer moves the session to Results.
func (s *Session) submitAnswer(selected int) (domain.AnswerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != domain.PhasePlaying {
		return domain.AnswerRecord{}, fmt.Errorf("%w: submit requires playing, session is %s", domain.ErrInvalidTransition, s.state.Phase)
	}
	question := s.state.QuestionSet.Questions[s.state.CurrentIndex]
	if selected < 0 || selected >= len(question.Options) {
		return domain.AnswerRecord{}, fmt.Errorf("%w: option %d of %d", domain.ErrOptionOutOfRange, selected, len(question.Options))
	}

	record := domain.AnswerRecord{
		QuestionIndex:  s.state.CurrentIndex,
		SelectedAnswer: selected,
		IsCorrect:      selected == question.CorrectAnswer,
	}
	s.state.Answers = append(s.state.Answers, record)
	if record.IsCorrect {
		s.state.Score++
	}

	if s.state.CurrentIndex+1 < s.state.QuestionSet.Len() {
		s.state.CurrentIndex++
	} else {
		s.state.Phase = domain.PhaseResults
	}
	return record, nil
}

// computeReward derives the reward tier. Valid only in Results.
func (s *Session) computeReward() (domain.Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != domain.PhaseResults {
		return domain.Reward{}, fmt.Errorf("%w: reward requires results, session is %s", domain.ErrInvalidTransition, s.state.Phase)
	}
	return domain.RewardFor(s.state.Score, s.state.QuestionSet.Len()), nil
}

// reset returns to the mode's initial phase and clears all session fields.
// Always succeeds, from any state.
func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.SessionState{
		ID:      s.state.ID,
		Mode:    s.state.Mode,
		Phase:   s.state.Mode.InitialPhase(),
		Answers: []domain.AnswerRecord{},
	}
}
