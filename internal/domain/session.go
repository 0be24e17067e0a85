package domain

// Phase is a quiz session's lifecycle stage.
type Phase string

const (
	// PhaseSetup collects generation parameters (generated mode only).
	PhaseSetup Phase = "setup"
	// PhaseAuthoring collects hand-written questions (authored mode only).
	PhaseAuthoring Phase = "authoring"
	// PhasePlaying walks the user through the question set.
	PhasePlaying Phase = "playing"
	// PhaseResults exposes the final score and reward.
	PhaseResults Phase = "results"
)

// SessionMode distinguishes where a session's questions come from.
type SessionMode string

const (
	// ModeGenerated sessions start in Setup and get questions from the AI service.
	ModeGenerated SessionMode = "generated"
	// ModeAuthored sessions start in Authoring and get hand-written questions.
	ModeAuthored SessionMode = "authored"
)

// Valid reports whether the mode is one of the two supported variants.
func (m SessionMode) Valid() bool {
	return m == ModeGenerated || m == ModeAuthored
}

// InitialPhase returns the phase a fresh session of this mode starts in.
func (m SessionMode) InitialPhase() Phase {
	if m == ModeAuthored {
		return PhaseAuthoring
	}
	return PhaseSetup
}

// SessionState is the full, serializable state of one quiz attempt.
// Invariants: Score always equals the number of correct answers;
// CurrentIndex equals len(Answers) while playing; len(Answers) never
// exceeds QuestionSet.Len().
type SessionState struct {
	ID           string          `json:"id"`
	Mode         SessionMode     `json:"mode"`
	Phase        Phase           `json:"phase"`
	Params       *QuizParameters `json:"params,omitempty"`
	QuestionSet  QuestionSet     `json:"questionSet"`
	CurrentIndex int             `json:"currentIndex"`
	Answers      []AnswerRecord  `json:"answers"`
	Score        int             `json:"score"`
}
