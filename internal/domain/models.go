package domain

// QuestionType selects how many options a question carries.
type QuestionType string

const (
	// TypeMultiple is a four-option multiple choice question.
	TypeMultiple QuestionType = "multiple"
	// TypeBoolean is a two-option True/False question.
	TypeBoolean QuestionType = "boolean"
)

// Difficulty is the requested question level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// OptionCount returns how many options a question of this type must have.
func (t QuestionType) OptionCount() int {
	if t == TypeBoolean {
		return 2
	}
	return 4
}

// Valid reports whether the difficulty is one of the supported levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Valid reports whether the question type is supported.
func (t QuestionType) Valid() bool {
	return t == TypeMultiple || t == TypeBoolean
}

const (
	// MinQuestions and MaxQuestions bound how many questions one
	// generation request may ask for.
	MinQuestions = 1
	MaxQuestions = 50
)

// QuizParameters configures one generation request. Field names mirror the
// public API payload.
type QuizParameters struct {
	NumberOfQuestions int          `json:"numberOfQuestions"`
	Category          string       `json:"category"`
	Level             Difficulty   `json:"level"`
	Type              QuestionType `json:"type"`
}

// Clamp forces NumberOfQuestions into the allowed range.
func (p *QuizParameters) Clamp() {
	if p.NumberOfQuestions < MinQuestions {
		p.NumberOfQuestions = MinQuestions
	}
	if p.NumberOfQuestions > MaxQuestions {
		p.NumberOfQuestions = MaxQuestions
	}
}

// Question is a single playable question. CorrectAnswer is a 0-based index
// into Options.
type Question struct {
	ID            string       `json:"id"`
	Text          string       `json:"question"`
	Options       []string     `json:"options"`
	CorrectAnswer int          `json:"correctAnswer"`
	Level         Difficulty   `json:"level,omitempty"`
	Category      string       `json:"category,omitempty"`
	Type          QuestionType `json:"type,omitempty"`
}

// QuestionSetMetadata echoes the parameters a set was produced from.
type QuestionSetMetadata struct {
	Total    int          `json:"total"`
	Category string       `json:"category"`
	Level    Difficulty   `json:"level"`
	Type     QuestionType `json:"type"`
}

// QuestionSet is the ordered list of questions bound to a session. The order
// is the presentation order and never changes after the set is built.
type QuestionSet struct {
	Questions []Question          `json:"questions"`
	Metadata  QuestionSetMetadata `json:"metadata"`
}

// Len returns the number of questions in the set.
func (s QuestionSet) Len() int { return len(s.Questions) }

// AnswerRecord is produced exactly once per question, in increasing
// QuestionIndex order.
type AnswerRecord struct {
	QuestionIndex  int  `json:"questionIndex"`
	SelectedAnswer int  `json:"selectedAnswer"`
	IsCorrect      bool `json:"isCorrect"`
}

// AuthoredQuestion is one hand-written question in an authored quiz.
type AuthoredQuestion struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// AuthoredQuiz is a user-authored quiz. The share token is its only
// persistence; nothing is stored server-side.
type AuthoredQuiz struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []AuthoredQuestion `json:"questions"`
}

// NewBlankAuthoredQuiz returns the default authoring state: a single empty
// question with four empty options. Used as the fallback when a share token
// fails to decode.
func NewBlankAuthoredQuiz() AuthoredQuiz {
	return AuthoredQuiz{
		Questions: []AuthoredQuestion{
			{Options: []string{"", "", "", ""}, CorrectAnswer: 0},
		},
	}
}

// GenerationFailure captures a failed acquisition attempt for diagnostics.
// RawResponse is retained for operators only and never shown to users.
type GenerationFailure struct {
	Category    string
	Level       Difficulty
	Type        QuestionType
	Requested   int
	Reason      string
	RawResponse string
}
