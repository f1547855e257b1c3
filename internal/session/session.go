package session

import "github.com/PoluyanbIch/quizbot/internal/service"

// Phase is the step of the conversation a user is in. A user without a stored
// session is in PhaseAwaitingSet; a finished run removes the session.
type Phase int

const (
	PhaseAwaitingSet Phase = iota
	PhaseAwaitingContent
	PhaseAwaitingLimit
	PhaseReady
	PhaseInProgress
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSet:
		return "awaiting_set"
	case PhaseAwaitingContent:
		return "awaiting_content"
	case PhaseAwaitingLimit:
		return "awaiting_limit"
	case PhaseReady:
		return "ready"
	case PhaseInProgress:
		return "in_progress"
	default:
		return "unknown"
	}
}

// Session is one user's quiz state.
//
// Candidates is only set while awaiting a limit. Questions is the shuffled,
// limited run and is set from PhaseReady on. 0 <= Score <= Cursor <= len(Questions).
type Session struct {
	Phase      Phase
	SetName    string
	Candidates []service.QuizQuestion
	Questions  []service.QuizQuestion
	Cursor     int
	Score      int
	Limit      int
}

// Current returns the question at the cursor.
func (s *Session) Current() (service.QuizQuestion, bool) {
	if s == nil || s.Cursor < 0 || s.Cursor >= len(s.Questions) {
		return service.QuizQuestion{}, false
	}
	return s.Questions[s.Cursor], true
}

// Total is the number of questions the score is reported against.
func (s *Session) Total() int {
	switch {
	case s.Limit > 0:
		return s.Limit
	case len(s.Questions) > 0:
		return len(s.Questions)
	default:
		return len(s.Candidates)
	}
}

func (s *Session) HasQuestions() bool {
	return s != nil && len(s.Questions) > 0
}

// clone copies the session. Question slices are shared since they are never
// modified in place.
func (s *Session) clone() *Session {
	c := *s
	return &c
}
