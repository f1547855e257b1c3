package session

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PoluyanbIch/quizbot/internal/service"
)

const (
	CommandStart   = "/start"
	CommandNewTest = "/newtest"
	CommandScore   = "/score"
	CommandTop     = "/top"
)

var (
	ErrOutOfRange      = errors.New("question limit out of range")
	ErrNoActiveSession = errors.New("no active session")
)

// QuestionSource provides the built-in sets and parses user submissions.
type QuestionSource interface {
	SetNames() []string
	HasSet(name string) bool
	Questions(name string) []service.QuizQuestion
	ParseSubmission(raw string) ([]service.QuizQuestion, error)
}

// Sampler picks limit questions at random without replacement.
type Sampler interface {
	ShuffleQuestionsWithLimit(questions []service.QuizQuestion, limit int) []service.QuizQuestion
}

// Reply is one outbound message. Keyboard rows are suggested reply labels.
type Reply struct {
	Text     string
	Keyboard [][]string
	OneTime  bool
	Markdown bool
}

// Result describes a finished run.
type Result struct {
	SetName string
	Score   int
	Total   int
}

// Outcome is the effect of one inbound message. A nil Session means the user
// has no session afterwards. Err carries a recovered condition for logging.
type Outcome struct {
	Session   *Session
	Replies   []Reply
	Completed *Result
	Err       error
}

// Machine computes session transitions. It performs no I/O and never mutates
// the session it is given.
type Machine struct {
	source  QuestionSource
	sampler Sampler
	msg     *Messages
}

func NewMachine(source QuestionSource, sampler Sampler, msg *Messages) *Machine {
	return &Machine{source: source, sampler: sampler, msg: msg}
}

func (m *Machine) Messages() *Messages { return m.msg }

// Transition handles one message from a user whose current session is current
// (nil when absent).
func (m *Machine) Transition(current *Session, text string) Outcome {
	text = strings.TrimSpace(text)
	if text == "" {
		return Outcome{Session: current}
	}

	switch text {
	case CommandStart:
		return m.start()
	case CommandNewTest, m.msg.NewTestButton():
		return m.newTest()
	case CommandScore:
		return m.score(current)
	}

	if current != nil {
		switch current.Phase {
		case PhaseAwaitingContent:
			return m.submitContent(current, text)
		case PhaseAwaitingLimit:
			return m.chooseLimit(current, text)
		}
	}

	if (current == nil || current.Phase == PhaseAwaitingSet) && m.source.HasSet(text) {
		return m.selectSet(text)
	}

	if text == m.msg.StartButton() && current.HasQuestions() {
		return m.begin(current)
	}

	if !current.HasQuestions() {
		return Outcome{
			Session: current,
			Replies: []Reply{{Text: m.msg.StartFirst()}},
			Err:     ErrNoActiveSession,
		}
	}

	return m.answer(current, text)
}

func (m *Machine) start() Outcome {
	names := m.source.SetNames()
	keyboard := make([][]string, 0, len(names)+1)
	for _, name := range names {
		keyboard = append(keyboard, []string{name})
	}
	keyboard = append(keyboard, []string{m.msg.NewTestButton()})

	return Outcome{Replies: []Reply{{Text: m.msg.Welcome(), Keyboard: keyboard}}}
}

func (m *Machine) newTest() Outcome {
	return Outcome{
		Session: &Session{Phase: PhaseAwaitingContent},
		Replies: []Reply{{Text: m.msg.SubmissionFormat(), Markdown: true}},
	}
}

func (m *Machine) score(current *Session) Outcome {
	if current == nil {
		return Outcome{
			Replies: []Reply{{Text: m.msg.NoActiveTest()}},
			Err:     ErrNoActiveSession,
		}
	}

	text := m.msg.Score(current.Score, current.Cursor-current.Score, current.Cursor, current.Total())
	return Outcome{Session: current, Replies: []Reply{{Text: text}}}
}

func (m *Machine) submitContent(current *Session, text string) Outcome {
	questions, err := m.source.ParseSubmission(text)
	if err != nil || len(questions) == 0 {
		return Outcome{
			Session: current,
			Replies: []Reply{{Text: m.msg.SubmissionRejected()}},
			Err:     err,
		}
	}

	next := current.clone()
	next.Phase = PhaseAwaitingLimit
	next.Candidates = questions
	return Outcome{Session: next, Replies: []Reply{{Text: m.msg.SubmissionAccepted(len(questions))}}}
}

func (m *Machine) selectSet(name string) Outcome {
	questions := m.source.Questions(name)
	if len(questions) == 0 {
		return Outcome{Replies: []Reply{{Text: m.msg.SetEmpty(name)}}}
	}

	next := &Session{
		Phase:      PhaseAwaitingLimit,
		SetName:    name,
		Candidates: questions,
	}
	return Outcome{Session: next, Replies: []Reply{{Text: m.msg.SetSelected(name, len(questions))}}}
}

func (m *Machine) chooseLimit(current *Session, text string) Outcome {
	size := len(current.Candidates)
	limit, err := strconv.Atoi(text)
	if err != nil || limit < 1 || limit > size {
		return Outcome{
			Session: current,
			Replies: []Reply{{Text: m.msg.LimitRange(size)}},
			Err:     ErrOutOfRange,
		}
	}

	next := current.clone()
	next.Phase = PhaseReady
	next.Limit = limit
	next.Questions = m.sampler.ShuffleQuestionsWithLimit(current.Candidates, limit)
	next.Candidates = nil
	next.Cursor = 0
	next.Score = 0

	return Outcome{
		Session: next,
		Replies: []Reply{{
			Text:     m.msg.Ready(limit),
			Keyboard: [][]string{{m.msg.StartButton()}},
			OneTime:  true,
		}},
	}
}

func (m *Machine) begin(current *Session) Outcome {
	next := current.clone()
	next.Phase = PhaseInProgress

	reply, ok := m.questionReply(next)
	if !ok {
		return Outcome{Session: current}
	}
	return Outcome{Session: next, Replies: []Reply{reply}}
}

func (m *Machine) answer(current *Session, text string) Outcome {
	q, ok := current.Current()
	if !ok {
		return Outcome{Session: current}
	}

	next := current.clone()
	next.Phase = PhaseInProgress

	var replies []Reply
	if strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(q.Correct)) {
		next.Score++
		replies = append(replies, Reply{Text: m.msg.Correct()})
	} else {
		replies = append(replies, Reply{Text: m.msg.Wrong(q.Correct)})
	}
	next.Cursor++

	total := len(next.Questions)
	if next.Cursor >= total {
		replies = append(replies, Reply{Text: m.msg.Finished(next.Score, total)})
		return Outcome{
			Replies:   replies,
			Completed: &Result{SetName: next.SetName, Score: next.Score, Total: total},
		}
	}

	reply, _ := m.questionReply(next)
	return Outcome{Session: next, Replies: append(replies, reply)}
}

func (m *Machine) questionReply(s *Session) (Reply, bool) {
	q, ok := s.Current()
	if !ok {
		return Reply{}, false
	}

	letters := q.Letters()
	var keyboard [][]string
	for i := 0; i < len(letters); i += 2 {
		keyboard = append(keyboard, letters[i:min(i+2, len(letters))])
	}

	return Reply{
		Text:     m.msg.Question(q, s.Cursor+1, len(s.Questions)),
		Keyboard: keyboard,
	}, true
}
