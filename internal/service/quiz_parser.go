package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

var (
	ErrMalformedSubmission = errors.New("malformed question submission")
	ErrNoQuestions         = errors.New("no valid questions found")
)

// headerMarker shows up in spreadsheet title rows exported into question files.
const headerMarker = "TEST MATERIALLARI"

// headerTokens are column captions that leak into the data as questions.
var headerTokens = []string{"№", "Savol", "To`g`ri javob"}

var validate = validator.New()

// rawQuestion is a question record as found in a document, before filtering.
type rawQuestion struct {
	Question string
	Options  []optionPair
	Correct  string
}

type optionPair struct {
	Key   string
	Value string
}

// ParseSubmission parses a user submitted JSON array of questions.
// An empty result is always reported as an error wrapping ErrMalformedSubmission.
func ParseSubmission(raw string) ([]QuizQuestion, error) {
	raw = stripCodeFence(raw)
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedSubmission)
	}

	doc := gjson.Parse(raw)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedSubmission)
	}

	var records []rawQuestion
	doc.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			records = append(records, recordFromJSON(item))
		}
		return true
	})

	questions := filterQuestions(records, false, nil)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSubmission, ErrNoQuestions)
	}
	return questions, nil
}

// stripCodeFence removes a surrounding markdown code block, as users tend to
// paste the example format back verbatim.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimPrefix(raw, "json")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

func recordFromJSON(item gjson.Result) rawQuestion {
	var rec rawQuestion

	for _, key := range []string{"question", "Savol"} {
		if v := item.Get(key); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			rec.Question = v.Str
			break
		}
	}

	opts := item.Get("options")
	switch {
	case opts.IsArray():
		opts.ForEach(func(_, v gjson.Result) bool {
			rec.Options = append(rec.Options, optionPair{Value: scalarString(v)})
			return true
		})
	case opts.IsObject():
		opts.ForEach(func(k, v gjson.Result) bool {
			rec.Options = append(rec.Options, optionPair{Key: k.String(), Value: scalarString(v)})
			return true
		})
	}

	for _, key := range []string{"correct", "To_gri_javob"} {
		if v := item.Get(key); v.Exists() {
			rec.Correct = scalarString(v)
			break
		}
	}

	return rec
}

func scalarString(v gjson.Result) string {
	switch v.Type {
	case gjson.String, gjson.Number:
		return v.String()
	default:
		return ""
	}
}

// filterQuestions drops records failing the quality rules and numbers the
// survivors 1..N in input order. Strict mode adds the rules for curated
// sources: a minimum question length and no header rows.
func filterQuestions(records []rawQuestion, strict bool, logger *slog.Logger) []QuizQuestion {
	questions := make([]QuizQuestion, 0, len(records))
	for i, rec := range records {
		q, err := normalizeQuestion(rec, len(questions)+1, strict)
		if err != nil {
			if logger != nil {
				logger.Debug("skipping question record", "index", i, "reason", err)
			}
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

func normalizeQuestion(rec rawQuestion, id int, strict bool) (QuizQuestion, error) {
	text := strings.TrimSpace(rec.Question)
	if strict {
		if isHeaderText(text) {
			return QuizQuestion{}, errors.New("header or metadata row")
		}
		if err := validate.Var(text, "min=10"); err != nil {
			return QuizQuestion{}, fmt.Errorf("question text too short: %w", err)
		}
	}

	correct := strings.ToUpper(strings.TrimSpace(rec.Correct))
	if correct == "" {
		correct = "A"
	}

	options, correct, err := orderOptions(rec.Options, correct)
	if err != nil {
		return QuizQuestion{}, err
	}

	q := QuizQuestion{
		ID:       id,
		Question: text,
		Options:  options,
		Correct:  correct,
	}
	if err := validate.Struct(q); err != nil {
		return QuizQuestion{}, err
	}
	return q, nil
}

func isHeaderText(text string) bool {
	if strings.Contains(text, headerMarker) {
		return true
	}
	for _, token := range headerTokens {
		if text == token {
			return true
		}
	}
	return false
}

// orderOptions returns up to four non-empty option texts and the letter of
// the correct one among them. Keyed options are taken in A-D order when the
// keys are answer letters, otherwise in document order. The correct letter
// addresses the option slots as written, blanks included.
func orderOptions(pairs []optionPair, correct string) ([]string, string, error) {
	byLetter := make(map[string]string)
	for _, p := range pairs {
		key := strings.ToUpper(strings.TrimSpace(p.Key))
		for _, l := range OptionLetters {
			if key == l {
				byLetter[l] = p.Value
			}
		}
	}

	var slots []string
	if len(byLetter) > 0 {
		for _, l := range OptionLetters {
			slots = append(slots, byLetter[l])
		}
	} else {
		for _, p := range pairs {
			slots = append(slots, p.Value)
		}
	}

	want := -1
	for i, l := range OptionLetters {
		if l == correct {
			want = i
		}
	}
	if want < 0 {
		return nil, "", fmt.Errorf("correct answer %q is not an option letter", correct)
	}
	if want >= len(slots) || strings.TrimSpace(slots[want]) == "" {
		return nil, "", fmt.Errorf("correct option %s has no matching option", correct)
	}

	options := make([]string, 0, len(OptionLetters))
	resolved := ""
	for i, v := range slots {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if len(options) == len(OptionLetters) {
			break
		}
		if i == want {
			resolved = OptionLetters[len(options)]
		}
		options = append(options, v)
	}
	if resolved == "" {
		return nil, "", fmt.Errorf("correct option %s is beyond the first %d options", correct, len(OptionLetters))
	}
	return options, resolved, nil
}
