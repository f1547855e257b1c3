package service

import "slices"

// QuestionStore holds the built-in question sets. It is read-only after
// construction and safe for concurrent use.
type QuestionStore struct {
	names []string
	sets  map[string][]QuizQuestion
}

// NewQuestionStore keeps sets in the given order. A repeated name replaces the
// earlier questions but keeps its first position.
func NewQuestionStore(sets []QuestionSet) *QuestionStore {
	s := &QuestionStore{sets: make(map[string][]QuizQuestion, len(sets))}
	for _, set := range sets {
		if _, exists := s.sets[set.Name]; !exists {
			s.names = append(s.names, set.Name)
		}
		s.sets[set.Name] = slices.Clone(set.Questions)
	}
	return s
}

func (s *QuestionStore) SetNames() []string {
	return slices.Clone(s.names)
}

func (s *QuestionStore) HasSet(name string) bool {
	_, ok := s.sets[name]
	return ok
}

// Questions returns a copy of the named set, or nil for an unknown name.
func (s *QuestionStore) Questions(name string) []QuizQuestion {
	return slices.Clone(s.sets[name])
}

func (s *QuestionStore) TotalQuestions() int {
	total := 0
	for _, qs := range s.sets {
		total += len(qs)
	}
	return total
}

func (s *QuestionStore) ParseSubmission(raw string) ([]QuizQuestion, error) {
	return ParseSubmission(raw)
}
