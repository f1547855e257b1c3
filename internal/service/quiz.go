package service

import "slices"

// OptionLetters are the answer letters in option order.
var OptionLetters = []string{"A", "B", "C", "D"}

type QuizQuestion struct {
	ID       int      `validate:"gte=1"`
	Question string   `validate:"required"`
	Options  []string `validate:"min=2,max=4,dive,required"`
	Correct  string   `validate:"oneof=A B C D"`
}

// CorrectIndex returns the option index addressed by Correct, or -1.
func (q QuizQuestion) CorrectIndex() int {
	for i, l := range OptionLetters {
		if l == q.Correct {
			return i
		}
	}
	return -1
}

// Letters returns the answer letters available for this question.
func (q QuizQuestion) Letters() []string {
	n := len(q.Options)
	if n > len(OptionLetters) {
		n = len(OptionLetters)
	}
	return slices.Clone(OptionLetters[:n])
}

// Percentage is score/total as a whole percent, rounded half up.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (score*200 + total) / (2 * total)
}
