package service

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedQuestions(n int) []QuizQuestion {
	qs := make([]QuizQuestion, n)
	for i := range qs {
		qs[i] = QuizQuestion{ID: i + 1, Question: "Question number", Options: []string{"x", "y"}, Correct: "A"}
	}
	return qs
}

func TestShuffleQuestionsWithLimit(t *testing.T) {
	s := NewShuffler(rand.New(rand.NewPCG(1, 2)))
	questions := numberedQuestions(10)

	for limit := 1; limit <= len(questions); limit++ {
		got := s.ShuffleQuestionsWithLimit(questions, limit)
		require.Len(t, got, limit)

		seen := map[int]bool{}
		for _, q := range got {
			assert.False(t, seen[q.ID], "duplicate question %d", q.ID)
			assert.True(t, q.ID >= 1 && q.ID <= 10)
			seen[q.ID] = true
		}
	}

	assert.Len(t, s.ShuffleQuestionsWithLimit(questions, 0), 10)
	assert.Len(t, s.ShuffleQuestionsWithLimit(questions, 11), 10)
}

func TestShuffleQuestionsLeavesInputUntouched(t *testing.T) {
	s := NewShuffler(rand.New(rand.NewPCG(3, 4)))
	questions := numberedQuestions(5)

	_ = s.ShuffleQuestions(questions)

	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
	}
}

func TestShuffleQuestionsCoversAllPositions(t *testing.T) {
	s := NewSeededShuffler()
	questions := numberedQuestions(3)

	firsts := map[int]int{}
	for range 3000 {
		firsts[s.ShuffleQuestions(questions)[0].ID]++
	}

	require.Len(t, firsts, 3)
	for id, n := range firsts {
		assert.InDelta(t, 1000, n, 200, "question %d first %d times", id, n)
	}
}
