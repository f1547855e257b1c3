package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionStore(t *testing.T) {
	store := NewQuestionStore([]QuestionSet{
		{Name: "Math", Questions: numberedQuestions(3)},
		{Name: "History", Questions: numberedQuestions(1)},
		{Name: "Math", Questions: numberedQuestions(2)},
	})

	assert.Equal(t, []string{"Math", "History"}, store.SetNames())
	assert.Len(t, store.Questions("Math"), 2, "later set with the same name wins")
	assert.Nil(t, store.Questions("Unknown"))
	assert.Equal(t, 3, store.TotalQuestions())
}

func TestQuestionStoreReturnsCopies(t *testing.T) {
	store := NewQuestionStore([]QuestionSet{{Name: "Math", Questions: numberedQuestions(2)}})

	qs := store.Questions("Math")
	qs[0].Question = "changed"
	names := store.SetNames()
	names[0] = "changed"

	assert.NotEqual(t, "changed", store.Questions("Math")[0].Question)
	assert.Equal(t, []string{"Math"}, store.SetNames())
}
