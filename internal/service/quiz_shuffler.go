package service

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Shuffler samples questions without replacement. Safe for concurrent use.
type Shuffler struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewShuffler(r *rand.Rand) *Shuffler {
	return &Shuffler{r: r}
}

// NewSeededShuffler seeds a PCG source from crypto/rand.
func NewSeededShuffler() *Shuffler {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(err)
	}
	src := rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]))
	return NewShuffler(rand.New(src))
}

// ShuffleQuestions returns a shuffled copy; the input is left untouched.
func (s *Shuffler) ShuffleQuestions(questions []QuizQuestion) []QuizQuestion {
	shuffled := make([]QuizQuestion, len(questions))
	copy(shuffled, questions)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Fisher-Yates
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.r.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// ShuffleQuestionsWithLimit shuffles and keeps the first limit questions.
// A limit outside 1..len keeps all of them.
func (s *Shuffler) ShuffleQuestionsWithLimit(questions []QuizQuestion, limit int) []QuizQuestion {
	shuffled := s.ShuffleQuestions(questions)

	if limit <= 0 || limit > len(shuffled) {
		limit = len(shuffled)
	}

	return shuffled[:limit]
}
