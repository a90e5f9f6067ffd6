package trivia

import (
	"context"
	"math/rand/v2"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// AllCategories selects quiz candidates from every category.
const AllCategories int32 = 0

type candidateStore interface {
	ListCandidates(ctx context.Context, categoryID int32, excluded []int32) ([]repository.Question, error)
}

// Selector picks random unseen quiz questions. The server keeps no session
// state: callers supply the growing previously-seen set on every call.
type Selector struct {
	store candidateStore
	intN  func(n int) int
}

func NewSelector(store candidateStore) *Selector {
	return &Selector{store: store, intN: rand.IntN}
}

// Next returns a uniformly random question from the chosen category
// (AllCategories for no filter) excluding the previously-seen ids. A nil
// question means the candidate set is exhausted and the quiz is complete.
func (s *Selector) Next(ctx context.Context, categoryID int32, previous []int32) (*Question, error) {
	rows, err := s.store.ListCandidates(ctx, categoryID, previous)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	picked := toQuestion(rows[s.intN(len(rows))])
	return &picked, nil
}
