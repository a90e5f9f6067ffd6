package trivia

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// memQuestionStore is an in-memory questionStore/candidateStore keeping rows
// sorted by id, mirroring the SQL ordering.
type memQuestionStore struct {
	rows   []repository.Question
	nextID int32
	err    error
}

func newMemQuestionStore(rows ...repository.Question) *memQuestionStore {
	next := int32(1)
	for _, r := range rows {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	return &memQuestionStore{rows: rows, nextID: next}
}

func (s *memQuestionStore) ListPage(_ context.Context, offset int64, limit int32) ([]repository.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	if offset < 0 || offset >= int64(len(s.rows)) {
		return nil, nil
	}
	end := offset + int64(limit)
	if end > int64(len(s.rows)) {
		end = int64(len(s.rows))
	}
	return s.rows[offset:end], nil
}

func (s *memQuestionStore) Count(context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.rows)), nil
}

func (s *memQuestionStore) Search(_ context.Context, term string) ([]repository.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matched []repository.Question
	for _, r := range s.rows {
		if strings.Contains(strings.ToLower(r.Question), strings.ToLower(term)) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (s *memQuestionStore) ListByCategory(_ context.Context, categoryID int32) ([]repository.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matched []repository.Question
	for _, r := range s.rows {
		if r.CategoryID == categoryID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (s *memQuestionStore) Insert(_ context.Context, params repository.InsertQuestionParams) (repository.Question, error) {
	if s.err != nil {
		return repository.Question{}, s.err
	}
	row := repository.Question{
		ID:         s.nextID,
		Question:   params.Question,
		Answer:     params.Answer,
		CategoryID: params.CategoryID,
		Difficulty: params.Difficulty,
	}
	s.nextID++
	s.rows = append(s.rows, row)
	return row, nil
}

func (s *memQuestionStore) Delete(_ context.Context, id int32) error {
	if s.err != nil {
		return s.err
	}
	for i, r := range s.rows {
		if r.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memQuestionStore) ListCandidates(_ context.Context, categoryID int32, excluded []int32) ([]repository.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matched []repository.Question
	for _, r := range s.rows {
		if categoryID != 0 && r.CategoryID != categoryID {
			continue
		}
		if slices.Contains(excluded, r.ID) {
			continue
		}
		matched = append(matched, r)
	}
	return matched, nil
}

type memCategoryStore struct {
	rows []repository.Category
	err  error
}

func (s *memCategoryStore) List(context.Context) ([]repository.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *memCategoryStore) Get(_ context.Context, id int32) (repository.Category, error) {
	if s.err != nil {
		return repository.Category{}, s.err
	}
	for _, r := range s.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return repository.Category{}, repository.ErrNotFound
}

var errStoreDown = errors.New("store down")

func seedQuestions(n int, categoryID int32) []repository.Question {
	rows := make([]repository.Question, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, repository.Question{
			ID:         int32(i),
			Question:   "Question " + string(rune('A'+(i-1)%26)),
			Answer:     "Answer",
			CategoryID: categoryID,
			Difficulty: 1 + int32(i%5),
		})
	}
	return rows
}

func defaultCategories() *memCategoryStore {
	return &memCategoryStore{rows: []repository.Category{
		{ID: 1, Name: "Science"},
		{ID: 2, Name: "Art"},
	}}
}
