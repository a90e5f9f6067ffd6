package trivia

import (
	"context"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

type questionStore interface {
	ListPage(ctx context.Context, offset int64, limit int32) ([]repository.Question, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, term string) ([]repository.Question, error)
	ListByCategory(ctx context.Context, categoryID int32) ([]repository.Question, error)
	Insert(ctx context.Context, params repository.InsertQuestionParams) (repository.Question, error)
	Delete(ctx context.Context, id int32) error
}

type categoryStore interface {
	List(ctx context.Context) ([]repository.Category, error)
	Get(ctx context.Context, id int32) (repository.Category, error)
}

// Service orchestrates listing, pagination, search, creation and deletion of
// trivia questions.
type Service struct {
	questions  questionStore
	categories categoryStore
}

func NewService(questions questionStore, categories categoryStore) *Service {
	return &Service{questions: questions, categories: categories}
}

// QuestionPage is the payload for the paginated question listing.
type QuestionPage struct {
	Questions  []Question
	Total      int64
	Categories []Category
}

// CategoryQuestions is the payload for the per-category listing.
type CategoryQuestions struct {
	Questions    []Question
	Total        int64
	CategoryName string
}

// pageBounds converts a 1-based page number to an offset/limit pair. The
// offset is computed in int64 so huge page numbers cannot wrap negative.
func pageBounds(page int) (offset int64, limit int32) {
	if page < 1 {
		page = 1
	}
	return int64(page-1) * PageSize, PageSize
}

// pageSlice cuts one page out of an already-filtered result set. Past the end
// it degrades to an empty page.
func pageSlice(questions []Question, page int) []Question {
	start := (page - 1) * PageSize
	if start < 0 || start >= len(questions) {
		return []Question{}
	}
	end := start + PageSize
	if end > len(questions) {
		end = len(questions)
	}
	return questions[start:end]
}

// QuestionPage returns one page of the full question list together with the
// unfiltered total and all categories. Requesting a page past the end of the
// list fails with ErrPageOutOfRange; every other listing degrades to an empty
// page instead.
func (s *Service) QuestionPage(ctx context.Context, page int) (QuestionPage, error) {
	total, err := s.questions.Count(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	offset, limit := pageBounds(page)
	if page > 1 && offset >= total {
		return QuestionPage{}, ErrPageOutOfRange
	}

	rows, err := s.questions.ListPage(ctx, offset, limit)
	if err != nil {
		return QuestionPage{}, err
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:  toQuestions(rows),
		Total:      total,
		Categories: categories,
	}, nil
}

// Listing returns one page of the full question list plus the unfiltered
// total, degrading to an empty page past the end. Used for the refreshed
// listing in the create response.
func (s *Service) Listing(ctx context.Context, page int) ([]Question, int64, error) {
	total, err := s.questions.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	offset, limit := pageBounds(page)
	rows, err := s.questions.ListPage(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return toQuestions(rows), total, nil
}

// Search returns one page of questions whose text contains term
// (case-insensitive substring) plus the filtered total. An empty term matches
// every question; zero matches is an empty page, not an error.
func (s *Service) Search(ctx context.Context, term string, page int) ([]Question, int64, error) {
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, 0, err
	}
	matched := toQuestions(rows)
	return pageSlice(matched, page), int64(len(matched)), nil
}

// Create validates and stores a new question, returning it with its assigned id.
func (s *Service) Create(ctx context.Context, in NewQuestion) (Question, error) {
	if err := in.Validate(); err != nil {
		return Question{}, err
	}
	row, err := s.questions.Insert(ctx, repository.InsertQuestionParams{
		Question:   in.Question,
		Answer:     in.Answer,
		CategoryID: in.Category,
		Difficulty: in.Difficulty,
	})
	if err != nil {
		return Question{}, fmt.Errorf("create question: %w", err)
	}
	return toQuestion(row), nil
}

// Delete permanently removes a question. Unknown ids surface as
// repository.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int32) error {
	return s.questions.Delete(ctx, id)
}

// CategoryQuestions returns one page of a category's questions, the
// category-filtered total and the category name. Unknown categories surface
// as repository.ErrNotFound; pages past the end degrade to an empty page.
func (s *Service) CategoryQuestions(ctx context.Context, categoryID int32, page int) (CategoryQuestions, error) {
	category, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, err
	}
	rows, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, err
	}
	matched := toQuestions(rows)
	return CategoryQuestions{
		Questions:    pageSlice(matched, page),
		Total:        int64(len(matched)),
		CategoryName: category.Name,
	}, nil
}

// Categories returns all categories ordered by id.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, Category{ID: row.ID, Name: row.Name})
	}
	return categories, nil
}

func toQuestion(row repository.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.CategoryID,
		Difficulty: row.Difficulty,
	}
}

func toQuestions(rows []repository.Question) []Question {
	questions := make([]Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, toQuestion(row))
	}
	return questions
}
