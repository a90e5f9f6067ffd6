package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Question is a row of the questions table.
type Question struct {
	ID         int32
	Question   string
	Answer     string
	CategoryID int32
	Difficulty int32
}

// InsertQuestionParams carries the caller-supplied fields for a new question.
type InsertQuestionParams struct {
	Question   string
	Answer     string
	CategoryID int32
	Difficulty int32
}

const questionColumns = `id, question, answer, category_id, difficulty`

// QuestionRepository exposes typed DB operations over the questions table.
type QuestionRepository struct {
	db DBTX
}

func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListPage returns one page of questions ordered by id ascending.
func (r *QuestionRepository) ListPage(ctx context.Context, offset int64, limit int32) ([]Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return collectQuestions(rows)
}

// Count reports the full unfiltered question count.
func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM questions`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return total, nil
}

// Search returns all questions whose text contains term, case-insensitively,
// ordered by id. An empty term matches everything.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE question ILIKE '%' || $1 || '%' ORDER BY id`,
		term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return collectQuestions(rows)
}

// ListByCategory returns all questions in a category ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int32) ([]Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE category_id = $1 ORDER BY id`,
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("list questions by category: %w", err)
	}
	return collectQuestions(rows)
}

// Insert stores a new question and returns the row with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params InsertQuestionParams) (Question, error) {
	var q Question
	err := r.db.QueryRow(ctx,
		`INSERT INTO questions (question, answer, category_id, difficulty)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+questionColumns,
		params.Question, params.Answer, params.CategoryID, params.Difficulty,
	).Scan(&q.ID, &q.Question, &q.Answer, &q.CategoryID, &q.Difficulty)
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

// Delete permanently removes a question, returning ErrNotFound when no row matched.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCandidates returns the quiz candidate set: questions in the given
// category (0 means all categories) whose ids are not in excluded.
func (r *QuestionRepository) ListCandidates(ctx context.Context, categoryID int32, excluded []int32) ([]Question, error) {
	if excluded == nil {
		excluded = []int32{}
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE ($1 = 0 OR category_id = $1) AND NOT (id = ANY($2))
		 ORDER BY id`,
		categoryID, excluded)
	if err != nil {
		return nil, fmt.Errorf("list quiz candidates: %w", err)
	}
	return collectQuestions(rows)
}

func collectQuestions(rows pgx.Rows) ([]Question, error) {
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.CategoryID, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return questions, nil
}
