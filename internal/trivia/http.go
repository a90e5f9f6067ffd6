package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers provides the REST endpoints of the trivia API.
type HTTPHandlers struct {
	svc    *Service
	quiz   *Selector
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers over the trivia service and quiz selector.
func NewHTTPHandlers(svc *Service, quiz *Selector, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		quiz:   quiz,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// log returns the request-scoped logger injected by the server middleware
// (carrying the request id), falling back to the handler's own logger.
func (h *HTTPHandlers) log(r *http.Request) zerolog.Logger {
	if logger := logging.FromContext(r.Context()); logger.GetLevel() != zerolog.Disabled {
		return logger.With().Str("component", "trivia_http").Logger()
	}
	return h.logger
}

// Categories handles GET /categories.
func (h *HTTPHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		logger := h.log(r)
		logger.Error().Err(err).Msg("list categories failed")
		httperrors.RespondInternalError(w, httperrors.MsgInternal)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": categoriesMap(categories),
	})
}

// Questions handles GET /questions?page=N.
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	result, err := h.svc.QuestionPage(r.Context(), page)
	if errors.Is(err, ErrPageOutOfRange) {
		httperrors.RespondNotFound(w, httperrors.MsgNotFound)
		return
	}
	if err != nil {
		logger := h.log(r)
		logger.Error().Err(err).Int("page", page).Msg("question listing failed")
		httperrors.RespondInternalError(w, httperrors.MsgInternal)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"questions":       result.Questions,
		"total_questions": result.Total,
		"categories":      categoriesMap(result.Categories),
	})
}

// DeleteQuestion handles DELETE /questions/{id}.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.MsgNotFound)
		return
	}

	if err := h.svc.Delete(r.Context(), int32(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.MsgNotFound)
			return
		}
		logger := h.log(r)
		logger.Error().Err(err).Int64("question_id", id).Msg("question delete failed")
		httperrors.RespondInternalError(w, httperrors.MsgInternal)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"deleted": id,
	})
}

// questionPost is the tagged union accepted by POST /questions: a payload
// carrying a search_term key is a search, one carrying the create fields is a
// create, anything else is unprocessable.
type questionPost struct {
	SearchTerm *string `json:"search_term"`
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   *FlexID `json:"category"`
	Difficulty *FlexID `json:"difficulty"`
}

// CreateOrSearchQuestions handles POST /questions.
func (h *HTTPHandlers) CreateOrSearchQuestions(w http.ResponseWriter, r *http.Request) {
	var body questionPost
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperrors.RespondUnprocessable(w, httperrors.MsgUnprocessable)
		return
	}

	if body.SearchTerm != nil {
		h.searchQuestions(w, r, *body.SearchTerm)
		return
	}
	h.createQuestion(w, r, body)
}

func (h *HTTPHandlers) searchQuestions(w http.ResponseWriter, r *http.Request, term string) {
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	questions, total, err := h.svc.Search(r.Context(), term, page)
	if err != nil {
		logger := h.log(r)
		logger.Error().Err(err).Str("term", term).Msg("question search failed")
		httperrors.RespondInternalError(w, httperrors.MsgInternal)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"questions":       questions,
		"total_questions": total,
	})
}

func (h *HTTPHandlers) createQuestion(w http.ResponseWriter, r *http.Request, body questionPost) {
	if body.Question == nil && body.Answer == nil && body.Category == nil && body.Difficulty == nil {
		httperrors.RespondUnprocessable(w, httperrors.MsgUnprocessable)
		return
	}
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	in := NewQuestion{}
	if body.Question != nil {
		in.Question = *body.Question
	}
	if body.Answer != nil {
		in.Answer = *body.Answer
	}
	if body.Category != nil {
		in.Category = int32(*body.Category)
	}
	if body.Difficulty != nil {
		in.Difficulty = int32(*body.Difficulty)
	}

	created, err := h.svc.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			httperrors.RespondBadRequest(w, err.Error())
			return
		}
		logger := h.log(r)
		logger.Error().Err(err).Msg("question create failed")
		httperrors.RespondInternalError(w, httperrors.MsgInternal)
		return
	}

	questions, total, err := h.svc.Listing(r.Context(), page)
	if err != nil {
		logger := h.log(r)
		logger.Error().Err(err).Msg("listing after create failed")
		httperrors.RespondInternalError(w, httperrors.MsgInternal)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"created":         created.ID,
		"questions":       questions,
		"total_questions": total,
	})
}

// CategoryQuestions handles GET /categories/{id}/questions?page=N.
func (h *HTTPHandlers) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.MsgNotFound)
		return
	}
	page, ok := h.parsePage(w, r)
	if !ok {
		return
	}

	result, err := h.svc.CategoryQuestions(r.Context(), int32(id), page)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.MsgNotFound)
			return
		}
		logger := h.log(r)
		logger.Error().Err(err).Int64("category_id", id).Msg("category listing failed")
		httperrors.RespondInternalError(w, httperrors.MsgInternal)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": result.CategoryName,
	})
}

type quizPost struct {
	PreviousQuestions *[]int32 `json:"previous_questions"`
	QuizCategory      *struct {
		ID FlexID `json:"id"`
	} `json:"quiz_category"`
}

// Quizzes handles POST /quizzes. A null question in the response means the
// candidate set is exhausted and the quiz is over.
func (h *HTTPHandlers) Quizzes(w http.ResponseWriter, r *http.Request) {
	var body quizPost
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperrors.RespondUnprocessable(w, httperrors.MsgUnprocessable)
		return
	}
	if body.PreviousQuestions == nil || body.QuizCategory == nil {
		httperrors.RespondBadRequest(w, httperrors.MsgBadRequest)
		return
	}

	question, err := h.quiz.Next(r.Context(), int32(body.QuizCategory.ID), *body.PreviousQuestions)
	if err != nil {
		logger := h.log(r)
		logger.Error().Err(err).Msg("quiz selection failed")
		httperrors.RespondInternalError(w, httperrors.MsgInternal)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"question": question,
	})
}

// parsePage reads the 1-based page query parameter, defaulting to 1. A
// non-numeric or non-positive value is a bad request.
func (h *HTTPHandlers) parsePage(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		httperrors.RespondBadRequest(w, httperrors.MsgBadRequest)
		return 0, false
	}
	return page, true
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("response encoding failed")
	}
}

// categoriesMap serializes categories as the id->name mapping the clients consume.
func categoriesMap(categories []Category) map[string]string {
	m := make(map[string]string, len(categories))
	for _, c := range categories {
		m[strconv.FormatInt(int64(c.ID), 10)] = c.Name
	}
	return m
}
