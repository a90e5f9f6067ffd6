//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestCategoriesMapping(t *testing.T) {
	status, payload := getJSON(t, "/categories")
	if status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	if payload["success"] != true {
		t.Fatalf("expected success=true: %v", payload)
	}
	categories, ok := payload["categories"].(map[string]any)
	if !ok {
		t.Fatalf("categories must be an id->name mapping: %v", payload)
	}
	for id, name := range categories {
		if _, ok := name.(string); !ok {
			t.Fatalf("category %s has non-string name: %v", id, name)
		}
	}
}

func TestQuestionListingAndPastEnd(t *testing.T) {
	status, payload := getJSON(t, "/questions")
	if status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	total := int(payload["total_questions"].(float64))
	if got := len(questionIDs(t, payload)); got > 10 {
		t.Fatalf("page holds %d questions, want at most 10", got)
	}

	farPage := total/10 + 10
	status, payload = getJSON(t, fmt.Sprintf("/questions?page=%d", farPage))
	if status != http.StatusNotFound {
		t.Fatalf("page %d should 404, got %d: %v", farPage, status, payload)
	}
	if payload["message"] != "resource not found" {
		t.Fatalf("unexpected error message: %v", payload)
	}
}

func TestCreateSearchDeleteRoundTrip(t *testing.T) {
	marker := fmt.Sprintf("integration-%d", time.Now().UnixNano())

	status, created := postJSON(t, "/questions", map[string]any{
		"question":   "What marker is " + marker + "?",
		"answer":     "the marker",
		"category":   1,
		"difficulty": 1,
	})
	if status != http.StatusOK {
		t.Fatalf("create failed with %d: %v", status, created)
	}
	createdID := int(created["created"].(float64))

	status, found := postJSON(t, "/questions", map[string]any{"search_term": marker})
	if status != http.StatusOK {
		t.Fatalf("search failed with %d", status)
	}
	ids := questionIDs(t, found)
	if len(ids) != 1 || ids[0] != createdID {
		t.Fatalf("search should find exactly the created question, got %v", ids)
	}

	status, deleted := request(t, http.MethodDelete, fmt.Sprintf("/questions/%d", createdID), nil)
	if status != http.StatusOK {
		t.Fatalf("delete failed with %d: %v", status, deleted)
	}
	if int(deleted["deleted"].(float64)) != createdID {
		t.Fatalf("delete echoed wrong id: %v", deleted)
	}

	status, found = postJSON(t, "/questions", map[string]any{"search_term": marker})
	if status != http.StatusOK {
		t.Fatalf("search after delete failed with %d", status)
	}
	if total := int(found["total_questions"].(float64)); total != 0 {
		t.Fatalf("deleted question still searchable, total=%d", total)
	}
}

func TestCreateValidationRejectsEmptyFields(t *testing.T) {
	status, payload := postJSON(t, "/questions", map[string]any{
		"question":   "",
		"answer":     "A",
		"category":   1,
		"difficulty": 1,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("empty question should 400, got %d: %v", status, payload)
	}
}

func TestQuizSessionNeverRepeats(t *testing.T) {
	status, listing := getJSON(t, "/categories/1/questions")
	if status != http.StatusOK {
		t.Fatalf("category listing failed with %d", status)
	}
	total := int(listing["total_questions"].(float64))

	previous := []int{}
	for i := 0; i <= total; i++ {
		status, payload := postJSON(t, "/quizzes", map[string]any{
			"previous_questions": previous,
			"quiz_category":      map[string]any{"id": "1"},
		})
		if status != http.StatusOK {
			t.Fatalf("quiz call failed with %d: %v", status, payload)
		}
		question := payload["question"]
		if question == nil {
			if len(previous) != total {
				t.Fatalf("quiz exhausted after %d of %d questions", len(previous), total)
			}
			return
		}
		id := int(question.(map[string]any)["id"].(float64))
		for _, seen := range previous {
			if seen == id {
				t.Fatalf("question %d repeated within one session", id)
			}
		}
		previous = append(previous, id)
	}
	t.Fatalf("quiz never exhausted; previous=%v", previous)
}
