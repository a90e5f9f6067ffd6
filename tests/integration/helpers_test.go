//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

func request(t *testing.T, method, path string, payload any) (int, map[string]any) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, baseURL()+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()
	return request(t, http.MethodGet, path, nil)
}

func postJSON(t *testing.T, path string, payload any) (int, map[string]any) {
	t.Helper()
	return request(t, http.MethodPost, path, payload)
}

func questionIDs(t *testing.T, payload map[string]any) []int {
	t.Helper()
	raw, ok := payload["questions"].([]any)
	if !ok {
		t.Fatalf("questions field missing: %v", payload)
	}
	ids := make([]int, 0, len(raw))
	for _, item := range raw {
		obj := item.(map[string]any)
		ids = append(ids, int(obj["id"].(float64)))
	}
	return ids
}
