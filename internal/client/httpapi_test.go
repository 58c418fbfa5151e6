package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"typetrivia/internal/score"
	"typetrivia/internal/typing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(t *testing.T, server *httptest.Server) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(server.URL, server.Client())
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return client
}

func TestDoJSONReturnsServiceUnavailable(t *testing.T) {
	client, err := NewHTTPClient("http://example.test", &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial error")
		}),
	})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	err = client.doJSON(context.Background(), http.MethodGet, "/api/check", nil, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable wrapper, got %v", err)
	}
}

func TestDoJSONReturnsAPIErrorMessageFromBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "bad request payload"})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	err := client.doJSON(context.Background(), http.MethodGet, "/anything", nil, nil)
	if err == nil {
		t.Fatalf("expected API error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", apiErr.StatusCode, http.StatusBadRequest)
	}
	if apiErr.Message != "bad request payload" {
		t.Fatalf("message = %q, want %q", apiErr.Message, "bad request payload")
	}
}

func TestLoginStoresAuthCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "token-1", Path: "/"})
			_ = json.NewEncoder(w).Encode(userResponse{Username: "alice"})
		case "/api/check":
			cookie, err := r.Cookie("auth_token")
			if err != nil || cookie.Value != "token-1" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(errorResponse{Error: "unauthorized"})
				return
			}
			_ = json.NewEncoder(w).Encode(userResponse{Username: "alice"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	username, err := client.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if username != "alice" {
		t.Fatalf("username = %q, want alice", username)
	}

	// The jar replays the cookie on the follow-up request.
	if _, err := client.Check(context.Background()); err != nil {
		t.Fatalf("Check after login failed: %v", err)
	}
}

func TestSubmitScoreSendsSummaryFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/scores" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var payload submissionRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Score != 250 || payload.WPM != 42.5 || payload.Accuracy != 96.5 {
			t.Fatalf("unexpected payload: %+v", payload)
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(score.Record{ID: 7, Owner: "alice", Score: 250, WPM: 42.5, Accuracy: 96.5})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	record, err := client.SubmitScore(context.Background(), typing.Summary{
		Score:    250,
		WPM:      42.5,
		Accuracy: 96.5,
	})
	if err != nil {
		t.Fatalf("SubmitScore failed: %v", err)
	}
	if record.ID != 7 {
		t.Fatalf("record id = %d, want 7", record.ID)
	}
}

func TestRankingBuildsLimitQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "3" {
			t.Fatalf("limit query = %q, want 3", got)
		}
		_ = json.NewEncoder(w).Encode([]score.Record{{ID: 1, Owner: "alice", WPM: 60}})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	records, err := client.Ranking(context.Background(), 3)
	if err != nil {
		t.Fatalf("Ranking failed: %v", err)
	}
	if len(records) != 1 || records[0].Owner != "alice" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestFetchQuestionsParsesPrompts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/questions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]typing.Prompt{{Text: "Q?", Answer: "cat"}})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	prompts, err := client.FetchQuestions(context.Background())
	if err != nil {
		t.Fatalf("FetchQuestions failed: %v", err)
	}
	if len(prompts) != 1 || prompts[0].Answer != "cat" {
		t.Fatalf("unexpected prompts: %+v", prompts)
	}
}

func TestLogoutToleratesEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
}
