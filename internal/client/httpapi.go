// Package client is the terminal front end: an HTTP client for the score
// service plus the interactive command loop around the typing screen.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"

	"typetrivia/internal/score"
	"typetrivia/internal/typing"
)

var ErrServiceUnavailable = errors.New("typetrivia service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// HTTPClient talks to the score service. The cookie jar carries the auth
// cookie between calls, so one client instance is one login session.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Username string `json:"username"`
}

type submissionRequest struct {
	Score    float64 `json:"score"`
	WPM      float64 `json:"wpm"`
	Accuracy float64 `json:"accuracy"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPClient(baseURL string, httpClient *http.Client) (*HTTPClient, error) {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		httpClient.Jar = jar
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

func (c *HTTPClient) Signup(ctx context.Context, username, password string) error {
	request := credentialsRequest{Username: username, Password: password}
	return c.doJSON(ctx, http.MethodPost, "/api/signup", request, nil)
}

// Login authenticates and stores the auth cookie in the jar.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	request := credentialsRequest{Username: username, Password: password}

	var payload userResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", request, &payload); err != nil {
		return "", err
	}
	return payload.Username, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// Check reports the username behind the current auth cookie.
func (c *HTTPClient) Check(ctx context.Context) (string, error) {
	var payload userResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/check", nil, &payload); err != nil {
		return "", err
	}
	return payload.Username, nil
}

func (c *HTTPClient) FetchQuestions(ctx context.Context) ([]typing.Prompt, error) {
	var payload []typing.Prompt
	if err := c.doJSON(ctx, http.MethodGet, "/api/questions", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *HTTPClient) SubmitScore(ctx context.Context, summary typing.Summary) (score.Record, error) {
	request := submissionRequest{
		Score:    float64(summary.Score),
		WPM:      summary.WPM,
		Accuracy: summary.Accuracy,
	}

	var record score.Record
	if err := c.doJSON(ctx, http.MethodPost, "/api/scores", request, &record); err != nil {
		return score.Record{}, err
	}
	return record, nil
}

func (c *HTTPClient) Ranking(ctx context.Context, limit int) ([]score.Record, error) {
	path := "/api/scores/ranking"
	if limit > 0 {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(limit))
		path += "?" + query.Encode()
	}

	var payload []score.Record
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *HTTPClient) History(ctx context.Context) ([]score.Record, error) {
	var payload []score.Record
	if err := c.doJSON(ctx, http.MethodGet, "/api/scores", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(responseBody); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
