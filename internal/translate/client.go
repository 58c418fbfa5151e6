// Package translate wraps the MyMemory machine-translation API used for the
// optional prompt translation pipeline.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const apiURL = "https://api.mymemory.translated.net/get"

// DefaultLangPair translates English prompts to Japanese.
const DefaultLangPair = "en|ja"

type apiResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// Client talks to the MyMemory HTTP API.
type Client struct {
	httpClient *http.Client
}

// NewClient wraps the given HTTP client; nil falls back to http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// Translate converts text for the given language pair ("en|ja"). Empty text
// returns empty without a request.
func (c *Client) Translate(ctx context.Context, text, langpair string) (string, error) {
	if text == "" {
		return "", nil
	}
	if langpair == "" {
		langpair = DefaultLangPair
	}

	query := url.Values{}
	query.Set("q", text)
	query.Set("langpair", langpair)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("mymemory returned empty translation")
	}

	return payload.ResponseData.TranslatedText, nil
}
