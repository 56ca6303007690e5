package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

type HTTPClient struct {
	apiURL       string
	explainerURL string
	httpClient   *http.Client
}

// NewHTTPClient builds a client for the classifier at apiURL and the
// explainer at explainerURL. An empty explainerURL disables explanations.
// A nil httpClient means http.DefaultClient.
func NewHTTPClient(apiURL, explainerURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		apiURL:       strings.TrimRight(apiURL, "/"),
		explainerURL: strings.TrimRight(explainerURL, "/"),
		httpClient:   httpClient,
	}
}

func (c *HTTPClient) ExplainerConfigured() bool {
	return c.explainerURL != ""
}

type analyzeRequest struct {
	Message string `json:"message"`
}

type explainRequest struct {
	Message string `json:"message"`
	Label   string `json:"label"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

func (c *HTTPClient) Analyze(ctx context.Context, message string) (*Analysis, error) {
	var out Analysis
	if err := c.postJSON(ctx, c.apiURL+"/analyze", analyzeRequest{Message: message}, &out); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	if strings.TrimSpace(out.Result) == "" {
		return nil, fmt.Errorf("analyze: %w: missing result", ErrDecode)
	}
	return &out, nil
}

func (c *HTTPClient) Explain(ctx context.Context, message, label string) (string, error) {
	if !c.ExplainerConfigured() {
		return "", ErrNotConfigured
	}

	var out explainResponse
	if err := c.postJSON(ctx, c.explainerURL+"/explain", explainRequest{Message: message, Label: label}, &out); err != nil {
		return "", fmt.Errorf("explain: %w", err)
	}
	return strings.TrimSpace(out.Explanation), nil
}

func (c *HTTPClient) ClassifierHealth(ctx context.Context) error {
	return c.health(ctx, c.apiURL)
}

func (c *HTTPClient) ExplainerHealth(ctx context.Context) error {
	if !c.ExplainerConfigured() {
		return ErrNotConfigured
	}
	return c.health(ctx, c.explainerURL)
}

// health succeeds only on 200 OK.
func (c *HTTPClient) health(ctx context.Context, base string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}
	return nil
}

func (c *HTTPClient) postJSON(ctx context.Context, url string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
