package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RequestError is any non-2xx answer from the backend. The raw response
// body is kept verbatim since it is the only diagnostic surface the
// backend offers (malformed settings, index exists, cluster down...).
type RequestError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // 0 disables the client timeout
}

// Client talks the backend's document-search protocol: index creation,
// bulk import and full-text query. It never retries and never inspects
// per-item results inside a successful bulk response.
type Client struct {
	config ClientConfig
	http   *http.Client
}

func NewWithConfig(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %v", err)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		http: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

func New(baseURL string) *Client {
	c, _ := NewWithConfig(ClientConfig{
		BaseURL: baseURL,
	})
	return c
}

// CreateIndex issues PUT {base}/{name} with the settings document as the
// body, verbatim.
func (c *Client) CreateIndex(ctx context.Context, name string, settings []byte) error {
	endpoint := fmt.Sprintf("%s/%s", c.config.BaseURL, name)
	_, err := c.do(ctx, http.MethodPut, endpoint, bytes.NewReader(settings), "create index")
	return err
}

// BulkImport issues PUT {base}/{name}/_doc/_bulk, streaming payload as
// the request body so memory stays bounded for large corpora.
func (c *Client) BulkImport(ctx context.Context, name string, payload io.Reader) error {
	endpoint := fmt.Sprintf("%s/%s/_doc/_bulk", c.config.BaseURL, name)
	_, err := c.do(ctx, http.MethodPut, endpoint, payload, "bulk import")
	return err
}

// Search compiles text into the weighted multi-match query and returns
// the backend's result document unmodified.
func (c *Client) Search(ctx context.Context, index string, text string) (json.RawMessage, error) {
	query, err := BuildQuery(text)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/_search", c.config.BaseURL, index)
	body, err := c.do(ctx, http.MethodGet, endpoint, bytes.NewReader(query), "search")
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// BuildQuery produces the multi-match query document, weighting name an
// order of magnitude above description.
func BuildQuery(text string) ([]byte, error) {
	q := queryBody{}
	q.Query.MultiMatch.Query = text
	q.Query.MultiMatch.Fields = []string{"name^10", "description"}

	data, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %v", err)
	}
	return data, nil
}

type queryBody struct {
	Query struct {
		MultiMatch struct {
			Query  string   `json:"query"`
			Fields []string `json:"fields"`
		} `json:"multi_match"`
	} `json:"query"`
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, op string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %v", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %v", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %v", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}
