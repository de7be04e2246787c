package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Raph13009/notion-blogs/internal/httpx"
	"github.com/Raph13009/notion-blogs/internal/logger"
)

const (
	// apiVersion pins the CMS wire format the client was written against.
	apiVersion = "2022-06-28"

	defaultBaseURL  = "https://api.notion.com"
	defaultPageSize = 100
)

// Client is the low-level CMS API client. It owns authentication,
// pagination and error decoding; mapping to the domain model lives in the
// source and lead layers above it.
type Client struct {
	baseURL  string
	token    string
	pageSize int
	client   *http.Client
	logger   logger.Logger
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewClient(baseURL, token string, pageSize int, timeout time.Duration, log logger.Logger) (*Client, error) {
	if token == "" {
		return nil, errors.New("cms token is required")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		baseURL:  baseURL,
		token:    token,
		pageSize: pageSize,
		client:   httpx.NewClient(timeout),
		logger:   log,
	}, nil
}

// QueryDatabase pages through every record of a database.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string) ([]Record, error) {
	endpoint := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, databaseID)

	var (
		records []Record
		cursor  string
	)
	for {
		body := map[string]any{"page_size": c.pageSize}
		if cursor != "" {
			body["start_cursor"] = cursor
		}

		var page struct {
			Results    []Record `json:"results"`
			HasMore    bool     `json:"has_more"`
			NextCursor string   `json:"next_cursor"`
		}
		if err := c.do(ctx, http.MethodPost, endpoint, body, &page); err != nil {
			return nil, fmt.Errorf("query database %s: %w", databaseID, err)
		}

		records = append(records, page.Results...)
		if !page.HasMore || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	c.logger.Debug("Queried CMS database",
		logger.String("database_id", databaseID),
		logger.Int("records", len(records)),
	)
	return records, nil
}

// RetrieveDatabase fetches the property schema for a database.
func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (DatabaseSchema, error) {
	endpoint := fmt.Sprintf("%s/v1/databases/%s", c.baseURL, databaseID)

	var schema DatabaseSchema
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &schema); err != nil {
		return DatabaseSchema{}, fmt.Errorf("retrieve database %s: %w", databaseID, err)
	}
	return schema, nil
}

// CreatePage inserts a record into a database.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]any) error {
	endpoint := fmt.Sprintf("%s/v1/pages", c.baseURL)

	body := map[string]any{
		"parent":     map[string]any{"database_id": databaseID},
		"properties": properties,
	}
	if err := c.do(ctx, http.MethodPost, endpoint, body, nil); err != nil {
		return fmt.Errorf("create page in %s: %w", databaseID, err)
	}
	return nil
}

// BlockChildren pages through the content blocks of a record.
func (c *Client) BlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	var (
		blocks []Block
		cursor string
	)
	for {
		endpoint := fmt.Sprintf("%s/v1/blocks/%s/children?page_size=%d", c.baseURL, blockID, c.pageSize)
		if cursor != "" {
			// Cursors are opaque and may carry reserved characters.
			endpoint += "&start_cursor=" + url.QueryEscape(cursor)
		}

		var page struct {
			Results    []Block `json:"results"`
			HasMore    bool    `json:"has_more"`
			NextCursor string  `json:"next_cursor"`
		}
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, fmt.Errorf("fetch blocks of %s: %w", blockID, err)
		}

		blocks = append(blocks, page.Results...)
		if !page.HasMore || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	return blocks, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("CMS request failed",
			logger.String("method", method),
			logger.String("endpoint", endpoint),
			logger.Duration("request_duration", time.Since(start)),
			logger.Error(err),
		)
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		bodyBytes, _ := io.ReadAll(resp.Body)

		var apiErr apiError
		if decodeErr := json.Unmarshal(bodyBytes, &apiErr); decodeErr == nil && apiErr.Message != "" {
			c.logger.Error("CMS API error",
				logger.String("method", method),
				logger.String("endpoint", endpoint),
				logger.Int("status_code", resp.StatusCode),
				logger.String("error_code", apiErr.Code),
				logger.String("error_message", apiErr.Message),
			)
			return fmt.Errorf("cms API error (%d): %s - %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}

		c.logger.Error("CMS API error",
			logger.String("method", method),
			logger.String("endpoint", endpoint),
			logger.Int("status_code", resp.StatusCode),
			logger.String("response_body", string(bodyBytes)),
		)
		return fmt.Errorf("cms API error: %d %s", resp.StatusCode, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
