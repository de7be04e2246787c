// Package relay forwards lead notifications to the transactional email
// relay. The relay accepts a flat JSON form and mails it to the configured
// recipient.
package relay

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

// Control fields understood by the relay.
const (
	fieldSubject  = "_subject"
	fieldCaptcha  = "_captcha"
	fieldTemplate = "_template"

	templateTable = "table"
)

// Client posts lead notification emails.
type Client struct {
	endpoint  string
	recipient string
	client    *http.Client
	logger    logger.Logger
}

// Message is one notification email. Fields are rendered as the table rows
// of the message body, in insertion order on the relay side.
type Message struct {
	Subject string
	Fields  map[string]string
}

func NewClient(endpoint, recipient string, timeout time.Duration, log logger.Logger) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("relay endpoint is required")
	}
	if recipient == "" {
		return nil, errors.New("relay recipient is required")
	}

	return &Client{
		endpoint:  endpoint,
		recipient: recipient,
		client:    httpx.NewClient(timeout),
		logger:    log,
	}, nil
}

// Send mails the message to the configured recipient. Any non-2xx answer
// from the relay is an error.
func (c *Client) Send(ctx context.Context, msg Message) error {
	form := map[string]string{
		fieldSubject:  msg.Subject,
		fieldCaptcha:  "false",
		fieldTemplate: templateTable,
	}
	for key, value := range msg.Fields {
		form[key] = value
	}

	payload, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("marshal relay payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s", c.endpoint, url.PathEscape(c.recipient))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Relay request failed",
			logger.String("subject", msg.Subject),
			logger.Duration("request_duration", time.Since(start)),
			logger.Error(err),
		)
		return fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Relay rejected message",
			logger.String("subject", msg.Subject),
			logger.Int("status_code", resp.StatusCode),
			logger.String("response_body", string(body)),
		)
		return fmt.Errorf("relay failed with status %d", resp.StatusCode)
	}

	c.logger.Info("Lead notification sent",
		logger.String("subject", msg.Subject),
		logger.Duration("request_duration", time.Since(start)),
	)
	return nil
}
