// Package whatsapp is the thin transport around the core: the Graph API
// client that delivers replies and the webhook handler that receives
// inbound messages.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"finzap/internal/logging"
)

// Client sends text messages through the WhatsApp Business (Graph) API.
type Client struct {
	baseURL       string
	token         string
	phoneNumberID string
	httpClient    *http.Client
	logger        logging.Logger
}

// NewClient builds a Graph API client. baseURL is the versioned API root,
// e.g. "https://graph.facebook.com/v19.0".
func NewClient(baseURL, token, phoneNumberID string, logger logging.Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		token:         token,
		phoneNumberID: phoneNumberID,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		logger:        logger,
	}
}

type outboundText struct {
	Body string `json:"body"`
}

type outboundMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Text             outboundText `json:"text"`
}

// Send delivers a text message to the recipient. The returned error covers
// transport failures and non-2xx API responses; the caller logs it and
// moves on, no retries.
func (c *Client) Send(ctx context.Context, to, text string) error {
	payload, err := json.Marshal(outboundMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Text:             outboundText{Body: text},
	})
	if err != nil {
		return fmt.Errorf("could not encode outbound message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not build outbound request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("message delivery failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	c.logger.WithField("status", resp.StatusCode).Debug("WhatsApp API response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("message delivery rejected with status %d", resp.StatusCode)
	}
	return nil
}
