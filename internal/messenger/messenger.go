// Package messenger sends messages through the Messenger platform Send API.
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/spec-kit/incident-report-service/internal/config"
)

// QuickReply is one tappable response option attached to a message.
type QuickReply struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Payload     string `json:"payload"`
}

// Message is the outbound payload: plain text, optionally with quick replies.
type Message struct {
	Text         string       `json:"text"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
}

// ReplyOption pairs a quick-reply title with its payload string.
type ReplyOption struct {
	Title   string
	Payload string
}

// Text builds a plain text message.
func Text(text string) Message {
	return Message{Text: text}
}

// WithQuickReplies builds a text message carrying quick replies.
func WithQuickReplies(text string, options []ReplyOption) Message {
	replies := make([]QuickReply, 0, len(options))
	for _, opt := range options {
		replies = append(replies, QuickReply{
			ContentType: "text",
			Title:       opt.Title,
			Payload:     opt.Payload,
		})
	}
	return Message{Text: text, QuickReplies: replies}
}

// Sender delivers messages to a recipient. Failures are returned for
// logging only; callers do not retry and never surface them in-conversation.
type Sender interface {
	Send(ctx context.Context, recipientID string, msg Message) error
}

// Client is the HTTP implementation of Sender against the Graph Send API.
type Client struct {
	apiURL      string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient builds a Send API client from configuration.
func NewClient(cfg config.MessengerConfig, logger *zap.Logger) *Client {
	return &Client{
		apiURL:      cfg.SendAPIURL,
		accessToken: cfg.PageAccessToken,
		httpClient:  &http.Client{Timeout: cfg.SendTimeout()},
		logger:      logger,
	}
}

type sendRequest struct {
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message Message `json:"message"`
}

// Send posts the message to the Send API. A missing access token fails
// fast without a network call.
func (c *Client) Send(ctx context.Context, recipientID string, msg Message) error {
	if c.accessToken == "" {
		c.logger.Error("PAGE_ACCESS_TOKEN not set; dropping outbound message",
			zap.String("recipient", recipientID))
		return errors.New("messenger: page access token not configured")
	}

	var payload sendRequest
	payload.Recipient.ID = recipientID
	payload.Message = msg

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("messenger: marshal send request: %w", err)
	}

	endpoint := c.apiURL + "?access_token=" + url.QueryEscape(c.accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("messenger: build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("send API network error",
			zap.String("recipient", recipientID), zap.Error(err))
		return fmt.Errorf("messenger: send: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("send API error",
			zap.Int("status", resp.StatusCode),
			zap.String("recipient", recipientID),
			zap.ByteString("response", respBody))
		return fmt.Errorf("messenger: send API returned %d", resp.StatusCode)
	}

	c.logger.Debug("message sent", zap.String("recipient", recipientID))
	return nil
}
