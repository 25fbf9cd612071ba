package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go-docs-api/pkg/apierror"
)

// NotifyConfig holds the outbound webhook settings. AccessToken and
// Recipient are deployment secrets; when either is missing the relay reports
// itself unconfigured instead of calling upstream.
type NotifyConfig struct {
	WebhookURL  string
	AccessToken string
	Recipient   string
	Timeout     time.Duration
}

type NotifyService struct {
	cfg    NotifyConfig
	client *http.Client
}

func NewNotifyService(cfg NotifyConfig) *NotifyService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &NotifyService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type webhookMessage struct {
	ToUser  string `json:"touser"`
	MsgType string `json:"msgtype"`
	Text    struct {
		Content string `json:"content"`
	} `json:"text"`
}

// Relay forwards the request's query parameters as a JSON text message to
// the configured webhook endpoint and returns the upstream response body.
func (s *NotifyService) Relay(ctx context.Context, params url.Values) (string, error) {
	if s.cfg.WebhookURL == "" || s.cfg.AccessToken == "" || s.cfg.Recipient == "" {
		return "", apierror.New("NOT_CONFIGURED", "webhook relay is not configured", "", http.StatusServiceUnavailable)
	}

	content, err := json.Marshal(flatten(params))
	if err != nil {
		return "", fmt.Errorf("encode message content: %w", err)
	}

	msg := webhookMessage{ToUser: s.cfg.Recipient, MsgType: "text"}
	msg.Text.Content = string(content)

	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("encode webhook message: %w", err)
	}

	endpoint := s.cfg.WebhookURL + "?access_token=" + url.QueryEscape(s.cfg.AccessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("webhook relay failed", "error", err)
		return "", apierror.New("RELAY_FAILED", "failed to deliver webhook message", "", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read webhook response: %w", err)
	}

	if resp.StatusCode >= 400 {
		slog.Error("webhook relay rejected", "status", resp.StatusCode, "body", string(respBody))
		return "", apierror.New("RELAY_FAILED", "webhook endpoint rejected the message", "", http.StatusBadGateway)
	}

	return string(respBody), nil
}

func flatten(params url.Values) map[string]string {
	flat := make(map[string]string, len(params))
	for key, values := range params {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}
	return flat
}
