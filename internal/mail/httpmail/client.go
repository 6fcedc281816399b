// Package httpmail talks to the mail provider's REST draft API.
package httpmail

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

	"github.com/shpitdev/cold-outreach-pipeline/internal/mail"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/pipeline/core"
)

// Client creates drafts through the provider's HTTP API using a bearer
// token. It never sends mail.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
}

var _ mail.Mailer = (*Client)(nil)

// NewClient constructs a client for the provider base URL, e.g.
// "https://mail.example.com/api".
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, fmt.Errorf("mail api base URL is required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse mail api base URL: %w", err)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: u,
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type createDraftRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type createDraftResponse struct {
	ID string `json:"id"`
}

// CreateDraft posts the draft and returns the provider draft id.
func (c *Client) CreateDraft(ctx context.Context, d mail.Draft) (string, error) {
	if strings.TrimSpace(d.To) == "" {
		return "", fmt.Errorf("draft recipient is required")
	}

	payload, err := json.Marshal(createDraftRequest{To: d.To, Subject: d.Subject, Body: d.Body})
	if err != nil {
		return "", err
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/v1/drafts"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode/100 != 2 {
		herr := newHTTPError("createDraft", resp, body)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode/100 == 5 {
			return "", &core.TransientError{Err: herr}
		}
		return "", herr
	}

	var out createDraftResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("parse create draft response: %w", err)
	}
	if strings.TrimSpace(out.ID) == "" {
		return "", fmt.Errorf("create draft response missing id")
	}
	return strings.TrimSpace(out.ID), nil
}
