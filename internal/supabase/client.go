// Package supabase talks to a hosted Supabase project: GoTrue for merchant
// sign-in and PostgREST for reading payment intents.
package supabase

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

	log "github.com/sirupsen/logrus"
)

type Config struct {
	URL        string
	AnonKey    string
	ServiceKey string
	Timeout    time.Duration
}

type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Error is a non-2xx answer from Supabase. Message is the provider's own text
// and is safe to show to the merchant.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type errorBody struct {
	Msg              string          `json:"msg"`
	Message          string          `json:"message"`
	ErrorDescription string          `json:"error_description"`
	Error            string          `json:"error"`
	ErrorCode        string          `json:"error_code"`
	Code             json.RawMessage `json:"code"`
}

func parseError(status int, body []byte) *Error {
	e := &Error{Status: status}

	var b errorBody
	if err := json.Unmarshal(body, &b); err == nil {
		for _, msg := range []string{b.Msg, b.Message, b.ErrorDescription, b.Error} {
			if msg != "" {
				e.Message = msg
				break
			}
		}
		e.Code = b.ErrorCode
		if e.Code == "" {
			e.Code = strings.Trim(string(b.Code), `"`)
		}
		if e.Code == "" {
			e.Code = b.Error
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}

	return e
}

type request struct {
	method string
	path   string
	query  url.Values
	bearer string
	body   any
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	bearer := r.bearer
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending %s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"method":  r.method,
		"path":    r.path,
		"status":  resp.StatusCode,
		"latency": time.Since(start),
	}).Debug("supabase request")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response of %s %s: %w", r.method, r.path, err)
	}

	return nil
}
