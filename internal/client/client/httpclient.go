package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the API at baseURL. timeout bounds each
// call; 0 means no limit.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) Signup(ctx context.Context, name, email string, password []byte) (string, error) {
	req := map[string]string{"name": name, "email": email, "password": string(password)}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/signup", "", req, http.StatusCreated, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	req := map[string]string{"email": email, "password": string(password)}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", "", req, http.StatusOK, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*Profile, error) {
	var resp struct {
		Profile
		IssuedAt  int64 `json:"iat"`
		ExpiresAt int64 `json:"exp"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/me", token, nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	p := resp.Profile
	p.IssuedAt = time.Unix(resp.IssuedAt, 0)
	p.ExpiresAt = time.Unix(resp.ExpiresAt, 0)
	return &p, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, http.StatusOK, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return toAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func toAPIError(resp *http.Response) error {
	var er errorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&er)
	return &APIError{Status: resp.StatusCode, Message: er.Error}
}
