package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the hosted auth/data provider (GoTrue-style auth API plus
// PostgREST-style data API under one base URL). The zero value is not usable;
// construct with New.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// request performs one provider call. token is the caller's access token;
// when empty the API key authenticates the request (anonymous role).
func (c *Client) request(ctx context.Context, method, path, token string, headers map[string]string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	if token == "" {
		token = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode provider response: %w", err)
		}
	}
	return nil
}

// providerErrorBody covers the error shapes the auth and data APIs produce.
type providerErrorBody struct {
	Code             json.RawMessage `json:"code"`
	Message          string          `json:"message"`
	Msg              string          `json:"msg"`
	Error            string          `json:"error"`
	ErrorCode        string          `json:"error_code"`
	ErrorDescription string          `json:"error_description"`
}

func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}

	var body providerErrorBody
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Msg != "":
			apiErr.Message = body.Msg
		case body.ErrorDescription != "":
			apiErr.Message = body.ErrorDescription
		case body.Error != "":
			apiErr.Message = body.Error
		}
		if body.ErrorCode != "" {
			apiErr.Code = body.ErrorCode
		} else if len(body.Code) > 0 {
			// The data API sends string codes, the auth API numeric ones.
			var s string
			if json.Unmarshal(body.Code, &s) == nil {
				apiErr.Code = s
			}
		}
	}

	// The data API reports a missing single row as PGRST116; normalize it so
	// callers can branch on "no such row" vs "could not check".
	if apiErr.Code == "PGRST116" || status == http.StatusNotFound && apiErr.Code == "" {
		return fmt.Errorf("%w: %s", ErrNoRows, apiErr.Message)
	}

	return apiErr
}
