package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	name       string
	url        string
	httpClient *http.Client
	maxRetries int
}

func NewClient(name, url string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		name:       name,
		url:        url,
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string { return c.name }

// Call executes JSON-RPC with simple exponential backoff retry
func (c *Client) Call(ctx context.Context, method string, params ...interface{}) (*Response, time.Duration, error) {
	if params == nil {
		params = []interface{}{}
	}

	req := Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, 0, fmt.Errorf("encode %s request: %w", method, err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		start := time.Now()
		resp, err := c.doRequest(ctx, body)
		latency := time.Since(start)

		if err == nil {
			return resp, latency, nil
		}

		lastErr = err

		// Execution errors are deterministic; retrying cannot help.
		if _, ok := err.(*RPCError); ok {
			return nil, latency, err
		}

		// Exponential backoff: 100ms, 200ms, 400ms...
		if attempt < c.maxRetries {
			backoff := time.Duration(1<<attempt) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	if c.maxRetries == 0 {
		return nil, 0, lastErr
	}
	return nil, 0, fmt.Errorf("failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) doRequest(ctx context.Context, body []byte) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", httpResp.StatusCode)
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	if resp.Error != nil {
		return nil, resp.Error
	}

	return &resp, nil
}

// EthCall executes eth_call against to with hex calldata at the given block tag
// and returns the hex-encoded return data.
func (c *Client) EthCall(ctx context.Context, to, data, block string) (string, time.Duration, error) {
	msg := map[string]string{
		"to":   to,
		"data": data,
	}
	resp, latency, err := c.Call(ctx, "eth_call", msg, block)
	if err != nil {
		return "", latency, err
	}

	var result string
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return "", latency, fmt.Errorf("invalid eth_call result: %w", err)
	}
	return result, latency, nil
}
