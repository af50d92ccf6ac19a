package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rechner-api/internal/calculator"
	"rechner-api/internal/rechnungen"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Client talks to the rechner HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the server at baseURL, e.g. "http://localhost:3000".
// A nil httpClient uses a client with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Calculate evaluates a op b on the server, which also stores the
// calculation.
func (c *Client) Calculate(ctx context.Context, a, b float64, op calculator.Operator) (float64, error) {
	q := url.Values{}
	q.Set("num1", strconv.FormatFloat(a, 'g', -1, 64))
	q.Set("num2", strconv.FormatFloat(b, 'g', -1, 64))
	q.Set("op", string(op))

	var resp calculator.CalcResponse
	if err := c.do(ctx, http.MethodGet, "/api/calculate?"+q.Encode(), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Result, nil
}

func (c *Client) List(ctx context.Context) ([]rechnungen.Record, error) {
	var records []rechnungen.Record
	if err := c.do(ctx, http.MethodGet, "/api/rechnungen", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*rechnungen.Record, error) {
	var rec rechnungen.Record
	if err := c.do(ctx, http.MethodGet, recordPath(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) Create(ctx context.Context, a, b float64, op calculator.Operator) (*rechnungen.Record, error) {
	var rec rechnungen.Record
	if err := c.do(ctx, http.MethodPost, "/api/rechnungen", body(a, b, op), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) Update(ctx context.Context, id int64, a, b float64, op calculator.Operator) (*rechnungen.Record, error) {
	var rec rechnungen.Record
	if err := c.do(ctx, http.MethodPut, recordPath(id), body(a, b, op), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a record and returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, id int64) (string, error) {
	var resp rechnungen.MessageResponse
	if err := c.do(ctx, http.MethodDelete, recordPath(id), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func recordPath(id int64) string {
	return "/api/rechnungen/" + strconv.FormatInt(id, 10)
}

func body(a, b float64, op calculator.Operator) *rechnungen.RechnungRequest {
	s := string(op)
	return &rechnungen.RechnungRequest{FirstNumber: &a, SecondNumber: &b, Operator: &s}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
