package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/benedict-erwin/store-console/pkg/baseurl"
	"github.com/benedict-erwin/store-console/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// HeaderRequestID correlates a call across candidates and server logs
const HeaderRequestID = "X-Request-ID"

// Options are the per-call request settings
type Options struct {
	Method string
	Header http.Header
	Query  url.Values
	// Body is sent as JSON. []byte, string and json.RawMessage are sent as-is.
	Body any
	// Form switches to a multipart body; Body is ignored when set
	Form *Form
	// BaseURL overrides the client base URL for this call
	BaseURL string
}

// Form is a multipart payload
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// FormFile is one file part of a Form
type FormFile struct {
	Field    string
	FileName string
	Content  []byte
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeRoutingMiss
	outcomeFailure
)

func (o outcome) String() string {
	switch o {
	case outcomeOK:
		return OutcomeOK
	case outcomeRoutingMiss:
		return OutcomeRoutingMiss
	default:
		return OutcomeFailure
	}
}

// result is what one attempt against one candidate produced
type result struct {
	outcome     outcome
	body        []byte
	contentType string
	err         error
}

// preparedBody is encoded once and replayed for every candidate
type preparedBody struct {
	data        []byte
	contentType string
	multipart   bool
}

// Request issues a call and decodes the JSON response into T
func Request[T any](ctx context.Context, c *Client, endpoint string, opts Options) (T, error) {
	var out T
	err := c.Do(ctx, endpoint, opts, &out)
	return out, err
}

// Do issues a call and decodes the JSON response into out (skipped when out is nil)
func (c *Client) Do(ctx context.Context, endpoint string, opts Options, out any) error {
	body, _, err := c.send(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

// Download fetches a binary payload such as a spreadsheet export
func (c *Client) Download(ctx context.Context, endpoint string, opts Options) ([]byte, string, error) {
	return c.send(ctx, endpoint, opts)
}

// send walks the base URL candidates. A 404 (or a transport-level missing
// route) on any but the last candidate moves on to the next one; everything
// else ends the walk.
func (c *Client) send(ctx context.Context, endpoint string, opts Options) ([]byte, string, error) {
	log := logger.WithScope("apiRequest")

	prepared, err := prepareBody(opts)
	if err != nil {
		return nil, "", err
	}

	base := opts.BaseURL
	if base == "" {
		base = c.baseURL
	}
	candidates := baseurl.Candidates(base)
	requestID := opts.Header.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	var lastErr error
	for i, candidate := range candidates {
		isLast := i == len(candidates)-1
		res := c.attempt(ctx, candidate, endpoint, opts, prepared, requestID, isLast)

		switch res.outcome {
		case outcomeOK:
			return res.body, res.contentType, nil
		case outcomeRoutingMiss:
			log.Debug().
				Err(res.err).
				Str("endpoint", endpoint).
				Str("base_url", candidate).
				Str("request_id", requestID).
				Msg("Route missing, trying next base URL")
			lastErr = res.err
		default:
			return nil, "", res.err
		}
	}

	if lastErr == nil {
		lastErr = ErrRequestFailed
	}
	return nil, "", lastErr
}

func (c *Client) attempt(ctx context.Context, candidate, endpoint string, opts Options, prepared preparedBody, requestID string, isLast bool) result {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	target := candidate + endpoint
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	var reader io.Reader
	if prepared.data != nil {
		reader = bytes.NewReader(prepared.data)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return result{outcome: outcomeFailure, err: fmt.Errorf("failed to build request: %w", err)}
	}
	if err := c.applyHeaders(ctx, req, opts, prepared, requestID); err != nil {
		return result{outcome: outcomeFailure, err: err}
	}

	a := Attempt{Method: method, Endpoint: endpoint, BaseURL: candidate}
	start := time.Now()
	res := c.exchange(ctx, req, isLast)
	a.Latency = time.Since(start)
	a.Outcome = res.outcome.String()
	a.Err = res.err
	var apiErr *Error
	if errors.As(res.err, &apiErr) {
		a.Status = apiErr.Status
		if apiErr.Status == http.StatusUnauthorized {
			a.Outcome = OutcomeUnauthorized
		}
	} else if res.outcome == outcomeOK {
		a.Status = http.StatusOK
	}
	c.observe(ctx, a)
	return res
}

func (c *Client) exchange(ctx context.Context, req *http.Request, isLast bool) result {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == nil && !isLast && isRoutingMiss(err) {
			return result{outcome: outcomeRoutingMiss, err: err}
		}
		return result{outcome: outcomeFailure, err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{outcome: outcomeFailure, err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return result{outcome: outcomeOK, body: body, contentType: resp.Header.Get("Content-Type")}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.HandleAuthError(ctx)
		return result{outcome: outcomeFailure, err: &Error{Status: resp.StatusCode, Message: ErrUnauthorized.Error(), Body: body}}
	}

	apiErr := errorFromResponse(resp.StatusCode, body)
	apiErr.BaseURL = req.URL.Scheme + "://" + req.URL.Host
	if resp.StatusCode == http.StatusNotFound && !isLast {
		return result{outcome: outcomeRoutingMiss, err: apiErr}
	}
	return result{outcome: outcomeFailure, err: apiErr}
}

func (c *Client) applyHeaders(ctx context.Context, req *http.Request, opts Options, prepared preparedBody, requestID string) error {
	for key, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	if prepared.multipart {
		req.Header.Set("Content-Type", prepared.contentType)
	} else {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set(HeaderRequestID, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	// expiry is not checked here, the server rejects stale tokens
	tok, ok, err := c.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	if ok && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return nil
}

func prepareBody(opts Options) (preparedBody, error) {
	if opts.Form != nil {
		return encodeForm(opts.Form)
	}
	switch body := opts.Body.(type) {
	case nil:
		return preparedBody{}, nil
	case []byte:
		return preparedBody{data: body}, nil
	case string:
		return preparedBody{data: []byte(body)}, nil
	case json.RawMessage:
		return preparedBody{data: body}, nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return preparedBody{}, fmt.Errorf("failed to encode request body: %w", err)
		}
		return preparedBody{data: data}, nil
	}
}

func encodeForm(form *Form) (preparedBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range form.Fields {
		if err := w.WriteField(name, value); err != nil {
			return preparedBody{}, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	for _, f := range form.Files {
		part, err := w.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return preparedBody{}, fmt.Errorf("failed to create form file %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return preparedBody{}, fmt.Errorf("failed to write form file %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return preparedBody{}, fmt.Errorf("failed to close form: %w", err)
	}
	return preparedBody{data: buf.Bytes(), contentType: w.FormDataContentType(), multipart: true}, nil
}
