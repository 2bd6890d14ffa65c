// Package api invokes the vendor video-translation REST surface.
//
// The Client builds authenticated requests, hands them to the transport
// retrier, and normalizes every answer into either a decoded value or a
// typed error. Nothing in this package panics across its boundary.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/config"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/transport"
)

// maxResponseBodySize bounds how much of a vendor response is read.
const maxResponseBodySize = 1 << 20 // 1 MiB

// Header names required by the vendor API.
const (
	headerSubscriptionKey = "Ocp-Apim-Subscription-Key"
	headerOperationID     = "Operation-Id"
	headerContentType     = "Content-Type"
)

// Result is a successful (2xx) vendor response.
type Result struct {
	StatusCode int
	Body       []byte
}

// Client talks to the vendor video-translation service.
type Client struct {
	cfg     *config.Config
	retrier *transport.Retrier
}

// NewClient returns a Client bound to the given configuration and retrier.
func NewClient(cfg *config.Config, retrier *transport.Retrier) *Client {
	return &Client{cfg: cfg, retrier: retrier}
}

// descriptor builds the immutable request descriptor for one API call.
// operationID is only set on PUT submissions; body may be nil.
func (c *Client) descriptor(method, path, operationID string, body any) (transport.RequestDescriptor, error) {
	q := url.Values{}
	q.Set("api-version", c.cfg.APIVersion)

	headers := map[string]string{
		headerSubscriptionKey: c.cfg.SubscriptionKey,
	}
	if operationID != "" {
		headers[headerOperationID] = operationID
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return transport.RequestDescriptor{}, fmt.Errorf("marshal request body: %w", err)
		}
		headers[headerContentType] = "application/json"
	}

	return transport.RequestDescriptor{
		Method:  method,
		URL:     c.cfg.BaseURL() + path + "?" + q.Encode(),
		Headers: headers,
		Body:    payload,
	}, nil
}

// invoke performs one API call and normalizes the outcome: a Result on 2xx,
// an *Error on any other status, or the transport error as-is.
func (c *Client) invoke(ctx context.Context, desc transport.RequestDescriptor) (Result, error) {
	resp, err := c.retrier.Do(ctx, desc)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if readErr != nil {
		return Result{}, fmt.Errorf("read response: %w", readErr)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{StatusCode: resp.StatusCode, Body: body}, nil
	}
	return Result{}, newError(resp.StatusCode, body)
}

// call performs an API call and decodes the 2xx body into out when out is
// non-nil.
func (c *Client) call(ctx context.Context, method, path, operationID string, body, out any) error {
	desc, err := c.descriptor(method, path, operationID, body)
	if err != nil {
		return err
	}

	res, err := c.invoke(ctx, desc)
	if err != nil {
		return err
	}
	if out == nil || len(res.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// CreateTranslation submits a translation job under the given id. The
// operationID becomes the handle for polling the submission.
func (c *Client) CreateTranslation(ctx context.Context, id, operationID string, t *Translation) (*Translation, error) {
	var created Translation
	err := c.call(ctx, http.MethodPut, "/translations/"+url.PathEscape(id), operationID, t, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetTranslation fetches a translation job by id.
func (c *Client) GetTranslation(ctx context.Context, id string) (*Translation, error) {
	var t Translation
	err := c.call(ctx, http.MethodGet, "/translations/"+url.PathEscape(id), "", nil, &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTranslations fetches the first page of translation jobs.
func (c *Client) ListTranslations(ctx context.Context) (*PagedTranslations, error) {
	var page PagedTranslations
	err := c.call(ctx, http.MethodGet, "/translations", "", nil, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteTranslation removes a translation job and its artifacts server-side.
func (c *Client) DeleteTranslation(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/translations/"+url.PathEscape(id), "", nil, nil)
}

// CreateIteration submits a refinement pass under an existing translation.
// The operationID becomes the handle for polling the submission.
func (c *Client) CreateIteration(ctx context.Context, translationID, iterationID, operationID string, it *Iteration) (*Iteration, error) {
	path := "/translations/" + url.PathEscape(translationID) + "/iterations/" + url.PathEscape(iterationID)
	var created Iteration
	err := c.call(ctx, http.MethodPut, path, operationID, it, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetIteration fetches one iteration of a translation job.
func (c *Client) GetIteration(ctx context.Context, translationID, iterationID string) (*Iteration, error) {
	path := "/translations/" + url.PathEscape(translationID) + "/iterations/" + url.PathEscape(iterationID)
	var it Iteration
	err := c.call(ctx, http.MethodGet, path, "", nil, &it)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetOperation fetches the status record of an asynchronous operation.
func (c *Client) GetOperation(ctx context.Context, id string) (*Operation, error) {
	var op Operation
	err := c.call(ctx, http.MethodGet, "/operations/"+url.PathEscape(id), "", nil, &op)
	if err != nil {
		return nil, err
	}
	return &op, nil
}
