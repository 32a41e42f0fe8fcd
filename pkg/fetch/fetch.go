// Package fetch requests the introspection result from a GraphQL endpoint.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/sirupsen/logrus"
)

var (
	// ErrTransport covers network failures and non-2xx responses.
	ErrTransport = errors.New("transport error")

	// ErrDecode covers responses that are not an introspection result.
	ErrDecode = errors.New("decode error")
)

// maxErrorBody caps how much of a failed response ends up in an error.
const maxErrorBody = 512

// Options configures a Client. The zero value is usable.
type Options struct {
	HTTPClient   *http.Client
	Header       http.Header
	QueryOptions *introspection.QueryOptions
	// Retries is how many times a transport failure is retried.
	Retries int
	// InitialInterval is the first backoff delay between retries.
	InitialInterval time.Duration
	Logger          logrus.FieldLogger
}

// Client sends introspection queries.
type Client struct {
	httpClient      *http.Client
	header          http.Header
	query           string
	retries         int
	initialInterval time.Duration
	log             logrus.FieldLogger
}

func NewClient(opts Options) *Client {
	c := &Client{
		httpClient:      opts.HTTPClient,
		header:          opts.Header.Clone(),
		query:           introspection.Query(),
		retries:         opts.Retries,
		initialInterval: opts.InitialInterval,
		log:             opts.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = cleanhttp.DefaultPooledClient()
	}
	if opts.QueryOptions != nil {
		c.query = introspection.QueryWithOptions(*opts.QueryOptions)
	}
	if c.initialInterval <= 0 {
		c.initialInterval = 500 * time.Millisecond
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	return c
}

// Fetch posts the introspection query to endpoint and returns the __schema
// part of the response.
func (c *Client) Fetch(ctx context.Context, endpoint string) (*introspection.Schema, error) {
	body, err := json.Marshal(map[string]string{"query": c.query})
	if err != nil {
		return nil, err
	}

	log := c.log.WithField("endpoint", endpoint)
	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(backoff.WithInitialInterval(c.initialInterval)), uint64(max(c.retries, 0))),
		ctx,
	)

	attempt := 0
	payload, err := backoff.RetryNotifyWithData(func() ([]byte, error) {
		attempt++
		log.WithField("attempt", attempt).Debug("sending introspection query")
		payload, err := c.do(ctx, endpoint, body)
		if err != nil && ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return payload, err
	}, bo, func(err error, next time.Duration) {
		log.WithFields(logrus.Fields{"attempt": attempt, "retry_in": next}).WithError(err).Warn("introspection request failed, retrying")
	})
	if err != nil {
		return nil, err
	}
	log.WithField("bytes", len(payload)).Debug("received introspection response")

	schema, err := introspection.DecodeResponse(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return schema, nil
}

func (c *Client) do(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: %w", ErrTransport, err))
	}
	for key, values := range c.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrTransport, err)
	}
	c.log.WithFields(logrus.Fields{"endpoint": endpoint, "status": resp.StatusCode}).Debug("introspection response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := payload
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		err := fmt.Errorf("%w: %s: %s", ErrTransport, resp.Status, bytes.TrimSpace(snippet))
		// Client errors will not fix themselves.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	return payload, nil
}

// Fetch is a shortcut for NewClient(Options{}).Fetch.
func Fetch(ctx context.Context, endpoint string) (*introspection.Schema, error) {
	return NewClient(Options{}).Fetch(ctx, endpoint)
}
