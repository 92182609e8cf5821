package soap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the vendor (10MB)
const maxResponseSize = 10 * 1024 * 1024

// defaultNamespace is the rpc namespace bound to the operation element when
// no override is given.
const defaultNamespace = "urn:webservice"

// Caller performs one remote procedure call against a vendor SOAP service
// and returns the decoded return value. Implementations must be safe for
// concurrent use; each call is an independent request/response round trip.
type Caller interface {
	Call(ctx context.Context, operation string, params []Param) (*Node, error)
}

// Client is an HTTP transport for one vendor SOAP endpoint.
type Client struct {
	endpoint   string
	namespace  string
	httpClient *http.Client
	logger     *zap.Logger
	debug      bool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithNamespace overrides the rpc namespace of the operation element.
func WithNamespace(ns string) ClientOption {
	return func(c *Client) {
		c.namespace = ns
	}
}

// WithLogger attaches a logger to the client.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithDebug enables request/response debug logging.
func WithDebug(debug bool) ClientOption {
	return func(c *Client) {
		c.debug = debug
	}
}

// NewClient creates a client for the given endpoint URL.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:  endpoint,
		namespace: defaultNamespace,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Call encodes the operation into an envelope, posts it to the endpoint and
// decodes the response into the node tree. Transport-level failures are
// returned as errors; vendor business outcomes live inside the returned
// node and are the caller's concern.
func (c *Client) Call(ctx context.Context, operation string, params []Param) (*Node, error) {
	requestID := uuid.NewString()
	started := time.Now()

	envelope, err := EncodeEnvelope(c.namespace, operation, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("soap: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPAction", fmt.Sprintf("%q", operation))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("soap: request to %s failed: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("soap: failed to read response: %w", err)
	}

	if c.debug {
		c.logger.Debug("soap call",
			zap.String("request_id", requestID),
			zap.String("endpoint", c.endpoint),
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(started)),
			zap.Int("response_bytes", len(body)),
		)
	}

	// Faulting servers answer with 500 and a fault body; DecodeResponse
	// surfaces the fault. Any other error status is a transport failure.
	node, decodeErr := DecodeResponse(body, operation)
	if decodeErr != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("soap: %s returned HTTP %d: %w", c.endpoint, resp.StatusCode, decodeErr)
		}
		return nil, decodeErr
	}

	return node, nil
}

var _ Caller = (*Client)(nil)
