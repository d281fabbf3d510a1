// Package remote implements platform.Executor over HTTP: a static table
// maps operation names to method+path, parameters travel as query string
// or JSON body, and every response is decoded into the status+body
// envelope the orchestration core classifies.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dropDatabas3/falconbridge/internal/observability/logger"
	"github.com/dropDatabas3/falconbridge/internal/platform"
	"go.uber.org/zap"
)

// Operation describes how one named operation is issued on the wire.
type Operation struct {
	Method string
	Path   string
}

// Client issues commands against one platform instance. Token refresh is
// out of scope; the bearer token is static for the process lifetime.
type Client struct {
	baseURL string
	token   string
	ops     map[string]Operation
	http    *http.Client
	log     *zap.Logger
}

func NewClient(name, baseURL, token string, ops map[string]Operation) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		ops:     ops,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logger.Named("remote").With(zap.String("platform", name)),
	}
}

// Command implements platform.Executor.
func (c *Client) Command(ctx context.Context, operation string, req platform.Request) (*platform.Response, error) {
	op, ok := c.ops[operation]
	if !ok {
		return nil, fmt.Errorf("remote: unknown operation %q", operation)
	}

	u := c.baseURL + op.Path
	if q := encodeQuery(req.Query.Clean()); q != "" {
		u += "?" + q
	}

	var body *bytes.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body.Clean())
		if err != nil {
			return nil, fmt.Errorf("remote: encode body for %s: %w", operation, err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, op.Method, u, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("remote: %s: %w", operation, err)
	}
	defer resp.Body.Close()

	decoded := map[string]any{}
	// Non-JSON or empty bodies decode to an empty map; the status code
	// alone is enough for classification.
	_ = json.NewDecoder(resp.Body).Decode(&decoded)

	c.log.Debug("command",
		logger.Operation(operation),
		logger.Status(resp.StatusCode),
		logger.DurationMs(time.Since(start).Milliseconds()))

	return &platform.Response{StatusCode: resp.StatusCode, Body: decoded}, nil
}

// encodeQuery serializes params as a query string. Slice values repeat
// the key, everything else is stringified.
func encodeQuery(p platform.Params) string {
	if len(p) == 0 {
		return ""
	}
	v := url.Values{}
	for k, raw := range p {
		switch vals := raw.(type) {
		case []any:
			for _, item := range vals {
				v.Add(k, fmt.Sprint(item))
			}
		case []string:
			for _, item := range vals {
				v.Add(k, item)
			}
		default:
			v.Add(k, fmt.Sprint(raw))
		}
	}
	return v.Encode()
}
