// Package platform contains the query orchestration core shared by every
// adapter module: the remote executor contract, response classification,
// scope lookup and the two-step search/resolve engine.
package platform

import "context"

// Params holds the key/value parameters of a remote operation.
type Params map[string]any

// Clean returns a copy of p with nil-valued entries removed.
// Platform APIs reject explicit nulls, so they are stripped before
// transmission rather than sent.
func (p Params) Clean() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// Request carries the parameters for a remote command. Query entries are
// transmitted as query-string parameters, Body as a JSON request body.
type Request struct {
	Query Params
	Body  Params
}

// Response is the result of invoking a named remote operation.
// It is created fresh per call and never persisted.
type Response struct {
	StatusCode int            `json:"status_code"`
	Body       map[string]any `json:"body,omitempty"`
}

// Executor issues a named operation against a remote platform and returns
// its response. Implementations are expected to be safe for concurrent
// use; the orchestration layer treats them as opaque.
//
// A returned error means the command never produced a response (transport
// failure). API-level failures come back as a Response with status >= 400
// and are classified by this package, not by the executor.
type Executor interface {
	Command(ctx context.Context, operation string, req Request) (*Response, error)
}
