package platform

import (
	"fmt"
	"strings"
)

// GraphQLOperation is the one operation whose successful body is returned
// verbatim instead of being unwrapped: the identity-protection backend
// speaks GraphQL and does not use the resources envelope. The carve-out is
// keyed by operation name, never by body shape.
const GraphQLOperation = "api_preempt_proxy_post_graphql"

// OperationError is the normalized failure representation every API call
// funnels into. It is a plain value the caller can relay to an agent; it
// also implements error for use at package boundaries.
type OperationError struct {
	Message        string    `json:"error"`
	Details        *Response `json:"details,omitempty"`
	Operation      string    `json:"operation,omitempty"`
	RequiredScopes []string  `json:"required_scopes,omitempty"`
	Resolution     string    `json:"resolution,omitempty"`
}

func (e *OperationError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s: %s", e.Operation, e.Message)
	}
	return e.Message
}

// IsSuccess reports whether a response carries a success status.
// Success iff status code is present and < 400; a missing status code is
// treated as failure.
func IsSuccess(r *Response) bool {
	return r != nil && r.StatusCode > 0 && r.StatusCode < 400
}

// ExtractResources pulls the resources envelope out of a response.
// A failed response or an empty/missing resources field both yield def
// (or an empty sequence when def is nil). Callers that must tell an API
// error apart from an empty result use HandleResponse instead.
func ExtractResources(r *Response, def []any) []any {
	fallback := def
	if fallback == nil {
		fallback = []any{}
	}
	if !IsSuccess(r) {
		return fallback
	}
	res, ok := r.Body["resources"].([]any)
	if !ok || len(res) == 0 {
		return fallback
	}
	return res
}

// isPermissionStatus reports whether a status code is in the
// permission-denied class that warrants scope annotation.
func isPermissionStatus(code int) bool {
	return code == 401 || code == 403
}

// ClassifyError builds the OperationError for a failed response. For
// permission-denied statuses the required scopes of the operation are
// looked up and a remediation sentence naming them is attached; unknown
// operations yield no scopes and no resolution.
func ClassifyError(r *Response, operation, message string) *OperationError {
	oe := &OperationError{
		Message:   message,
		Details:   r,
		Operation: operation,
	}
	if r != nil && isPermissionStatus(r.StatusCode) {
		if scopes := RequiredScopes(operation); len(scopes) > 0 {
			oe.RequiredScopes = scopes
			oe.Resolution = fmt.Sprintf(
				"Permission denied. Ensure the API client has the following scopes: %s",
				strings.Join(scopes, ", "))
		}
	}
	return oe
}

// HandleResponse classifies a response and returns either its payload or
// an OperationError. On success the resources envelope is unwrapped,
// except for GraphQLOperation where the whole body is returned verbatim.
func HandleResponse(r *Response, operation, errMessage string, def []any) (any, *OperationError) {
	if !IsSuccess(r) {
		return nil, ClassifyError(r, operation, errMessage)
	}
	if operation == GraphQLOperation {
		return r.Body, nil
	}
	return ExtractResources(r, def), nil
}

// ExtractFirstResource returns the first resource of a response, or an
// OperationError carrying notFoundMessage when the response failed or the
// envelope is empty. Used by single-resource lookups.
func ExtractFirstResource(r *Response, operation, notFoundMessage string) (any, *OperationError) {
	res := ExtractResources(r, nil)
	if len(res) == 0 {
		return nil, &OperationError{Message: notFoundMessage, Operation: operation}
	}
	return res[0], nil
}
