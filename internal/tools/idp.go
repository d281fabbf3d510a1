package tools

import (
	"context"

	"github.com/dropDatabas3/falconbridge/internal/platform"
)

// IDPModule proxies identity-protection GraphQL queries. The backend does
// not use the resources envelope, so successful bodies are returned
// verbatim (the classifier's carve-out for platform.GraphQLOperation).
type IDPModule struct {
	exec platform.Executor
}

func NewIDPModule(exec platform.Executor) *IDPModule {
	return &IDPModule{exec: exec}
}

func (m *IDPModule) Register(r *Registry) error {
	return r.Register(Tool{
		Name:        "idp_investigate",
		Description: "Run an identity-protection GraphQL query (entities, timeline, risk).",
		InputSchema: map[string]any{
			"type":     "object",
			"required": []any{"query"},
			"properties": map[string]any{
				"query": map[string]any{"type": "string", "description": "GraphQL query document"},
			},
		},
		Handler: m.investigate,
	})
}

func (m *IDPModule) investigate(ctx context.Context, args map[string]any) (any, error) {
	query, err := requireString(args, "query")
	if err != nil {
		return &platform.OperationError{Message: err.Error()}, nil
	}
	resp, err := m.exec.Command(ctx, platform.GraphQLOperation, platform.Request{
		Body: platform.Params{"query": query},
	})
	if err != nil {
		return nil, err
	}
	result, opErr := platform.HandleResponse(resp, platform.GraphQLOperation,
		"Identity protection query failed", nil)
	if opErr != nil {
		return opErr, nil
	}
	return result, nil
}
