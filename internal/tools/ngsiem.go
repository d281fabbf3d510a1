package tools

import (
	"context"

	"github.com/dropDatabas3/falconbridge/internal/platform"
	"github.com/dropDatabas3/falconbridge/internal/siem"
)

// NGSIEMModule exposes the SIEM's asynchronous log search and its
// repository listing.
type NGSIEMModule struct {
	exec     platform.Executor
	searcher *siem.Searcher
}

func NewNGSIEMModule(exec platform.Executor, searcher *siem.Searcher) *NGSIEMModule {
	return &NGSIEMModule{exec: exec, searcher: searcher}
}

func (m *NGSIEMModule) Register(r *Registry) error {
	if err := r.Register(Tool{
		Name:        "search_log_events",
		Description: "Run a SIEM log search as an asynchronous job and return its events.",
		InputSchema: map[string]any{
			"type":     "object",
			"required": []any{"repository", "query", "start_time"},
			"properties": map[string]any{
				"repository": map[string]any{"type": "string", "description": "SIEM repository to search"},
				"query":      map[string]any{"type": "string", "description": "Search query string"},
				"start_time": map[string]any{"type": "string", "description": "ISO-8601 window start, e.g. 2025-01-01T00:00:00Z"},
				"end_time":   map[string]any{"type": "string", "description": "ISO-8601 window end; omit for 'now'"},
			},
		},
		Handler: m.searchLogEvents,
	}); err != nil {
		return err
	}
	return r.Register(Tool{
		Name:        "list_repositories",
		Description: "List the SIEM repositories available to this client.",
		Handler:     m.listRepositories,
	})
}

func (m *NGSIEMModule) searchLogEvents(ctx context.Context, args map[string]any) (any, error) {
	repository, err := requireString(args, "repository")
	if err != nil {
		return &platform.OperationError{Message: err.Error()}, nil
	}
	query, err := requireString(args, "query")
	if err != nil {
		return &platform.OperationError{Message: err.Error()}, nil
	}
	startTime, err := requireString(args, "start_time")
	if err != nil {
		return &platform.OperationError{Message: err.Error()}, nil
	}
	return m.searcher.RunSearch(ctx, siem.SearchRequest{
		Repository: repository,
		Query:      query,
		StartTime:  startTime,
		EndTime:    argString(args, "end_time"),
	})
}

func (m *NGSIEMModule) listRepositories(ctx context.Context, _ map[string]any) (any, error) {
	resp, err := m.exec.Command(ctx, "ListRepositories", platform.Request{})
	if err != nil {
		return nil, err
	}
	result, opErr := platform.HandleResponse(resp, "ListRepositories", "Failed to list repositories", nil)
	if opErr != nil {
		return opErr, nil
	}
	return result, nil
}
