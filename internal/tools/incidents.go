package tools

import (
	"context"

	"github.com/dropDatabas3/falconbridge/internal/platform"
)

const incidentsFQLGuide = `Incidents FQL guide
===================
Filter expressions combine property:value pairs with + (AND) and , (OR).

Common properties:
  state             'open', 'closed'
  status            20 (new), 25 (reopened), 30 (in progress), 40 (closed)
  fine_score        incident score, supports ranges (fine_score:>=50)
  host_ids          affected device ids
  start/end         RFC3339 incident window bounds

Examples:
  state:'open'+fine_score:>=50
  status:'20',status:'30'`

// IncidentsModule exposes incident search and the environment-wide
// crowd score.
type IncidentsModule struct {
	exec   platform.Executor
	engine *platform.Engine
}

func NewIncidentsModule(exec platform.Executor) *IncidentsModule {
	return &IncidentsModule{exec: exec, engine: platform.NewEngine(exec)}
}

func (m *IncidentsModule) Register(r *Registry) error {
	if err := r.Register(Tool{
		Name:        "search_incidents",
		Description: "Search incidents by FQL filter and return full incident records.",
		InputSchema: searchInputSchema("FQL filter over incidents, e.g. state:'open'+fine_score:>=50"),
		Handler:     m.searchIncidents,
	}); err != nil {
		return err
	}
	return r.Register(Tool{
		Name:        "get_crowd_score",
		Description: "Return the environment-wide threat score history (latest first).",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "description": "Number of score entries to return"},
			},
		},
		Handler: m.getCrowdScore,
	})
}

func (m *IncidentsModule) searchIncidents(ctx context.Context, args map[string]any) (any, error) {
	return m.engine.SearchThenFetch(ctx, platform.SearchSpec{
		SearchOp: "QueryIncidents",
		FetchOp:  "GetIncidents",
		IDField:  "ids",
		FQLGuide: incidentsFQLGuide,
	}, searchParamsFromArgs(args))
}

// getCrowdScore is a simple read: one call, classified directly.
func (m *IncidentsModule) getCrowdScore(ctx context.Context, args map[string]any) (any, error) {
	query := platform.Params{"sort": "timestamp.desc"}
	if limit := argInt(args, "limit"); limit > 0 {
		query["limit"] = limit
	}
	resp, err := m.exec.Command(ctx, "CrowdScore", platform.Request{Query: query})
	if err != nil {
		return nil, err
	}
	result, opErr := platform.HandleResponse(resp, "CrowdScore", "Failed to get crowd score", nil)
	if opErr != nil {
		return opErr, nil
	}
	return result, nil
}
