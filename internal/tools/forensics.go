package tools

import (
	"context"

	"github.com/dropDatabas3/falconbridge/internal/platform"
)

const forensicsFQLGuide = `Forensic collections FQL guide
==============================
Filter expressions combine property:value pairs with + (AND) and , (OR).

Common properties:
  hostname           host the collection ran on
  status             'pending', 'running', 'complete', 'failed'
  triage_type        'full', 'targeted'
  created_timestamp  RFC3339, supports ranges

Examples:
  status:'complete'+hostname:'WEB-01'
  triage_type:'full'+created_timestamp:>'2025-06-01'`

// ForensicsModule exposes forensic collection search on the collector
// platform.
type ForensicsModule struct {
	engine *platform.Engine
}

func NewForensicsModule(exec platform.Executor) *ForensicsModule {
	return &ForensicsModule{engine: platform.NewEngine(exec)}
}

func (m *ForensicsModule) Register(r *Registry) error {
	return r.Register(Tool{
		Name:        "search_collections",
		Description: "Search forensic collections by FQL filter and return full collection records.",
		InputSchema: searchInputSchema("FQL filter over collections, e.g. status:'complete'"),
		Handler:     m.searchCollections,
	})
}

func (m *ForensicsModule) searchCollections(ctx context.Context, args map[string]any) (any, error) {
	return m.engine.SearchThenFetch(ctx, platform.SearchSpec{
		SearchOp:      "QueryForensicCollections",
		FetchOp:       "GetForensicCollectionDetails",
		IDField:       "ids",
		FetchViaQuery: true,
		FQLGuide:      forensicsFQLGuide,
	}, searchParamsFromArgs(args))
}
