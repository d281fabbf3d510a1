package tools

import (
	"context"

	"github.com/dropDatabas3/falconbridge/internal/platform"
)

const detectionsFQLGuide = `Detections FQL guide
====================
Filter expressions combine property:value pairs with + (AND) and , (OR).
String values are single-quoted; wildcards use *.

Common properties:
  status              'new', 'in_progress', 'closed'
  severity            integer 1-100 (severity:>=70 for high and critical)
  agent_id            sensor agent id
  device.hostname     hostname of the affected host
  created_timestamp   RFC3339, supports ranges (created_timestamp:>'2025-01-01')

Examples:
  status:'new'+severity:>=70
  device.hostname:'WEB-*',device.hostname:'DB-*'`

// DetectionsModule exposes EDR detection search.
type DetectionsModule struct {
	engine *platform.Engine
}

func NewDetectionsModule(exec platform.Executor) *DetectionsModule {
	return &DetectionsModule{engine: platform.NewEngine(exec)}
}

func (m *DetectionsModule) Register(r *Registry) error {
	return r.Register(Tool{
		Name:        "search_detections",
		Description: "Search EDR detections by FQL filter and return full detection records.",
		InputSchema: searchInputSchema("FQL filter over detections, e.g. status:'new'+severity:>=70"),
		Handler:     m.searchDetections,
	})
}

func (m *DetectionsModule) searchDetections(ctx context.Context, args map[string]any) (any, error) {
	return m.engine.SearchThenFetch(ctx, platform.SearchSpec{
		SearchOp: "GetQueriesAlertsV2",
		FetchOp:  "PostEntitiesAlertsV2",
		IDField:  "composite_ids",
		FQLGuide: detectionsFQLGuide,
	}, searchParamsFromArgs(args))
}
