package tools

import (
	"context"

	"github.com/dropDatabas3/falconbridge/internal/platform"
)

const vulnerabilitiesFQLGuide = `Vulnerabilities FQL guide
=========================
Filter expressions combine property:value pairs with + (AND) and , (OR).

Common properties:
  status                 'open', 'closed', 'reopen', 'expired'
  cve.id                 CVE identifier (cve.id:'CVE-2025-1234')
  cve.severity           'CRITICAL', 'HIGH', 'MEDIUM', 'LOW'
  cve.exprt_rating       expert rating of exploit likelihood
  created_timestamp      RFC3339, supports ranges
  host_info.platform     affected host platform

Examples:
  status:'open'+cve.severity:'CRITICAL'
  cve.id:'CVE-2025-1234'`

// VulnerabilitiesModule exposes vulnerability search. Its detail fetch is
// the one that travels as query parameters rather than a body.
type VulnerabilitiesModule struct {
	engine *platform.Engine
}

func NewVulnerabilitiesModule(exec platform.Executor) *VulnerabilitiesModule {
	return &VulnerabilitiesModule{engine: platform.NewEngine(exec)}
}

func (m *VulnerabilitiesModule) Register(r *Registry) error {
	return r.Register(Tool{
		Name:        "search_vulnerabilities",
		Description: "Search vulnerabilities by FQL filter and return full vulnerability records.",
		InputSchema: searchInputSchema("FQL filter over vulnerabilities, e.g. status:'open'+cve.severity:'CRITICAL'"),
		Handler:     m.searchVulnerabilities,
	})
}

func (m *VulnerabilitiesModule) searchVulnerabilities(ctx context.Context, args map[string]any) (any, error) {
	return m.engine.SearchThenFetch(ctx, platform.SearchSpec{
		SearchOp:      "combinedQueryVulnerabilities",
		FetchOp:       "getVulnerabilitiesById",
		IDField:       "ids",
		FetchViaQuery: true,
		FQLGuide:      vulnerabilitiesFQLGuide,
	}, searchParamsFromArgs(args))
}
