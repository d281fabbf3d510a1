package tools

import (
	"context"

	"github.com/dropDatabas3/falconbridge/internal/platform"
)

const hostsFQLGuide = `Hosts FQL guide
===============
Filter expressions combine property:value pairs with + (AND) and , (OR).

Common properties:
  hostname           host name, wildcards supported (hostname:'WEB-*')
  platform_name      'Windows', 'Linux', 'Mac'
  os_version         OS version string
  status             containment state: 'normal', 'contained', 'containment_pending'
  last_seen          RFC3339, supports ranges
  external_ip        public IP of the host

Examples:
  platform_name:'Linux'+status:'normal'
  hostname:'DB-*'+last_seen:>'2025-06-01'`

// HostsModule exposes host/device search.
type HostsModule struct {
	engine *platform.Engine
}

func NewHostsModule(exec platform.Executor) *HostsModule {
	return &HostsModule{engine: platform.NewEngine(exec)}
}

func (m *HostsModule) Register(r *Registry) error {
	return r.Register(Tool{
		Name:        "search_hosts",
		Description: "Search managed hosts by FQL filter and return full device records.",
		InputSchema: searchInputSchema("FQL filter over hosts, e.g. platform_name:'Linux'"),
		Handler:     m.searchHosts,
	})
}

func (m *HostsModule) searchHosts(ctx context.Context, args map[string]any) (any, error) {
	return m.engine.SearchThenFetch(ctx, platform.SearchSpec{
		SearchOp: "QueryDevicesByFilter",
		FetchOp:  "PostDeviceDetailsV2",
		IDField:  "ids",
		FQLGuide: hostsFQLGuide,
	}, searchParamsFromArgs(args))
}
