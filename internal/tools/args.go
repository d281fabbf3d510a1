package tools

import (
	"fmt"

	"github.com/dropDatabas3/falconbridge/internal/platform"
)

// Argument extraction for handlers. Agent-supplied arguments arrive as
// decoded JSON, so numbers are float64 and everything is optional unless
// the handler says otherwise.

func argString(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func argInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func requireString(args map[string]any, key string) (string, error) {
	v := argString(args, key)
	if v == "" {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	return v, nil
}

// searchParamsFromArgs maps the shared search arguments onto the engine's
// params. Unset arguments stay zero and are stripped before transmission.
func searchParamsFromArgs(args map[string]any) platform.SearchParams {
	return platform.SearchParams{
		Filter: argString(args, "filter"),
		Limit:  argInt(args, "limit"),
		Offset: argInt(args, "offset"),
		Query:  argString(args, "q"),
		Sort:   argString(args, "sort"),
	}
}

// searchInputSchema is the shared JSON schema of two-step search tools.
func searchInputSchema(filterDoc string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"filter": map[string]any{"type": "string", "description": filterDoc},
			"limit":  map[string]any{"type": "integer", "description": "Maximum number of identifiers to resolve"},
			"offset": map[string]any{"type": "integer", "description": "Offset into the identifier set"},
			"q":      map[string]any{"type": "string", "description": "Free-text match across searchable fields"},
			"sort":   map[string]any{"type": "string", "description": "Sort expression, e.g. created_timestamp.desc"},
		},
	}
}
