package platform

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/falconbridge/internal/observability/logger"
	"go.uber.org/zap"
)

// SearchParams are the caller-supplied filters of the search step. Zero
// values are omitted from the request entirely (never sent as nulls).
type SearchParams struct {
	Filter string `json:"filter,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Query  string `json:"q,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

func (p SearchParams) toParams() Params {
	out := Params{}
	if p.Filter != "" {
		out["filter"] = p.Filter
	}
	if p.Limit > 0 {
		out["limit"] = p.Limit
	}
	if p.Offset > 0 {
		out["offset"] = p.Offset
	}
	if p.Query != "" {
		out["q"] = p.Query
	}
	if p.Sort != "" {
		out["sort"] = p.Sort
	}
	return out
}

// SearchSpec describes one entity type's two-step search: the search
// operation that resolves identifiers, and the bulk fetch operation that
// turns identifiers into full records.
type SearchSpec struct {
	// SearchOp resolves lightweight identifiers from a filter.
	SearchOp string
	// FetchOp fetches full details for a batch of identifiers.
	FetchOp string
	// IDField is the parameter name the fetch operation expects the
	// identifiers under (e.g. "ids", "composite_ids").
	IDField string
	// FetchViaQuery sends the identifiers as query parameters instead of
	// a request body.
	FetchViaQuery bool
	// FQLGuide is the filter-syntax documentation attached to search-side
	// errors and empty results.
	FQLGuide string
}

// GuidedResult wraps a search-side failure or empty result together with
// the FQL guide. Filter-syntax mistakes are the most likely failure mode
// of a search call, so the caller is always handed the syntax docs
// alongside the raw outcome. Downstream fetch failures are never wrapped
// this way: the filter already matched, so filter docs would mislead.
type GuidedResult struct {
	Results    []any  `json:"results"`
	FilterUsed string `json:"filter_used,omitempty"`
	FQLGuide   string `json:"fql_guide"`
	Hint       string `json:"hint"`
}

// Engine implements the two-step resolve-then-fetch pattern. It is
// stateless; one Engine per executor is shared across requests.
type Engine struct {
	exec Executor
	log  *zap.Logger
}

func NewEngine(exec Executor) *Engine {
	return &Engine{exec: exec, log: logger.Named("search")}
}

// SearchThenFetch runs the two-step pattern and returns a
// JSON-serializable value: the raw detail sequence on success, a
// GuidedResult for search-side errors and empty results, or an
// OperationError for downstream fetch failures. The returned error is
// non-nil only for transport failures where no response exists.
func (e *Engine) SearchThenFetch(ctx context.Context, spec SearchSpec, params SearchParams) (any, error) {
	resp, err := e.exec.Command(ctx, spec.SearchOp, Request{Query: params.toParams()})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.SearchOp, err)
	}

	found, opErr := HandleResponse(resp, spec.SearchOp,
		fmt.Sprintf("Failed to search via %s", spec.SearchOp), nil)
	if opErr != nil {
		e.log.Warn("search step failed",
			logger.Operation(spec.SearchOp), zap.String("filter", params.Filter))
		return &GuidedResult{
			Results:    []any{opErr},
			FilterUsed: params.Filter,
			FQLGuide:   spec.FQLGuide,
			Hint:       "The search request failed. Review the FQL guide below and correct the filter syntax, then retry.",
		}, nil
	}

	ids, _ := found.([]any)
	if len(ids) == 0 {
		return &GuidedResult{
			Results:    []any{},
			FilterUsed: params.Filter,
			FQLGuide:   spec.FQLGuide,
			Hint:       "No results matched the filter. Refine the filter and try again.",
		}, nil
	}

	req := Request{}
	if spec.FetchViaQuery {
		req.Query = Params{spec.IDField: ids}
	} else {
		req.Body = Params{spec.IDField: ids}
	}
	detResp, err := e.exec.Command(ctx, spec.FetchOp, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.FetchOp, err)
	}

	// A failure here is not a filter problem, so no guide is attached.
	details, opErr := HandleResponse(detResp, spec.FetchOp,
		fmt.Sprintf("Failed to fetch details via %s", spec.FetchOp), nil)
	if opErr != nil {
		e.log.Warn("detail fetch failed", logger.Operation(spec.FetchOp))
		return opErr, nil
	}
	return details, nil
}
