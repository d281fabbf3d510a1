package platform

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeExecutor replays canned responses per operation and records calls.
type fakeExecutor struct {
	responses map[string]*Response
	errs      map[string]error
	calls     []fakeCall
}

type fakeCall struct {
	operation string
	req       Request
}

func (f *fakeExecutor) Command(_ context.Context, operation string, req Request) (*Response, error) {
	f.calls = append(f.calls, fakeCall{operation, req})
	if err, ok := f.errs[operation]; ok {
		return nil, err
	}
	if r, ok := f.responses[operation]; ok {
		return r, nil
	}
	return &Response{StatusCode: 404, Body: map[string]any{}}, nil
}

var hostSpec = SearchSpec{
	SearchOp: "QueryDevicesByFilter",
	FetchOp:  "PostDeviceDetailsV2",
	IDField:  "ids",
	FQLGuide: "=== Host FQL guide ===",
}

func TestSearchThenFetch_Success(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]*Response{
		"QueryDevicesByFilter": {StatusCode: 200, Body: map[string]any{"resources": []any{"id-1", "id-2"}}},
		"PostDeviceDetailsV2": {StatusCode: 200, Body: map[string]any{"resources": []any{
			map[string]any{"device_id": "id-1"},
			map[string]any{"device_id": "id-2"},
		}}},
	}}
	e := NewEngine(exec)

	got, err := e.SearchThenFetch(context.Background(), hostSpec, SearchParams{Filter: `platform_name:'Linux'`, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	details, ok := got.([]any)
	if !ok || len(details) != 2 {
		t.Fatalf("expected raw detail sequence, got %#v", got)
	}

	// Fetch op defaults to body transmission.
	fetch := exec.calls[1]
	if fetch.req.Body == nil || fetch.req.Query != nil {
		t.Fatalf("fetch should use body params: %+v", fetch.req)
	}
	ids, _ := fetch.req.Body["ids"].([]any)
	if len(ids) != 2 || ids[0] != "id-1" {
		t.Fatalf("fetch body ids wrong: %v", fetch.req.Body)
	}
}

func TestSearchThenFetch_FetchViaQueryParams(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]*Response{
		"QueryDevicesByFilter": {StatusCode: 200, Body: map[string]any{"resources": []any{"id-1"}}},
		"PostDeviceDetailsV2":  {StatusCode: 200, Body: map[string]any{"resources": []any{map[string]any{}}}},
	}}
	spec := hostSpec
	spec.FetchViaQuery = true
	e := NewEngine(exec)

	if _, err := e.SearchThenFetch(context.Background(), spec, SearchParams{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fetch := exec.calls[1]
	if fetch.req.Query == nil || fetch.req.Body != nil {
		t.Fatalf("fetch should use query params: %+v", fetch.req)
	}
}

func TestSearchThenFetch_EmptyResultGetsGuide(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]*Response{
		"QueryDevicesByFilter": {StatusCode: 200, Body: map[string]any{"resources": []any{}}},
	}}
	e := NewEngine(exec)

	got, err := e.SearchThenFetch(context.Background(), hostSpec, SearchParams{Filter: "hostname:'web*'"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gr, ok := got.(*GuidedResult)
	if !ok {
		t.Fatalf("expected GuidedResult, got %#v", got)
	}
	if gr.FQLGuide != hostSpec.FQLGuide {
		t.Fatalf("fql_guide must be the caller's guide, got %q", gr.FQLGuide)
	}
	if !strings.Contains(strings.ToLower(gr.Hint), "no results") {
		t.Fatalf("empty-result hint should mention no results: %q", gr.Hint)
	}
	if gr.FilterUsed != "hostname:'web*'" {
		t.Fatalf("filter_used wrong: %q", gr.FilterUsed)
	}
	if len(exec.calls) != 1 {
		t.Fatal("fetch must not run when search found nothing")
	}
}

func TestSearchThenFetch_SearchErrorGetsGuide(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]*Response{
		"QueryDevicesByFilter": {StatusCode: 400, Body: map[string]any{"errors": []any{"bad filter"}}},
	}}
	e := NewEngine(exec)

	got, err := e.SearchThenFetch(context.Background(), hostSpec, SearchParams{Filter: "bogus=="})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gr, ok := got.(*GuidedResult)
	if !ok {
		t.Fatalf("expected GuidedResult, got %#v", got)
	}
	if gr.FQLGuide != hostSpec.FQLGuide {
		t.Fatalf("fql_guide must be attached on search errors, got %q", gr.FQLGuide)
	}
	low := strings.ToLower(gr.Hint)
	if !strings.Contains(low, "guide") || !strings.Contains(low, "syntax") {
		t.Fatalf("error hint should reference reviewing the guide for syntax: %q", gr.Hint)
	}
	if len(gr.Results) != 1 {
		t.Fatalf("wrapped results should carry the error: %v", gr.Results)
	}
	if _, ok := gr.Results[0].(*OperationError); !ok {
		t.Fatalf("wrapped payload should be the OperationError, got %T", gr.Results[0])
	}
}

func TestSearchThenFetch_FetchErrorIsNeverGuided(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]*Response{
		"QueryDevicesByFilter": {StatusCode: 200, Body: map[string]any{"resources": []any{"id-1"}}},
		"PostDeviceDetailsV2":  {StatusCode: 500, Body: map[string]any{}},
	}}
	e := NewEngine(exec)

	got, err := e.SearchThenFetch(context.Background(), hostSpec, SearchParams{Filter: "x:'y'"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opErr, ok := got.(*OperationError)
	if !ok {
		t.Fatalf("downstream failure must surface raw, got %#v", got)
	}
	if opErr.Operation != "PostDeviceDetailsV2" {
		t.Fatalf("error should name the fetch op: %+v", opErr)
	}
}

func TestSearchThenFetch_TransportError(t *testing.T) {
	exec := &fakeExecutor{errs: map[string]error{"QueryDevicesByFilter": errors.New("conn refused")}}
	e := NewEngine(exec)
	if _, err := e.SearchThenFetch(context.Background(), hostSpec, SearchParams{}); err == nil {
		t.Fatal("transport failure must return an error")
	}
}

func TestSearchParams_ZeroValuesStripped(t *testing.T) {
	got := SearchParams{Filter: "f", Limit: 0}.toParams()
	if len(got) != 1 || got["filter"] != "f" {
		t.Fatalf("unset params must not be transmitted: %v", got)
	}
}
