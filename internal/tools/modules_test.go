package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/dropDatabas3/falconbridge/internal/platform"
)

// scriptedExecutor replays canned responses per operation.
type scriptedExecutor struct {
	responses map[string]*platform.Response
	calls     []string
	lastReq   map[string]platform.Request
}

func (s *scriptedExecutor) Command(_ context.Context, operation string, req platform.Request) (*platform.Response, error) {
	s.calls = append(s.calls, operation)
	if s.lastReq == nil {
		s.lastReq = map[string]platform.Request{}
	}
	s.lastReq[operation] = req
	if r, ok := s.responses[operation]; ok {
		return r, nil
	}
	return &platform.Response{StatusCode: 404, Body: map[string]any{}}, nil
}

func resources(items ...any) *platform.Response {
	return &platform.Response{StatusCode: 200, Body: map[string]any{"resources": items}}
}

func TestDetections_SearchWiresCompositeIDs(t *testing.T) {
	exec := &scriptedExecutor{responses: map[string]*platform.Response{
		"GetQueriesAlertsV2":   resources("det-1"),
		"PostEntitiesAlertsV2": resources(map[string]any{"composite_id": "det-1"}),
	}}
	m := NewDetectionsModule(exec)
	r := NewRegistry()
	if err := m.Register(r); err != nil {
		t.Fatal(err)
	}

	env := r.Call(context.Background(), "search_detections", map[string]any{"filter": "status:'new'"})
	if !env.OK {
		t.Fatalf("call failed: %+v", env)
	}
	if _, ok := env.Result.([]any); !ok {
		t.Fatalf("expected detail sequence, got %#v", env.Result)
	}
	fetch := exec.lastReq["PostEntitiesAlertsV2"]
	if _, ok := fetch.Body["composite_ids"]; !ok {
		t.Fatalf("detections fetch must send composite_ids in body: %+v", fetch)
	}
}

func TestVulnerabilities_FetchUsesQueryParams(t *testing.T) {
	exec := &scriptedExecutor{responses: map[string]*platform.Response{
		"combinedQueryVulnerabilities": resources("vuln-1"),
		"getVulnerabilitiesById":       resources(map[string]any{"id": "vuln-1"}),
	}}
	m := NewVulnerabilitiesModule(exec)
	r := NewRegistry()
	if err := m.Register(r); err != nil {
		t.Fatal(err)
	}

	env := r.Call(context.Background(), "search_vulnerabilities", map[string]any{"filter": "status:'open'"})
	if !env.OK {
		t.Fatalf("call failed: %+v", env)
	}
	fetch := exec.lastReq["getVulnerabilitiesById"]
	if fetch.Query == nil || fetch.Body != nil {
		t.Fatalf("vulnerability fetch must use query params: %+v", fetch)
	}
}

func TestIncidents_EmptySearchReturnsGuide(t *testing.T) {
	exec := &scriptedExecutor{responses: map[string]*platform.Response{
		"QueryIncidents": resources(),
	}}
	m := NewIncidentsModule(exec)
	r := NewRegistry()
	if err := m.Register(r); err != nil {
		t.Fatal(err)
	}

	env := r.Call(context.Background(), "search_incidents", map[string]any{"filter": "state:'open'"})
	gr, ok := env.Result.(*platform.GuidedResult)
	if !ok {
		t.Fatalf("expected guided result, got %#v", env.Result)
	}
	if gr.FQLGuide != incidentsFQLGuide {
		t.Fatal("incident module must attach its own guide")
	}
}

func TestIncidents_CrowdScore(t *testing.T) {
	exec := &scriptedExecutor{responses: map[string]*platform.Response{
		"CrowdScore": resources(map[string]any{"score": float64(42)}),
	}}
	m := NewIncidentsModule(exec)
	r := NewRegistry()
	_ = m.Register(r)

	env := r.Call(context.Background(), "get_crowd_score", map[string]any{"limit": float64(3)})
	if !env.OK {
		t.Fatalf("call failed: %+v", env)
	}
	scores, ok := env.Result.([]any)
	if !ok || len(scores) != 1 {
		t.Fatalf("unexpected result: %#v", env.Result)
	}
	q := exec.lastReq["CrowdScore"].Query
	if q["limit"] != 3 || q["sort"] != "timestamp.desc" {
		t.Fatalf("crowd score query wrong: %v", q)
	}
}

func TestIDP_ReturnsBodyVerbatim(t *testing.T) {
	exec := &scriptedExecutor{responses: map[string]*platform.Response{
		platform.GraphQLOperation: {StatusCode: 200, Body: map[string]any{
			"data": map[string]any{"entities": []any{}},
		}},
	}}
	m := NewIDPModule(exec)
	r := NewRegistry()
	_ = m.Register(r)

	env := r.Call(context.Background(), "idp_investigate", map[string]any{"query": "{ entities { nodes { primaryDisplayName } } }"})
	if !env.OK {
		t.Fatalf("call failed: %+v", env)
	}
	body, ok := env.Result.(map[string]any)
	if !ok {
		t.Fatalf("graphql result must be the raw body, got %#v", env.Result)
	}
	if _, ok := body["data"]; !ok {
		t.Fatal("body not verbatim")
	}

	// Missing query is a structured error, not an abort.
	env = r.Call(context.Background(), "idp_investigate", map[string]any{})
	opErr, ok := env.Result.(*platform.OperationError)
	if !ok || !strings.Contains(opErr.Message, "query") {
		t.Fatalf("expected missing-argument error, got %#v", env.Result)
	}
}
