package platform

import "testing"

func TestRequiredScopes_Unknown(t *testing.T) {
	if got := RequiredScopes("NopeNotReal"); len(got) != 0 {
		t.Fatalf("unknown operation must resolve to empty, got %v", got)
	}
}

func TestRequiredScopes_ReturnsCopy(t *testing.T) {
	a := RequiredScopes("QueryIncidents")
	if len(a) == 0 {
		t.Fatal("expected scopes for QueryIncidents")
	}
	a[0] = "mutated"
	b := RequiredScopes("QueryIncidents")
	if b[0] == "mutated" {
		t.Fatal("RequiredScopes must return a copy")
	}
}

// Every registry entry must be well formed: exactly one colon, non-empty
// resource and permission, no leading/trailing whitespace.
func TestScopeRegistry_Format(t *testing.T) {
	if len(scopeRequirements) == 0 {
		t.Fatal("registry is empty")
	}
	for op, scopes := range scopeRequirements {
		if len(scopes) == 0 {
			t.Fatalf("operation %q has no scopes", op)
		}
		for _, s := range scopes {
			if !ValidScope(s) {
				t.Fatalf("operation %q has malformed scope %q", op, s)
			}
		}
	}
}

func TestValidScope(t *testing.T) {
	valids := []string{
		"Alerts:read",
		"Identity Protection GraphQL:write",
		"a:b",
	}
	for _, v := range valids {
		if !ValidScope(v) {
			t.Fatalf("expected valid: %q", v)
		}
	}

	invalids := []string{
		"",
		"Alerts",          // no colon
		"Alerts:read:all", // two colons
		":read",           // empty resource
		"Alerts:",         // empty permission
		" Alerts:read",    // leading whitespace
		"Alerts:read ",    // trailing whitespace
	}
	for _, v := range invalids {
		if ValidScope(v) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}
