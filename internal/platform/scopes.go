package platform

import "strings"

// scopeRequirements maps remote operation names to the API scopes an
// integration client must carry to invoke them. The table is static and
// used only to annotate permission-denied errors; unknown operations
// resolve to no scopes, never to an error.
//
// Scope format: "Resource:permission", exactly one colon, both segments
// non-empty (see ValidScope).
var scopeRequirements = map[string][]string{
	// EDR alerts / detections
	"GetQueriesAlertsV2":   {"Alerts:read"},
	"PostEntitiesAlertsV2": {"Alerts:read"},

	// Incidents and environment score
	"QueryIncidents": {"Incidents:read"},
	"GetIncidents":   {"Incidents:read"},
	"CrowdScore":     {"Incidents:read"},

	// Host management
	"QueryDevicesByFilter": {"Hosts:read"},
	"PostDeviceDetailsV2":  {"Hosts:read"},

	// Vulnerability management
	"combinedQueryVulnerabilities": {"Vulnerabilities:read"},
	"getVulnerabilitiesById":       {"Vulnerabilities:read"},

	// Identity protection (GraphQL proxy)
	"api_preempt_proxy_post_graphql": {"Identity Protection GraphQL:write"},

	// SIEM log search jobs
	"StartSearchV1":     {"NGSIEM:read"},
	"GetSearchStatusV1": {"NGSIEM:read"},
	"StopSearchV1":      {"NGSIEM:read"},
	"ListRepositories":  {"NGSIEM:read"},

	// Forensics collector
	"QueryForensicCollections":     {"Forensics:read"},
	"GetForensicCollectionDetails": {"Forensics:read"},
}

// RequiredScopes returns the scopes required by an operation. Unknown
// operations yield an empty slice. The returned slice is a copy; callers
// may hold on to it.
func RequiredScopes(operation string) []string {
	scopes, ok := scopeRequirements[operation]
	if !ok {
		return nil
	}
	out := make([]string, len(scopes))
	copy(out, scopes)
	return out
}

// ValidScope reports whether a scope string is well formed:
// exactly one colon separating a non-empty resource name and a non-empty
// permission name, with no leading or trailing whitespace.
func ValidScope(s string) bool {
	if s != strings.TrimSpace(s) {
		return false
	}
	if strings.Count(s, ":") != 1 {
		return false
	}
	resource, permission, _ := strings.Cut(s, ":")
	return resource != "" && permission != ""
}
