package remote

// Default operation tables per platform. Paths follow each platform's
// published API; the orchestration core only ever sees operation names.

// FalconOperations covers the EDR/cloud platform.
func FalconOperations() map[string]Operation {
	return map[string]Operation{
		"GetQueriesAlertsV2":   {Method: "GET", Path: "/alerts/queries/alerts/v2"},
		"PostEntitiesAlertsV2": {Method: "POST", Path: "/alerts/entities/alerts/v2"},

		"QueryIncidents": {Method: "GET", Path: "/incidents/queries/incidents/v1"},
		"GetIncidents":   {Method: "POST", Path: "/incidents/entities/incidents/GET/v1"},
		"CrowdScore":     {Method: "GET", Path: "/incidents/combined/crowdscores/v1"},

		"QueryDevicesByFilter": {Method: "GET", Path: "/devices/queries/devices/v1"},
		"PostDeviceDetailsV2":  {Method: "POST", Path: "/devices/entities/devices/v2"},

		"combinedQueryVulnerabilities": {Method: "GET", Path: "/spotlight/combined/vulnerabilities/v1"},
		"getVulnerabilitiesById":       {Method: "GET", Path: "/spotlight/entities/vulnerabilities/v2"},

		"api_preempt_proxy_post_graphql": {Method: "POST", Path: "/identity-protection/combined/graphql/v1"},
	}
}

// SIEMOperations covers the log-search platform's async job lifecycle.
func SIEMOperations() map[string]Operation {
	return map[string]Operation{
		"StartSearchV1":     {Method: "POST", Path: "/humio/api/v1/search"},
		"GetSearchStatusV1": {Method: "GET", Path: "/humio/api/v1/search/status"},
		"StopSearchV1":      {Method: "POST", Path: "/humio/api/v1/search/stop"},
		"ListRepositories":  {Method: "GET", Path: "/humio/api/v1/repositories"},
	}
}

// ForensicsOperations covers the forensics collector.
func ForensicsOperations() map[string]Operation {
	return map[string]Operation{
		"QueryForensicCollections":     {Method: "GET", Path: "/forensics/queries/collections/v1"},
		"GetForensicCollectionDetails": {Method: "GET", Path: "/forensics/entities/collections/v1"},
	}
}
