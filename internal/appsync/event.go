// Package appsync defines the event payloads AppSync delivers to Lambda
// direct resolvers.
package appsync

import "encoding/json"

// ResolverEvent is the invocation payload for a direct Lambda resolver.
// Arguments are kept raw so each resolver can decode the shape it expects.
type ResolverEvent struct {
	Info      Info            `json:"info"`
	Arguments json.RawMessage `json:"arguments"`
	Identity  Identity        `json:"identity"`
	Source    json.RawMessage `json:"source"`
	Request   Request         `json:"request"`
}

// Info describes the GraphQL field being resolved.
type Info struct {
	FieldName      string         `json:"fieldName"`
	ParentTypeName string         `json:"parentTypeName"`
	Variables      map[string]any `json:"variables"`
}

// Identity carries the caller's verified identity. Sub is the trusted
// subject identifier; token verification happens upstream of this Lambda.
type Identity struct {
	Sub      string         `json:"sub"`
	Username string         `json:"username"`
	Claims   map[string]any `json:"claims"`
}

// Request carries transport metadata.
type Request struct {
	Headers map[string]string `json:"headers"`
}

// ReportEvent is the invocation payload for the reports Lambda.
type ReportEvent struct {
	Identity  Identity        `json:"identity"`
	Arguments ReportArguments `json:"arguments"`
}

// ReportArguments restricts the report to todos created within the range.
// Both bounds are optional.
type ReportArguments struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
