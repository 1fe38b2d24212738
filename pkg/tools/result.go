package tools

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dirgate-hq/dirgate/pkg/graph"
)

// page is the serialized form of a list result.
type page struct {
	Count int               `json:"count"`
	Value []json.RawMessage `json:"value"`
}

// errorPayload is the serialized form of a classified failure. Kind and
// message are surfaced verbatim; the remaining fields appear only when the
// failure carries them.
type errorPayload struct {
	Kind              string         `json:"kind"`
	Message           string         `json:"message"`
	StatusCode        int            `json:"statusCode,omitempty"`
	Code              string         `json:"code,omitempty"`
	RetryAfterSeconds float64        `json:"retryAfterSeconds,omitempty"`
	Details           map[string]any `json:"details,omitempty"`
}

// jsonResult marshals data into the text content of a successful result.
// Item lists are wrapped in a count/value page so clients can distinguish an
// empty page from a single object.
func jsonResult(data any) *mcp.CallToolResult {
	if items, ok := data.([]json.RawMessage); ok {
		if items == nil {
			items = []json.RawMessage{}
		}
		data = page{Count: len(items), Value: items}
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult(graph.Errorf(graph.KindInternal, "marshal result: %v", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult serializes a classified failure into an error result.
func errResult(cerr *graph.Error) *mcp.CallToolResult {
	payload := errorPayload{
		Kind:       string(cerr.Kind),
		Message:    cerr.Message,
		StatusCode: cerr.StatusCode,
		Code:       cerr.Code,
		Details:    cerr.Details,
	}
	if cerr.RetryAfter > 0 {
		payload.RetryAfterSeconds = cerr.RetryAfter.Seconds()
	}
	b, err := json.MarshalIndent(map[string]errorPayload{"error": payload}, "", "  ")
	if err != nil {
		b = []byte(`{"error":{"kind":"internal_error","message":"failed to serialize error"}}`)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
		IsError: true,
	}
}
