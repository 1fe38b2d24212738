package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dirgate-hq/dirgate/pkg/directory"
)

func (s *Server) registerApplicationTools() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_applications",
		Description: "List application registrations. Supports OData paging, filtering, field selection and ordering.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"top": {
					"type": "integer",
					"description": "Maximum number of applications to return (1-999, default 50)"
				},
				"filter": {
					"type": "string",
					"description": "OData $filter expression"
				},
				"select": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Fields to include in each result"
				},
				"orderBy": {
					"type": "string",
					"description": "OData $orderby expression"
				}
			}
		}`),
	}, s.handle("list_applications", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.List(ctx, directory.Applications, directory.ListParams{
			Top:     args["top"],
			Filter:  args["filter"],
			Select:  args["select"],
			OrderBy: args["orderBy"],
		})
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_application",
		Description: "Get a single application registration by object ID.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"applicationId": {
					"type": "string",
					"description": "Object ID of the application. Required."
				},
				"select": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Fields to include in the result"
				}
			}
		}`),
	}, s.handle("get_application", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.GetByID(ctx, directory.Applications, args["applicationId"], args["select"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "search_applications",
		Description: "Search application registrations by display name prefix.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"searchTerm": {
					"type": "string",
					"description": "Prefix to match against displayName. Required."
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of matches to return (1-999, default 10)"
				}
			}
		}`),
	}, s.handle("search_applications", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Search(ctx, directory.Applications, args["searchTerm"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_application_owners",
		Description: "List the owners of an application registration.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"applicationId": {
					"type": "string",
					"description": "Object ID of the application. Required."
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of owners to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_application_owners", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Related(ctx, directory.Applications, "owners", args["applicationId"], args["top"])
	}))
}
