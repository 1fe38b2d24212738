package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dirgate-hq/dirgate/pkg/directory"
)

func (s *Server) registerGroupTools() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_groups",
		Description: "List groups in the directory. Supports OData paging, filtering, field selection and ordering.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"top": {
					"type": "integer",
					"description": "Maximum number of groups to return (1-999, default 50)"
				},
				"filter": {
					"type": "string",
					"description": "OData $filter expression (e.g. \"securityEnabled eq true\")"
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
	}, s.handle("list_groups", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.List(ctx, directory.Groups, directory.ListParams{
			Top:     args["top"],
			Filter:  args["filter"],
			Select:  args["select"],
			OrderBy: args["orderBy"],
		})
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_group",
		Description: "Get a single group by object ID.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"groupId": {
					"type": "string",
					"description": "Object ID of the group. Required."
				},
				"select": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Fields to include in the result"
				}
			}
		}`),
	}, s.handle("get_group", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.GetByID(ctx, directory.Groups, args["groupId"], args["select"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "search_groups",
		Description: "Search groups by name prefix. Matches displayName and mail.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"searchTerm": {
					"type": "string",
					"description": "Prefix to match against the searchable fields. Required."
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of matches to return (1-999, default 10)"
				}
			}
		}`),
	}, s.handle("search_groups", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Search(ctx, directory.Groups, args["searchTerm"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_group_members",
		Description: "List the members of a group.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"groupId": {
					"type": "string",
					"description": "Object ID of the group. Required."
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of members to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_group_members", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Related(ctx, directory.Groups, "members", args["groupId"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_group_owners",
		Description: "List the owners of a group.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"groupId": {
					"type": "string",
					"description": "Object ID of the group. Required."
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of owners to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_group_owners", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Related(ctx, directory.Groups, "owners", args["groupId"], args["top"])
	}))
}
