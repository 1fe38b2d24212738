package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dirgate-hq/dirgate/pkg/directory"
)

func (s *Server) registerUserTools() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_users",
		Description: "List users in the directory. Supports OData paging, filtering, field selection and ordering.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"top": {
					"type": "integer",
					"description": "Maximum number of users to return (1-999, default 50)"
				},
				"filter": {
					"type": "string",
					"description": "OData $filter expression (e.g. \"accountEnabled eq true\")"
				},
				"select": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Fields to include in each result"
				},
				"orderBy": {
					"type": "string",
					"description": "OData $orderby expression (e.g. \"displayName asc\")"
				}
			}
		}`),
	}, s.handle("list_users", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.List(ctx, directory.Users, directory.ListParams{
			Top:     args["top"],
			Filter:  args["filter"],
			Select:  args["select"],
			OrderBy: args["orderBy"],
		})
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_user",
		Description: "Get a single user by object ID or userPrincipalName.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"userId": {
					"type": "string",
					"description": "Object ID or userPrincipalName of the user. Required."
				},
				"select": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Fields to include in the result"
				}
			}
		}`),
	}, s.handle("get_user", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.GetByID(ctx, directory.Users, args["userId"], args["select"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "search_users",
		Description: "Search users by name prefix. Matches displayName, givenName, surname, mail and userPrincipalName.",
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
	}, s.handle("search_users", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Search(ctx, directory.Users, args["searchTerm"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_inactive_users",
		Description: "List users whose last sign-in is older than the given number of days.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"days": {
					"type": "integer",
					"description": "Inactivity window in days (1-365, default 90)"
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of users to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_inactive_users", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Inactive(ctx, directory.Users, args["days"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_users_mfa_status",
		Description: "List users with their registered authentication methods, for MFA coverage review.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"top": {
					"type": "integer",
					"description": "Maximum number of users to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_users_mfa_status", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.UsersMFAStatus(ctx, args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_user_sign_ins",
		Description: "List one user's recent sign-in events, newest first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"userId": {
					"type": "string",
					"description": "Object ID of the user. Required."
				},
				"days": {
					"type": "integer",
					"description": "Look-back window in days (1-365, default 7)"
				}
			}
		}`),
	}, s.handle("get_user_sign_ins", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.UserSignIns(ctx, args["userId"], args["days"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_user_groups",
		Description: "List the groups and directory roles a user is a member of.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"userId": {
					"type": "string",
					"description": "Object ID or userPrincipalName of the user. Required."
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of memberships to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_user_groups", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Related(ctx, directory.Users, "groups", args["userId"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_user_devices",
		Description: "List the devices owned by a user.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"userId": {
					"type": "string",
					"description": "Object ID or userPrincipalName of the user. Required."
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of devices to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_user_devices", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Related(ctx, directory.Users, "devices", args["userId"], args["top"])
	}))
}
