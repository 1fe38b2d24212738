package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dirgate-hq/dirgate/pkg/directory"
)

func (s *Server) registerDeviceTools() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_devices",
		Description: "List registered devices. Supports OData paging, filtering, field selection and ordering.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"top": {
					"type": "integer",
					"description": "Maximum number of devices to return (1-999, default 50)"
				},
				"filter": {
					"type": "string",
					"description": "OData $filter expression (e.g. \"operatingSystem eq 'Windows'\")"
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
	}, s.handle("list_devices", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.List(ctx, directory.Devices, directory.ListParams{
			Top:     args["top"],
			Filter:  args["filter"],
			Select:  args["select"],
			OrderBy: args["orderBy"],
		})
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_device",
		Description: "Get a single device by object ID.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"deviceId": {
					"type": "string",
					"description": "Object ID of the device. Required."
				},
				"select": {
					"type": "array",
					"items": {"type": "string"},
					"description": "Fields to include in the result"
				}
			}
		}`),
	}, s.handle("get_device", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.GetByID(ctx, directory.Devices, args["deviceId"], args["select"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "search_devices",
		Description: "Search devices by prefix. Matches displayName, deviceId and operatingSystem.",
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
	}, s.handle("search_devices", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Search(ctx, directory.Devices, args["searchTerm"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_inactive_devices",
		Description: "List devices whose approximate last sign-in is older than the given number of days.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"days": {
					"type": "integer",
					"description": "Inactivity window in days (1-365, default 90)"
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of devices to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_inactive_devices", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Inactive(ctx, directory.Devices, args["days"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_device_owners",
		Description: "List the registered owners of a device.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"deviceId": {
					"type": "string",
					"description": "Object ID of the device. Required."
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of owners to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_device_owners", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Related(ctx, directory.Devices, "registeredOwners", args["deviceId"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_device_users",
		Description: "List the registered users of a device.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"deviceId": {
					"type": "string",
					"description": "Object ID of the device. Required."
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of users to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_device_users", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.Related(ctx, directory.Devices, "registeredUsers", args["deviceId"], args["top"])
	}))
}
