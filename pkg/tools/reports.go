package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerReportTools() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_mfa_summary",
		Description: "Get the tenant-wide summary of authentication method registration (MFA, SSPR, passwordless).",
		InputSchema: json.RawMessage(`{"type": "object"}`),
	}, s.handle("get_mfa_summary", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.MFASummary(ctx)
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_sign_ins_report",
		Description: "List recent sign-in events across the tenant, newest first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"days": {
					"type": "integer",
					"description": "Look-back window in days (1-365, default 7)"
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of events to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_sign_ins_report", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.SignInsReport(ctx, args["days"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_failed_sign_ins",
		Description: "List recent failed sign-in attempts across the tenant, newest first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"days": {
					"type": "integer",
					"description": "Look-back window in days (1-365, default 7)"
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of events to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_failed_sign_ins", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.FailedSignIns(ctx, args["days"], args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_audit_logs",
		Description: "List recent directory audit events, newest first, optionally restricted to one category.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"days": {
					"type": "integer",
					"description": "Look-back window in days (1-365, default 7)"
				},
				"top": {
					"type": "integer",
					"description": "Maximum number of events to return (1-999, default 50)"
				},
				"category": {
					"type": "string",
					"description": "Audit category to restrict to (e.g. \"UserManagement\")"
				}
			}
		}`),
	}, s.handle("get_audit_logs", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.AuditLogs(ctx, args["days"], args["top"], args["category"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_risky_users",
		Description: "List users flagged by identity protection as risky.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"top": {
					"type": "integer",
					"description": "Maximum number of users to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_risky_users", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.RiskyUsers(ctx, args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_users_with_admin_roles",
		Description: "List activated directory roles with their members, for privileged-access review.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"top": {
					"type": "integer",
					"description": "Maximum number of roles to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_users_with_admin_roles", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.UsersWithAdminRoles(ctx, args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_license_usage",
		Description: "List subscribed license SKUs with consumed and available unit counts.",
		InputSchema: json.RawMessage(`{"type": "object"}`),
	}, s.handle("get_license_usage", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.LicenseUsage(ctx)
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_conditional_access_policies",
		Description: "List conditional access policies.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"top": {
					"type": "integer",
					"description": "Maximum number of policies to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_conditional_access_policies", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.ConditionalAccessPolicies(ctx, args["top"])
	}))

	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_role_definitions",
		Description: "List directory role definitions.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"top": {
					"type": "integer",
					"description": "Maximum number of role definitions to return (1-999, default 50)"
				}
			}
		}`),
	}, s.handle("get_role_definitions", func(ctx context.Context, args map[string]any) (any, error) {
		return s.dir.RoleDefinitions(ctx, args["top"])
	}))
}
