package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"dirgate-hq/dirgate/pkg/graph"
	"dirgate-hq/dirgate/pkg/odata"
)

// Fixed collection paths for the administrative report queries.
const (
	signInsPath        = "/auditLogs/signIns"
	auditLogsPath      = "/auditLogs/directoryAudits"
	riskyUsersPath     = "/identityProtection/riskyUsers"
	mfaSummaryPath     = "/reports/authenticationMethods/usersRegisteredByFeature"
	subscribedSkusPath = "/subscribedSkus"
	caPoliciesPath     = "/identity/conditionalAccess/policies"
	roleDefsPath       = "/roleManagement/directory/roleDefinitions"
	directoryRolesPath = "/directoryRoles"
)

// SignInsReport returns recent sign-in events, newest first.
func (s *Service) SignInsReport(ctx context.Context, days, top any) ([]json.RawMessage, error) {
	dayWindow, err := odata.Days(days, DefaultSignInDays)
	if err != nil {
		return nil, err
	}
	topValue, err := odata.Top(top, DefaultReportTop)
	if err != nil {
		return nil, err
	}

	anchor := odata.FormatTime(odata.DateOffset(dayWindow))
	return s.list(ctx, "sign_ins", graph.Request{
		Path:    signInsPath,
		Top:     topValue,
		Filter:  fmt.Sprintf("createdDateTime ge %s", anchor),
		OrderBy: "createdDateTime desc",
	})
}

// FailedSignIns returns recent sign-in events that did not succeed,
// newest first.
func (s *Service) FailedSignIns(ctx context.Context, days, top any) ([]json.RawMessage, error) {
	dayWindow, err := odata.Days(days, DefaultSignInDays)
	if err != nil {
		return nil, err
	}
	topValue, err := odata.Top(top, DefaultReportTop)
	if err != nil {
		return nil, err
	}

	anchor := odata.FormatTime(odata.DateOffset(dayWindow))
	return s.list(ctx, "sign_ins", graph.Request{
		Path:    signInsPath,
		Top:     topValue,
		Filter:  fmt.Sprintf("createdDateTime ge %s and status/errorCode ne 0", anchor),
		OrderBy: "createdDateTime desc",
	})
}

// UserSignIns returns one user's recent sign-in events, newest first.
func (s *Service) UserSignIns(ctx context.Context, userID, days any) ([]json.RawMessage, error) {
	id, err := odata.RequiredString(userID, "userId")
	if err != nil {
		return nil, err
	}
	dayWindow, err := odata.Days(days, DefaultSignInDays)
	if err != nil {
		return nil, err
	}

	anchor := odata.FormatTime(odata.DateOffset(dayWindow))
	return s.list(ctx, "sign_ins", graph.Request{
		Path:    signInsPath,
		Top:     DefaultReportTop,
		Filter:  fmt.Sprintf("userId eq '%s' and createdDateTime ge %s", odata.EscapeString(id), anchor),
		OrderBy: "createdDateTime desc",
	})
}

// AuditLogs returns recent directory audit events, newest first, optionally
// restricted to one category.
func (s *Service) AuditLogs(ctx context.Context, days, top, category any) ([]json.RawMessage, error) {
	dayWindow, err := odata.Days(days, DefaultAuditDays)
	if err != nil {
		return nil, err
	}
	topValue, err := odata.Top(top, DefaultReportTop)
	if err != nil {
		return nil, err
	}
	categoryValue, err := odata.OptionalString(category, "category")
	if err != nil {
		return nil, err
	}

	filter := fmt.Sprintf("activityDateTime ge %s", odata.FormatTime(odata.DateOffset(dayWindow)))
	if categoryValue != "" {
		filter += fmt.Sprintf(" and category eq '%s'", odata.EscapeString(categoryValue))
	}

	return s.list(ctx, "audit_logs", graph.Request{
		Path:    auditLogsPath,
		Top:     topValue,
		Filter:  filter,
		OrderBy: "activityDateTime desc",
	})
}

// RiskyUsers returns users flagged by identity protection.
func (s *Service) RiskyUsers(ctx context.Context, top any) ([]json.RawMessage, error) {
	topValue, err := odata.Top(top, DefaultReportTop)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, "risky_users", graph.Request{
		Path: riskyUsersPath,
		Top:  topValue,
	})
}

// UsersMFAStatus returns users with their registered authentication methods
// expanded. The nested-select expand syntax is assumed to be accepted by the
// remote API exactly as written here; it is not independently validated in
// this layer.
func (s *Service) UsersMFAStatus(ctx context.Context, top any) ([]json.RawMessage, error) {
	topValue, err := odata.Top(top, DefaultReportTop)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, string(Users), graph.Request{
		Path:   entities[Users].path,
		Top:    topValue,
		Select: []string{"id", "displayName", "userPrincipalName", "accountEnabled"},
		Expand: "authentication($select=methods)",
	})
}

// MFASummary returns the tenant-wide authentication method registration
// summary as a single object.
func (s *Service) MFASummary(ctx context.Context) (json.RawMessage, error) {
	return s.object(ctx, "reports", graph.Request{Path: mfaSummaryPath})
}

// LicenseUsage returns the tenant's subscribed SKUs with unit counts.
func (s *Service) LicenseUsage(ctx context.Context) ([]json.RawMessage, error) {
	return s.list(ctx, "reports", graph.Request{Path: subscribedSkusPath})
}

// ConditionalAccessPolicies returns conditional access policies.
func (s *Service) ConditionalAccessPolicies(ctx context.Context, top any) ([]json.RawMessage, error) {
	topValue, err := odata.Top(top, DefaultReportTop)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, "policies", graph.Request{
		Path: caPoliciesPath,
		Top:  topValue,
	})
}

// RoleDefinitions returns directory role definitions.
func (s *Service) RoleDefinitions(ctx context.Context, top any) ([]json.RawMessage, error) {
	topValue, err := odata.Top(top, DefaultReportTop)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, "roles", graph.Request{
		Path: roleDefsPath,
		Top:  topValue,
	})
}

// UsersWithAdminRoles returns activated directory roles with their members
// expanded. This uses the advanced-query support of the API.
func (s *Service) UsersWithAdminRoles(ctx context.Context, top any) ([]json.RawMessage, error) {
	topValue, err := odata.Top(top, DefaultReportTop)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, "roles", graph.Request{
		Path:          directoryRolesPath,
		Top:           topValue,
		Expand:        "members",
		AdvancedQuery: true,
	})
}
