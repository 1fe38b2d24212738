package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"dirgate-hq/dirgate/pkg/graph"
	"dirgate-hq/dirgate/pkg/odata"
	"dirgate-hq/dirgate/pkg/telemetry/metrics"
)

// Default page sizes and day windows resolved when a tool call omits them.
const (
	DefaultListTop      = 50
	DefaultSearchTop    = 10
	DefaultRelatedTop   = 50
	DefaultReportTop    = 50
	DefaultInactiveDays = 90
	DefaultSignInDays   = 7
	DefaultAuditDays    = 7
)

// Service is the generic query builder, instantiated once and shared by all
// tool invocations. Each operation validates its parameters, composes a
// Request, and executes it through the retry engine. The retry policy is the
// only mutable field: the config watcher may replace it while calls are in
// flight, so reads and writes go through policyMu.
type Service struct {
	client    *graph.Client
	logger    *slog.Logger
	collector *metrics.Collector

	policyMu sync.RWMutex
	policy   graph.Policy
}

// NewService creates a Service. logger may be nil (slog.Default is used);
// collector may be nil (metrics are skipped).
func NewService(client *graph.Client, policy graph.Policy, logger *slog.Logger, collector *metrics.Collector) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, policy: policy, logger: logger, collector: collector}
}

// SetPolicy replaces the retry policy for subsequent calls (used by config
// hot-reload). In-flight retry loops keep the policy they started with.
func (s *Service) SetPolicy(policy graph.Policy) {
	s.policyMu.Lock()
	s.policy = policy
	s.policyMu.Unlock()
}

// ListParams are the raw arguments for a collection listing.
type ListParams struct {
	Top     any
	Filter  any
	Select  any
	OrderBy any
}

// List returns a page of entities with top, filter, select, and orderBy
// applied in that order.
func (s *Service) List(ctx context.Context, entity Entity, p ListParams) ([]json.RawMessage, error) {
	meta, err := metaFor(entity)
	if err != nil {
		return nil, err
	}

	top, err := odata.Top(p.Top, DefaultListTop)
	if err != nil {
		return nil, err
	}
	filter, err := odata.Filter(p.Filter)
	if err != nil {
		return nil, err
	}
	sel, err := odata.StringSlice(p.Select, "select")
	if err != nil {
		return nil, err
	}
	orderBy, err := odata.OptionalString(p.OrderBy, "orderBy")
	if err != nil {
		return nil, err
	}

	return s.list(ctx, string(entity), graph.Request{
		Path:    meta.path,
		Top:     top,
		Filter:  filter,
		Select:  sel,
		OrderBy: orderBy,
	})
}

// GetByID fetches a single entity by identifier, with an optional field
// projection. The result is returned as-is, with no envelope unwrapping.
func (s *Service) GetByID(ctx context.Context, entity Entity, id, sel any) (json.RawMessage, error) {
	meta, err := metaFor(entity)
	if err != nil {
		return nil, err
	}

	idValue, err := odata.RequiredString(id, idField(entity))
	if err != nil {
		return nil, err
	}
	selected, err := odata.StringSlice(sel, "select")
	if err != nil {
		return nil, err
	}

	return s.object(ctx, string(entity), graph.Request{
		Path:   meta.path + "/" + url.PathEscape(idValue),
		Select: selected,
	})
}

// Search returns entities whose searchable fields start with the given term.
// The term is escaped before interpolation into the filter expression.
func (s *Service) Search(ctx context.Context, entity Entity, term, top any) ([]json.RawMessage, error) {
	meta, err := metaFor(entity)
	if err != nil {
		return nil, err
	}

	termValue, err := odata.RequiredString(term, "searchTerm")
	if err != nil {
		return nil, err
	}
	topValue, err := odata.Top(top, DefaultSearchTop)
	if err != nil {
		return nil, err
	}

	return s.list(ctx, string(entity), graph.Request{
		Path:   meta.path,
		Top:    topValue,
		Filter: searchFilter(meta.searchFields, termValue),
	})
}

// Related returns a relationship collection under one entity (group members,
// user groups, device owners, and so on).
func (s *Service) Related(ctx context.Context, entity Entity, relation string, id, top any) ([]json.RawMessage, error) {
	meta, err := metaFor(entity)
	if err != nil {
		return nil, err
	}
	subPath, ok := meta.relations[relation]
	if !ok {
		return nil, graph.Errorf(graph.KindInternal, "entity %s has no relationship %q", entity, relation)
	}

	idValue, err := odata.RequiredString(id, idField(entity))
	if err != nil {
		return nil, err
	}
	topValue, err := odata.Top(top, DefaultRelatedTop)
	if err != nil {
		return nil, err
	}

	return s.list(ctx, string(entity), graph.Request{
		Path: meta.path + "/" + url.PathEscape(idValue) + "/" + subPath,
		Top:  topValue,
	})
}

// Inactive returns entities whose activity timestamp is at or before
// now minus the given day window.
func (s *Service) Inactive(ctx context.Context, entity Entity, days, top any) ([]json.RawMessage, error) {
	meta, err := metaFor(entity)
	if err != nil {
		return nil, err
	}
	if meta.activityField == "" {
		return nil, graph.Errorf(graph.KindInternal, "entity %s has no activity field", entity)
	}

	dayWindow, err := odata.Days(days, DefaultInactiveDays)
	if err != nil {
		return nil, err
	}
	topValue, err := odata.Top(top, DefaultListTop)
	if err != nil {
		return nil, err
	}

	anchor := odata.DateOffset(dayWindow)
	return s.list(ctx, string(entity), graph.Request{
		Path:   meta.path,
		Top:    topValue,
		Filter: fmt.Sprintf("%s le %s", meta.activityField, odata.FormatTime(anchor)),
	})
}

// list executes a collection query through the retry engine and unwraps the
// page envelope.
func (s *Service) list(ctx context.Context, label string, req graph.Request) ([]json.RawMessage, error) {
	start := time.Now()
	items, err := graph.Do(ctx, s.policyFor(label), func(ctx context.Context) ([]json.RawMessage, error) {
		return s.client.List(ctx, req)
	})
	s.observe(label, req.Path, start, err)
	return items, err
}

// object executes a single-item query through the retry engine.
func (s *Service) object(ctx context.Context, label string, req graph.Request) (json.RawMessage, error) {
	start := time.Now()
	body, err := graph.Do(ctx, s.policyFor(label), func(ctx context.Context) (json.RawMessage, error) {
		return s.client.Get(ctx, req)
	})
	s.observe(label, req.Path, start, err)
	return body, err
}

// policyFor snapshots the configured policy and attaches the retry
// observation hook. The snapshot stays fixed for the whole retry loop even
// if SetPolicy runs mid-flight.
func (s *Service) policyFor(label string) graph.Policy {
	s.policyMu.RLock()
	policy := s.policy
	s.policyMu.RUnlock()
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		reason := string(graph.Classify(err).Kind)
		s.logger.Warn("retrying query",
			"entity", label,
			"attempt", attempt+1,
			"delay", delay,
			"reason", reason,
		)
		if s.collector != nil {
			s.collector.RecordRetry(reason)
		}
	}
	return policy
}

func (s *Service) observe(label, path string, start time.Time, err error) {
	duration := time.Since(start)
	status := "ok"
	if err != nil {
		status = string(graph.Classify(err).Kind)
		s.logger.Error("query failed", "entity", label, "path", path, "status", status, "duration", duration)
	} else {
		s.logger.Debug("query completed", "entity", label, "path", path, "duration", duration)
	}
	if s.collector != nil {
		s.collector.RecordRequest(label, status, duration)
	}
}

// searchFilter builds the disjunctive startswith filter over the entity's
// searchable fields.
func searchFilter(fields []string, term string) string {
	escaped := odata.EscapeString(term)
	clauses := make([]string, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, fmt.Sprintf("startswith(%s,'%s')", field, escaped))
	}
	return strings.Join(clauses, " or ")
}

// idField names the identifier parameter for error messages.
func idField(entity Entity) string {
	switch entity {
	case Users:
		return "userId"
	case Groups:
		return "groupId"
	case Applications:
		return "applicationId"
	case Devices:
		return "deviceId"
	default:
		return "id"
	}
}

func metaFor(entity Entity) (entityMeta, error) {
	meta, ok := entities[entity]
	if !ok {
		return entityMeta{}, graph.Errorf(graph.KindInternal, "unknown entity %q", entity)
	}
	return meta, nil
}
