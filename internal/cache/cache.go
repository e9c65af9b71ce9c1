// Package cache maintains the in-memory routing table driven by IngressRoute
// watch events and answers backend lookups against it.
//
// The watch adapter (HandleEvent) is the table's only writer and processes
// events one at a time in arrival order. Resolve may be called concurrently
// from any number of request-handling goroutines; it works on a snapshot of
// the table captured at call time, so a lookup racing an update returns a
// result from either the pre-update or post-update table, never a torn one.
package cache

import (
	"context"
	"log/slog"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/watch"

	"github.com/routemesh/ingressd/api/v1alpha1"
	"github.com/routemesh/ingressd/internal/metrics"
	"github.com/routemesh/ingressd/internal/route"
)

// Cache owns the routing table for one watched stream of IngressRoute
// objects. Construct one per stream with New; there is no shared global.
type Cache struct {
	table   *Table[route.ID, *route.RuleSet]
	logger  *slog.Logger
	metrics metrics.Collector
}

// New creates an empty Cache. The table fills as watch events arrive.
func New(logger *slog.Logger, collector metrics.Collector) *Cache {
	if logger == nil {
		logger = slog.Default()
	}

	if collector == nil {
		collector = metrics.NewNoopCollector()
	}

	return &Cache{
		table:   NewTable[route.ID, *route.RuleSet](),
		logger:  logger.With("component", "route-cache"),
		metrics: collector,
	}
}

// Len returns the number of rule sets currently held.
func (c *Cache) Len() int {
	return c.table.Len()
}

// HandleEvent applies one watch event to the routing table.
//
// Added and Modified events replace the stored rule set for the object's
// identity wholesale. Objects without a namespace or name are dropped, and
// objects whose translation yields no rule set leave the previously stored
// entry untouched: a malformed update must not erase valid rules. Deleted
// events remove the entry. Error events are logged and counted without
// mutating the table, so lookups keep serving the last good state.
func (c *Cache) HandleEvent(ctx context.Context, event watch.Event) {
	c.metrics.RecordWatchEvent(ctx, string(event.Type))

	switch event.Type {
	case watch.Added, watch.Modified:
		c.upsert(ctx, event)
	case watch.Deleted:
		c.remove(ctx, event)
	case watch.Error:
		c.reportError(ctx, event)
	case watch.Bookmark:
	}
}

func (c *Cache) upsert(ctx context.Context, event watch.Event) {
	obj, ok := event.Object.(*v1alpha1.IngressRoute)
	if !ok {
		c.logger.Warn("unexpected object in watch event",
			"event", string(event.Type),
			"object", event.Object.GetObjectKind().GroupVersionKind().String(),
		)
		c.metrics.RecordDroppedEvent(ctx, metrics.DropReasonBadObject)

		return
	}

	id, ok := identity(obj)
	if !ok {
		c.logger.Debug("dropping event without resource identity",
			"event", string(event.Type),
			"namespace", obj.Namespace,
			"name", obj.Name,
		)
		c.metrics.RecordDroppedEvent(ctx, metrics.DropReasonNoIdentity)

		return
	}

	set := route.Translate(obj)
	if set == nil {
		// Prior valid rules for this identity must survive a malformed update.
		c.logger.Debug("ignoring object without spec", "resource", id.String())
		c.metrics.RecordDroppedEvent(ctx, metrics.DropReasonMalformedSpec)

		return
	}

	c.table.Upsert(id, set)
	c.metrics.RecordRuleSets(ctx, c.table.Len())
	c.logger.Debug("stored rule set",
		"resource", id.String(),
		"rules", len(set.Rules),
		"has_default", set.Default != nil,
	)
}

func (c *Cache) remove(ctx context.Context, event watch.Event) {
	obj, ok := event.Object.(*v1alpha1.IngressRoute)
	if !ok {
		c.metrics.RecordDroppedEvent(ctx, metrics.DropReasonBadObject)

		return
	}

	id, ok := identity(obj)
	if !ok {
		c.metrics.RecordDroppedEvent(ctx, metrics.DropReasonNoIdentity)

		return
	}

	c.table.Delete(id)
	c.metrics.RecordRuleSets(ctx, c.table.Len())
	c.logger.Debug("removed rule set", "resource", id.String())
}

func (c *Cache) reportError(ctx context.Context, event watch.Event) {
	status, _ := event.Object.(*metav1.Status)

	message := "unknown watch error"
	if status != nil {
		message = status.Message
	}

	c.logger.Warn("watch stream error", "message", message)
	c.metrics.RecordWatchError(ctx, metrics.ClassifyStatus(status))
}

// Resolve returns the backend rule for a request with the given host header
// and path, or nil when no rule set claims the request. An empty host means
// the request carried no Host header.
//
// Rule sets are visited in table iteration order; within each, rules are
// tried in source order and the set's default backend answers when none
// match. The first rule set contributing any result wins outright: rule
// sets from different objects are never merged into one priority order, so
// an earlier set's default shadows a later set's exact match.
func (c *Cache) Resolve(ctx context.Context, host, path string) *route.Rule {
	start := time.Now()
	parsed := route.ParsePath(path)

	for _, set := range c.table.Snapshot() {
		rule, fallback := set.Match(host, parsed)
		if rule == nil {
			continue
		}

		outcome := metrics.OutcomeMatched
		if fallback {
			outcome = metrics.OutcomeDefault
		}

		c.metrics.RecordResolve(ctx, outcome, time.Since(start))
		c.logger.Debug("resolved request",
			"host", host,
			"path", path,
			"resource", set.Name,
			"backend", rule.Backend(),
			"outcome", outcome,
		)

		return rule
	}

	c.metrics.RecordResolve(ctx, metrics.OutcomeNone, time.Since(start))
	c.logger.Debug("no rule for request", "host", host, "path", path)

	return nil
}

// identity derives the table key from object metadata. Objects lacking a
// namespace or a name are not indexable.
func identity(obj *v1alpha1.IngressRoute) (route.ID, bool) {
	if obj.Namespace == "" || obj.Name == "" {
		return route.ID{}, false
	}

	return route.ID{Namespace: obj.Namespace, Name: obj.Name}, true
}
