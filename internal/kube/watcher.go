package kube

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/dynamic"
	toolscache "k8s.io/client-go/tools/cache"
	toolswatch "k8s.io/client-go/tools/watch"

	"github.com/routemesh/ingressd/api/v1alpha1"
	"github.com/routemesh/ingressd/internal/metrics"
)

// EventHandler consumes decoded watch events one at a time, in arrival
// order. *cache.Cache satisfies it.
type EventHandler interface {
	HandleEvent(ctx context.Context, event watch.Event)
}

// Watcher lists IngressRoute objects and streams their watch events into a
// handler, decoding each object into its typed form. A dropped watch
// connection is re-established from the last seen resource version.
type Watcher struct {
	client    dynamic.Interface
	namespace string
	handler   EventHandler
	logger    *slog.Logger
	metrics   metrics.Collector
	ready     atomic.Bool
}

// NewWatcher creates a Watcher. An empty namespace watches all namespaces.
func NewWatcher(
	client dynamic.Interface,
	namespace string,
	handler EventHandler,
	logger *slog.Logger,
	collector metrics.Collector,
) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	if collector == nil {
		collector = metrics.NewNoopCollector()
	}

	return &Watcher{
		client:    client,
		namespace: namespace,
		handler:   handler,
		logger:    logger.With("component", "watcher"),
		metrics:   collector,
	}
}

// Run lists the current IngressRoute objects, replays them to the handler as
// Added events, then streams watch events until the context is cancelled.
// The routing table is rebuilt this way on every start; nothing persists.
func (w *Watcher) Run(ctx context.Context) error {
	resource := w.resource()

	list, err := resource.List(ctx, metav1.ListOptions{})
	if err != nil {
		return errors.Wrap(err, "failed to list ingressroutes")
	}

	w.logger.Info("replaying existing objects", "count", len(list.Items))

	for i := range list.Items {
		w.dispatch(ctx, watch.Event{Type: watch.Added, Object: &list.Items[i]})
	}

	w.ready.Store(true)

	watcher, err := toolswatch.NewRetryWatcher(list.GetResourceVersion(), &toolscache.ListWatch{
		WatchFunc: func(options metav1.ListOptions) (watch.Interface, error) {
			return resource.Watch(ctx, options)
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to start retry watcher")
	}

	defer watcher.Stop()

	w.logger.Info("watching ingressroutes",
		"namespace", w.namespace,
		"resourceVersion", list.GetResourceVersion(),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.ResultChan():
			if !ok {
				return errors.New("watch channel closed")
			}

			w.dispatch(ctx, event)
		}
	}
}

// Ready reports whether the initial list has been replayed into the handler.
func (w *Watcher) Ready() bool {
	return w.ready.Load()
}

func (w *Watcher) resource() dynamic.ResourceInterface {
	namespaceable := w.client.Resource(v1alpha1.GroupVersionResource())
	if w.namespace == "" {
		return namespaceable
	}

	return namespaceable.Namespace(w.namespace)
}

// dispatch decodes the event payload into a typed IngressRoute and hands it
// to the handler. Error events pass through untouched; objects that fail to
// decode are dropped here so the handler only ever sees typed objects.
func (w *Watcher) dispatch(ctx context.Context, event watch.Event) {
	if event.Type == watch.Error || event.Type == watch.Bookmark {
		w.handler.HandleEvent(ctx, event)

		return
	}

	obj, ok := event.Object.(*unstructured.Unstructured)
	if !ok {
		// Already typed, e.g. in tests feeding events directly.
		w.handler.HandleEvent(ctx, event)

		return
	}

	typed := &v1alpha1.IngressRoute{}

	err := runtime.DefaultUnstructuredConverter.FromUnstructured(obj.Object, typed)
	if err != nil {
		w.logger.Warn("failed to decode ingressroute",
			"event", string(event.Type),
			"name", obj.GetName(),
			"namespace", obj.GetNamespace(),
			"error", err.Error(),
		)
		w.metrics.RecordDroppedEvent(ctx, metrics.DropReasonBadObject)

		return
	}

	w.handler.HandleEvent(ctx, watch.Event{Type: event.Type, Object: typed})
}
