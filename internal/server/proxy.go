// Package server provides the HTTP surfaces of ingressd: the traffic proxy
// that resolves each request against the route cache, and the admin endpoint
// exposing metrics and probes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/routemesh/ingressd/internal/metrics"
	"github.com/routemesh/ingressd/internal/route"
)

// Resolver answers backend lookups. *cache.Cache satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, host, path string) *route.Rule
}

// Proxy serves HTTP traffic by resolving the request's host and path against
// the routing table and reverse-proxying to the selected backend's cluster
// DNS name. Requests no rule set claims get 404.
type Proxy struct {
	// ClusterDomain is the cluster DNS suffix for backend service names.
	// Typically "cluster.local".
	ClusterDomain string

	// Transport is the RoundTripper used for upstream requests. Defaults
	// to http.DefaultTransport.
	Transport http.RoundTripper

	resolver Resolver
	logger   *slog.Logger
	metrics  metrics.Collector
}

// NewProxy creates a Proxy backed by the given resolver.
func NewProxy(resolver Resolver, clusterDomain string, logger *slog.Logger, collector metrics.Collector) *Proxy {
	if logger == nil {
		logger = slog.Default()
	}

	if collector == nil {
		collector = metrics.NewNoopCollector()
	}

	return &Proxy{
		ClusterDomain: clusterDomain,
		Transport:     http.DefaultTransport,
		resolver:      resolver,
		logger:        logger.With("component", "proxy"),
		metrics:       collector,
	}
}

// ServeHTTP implements http.Handler.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	rule := p.resolver.Resolve(r.Context(), requestHost(r), r.URL.Path)
	if rule == nil {
		http.Error(w, "no route for request", http.StatusNotFound)
		p.metrics.RecordProxyRequest(r.Context(), "404", time.Since(start))

		return
	}

	target, err := p.backendURL(rule)
	if err != nil {
		p.logger.Warn("cannot proxy to backend",
			"request_id", requestID,
			"backend", rule.Backend(),
			"error", err.Error(),
		)
		http.Error(w, "bad gateway", http.StatusBadGateway)
		p.metrics.RecordProxyRequest(r.Context(), "502", time.Since(start))

		return
	}

	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.Host = r.Host
			pr.Out.Header.Set("X-Request-Id", requestID)
		},
		Transport: p.Transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			p.logger.Warn("upstream request failed",
				"request_id", requestID,
				"backend", rule.Backend(),
				"error", err.Error(),
			)
			w.WriteHeader(http.StatusBadGateway)
		},
	}

	proxy.ServeHTTP(recorder, r)

	p.metrics.RecordProxyRequest(r.Context(), strconv.Itoa(recorder.status), time.Since(start))
	p.logger.Debug("proxied request",
		"request_id", requestID,
		"host", r.Host,
		"path", r.URL.Path,
		"backend", rule.Backend(),
		"status", recorder.status,
		"duration", time.Since(start).String(),
	)
}

// backendURL renders the rule's backend as a cluster-internal URL:
//
//	http://<service>.<namespace>.svc.<cluster-domain>:<port>
//
// Named service ports cannot be dialed without an extra lookup, so rules
// carrying one are rejected here rather than handed to the transport.
func (p *Proxy) backendURL(rule *route.Rule) (*url.URL, error) {
	if _, err := strconv.Atoi(rule.Port); err != nil {
		return nil, errors.Newf("named service port %q is not resolvable", rule.Port)
	}

	return &url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s.%s.svc.%s:%s", rule.Service, rule.Namespace, p.ClusterDomain, rule.Port),
	}, nil
}

// requestHost strips any port from the request's Host header. Requests
// without a Host header resolve with an empty host, which only host-agnostic
// rules can match.
func requestHost(r *http.Request) string {
	host := r.Host

	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}

	return host
}

// statusRecorder captures the status code written by the reverse proxy.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
