// Package cmd implements the ingressd command line interface.
package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/routemesh/ingressd/internal/cache"
	"github.com/routemesh/ingressd/internal/kube"
	"github.com/routemesh/ingressd/internal/metrics"
	"github.com/routemesh/ingressd/internal/server"
)

const shutdownTimeout = 10 * time.Second

//nolint:gochecknoglobals // set by SetVersion from main
var (
	version = "development"
	gitsha  = "development"
)

func SetVersion(ver, sha string) {
	version = ver
	gitsha = sha
}

//nolint:gochecknoglobals // cobra command pattern
var rootCmd = &cobra.Command{
	Use:   "ingressd",
	Short: "Kubernetes ingress route cache and resolver",
	Long: `A routing daemon that watches IngressRoute resources and maintains an
in-memory table of host/path routing rules. Incoming HTTP requests are
resolved against the table and proxied to the selected backend service.`,
	RunE:          runDaemon,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "Log format (json, text)")

	rootCmd.Flags().String("kubeconfig", "", "Path to kubeconfig (defaults to in-cluster config)")
	rootCmd.Flags().String("namespace", "", "Namespace to watch (empty watches all namespaces)")
	rootCmd.Flags().String("cluster-domain", "cluster.local", "Kubernetes cluster domain")
	rootCmd.Flags().String("listen-addr", ":8080", "Address for the traffic proxy")
	rootCmd.Flags().String("admin-addr", ":9090", "Address for metrics and health endpoints")

	_ = viper.BindPFlags(rootCmd.Flags())
	_ = viper.BindPFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	viper.SetEnvPrefix("INGRESSD")
	viper.AutomaticEnv()

	viper.SetDefault("cluster-domain", "cluster.local")
	viper.SetDefault("listen-addr", ":8080")
	viper.SetDefault("admin-addr", ":9090")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-format", "json")
}

func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "command execution failed")
}

func setupLogger() *slog.Logger {
	level := slog.LevelInfo

	switch viper.GetString("log-level") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if viper.GetString("log-format") == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

//nolint:funlen,noinlineerr // daemon setup requires multiple steps
func runDaemon(_ *cobra.Command, _ []string) error {
	logger := setupLogger()
	slog.SetDefault(logger)

	logger.Info("starting ingressd",
		"version", version,
		"gitsha", gitsha,
	)

	restConfig, err := kube.NewRESTConfig(viper.GetString("kubeconfig"))
	if err != nil {
		return errors.Wrap(err, "failed to load client config")
	}

	dynamicClient, err := kube.NewDynamicClient(restConfig)
	if err != nil {
		return errors.Wrap(err, "failed to create client")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	routeCache := cache.New(logger, collector)
	watcher := kube.NewWatcher(dynamicClient, viper.GetString("namespace"), routeCache, logger, collector)

	proxy := server.NewProxy(routeCache, viper.GetString("cluster-domain"), logger, collector)
	proxyServer := &http.Server{
		Addr:              viper.GetString("listen-addr"),
		Handler:           proxy,
		ReadHeaderTimeout: 10 * time.Second,
	}

	adminServer := &http.Server{
		Addr:              viper.GetString("admin-addr"),
		Handler:           server.NewAdminHandler(registry, watcher.Ready),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 3)

	go func() {
		errCh <- errors.Wrap(watcher.Run(ctx), "watcher stopped")
	}()

	go func() {
		logger.Info("proxy listening", "addr", proxyServer.Addr)
		errCh <- errors.Wrap(serveHTTP(proxyServer), "proxy server stopped")
	}()

	go func() {
		logger.Info("admin endpoint listening", "addr", adminServer.Addr)
		errCh <- errors.Wrap(serveHTTP(adminServer), "admin server stopped")
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error("component failed", "error", err)
			cancel()
			shutdown(proxyServer, adminServer)

			return err
		}
	}

	shutdown(proxyServer, adminServer)

	return nil
}

func serveHTTP(srv *http.Server) error {
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func shutdown(servers ...*http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		_ = srv.Shutdown(ctx)
	}
}
