package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/grafana/sqlsanitize/pkg/sqlsanitize"
)

// recentSummariesCapacity bounds the CLI's display-only cache of the most
// recently seen distinct summaries. Unlike sqlsanitize.Cache, this one is
// allowed to evict: it exists to answer "what have we seen lately", not to
// memoize a pure function.
const recentSummariesCapacity = 200

func main() {
	lvl := slog.LevelVar{}
	lvl.Set(slog.LevelInfo)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: &lvl,
	})))

	configPath := flag.String("config", "", "path to a sqlsanitize YAML config file")
	query := flag.String("query", "", "a single SQL statement to sanitize; reads stdin line by line if empty")
	logLevel := flag.String("log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")
	listenAddr := flag.String("listen-addr", "", "address to serve /metrics and /stats on, e.g. :8999; disabled if empty")
	flag.Parse()

	if err := lvl.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("unknown log level specified, choices are [DEBUG, INFO, WARN, ERROR]", "error", err)
		os.Exit(-1)
	}

	cfg, err := sqlsanitize.LoadConfig(*configPath)
	if err != nil {
		slog.Error("wrong configuration", "error", err)
		os.Exit(-1)
	}

	cache := sqlsanitize.New(cfg)
	metrics := sqlsanitize.NewMetrics()
	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)
	cache.SetMetrics(metrics)

	recent, err := lru.New[string, struct{}](recentSummariesCapacity)
	if err != nil {
		slog.Error("couldn't build recent-summaries cache", "error", err)
		os.Exit(-1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *listenAddr != "" {
		go serveDiagnostics(ctx, *listenAddr, registry, cache, recent)
	}

	if *query != "" {
		emit(cache, recent, *query)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		emit(cache, recent, line)
	}
	if err := scanner.Err(); err != nil {
		slog.Error("error reading statements from stdin", "error", err)
		os.Exit(-1)
	}
}

func emit(cache *sqlsanitize.Cache, recent *lru.Cache[string, struct{}], statement string) {
	info := cache.Get(statement)
	recent.Add(info.Summary, struct{}{})
	fmt.Printf("%s\t%s\n", info.SanitizedSQL, info.Summary)
}

func serveDiagnostics(ctx context.Context, addr string, registry *prometheus.Registry, cache *sqlsanitize.Cache, recent *lru.Cache[string, struct{}]) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"cache_size":       cache.Len(),
			"recent_summaries": recent.Keys(),
		})
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	slog.Info("starting diagnostics HTTP listener", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("diagnostics HTTP listener stopped working", "error", err)
	}
}
