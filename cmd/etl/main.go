package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/chart"
	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/citytable"
	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/texas-bbq-etl/internal/adapter/kafka"
	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/mapbox"
	"github.com/couchcryptid/texas-bbq-etl/internal/adapter/web"
	"github.com/couchcryptid/texas-bbq-etl/internal/config"
	"github.com/couchcryptid/texas-bbq-etl/internal/domain"
	"github.com/couchcryptid/texas-bbq-etl/internal/observability"
	"github.com/couchcryptid/texas-bbq-etl/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	geocoder, err := newGeocoder(cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to load city table", "path", cfg.CityTablePath, "error", err)
		return 1
	}

	sinks := []pipeline.Sink{{Name: "csv", Loader: csvfile.NewWriter(cfg.OutputPath)}}
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, pipeline.Sink{Name: "kafka", Loader: writer})
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	fetcher := web.NewFetcher(cfg.FetchTimeout, cfg.UserAgent)
	transformer := pipeline.NewTransformer(geocoder, logger)
	p := pipeline.New(fetcher, transformer, sinks, logger, metrics,
		pipeline.WithRequestDelay(cfg.RequestDelay))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	exitCode := 0
	res, err := p.Run(ctx, cfg.Sources)
	switch {
	case errors.Is(err, pipeline.ErrNoData):
		logger.Error("no restaurant data scraped; check the source pages and extraction profiles")
		exitCode = 1
	case err != nil:
		logger.Error("pipeline error", "error", err)
		exitCode = 1
	default:
		logger.Info("table written", "path", cfg.OutputPath, "records", len(res.Records))
		renderChart(cfg, res.Records, logger)
	}

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			logger.Warn("metrics textfile write failed", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if srv != nil {
		logger.Info("run finished; serving status until interrupted", "addr", cfg.HTTPAddr)
		<-ctx.Done()
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return exitCode
}

// newGeocoder builds the offline city table and, when enabled, puts the
// cached Mapbox client behind it for towns the table does not list.
func newGeocoder(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (domain.Geocoder, error) {
	table, err := citytable.LoadFile(cfg.CityTablePath)
	if err != nil {
		return nil, err
	}
	logger.Info("city table loaded", "cities", table.Len())

	if !cfg.MapboxEnabled {
		metrics.GeocodeEnabled.Set(0)
		logger.Info("mapbox geocoding disabled")
		return table, nil
	}

	client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
	cached := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
	metrics.GeocodeEnabled.Set(1)
	logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	return domain.FallbackGeocoder{table, cached}, nil
}

func renderChart(cfg *config.Config, records []domain.Record, logger *slog.Logger) {
	if cfg.ChartPath == "" {
		return
	}
	if err := chart.Render(cfg.ChartPath, records, chart.DefaultTitle); err != nil {
		logger.Warn("chart not rendered", "path", cfg.ChartPath, "error", err)
		return
	}
	logger.Info("chart written", "path", cfg.ChartPath)
}
