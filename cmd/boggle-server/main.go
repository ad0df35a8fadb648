// boggle-server answers board solve requests over HTTP against a dictionary
// loaded at startup.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"row-major.net/boggle/healthz"
	"row-major.net/boggle/httpmetrics"
	"row-major.net/boggle/load"
	"row-major.net/boggle/solver"
	"row-major.net/boggle/trie"

	"cloud.google.com/go/storage"
	"contrib.go.opencensus.io/exporter/stackdriver"
	cloudmetrics "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	cloudtrace "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"github.com/golang/glog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	googleopt "google.golang.org/api/option"
)

var (
	listen      = flag.String("listen", "0.0.0.0:8080", "Server address:port for solve requests.")
	debugListen = flag.String("debug-listen", "127.0.0.1:8001", "Server address:port for debug endpoint.")
	dictionary  = flag.String("dictionary", "words.txt", "Word list to search for.  Either a local path or gs://bucket/object.")
	maxDepth    = flag.Int("max-depth", solver.MaxDepth, "Longest path, in tiles, to search.")

	enableMetrics        = flag.Bool("enable-metrics", false, "Export request metrics to Cloud Monitoring through OpenCensus?")
	monitoring           = flag.Bool("monitoring", false, "Enable monitoring?")
	monitoringProject    = flag.String("monitoring-project", "", "Override project used for monitoring integration.  If not specified, the project associated with Application Default Credentials is used.")
	monitoringTraceRatio = flag.Float64("monitoring-trace-ratio", 0.0001, "What ratio of traces should be exported?")
)

func main() {
	flag.Parse()

	glog.CopyStandardLogTo("INFO")

	glog.Infof("flags:")
	glog.Infof("listen: %q", *listen)
	glog.Infof("debug-listen: %q", *debugListen)
	glog.Infof("dictionary: %q", *dictionary)
	glog.Infof("max-depth: %v", *maxDepth)
	glog.Infof("enable-metrics: %v", *enableMetrics)
	glog.Infof("monitoring: %v", *monitoring)
	glog.Infof("monitoring-project: %v", *monitoringProject)
	glog.Infof("monitoring-trace-ratio: %v", *monitoringTraceRatio)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *monitoring {
		metricsOpts := []cloudmetrics.Option{}
		traceOpts := []cloudtrace.Option{}
		if *monitoringProject != "" {
			metricsOpts = append(metricsOpts, cloudmetrics.WithProjectID(*monitoringProject))
			traceOpts = append(traceOpts, cloudtrace.WithProjectID(*monitoringProject))
		}

		_, traceShutdown, err := cloudtrace.InstallNewPipeline(traceOpts, sdktrace.WithSampler(sdktrace.TraceIDRatioBased(*monitoringTraceRatio)))
		if err != nil {
			glog.Fatalf("Failed to install Cloud Trace OpenTelemetry trace pipeline: %v", err)
		}
		defer traceShutdown()

		pusher, err := cloudmetrics.InstallNewPipeline(metricsOpts)
		if err != nil {
			glog.Fatalf("Failed to install Cloud Metrics OpenTelemetry meter pipeline: %v", err)
		}
		defer pusher.Stop(ctx)
	}

	index, err := loadIndex(ctx)
	if err != nil {
		glog.Fatalf("Failed to load dictionary: %v", err)
	}
	wordCount := index.Len()
	glog.Infof("Indexed %d words", wordCount)

	solveHandler := httpmetrics.New(solver.NewHandler(solver.New(index, solver.WithMaxDepth(*maxDepth))))

	if *enableMetrics {
		if err := solveHandler.RegisterMetrics(); err != nil {
			glog.Fatalf("Failed to register request metrics: %v", err)
		}

		exporterOpts := stackdriver.Options{
			MetricPrefix:      "boggle-server",
			ReportingInterval: 60 * time.Second,
		}
		if *monitoringProject != "" {
			exporterOpts.ProjectID = *monitoringProject
		}
		exporter, err := stackdriver.NewExporter(exporterOpts)
		if err != nil {
			glog.Fatalf("Error initializing metrics exporter: %v", err)
		}
		if err := exporter.StartMetricsExporter(); err != nil {
			glog.Fatalf("Error starting metrics exporter: %v", err)
		}
		defer exporter.Flush()
		defer exporter.StopMetricsExporter()
	}

	serveMux := http.NewServeMux()
	serveMux.Handle("/solve", solveHandler)
	server := &http.Server{
		Addr:    *listen,
		Handler: serveMux,

		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	debugServeMux := http.NewServeMux()
	debugServeMux.Handle("/healthz", healthz.New())
	debugServeMux.Handle("/readyz", healthz.New(func() error {
		if wordCount == 0 {
			return errors.New("dictionary is empty")
		}
		return nil
	}))
	debugServer := &http.Server{
		Addr:    *debugListen,
		Handler: debugServeMux,

		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			glog.Fatalf("Debug server died: %v", err)
		}
	}()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			glog.Fatalf("Error while serving http: %v", err)
		}
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	<-signalCh

	glog.Infof("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("Error shutting down server: %v", err)
	}
	if err := debugServer.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("Error shutting down debug server: %v", err)
	}

	glog.Flush()
}

func loadIndex(ctx context.Context) (*trie.Node, error) {
	opts := []load.DictionaryOption{}
	if load.IsGCSPath(*dictionary) {
		gcs, err := storage.NewClient(ctx, googleopt.WithGRPCConnectionPool(1))
		if err != nil {
			return nil, fmt.Errorf("while creating GCS client: %w", err)
		}
		defer gcs.Close()
		opts = append(opts, load.WithObjectReader(&load.GCS{Client: gcs}))
	}

	words, err := load.DictionaryFromPath(ctx, *dictionary, opts...)
	if err != nil {
		return nil, err
	}
	return trie.FromWords(words), nil
}
