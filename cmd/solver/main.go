// Package main is the entry point for the netflow solver CLI.
//
// The solver reads a flow network from a text file, computes the
// maximum flow from node 0 to node n-1 using the Edmonds-Karp
// algorithm, and reports the result on the console. Optional layers
// add result caching, Prometheus metrics, OpenTelemetry tracing, run
// history persistence in PostgreSQL and XLSX export.
//
// # Input Format
//
// Network files are plain text:
//   - first line: number of nodes n (nodes are numbered 0 to n-1)
//   - each subsequent line: three integers "from to capacity"
//
// Blank lines are skipped; lines starting with '#' are comments.
// Node 0 is the source and node n-1 is the sink.
//
// # Usage
//
// Solve a specific file:
//
//	solver -file networks/bridge_1.txt
//
// Without -file the solver lists *.txt files from the configured
// networks directory and asks for a selection:
//
//	Available network files:
//	1. bridge_1.txt
//	2. bridge_2.txt
//	Enter the number of the file you want to use (1-2):
//
// Run a benchmark after solving:
//
//	solver -file networks/ladder_4.txt -bench
//
// # Configuration
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Environment variables (prefix: NETFLOW_)
//  2. Config files (config.yaml, config/config.yaml, /etc/netflow/config.yaml)
//  3. Default values
//
// Key configuration options (environment variable format):
//
//	NETFLOW_LOG_LEVEL           - Log level: debug, info, warn, error
//	NETFLOW_SOLVER_TIMEOUT      - Solve timeout (default: 30s)
//	NETFLOW_SOLVER_MAX_CONCURRENCY - Concurrent solves (default: 4)
//	NETFLOW_INPUT_NETWORKS_DIR  - Directory with *.txt networks
//	NETFLOW_CACHE_ENABLED       - Enable result caching (memory or redis)
//	NETFLOW_DATABASE_ENABLED    - Persist run history to PostgreSQL
//	NETFLOW_METRICS_ENABLED     - Serve Prometheus metrics
//	NETFLOW_TRACING_ENABLED     - Export OTLP traces
//	NETFLOW_REPORT_EXPORT_XLSX  - Write an XLSX report after each run
//
// Logs go to stderr so the solver report on stdout stays clean.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"netflow/internal/bench"
	"netflow/internal/engine"
	"netflow/internal/history"
	"netflow/internal/parser"
	"netflow/internal/report"
	"netflow/internal/service"
	"netflow/pkg/cache"
	"netflow/pkg/config"
	"netflow/pkg/database"
	"netflow/pkg/logger"
	"netflow/pkg/metrics"
	"netflow/pkg/telemetry"
)

func main() {
	var (
		filePath   = flag.String("file", "", "network file to solve (skips the interactive menu)")
		runBench   = flag.Bool("bench", false, "run a benchmark after solving")
		exportXLSX = flag.Bool("xlsx", false, "export an XLSX report")
	)
	flag.Parse()

	// =========================================================================
	// Configuration Loading
	// =========================================================================
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// =========================================================================
	// Logger Initialization
	// =========================================================================
	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	ctx := context.Background()

	// =========================================================================
	// Telemetry Initialization (OpenTelemetry)
	// =========================================================================
	if cfg.Tracing.Enabled {
		tp, err := telemetry.Init(ctx, telemetry.Config{
			Enabled:     cfg.Tracing.Enabled,
			Endpoint:    cfg.Tracing.Endpoint,
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Environment: cfg.App.Environment,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			logger.Log.Warn("Failed to init telemetry", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					logger.Log.Warn("Failed to shutdown telemetry", "error", err)
				}
			}()
		}
	}

	// =========================================================================
	// Metrics Initialization (Prometheus)
	// =========================================================================
	m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartMetricsServer(cfg.Metrics.Port); err != nil {
				logger.Log.Warn("Metrics server stopped", "error", err)
			}
		}()
	}

	// =========================================================================
	// Cache Initialization
	// =========================================================================
	var solverCache *cache.SolverCache
	if cfg.Cache.Enabled {
		baseCache, err := cache.New(cache.FromConfig(&cfg.Cache))
		if err != nil {
			logger.Log.Warn("Failed to create cache, continuing without cache", "error", err)
		} else {
			defer baseCache.Close()
			solverCache = cache.NewSolverCache(baseCache, cfg.Cache.DefaultTTL)
			logger.Log.Info("Solver cache initialized",
				"driver", cfg.Cache.Driver,
				"ttl", cfg.Cache.DefaultTTL,
			)
		}
	}

	// =========================================================================
	// History Persistence (PostgreSQL)
	// =========================================================================
	var runs history.RunRepository
	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			logger.Log.Warn("Failed to connect to database, history disabled", "error", err)
		} else {
			defer db.Close()
			if err := database.RunMigrations(ctx, db.Pool(), &cfg.Database,
				history.Migrations, history.MigrationsDir); err != nil {
				logger.Log.Warn("Failed to run migrations", "error", err)
			}
			runs = history.NewPostgresRunRepository(db)
		}
	}

	// =========================================================================
	// Input Selection and Parsing
	// =========================================================================
	reporter := report.NewConsoleReporter(os.Stdout)

	path := *filePath
	if path == "" {
		path, err = pickNetworkFile(reporter, cfg.Input.NetworksDir)
		if err != nil {
			logger.Log.Error("No network file selected", "error", err)
			os.Exit(1)
		}
	}

	parseStart := time.Now()
	network, err := parser.ParseFile(path)
	if err != nil {
		logger.Log.Error("Failed to parse network", "file", path, "error", err)
		os.Exit(1)
	}
	parseTime := time.Since(parseStart)
	m.RecordParse(network.Name, parseTime)

	g := network.Graph
	reporter.Verbose = g.EdgeCount() < cfg.Solver.VerboseEdgeLimit
	reporter.EdgeLimit = cfg.Solver.VerboseEdgeLimit

	// =========================================================================
	// Solve
	// =========================================================================
	svc := service.NewSolverService(&cfg.Solver, solverCache, runs)

	out, err := svc.Solve(ctx, network)
	if err != nil {
		logger.Log.Error("Solve failed", "file", network.Name, "error", err)
		os.Exit(1)
	}

	// =========================================================================
	// Reporting
	// =========================================================================
	reporter.PrintPaths(out.Result.Paths)

	summary := &report.Summary{
		InputFile:  network.Name,
		Nodes:      g.NodeCount(),
		Edges:      g.EdgeCount(),
		Source:     network.Source,
		Sink:       network.Sink,
		MaxFlow:    out.Result.MaxFlow,
		Iterations: out.Result.Iterations,
		Algorithm:  engine.Info().DisplayName,
		ParseTime:  parseTime,
		SolveTime:  out.Result.Duration,
	}
	reporter.PrintSummary(summary)

	if out.FromCache {
		fmt.Fprintln(os.Stdout, "(result served from cache)")
	} else {
		reporter.PrintEdgeFlows(g)
		reporter.PrintMinCut(engine.ComputeMinCut(g, network.Source))
	}

	// =========================================================================
	// XLSX Export
	// =========================================================================
	if *exportXLSX || cfg.Report.ExportXLSX {
		if out.FromCache {
			logger.Log.Info("Skipping XLSX export for cached result")
		} else {
			exporter := report.NewExcelExporter()
			cut := engine.ComputeMinCut(g, network.Source)
			reportPath, err := exporter.WriteFile(cfg.Report.OutputDir, summary, g, cut)
			if err != nil {
				logger.Log.Warn("Failed to export XLSX report", "error", err)
			} else {
				fmt.Fprintf(os.Stdout, "\nReport written to %s\n", reportPath)
			}
		}
	}

	// =========================================================================
	// Benchmark
	// =========================================================================
	if *runBench {
		opts := &engine.Options{
			Timeout:       cfg.Solver.Timeout,
			MaxIterations: cfg.Solver.MaxIterations,
		}
		stats, err := bench.Run(ctx, g, network.Source, network.Sink, opts, cfg.Bench.Iterations)
		if err != nil {
			logger.Log.Error("Benchmark failed", "error", err)
			os.Exit(1)
		}
		reporter.PrintBenchmark(stats)
	}
}

// pickNetworkFile lists the configured networks directory and reads a
// selection from stdin.
func pickNetworkFile(reporter *report.ConsoleReporter, dir string) (string, error) {
	files, err := parser.ListNetworkFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no network files found in %s", dir)
	}

	reporter.PrintFileMenu(files)
	fmt.Printf("Enter the number of the file you want to use (1-%d): ", len(files))

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", fmt.Errorf("no selection made")
	}
	choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || choice < 1 || choice > len(files) {
		return "", fmt.Errorf("invalid selection %q: enter a number between 1 and %d",
			strings.TrimSpace(scanner.Text()), len(files))
	}
	return files[choice-1], nil
}
