package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader(WithConfigPaths("does-not-exist.yaml")).Load()
	require.NoError(t, err)

	assert.Equal(t, "netflow-solver", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "stderr", cfg.Log.Output)

	assert.Equal(t, 30*time.Second, cfg.Solver.Timeout)
	assert.Equal(t, int64(0), cfg.Solver.MaxIterations)
	assert.Equal(t, 4, cfg.Solver.MaxConcurrency)
	assert.True(t, cfg.Solver.ReturnPaths)
	assert.Equal(t, 100, cfg.Solver.VerboseEdgeLimit)

	assert.Equal(t, "networks", cfg.Input.NetworksDir)
	assert.Equal(t, 10, cfg.Bench.Iterations)
	assert.False(t, cfg.Report.ExportXLSX)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NETFLOW_SOLVER_TIMEOUT", "5s")
	t.Setenv("NETFLOW_SOLVER_MAX_CONCURRENCY", "8")
	t.Setenv("NETFLOW_INPUT_NETWORKS_DIR", "/data/networks")
	t.Setenv("NETFLOW_CACHE_ENABLED", "true")
	t.Setenv("NETFLOW_CACHE_DRIVER", "redis")
	t.Setenv("NETFLOW_LOG_LEVEL", "debug")

	cfg, err := NewLoader(WithConfigPaths("does-not-exist.yaml")).Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Solver.Timeout)
	assert.Equal(t, 8, cfg.Solver.MaxConcurrency)
	assert.Equal(t, "/data/networks", cfg.Input.NetworksDir)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  name: netflow-test
solver:
  max_concurrency: 2
report:
  export_xlsx: true
  output_dir: /tmp/reports
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := NewLoader(WithConfigPaths(path)).Load()
	require.NoError(t, err)

	assert.Equal(t, "netflow-test", cfg.App.Name)
	assert.Equal(t, 2, cfg.Solver.MaxConcurrency)
	assert.True(t, cfg.Report.ExportXLSX)
	assert.Equal(t, "/tmp/reports", cfg.Report.OutputDir)

	// Файл не трогает остальные значения по умолчанию.
	assert.Equal(t, 30*time.Second, cfg.Solver.Timeout)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver:\n  max_concurrency: 2\n"), 0o644))

	t.Setenv("NETFLOW_SOLVER_MAX_CONCURRENCY", "16")

	cfg, err := NewLoader(WithConfigPaths(path)).Load()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Solver.MaxConcurrency)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:    AppConfig{Name: "netflow-solver"},
			Log:    LogConfig{Level: "info"},
			Solver: SolverConfig{Timeout: time.Second, MaxConcurrency: 4},
			Bench:  BenchConfig{Iterations: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}, wantErr: ""},
		{
			name:    "missing app name",
			mutate:  func(c *Config) { c.App.Name = "" },
			wantErr: "app.name is required",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level must be one of",
		},
		{
			name: "bad metrics port",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Port = 70000
			},
			wantErr: "metrics.port must be between",
		},
		{
			name: "bad cache driver",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.Driver = "memcached"
			},
			wantErr: "cache.driver must be one of",
		},
		{
			name:    "negative solver timeout",
			mutate:  func(c *Config) { c.Solver.Timeout = -time.Second },
			wantErr: "solver.timeout must be non-negative",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Solver.MaxConcurrency = 0 },
			wantErr: "solver.max_concurrency must be at least 1",
		},
		{
			name:    "zero bench iterations",
			mutate:  func(c *Config) { c.Bench.Iterations = 0 },
			wantErr: "bench.iterations must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_DefaultsEmptyLogLevel(t *testing.T) {
	cfg := &Config{
		App:    AppConfig{Name: "netflow-solver"},
		Solver: SolverConfig{MaxConcurrency: 1},
		Bench:  BenchConfig{Iterations: 1},
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db.local", Port: 5433,
		Database: "netflow", Username: "app", Password: "secret",
		SSLMode: "require",
	}
	assert.Equal(t,
		"host=db.local port=5433 user=app password=secret dbname=netflow sslmode=require",
		d.DSN())
}

func TestCacheConfig_Address(t *testing.T) {
	c := CacheConfig{Host: "redis.local", Port: 6380}
	assert.Equal(t, "redis.local:6380", c.Address())
}
