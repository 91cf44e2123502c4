package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rpgo/retirement-projector/internal/calculation"
)

// Settings holds runtime configuration loaded from environment variables.
type Settings struct {
	DBPath        string
	HTTPAddr      string
	SummaryTrials int
	SeriesTrials  int
	LongevityCap  int
	EventCeiling  int
	Workers       int
	Seed          int64
	LogLevel      string
	LogFormat     string
	SimTimeout    time.Duration
}

// LoadSettings reads settings from the environment with sensible defaults.
func LoadSettings() Settings {
	return Settings{
		DBPath:        envOrDefault("RPGO_DB_PATH", "rpgo.db"),
		HTTPAddr:      envOrDefault("RPGO_HTTP_ADDR", ":8080"),
		SummaryTrials: envOrDefaultInt("RPGO_SUMMARY_TRIALS", calculation.DefaultSummaryTrials),
		SeriesTrials:  envOrDefaultInt("RPGO_SERIES_TRIALS", calculation.DefaultSeriesTrials),
		LongevityCap:  envOrDefaultInt("RPGO_LONGEVITY_CAP", calculation.DefaultLongevityCap),
		EventCeiling:  envOrDefaultInt("RPGO_EVENT_CEILING_YEAR", 0),
		Workers:       envOrDefaultInt("RPGO_WORKERS", calculation.DefaultWorkers),
		Seed:          envOrDefaultInt64("RPGO_SEED", 0),
		LogLevel:      envOrDefault("RPGO_LOG_LEVEL", "info"),
		LogFormat:     envOrDefault("RPGO_LOG_FORMAT", "text"),
		SimTimeout:    envOrDefaultDuration("RPGO_SIM_TIMEOUT", 0),
	}
}

// SimulationSettings maps the runtime settings onto the simulator's.
func (s Settings) SimulationSettings() calculation.Settings {
	sim := calculation.DefaultSettings()
	sim.SummaryTrials = s.SummaryTrials
	sim.SeriesTrials = s.SeriesTrials
	sim.LongevityCap = s.LongevityCap
	sim.Workers = s.Workers
	sim.Seed = s.Seed
	sim.Timeout = s.SimTimeout
	sim.EventCeiling = s.EventCeiling
	return sim
}

// Level parses LogLevel, defaulting to info.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a text or JSON slog logger writing to w.
func (s Settings) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: s.Level()}
	if strings.EqualFold(s.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
