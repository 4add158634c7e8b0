package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "MRPD_LOG_LEVEL"
	EnvLogTimestamp = "MRPD_LOG_TIMESTAMP"
	EnvLogNoColor   = "MRPD_LOG_NOCOLOR"
	EnvLogBypass    = "MRPD_LOG_BYPASS"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config is the process-wide logger setup. Bypass skips the console writer
// and emits raw JSON lines.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Bypass    bool
	Out       io.Writer
}

var configureOnce sync.Once

func ConfigureRuntime() {
	Configure(DefaultConfig(ProfileRuntime))
}

func ConfigureTests() {
	Configure(DefaultConfig(ProfileTest))
}

// Configure installs cfg, with environment overrides applied, as the global
// zerolog logger. Only the first call has any effect.
func Configure(cfg Config) {
	configureOnce.Do(func() {
		applyEnvOverrides(&cfg)
		install(cfg)
	})
}

func DefaultConfig(profile Profile) Config {
	cfg := Config{Out: os.Stderr}
	switch profile {
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = false
	default:
		cfg.Level = zerolog.InfoLevel
		cfg.Timestamp = true
	}
	return cfg
}

func install(cfg Config) {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if !cfg.Bypass {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    cfg.NoColor,
			TimeFormat: time.RFC3339,
		}
	}
	zerolog.SetGlobalLevel(cfg.Level)
	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	log.Logger = ctx.Logger()
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := envBool(EnvLogTimestamp); ok {
		cfg.Timestamp = v
	}
	if v, ok := envBool(EnvLogNoColor); ok {
		cfg.NoColor = v
	}
	if v, ok := envBool(EnvLogBypass); ok {
		cfg.Bypass = v
	}
}

// ParseLevel maps a zerolog level name, or "off", to a level. ok is false
// for empty or unknown names.
func ParseLevel(raw string) (zerolog.Level, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch name {
	case "":
		return zerolog.InfoLevel, false
	case "off":
		return zerolog.Disabled, true
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel, false
	}
	return level, true
}

// envBool reads key as a boolean. ok is false when key is unset or does
// not parse.
func envBool(key string) (v bool, ok bool) {
	raw, set := os.LookupEnv(key)
	if !set {
		return false, false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return v, err == nil
}
