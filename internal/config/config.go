package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/mrpd/internal/logging"
	"github.com/danmuck/mrpd/internal/mrp"
)

var (
	ErrInvalidProtocolVersion = errors.New("config: invalid protocol version")
	ErrInvalidLogLevel        = errors.New("config: invalid log level")
	ErrInvalidMetricsAddr     = errors.New("config: invalid metrics addr")
)

// Config is the daemon-side configuration of the receive core.
type Config struct {
	Decoder DecoderConfig
	Log     LogConfig
	Metrics MetricsConfig
}

type DecoderConfig struct {
	AllowMissingListEndMark bool
	// ProtocolVersions overrides the application's accepted versions when
	// non-empty.
	ProtocolVersions []uint8
}

type LogConfig struct {
	Level     string
	Timestamp bool
	NoColor   bool
	JSON      bool
}

type MetricsConfig struct {
	Addr string
}

type fileConfig struct {
	Decoder struct {
		AllowMissingListEndMark bool  `toml:"allow_missing_list_endmark"`
		ProtocolVersions        []int `toml:"protocol_versions"`
	} `toml:"decoder"`
	Log struct {
		Level     string `toml:"level"`
		Timestamp bool   `toml:"timestamp"`
		NoColor   bool   `toml:"no_color"`
		JSON      bool   `toml:"json"`
	} `toml:"log"`
	Metrics struct {
		Addr string `toml:"addr"`
	} `toml:"metrics"`
}

func DefaultConfig() Config {
	return Config{
		Decoder: DecoderConfig{AllowMissingListEndMark: false},
		Log:     LogConfig{Level: "info", Timestamp: true},
		Metrics: MetricsConfig{Addr: ""},
	}
}

// Load reads path over DefaultConfig; keys absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over DefaultConfig and validates the result.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %s", undecoded[0])
	}
	cfg, err := fromFile(raw, meta)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromFile(raw fileConfig, meta toml.MetaData) (Config, error) {
	cfg := DefaultConfig()

	if meta.IsDefined("decoder", "allow_missing_list_endmark") {
		cfg.Decoder.AllowMissingListEndMark = raw.Decoder.AllowMissingListEndMark
	}
	if meta.IsDefined("decoder", "protocol_versions") {
		versions := make([]uint8, 0, len(raw.Decoder.ProtocolVersions))
		for _, v := range raw.Decoder.ProtocolVersions {
			if v < 0 || v > 255 {
				return Config{}, fmt.Errorf("%w: %d", ErrInvalidProtocolVersion, v)
			}
			versions = append(versions, uint8(v))
		}
		cfg.Decoder.ProtocolVersions = versions
	}

	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}
	if meta.IsDefined("log", "json") {
		cfg.Log.JSON = raw.Log.JSON
	}

	if meta.IsDefined("metrics", "addr") {
		cfg.Metrics.Addr = strings.TrimSpace(raw.Metrics.Addr)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Log.Level)
	}
	if err := validateMetricsAddr(cfg.Metrics.Addr); err != nil {
		return err
	}
	return nil
}

// validateMetricsAddr accepts "" (disabled) or a listen address host:port.
func validateMetricsAddr(addr string) error {
	if addr == "" {
		return nil
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMetricsAddr, err)
	}
	if strings.ContainsAny(host, "/?#") {
		return fmt.Errorf("%w: %q is a URL, want host:port", ErrInvalidMetricsAddr, addr)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return fmt.Errorf("%w: port %q", ErrInvalidMetricsAddr, port)
	}
	return nil
}

// Policy returns the decoder policy selected by cfg.
func (cfg Config) Policy() mrp.Policy {
	return mrp.Policy{AllowMissingListEndMark: cfg.Decoder.AllowMissingListEndMark}
}

// Application applies decoder overrides to app.
func (cfg Config) Application(app mrp.Application) mrp.Application {
	if len(cfg.Decoder.ProtocolVersions) > 0 {
		app.ProtocolVersions = append([]uint8(nil), cfg.Decoder.ProtocolVersions...)
	}
	return app
}

// Logging returns the logger setup for profile with cfg's overrides.
func (cfg Config) Logging(profile logging.Profile) logging.Config {
	out := logging.DefaultConfig(profile)
	if lvl, ok := logging.ParseLevel(cfg.Log.Level); ok {
		out.Level = lvl
	}
	out.Timestamp = cfg.Log.Timestamp
	out.NoColor = cfg.Log.NoColor
	out.Bypass = cfg.Log.JSON
	return out
}
