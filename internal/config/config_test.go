package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/mrpd/internal/logging"
	"github.com/danmuck/mrpd/internal/msrp"
	"github.com/danmuck/mrpd/internal/testutil/testlog"
	"github.com/rs/zerolog"
)

func TestTemplateLoadsAsDefaults(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "msrpd.toml")
	if err := WriteTemplate(path, "msrp", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Decoder.AllowMissingListEndMark {
		t.Fatalf("expected strict decoder policy")
	}
	if len(cfg.Decoder.ProtocolVersions) != 1 || cfg.Decoder.ProtocolVersions[0] != 0 {
		t.Fatalf("unexpected protocol versions: %v", cfg.Decoder.ProtocolVersions)
	}
	if cfg.Log.Level != "info" || !cfg.Log.Timestamp {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Metrics.Addr != "" {
		t.Fatalf("unexpected metrics addr: %q", cfg.Metrics.Addr)
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "msrpd.toml")
	if err := os.WriteFile(path, []byte("# keep"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := WriteTemplate(path, "msrp", false); err == nil {
		t.Fatalf("expected existing config to be kept")
	}
	if err := WriteTemplate(path, "msrp", true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(got) != msrpTemplate {
		t.Fatalf("expected template after overwrite, got %q", got)
	}
	for _, kind := range []string{"mvrp", "msrpd", "MSRP", ""} {
		if _, err := Template(kind); err == nil {
			t.Fatalf("expected kind %q to fail", kind)
		}
	}
}

func TestParseOverridesOnlyDefinedKeys(t *testing.T) {
	testlog.Start(t)
	cfg, err := Parse(`
[decoder]
allow_missing_list_endmark = true

[log]
level = "debug"
json = true
`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.Policy().AllowMissingListEndMark {
		t.Fatalf("expected tolerant policy")
	}
	if len(cfg.Decoder.ProtocolVersions) != 0 {
		t.Fatalf("expected protocol versions to stay unset: %v", cfg.Decoder.ProtocolVersions)
	}
	if !cfg.Log.Timestamp {
		t.Fatalf("expected default timestamp to survive")
	}
	lc := cfg.Logging(logging.ProfileRuntime)
	if lc.Level != zerolog.DebugLevel || !lc.Bypass {
		t.Fatalf("unexpected logging config: %+v", lc)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	testlog.Start(t)
	if _, err := Parse("[decoder]\nprotocol_versions = [300]\n"); !errors.Is(err, ErrInvalidProtocolVersion) {
		t.Fatalf("expected ErrInvalidProtocolVersion, got %v", err)
	}
	if _, err := Parse("[log]\nlevel = \"chatty\"\n"); !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("expected ErrInvalidLogLevel, got %v", err)
	}
	for _, addr := range []string{"http://localhost:9", "localhost", ":http", "127.0.0.1:70000"} {
		if _, err := Parse("[metrics]\naddr = \"" + addr + "\"\n"); !errors.Is(err, ErrInvalidMetricsAddr) {
			t.Fatalf("expected ErrInvalidMetricsAddr for %q, got %v", addr, err)
		}
	}
}

func TestParseAcceptsMetricsListenAddrs(t *testing.T) {
	testlog.Start(t)
	for _, addr := range []string{"httpd.lan:9100", ":9100", "[::1]:9100", "127.0.0.1:0"} {
		cfg, err := Parse("[metrics]\naddr = \"" + addr + "\"\n")
		if err != nil {
			t.Fatalf("parse %q: %v", addr, err)
		}
		if cfg.Metrics.Addr != addr {
			t.Fatalf("expected addr %q, got %q", addr, cfg.Metrics.Addr)
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "msrpd.toml")
	if err := os.WriteFile(path, []byte("[decoder]\nallow_missing_endmark = true\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected misspelled key to be rejected")
	}
}

func TestApplicationOverridesVersions(t *testing.T) {
	testlog.Start(t)
	cfg := DefaultConfig()
	cfg.Decoder.ProtocolVersions = []uint8{0, 1}
	app := cfg.Application(msrp.Application())
	if len(app.ProtocolVersions) != 2 || app.ProtocolVersions[1] != 1 {
		t.Fatalf("unexpected versions: %v", app.ProtocolVersions)
	}
	if got := DefaultConfig().Application(msrp.Application()); len(got.ProtocolVersions) != 1 {
		t.Fatalf("expected default versions to be kept: %v", got.ProtocolVersions)
	}
}
