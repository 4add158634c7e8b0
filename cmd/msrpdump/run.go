package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/mrpd/internal/config"
	"github.com/danmuck/mrpd/internal/logging"
	"github.com/danmuck/mrpd/internal/metrics"
	"github.com/danmuck/mrpd/internal/mrp"
	"github.com/danmuck/mrpd/internal/msrp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var errNoCapture = errors.New("no capture file given (-pcap)")

type options struct {
	ConfigPath  string
	Capture     string
	LogEvents   bool
	MetricsAddr string
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	logging.Configure(cfg.Logging(logging.ProfileRuntime))

	if opts.Capture == "" {
		return errNoCapture
	}
	dec, err := mrp.NewDecoder(cfg.Application(msrp.Application()), cfg.Policy())
	if err != nil {
		return err
	}
	log.Debug().Msgf("msrpdump.run app=%s versions=%v allow_missing_list_endmark=%v",
		dec.Application().Name, dec.Application().ProtocolVersions, dec.Policy().AllowMissingListEndMark)

	src, err := openCapture(opts.Capture)
	if err != nil {
		return err
	}
	defer src.Close()

	summary, err := replay(ctx, dec, src, opts.LogEvents)
	if err != nil {
		return err
	}
	summary.log(opts.Capture)

	addr := cfg.Metrics.Addr
	if opts.MetricsAddr != "" {
		addr = opts.MetricsAddr
	}
	if addr == "" {
		return nil
	}
	return serveMetrics(ctx, addr)
}

func serveMetrics(ctx context.Context, addr string) error {
	metrics.RegisterMetrics()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info().Msgf("msrpdump.serveMetrics listening addr=%s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
