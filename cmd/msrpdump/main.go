package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("config", "", "path to msrpd TOML config (defaults when empty)")
	capture := flag.String("pcap", "", "pcap or pcapng capture to replay")
	events := flag.Bool("events", false, "log every dispatched event")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on host:port after replay (overrides config)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := options{
		ConfigPath:  *configPath,
		Capture:     *capture,
		LogEvents:   *events,
		MetricsAddr: *metricsAddr,
	}
	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "msrpdump: %v\n", err)
		os.Exit(1)
	}
}
