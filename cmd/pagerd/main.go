// Command pagerd rotates pages on a small monochrome display.
//
// Usage:
//
//	pagerd [-config pager.yaml] [-display ssd1306|ssd1305|sh1106|fbdev|term] [-rotate 180] [-mqtt host:port] [-metrics :9100] [-debug]
//
// Every setting can also be given as a PAGER_* environment variable, see internal/config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/BeatGlow/pager"
	"github.com/BeatGlow/pager/internal/app"
	"github.com/BeatGlow/pager/internal/config"
	"github.com/BeatGlow/pager/internal/metrics"
	"github.com/BeatGlow/pager/internal/remote"
	"github.com/BeatGlow/pager/internal/telemetry"
	"github.com/BeatGlow/pager/internal/tui"
)

func main() {
	var (
		start       = time.Now()
		configFlag  = flag.String("config", "", "YAML configuration file")
		displayFlag = flag.String("display", "", "Display driver, overrides the configuration")
		rotateFlag  = flag.String("rotate", "", "Display rotation, overrides the configuration")
		brokerFlag  = flag.String("mqtt", "", "MQTT broker, overrides the configuration")
		metricsFlag = flag.String("metrics", "", "Prometheus listen address, overrides the configuration")
		logFlag     = flag.String("log", "", "Log file (default: stderr, discarded for the terminal display)")
		debugFlag   = flag.Bool("debug", os.Getenv("PAGER_DEBUG") != "", "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal(err)
	}
	if *displayFlag != "" {
		cfg.Display.Driver = *displayFlag
	}
	if *rotateFlag != "" {
		cfg.Display.Rotation = *rotateFlag
	}
	if *brokerFlag != "" {
		cfg.MQTT.Broker = *brokerFlag
	}
	if *metricsFlag != "" {
		cfg.Metrics.Listen = *metricsFlag
	}
	if err = cfg.Validate(); err != nil {
		fatal(err)
	}

	logger, err := newLogger(*logFlag, *debugFlag, cfg.Display.Driver == config.TerminalDriver)
	if err != nil {
		fatal(err)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		fatal(err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	output, err := app.OpenDisplay(cfg.Display, logger)
	if err != nil {
		fatal(err)
	}
	defer func() { _ = output.Close() }()

	entries, err := app.Pages(cfg.Pages, output.Bounds(), start)
	if err != nil {
		fatal(err)
	}

	var reg *prometheus.Registry
	if cfg.Metrics.Listen != "" {
		reg = metrics.NewRegistry()
		pm := metrics.NewPageMetrics(reg)
		for i, entry := range entries {
			entries[i].Page = pm.Instrument(fmt.Sprintf("%d-%s", i, entry.Kind), entry.Page)
		}
	}

	options := []pager.Option{
		pager.WithLogger(logger),
		pager.WithDefaultDuration(cfg.Rotation.DefaultDuration),
		pager.WithSplashDuration(cfg.Rotation.Splash),
		pager.WithTracerProvider(tp),
	}
	if cfg.Rotation.SkipErrors {
		options = append(options, pager.WithErrorPolicy(pager.SkipOnError))
	}
	rotator := pager.New(output, len(entries), options...)
	if err = app.Register(rotator, entries); err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := rotator.Init(ctx); err != nil {
			return err
		}
		if err := rotator.Rotate(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if reg != nil {
		g.Go(func() error {
			return metrics.Serve(ctx, cfg.Metrics.Listen, cfg.Metrics.Path, reg, logger)
		})
	}

	if cfg.MQTT.Broker != "" {
		client, err := remote.Connect(remote.Config{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			QoS:      cfg.MQTT.QoS,
		}, rotator.Controller(), logger)
		if err != nil {
			fatal(err)
		}
		g.Go(func() error {
			return client.Run(ctx)
		})
	}

	if term, ok := output.(*tui.Display); ok {
		g.Go(func() error {
			defer cancel()
			return tui.Run(ctx, term, rotator.Controller(), fmt.Sprintf("pagerd: %d pages", len(entries)))
		})
	}

	logger.Info("pagerd: running", "pages", len(entries), "driver", cfg.Display.Driver)
	if err = g.Wait(); err != nil {
		fatal(err)
	}
}

func newLogger(name string, debug, terminal bool) (*slog.Logger, error) {
	var w io.Writer = os.Stderr
	switch {
	case name != "":
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
	case terminal:
		w = io.Discard
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
