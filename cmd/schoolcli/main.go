package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/schoolcli/internal/app"
	"github.com/shrimpsizemoose/schoolcli/internal/console"
)

const defaultConfigPath = "config.toml"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run keeps stdout for command results; all logging goes to stderr.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app.ConfigureLogging(stderr, false)

	flags := flag.NewFlagSet("schoolcli", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", defaultConfigPath, "Path to config file")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error.Printf("Failed to load config: %v", err)
		return 1
	}
	app.ConfigureLogging(stderr, cfg.Log.Debug)

	service, err := app.NewService(cfg)
	if err != nil {
		logger.Error.Printf("Failed to create service: %v", err)
		return 1
	}
	defer service.Close()

	if cfg.Metrics.Listen != "" {
		go serveMetrics(cfg.Metrics.Listen)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := console.New(stdin, stdout, service.Dispatcher, console.Options{
		Color:  cfg.Display.Color,
		Banner: cfg.Display.Banner,
	})

	// one-shot: schoolcli COURSE GETALL
	if flags.NArg() > 0 {
		c.Print(service.Dispatcher.Execute(ctx, strings.Join(flags.Args(), " ")))
		return 0
	}

	if err := c.Run(ctx); err != nil {
		logger.Error.Printf("Console error: %v", err)
		return 1
	}
	return 0
}

// loadConfig falls back to defaults only when the default config file is
// absent; an explicitly named file must exist.
func loadConfig(path string) (*app.Config, error) {
	cfg, err := app.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath {
		logger.Debug.Printf("No %s found, using defaults", path)
		return app.DefaultConfig(), nil
	}
	return cfg, err
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error.Printf("Metrics server failed: %v", err)
	}
}
