package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suparena/hbnb"
	"github.com/suparena/hbnb/config"
	"github.com/suparena/hbnb/console"
	"github.com/suparena/hbnb/processor"
	"github.com/suparena/hbnb/registry"
)

var (
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
	configFlag   = flag.String("config", "", "Path to a YAML configuration file")
	fileFlag     = flag.String("file", "", "Path of the JSON store (file backend)")
	backendFlag  = flag.String("backend", "", "Storage backend: file, memory or dynamodb")
	logLevelFlag = flag.String("log-level", "", "Log level: debug, info, warn or error")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := hbnb.GetVersionInfo()
		fmt.Printf("hbnb version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	catalog := registry.DefaultCatalog()
	store, err := hbnb.DefaultBackendManager().OpenStore(ctx, cfg, catalog, logger)
	if err != nil {
		logger.Errorf("Startup failed: %v", err)
		return 1
	}

	proc := processor.New(store, catalog, processor.WithLogger(logger))
	c := console.New(proc,
		console.WithPrompt(cfg.Prompt),
		console.WithInteractive(isTerminal(os.Stdin)),
		console.WithLogger(logger),
	)
	if err := c.Run(ctx); err != nil {
		logger.Errorf("Console stopped: %v", err)
		return 1
	}
	return 0
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.FilePath = *fileFlag
		case "backend":
			cfg.Backend = *backendFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		}
	})
}

// newLogger logs to stderr so stdout only carries command output.
func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar().Named("hbnb"), nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
