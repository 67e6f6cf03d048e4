package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/particle-field-go/internal/config"
	"github.com/olivierh59500/particle-field-go/internal/log"
	"github.com/olivierh59500/particle-field-go/internal/particles"
	"github.com/olivierh59500/particle-field-go/internal/terminal"
	"github.com/olivierh59500/particle-field-go/internal/window"
)

// cliFlags are the command-line overrides. set records which flags were
// given explicitly, so zero values such as -seed 0 still override.
type cliFlags struct {
	configPath string
	envPath    string
	backend    string
	count      int
	seed       int64
	logLevel   string
	logFile    string
	set        map[string]bool
}

func parseFlags(args []string) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("particle-field", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "config.json", "JSON settings file (missing is fine)")
	fs.StringVar(&f.envPath, "env", ".env", "env file with PARTICLES_* overrides (missing is fine)")
	fs.StringVar(&f.backend, "backend", "", "window or terminal (overrides config)")
	fs.IntVar(&f.count, "n", 0, "particle count (overrides config)")
	fs.Int64Var(&f.seed, "seed", 0, "random seed, 0 for time-based (overrides config)")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn, error or none")
	fs.StringVar(&f.logFile, "log-file", "", "write logs here instead of stderr")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply writes the explicitly given flags over cfg.
func (f cliFlags) apply(cfg *config.Config) {
	if f.set["backend"] {
		cfg.Backend = f.backend
	}
	if f.set["n"] {
		cfg.Particles = f.count
	}
	if f.set["seed"] {
		cfg.Seed = f.seed
	}
	if f.set["log-level"] {
		cfg.LogLevel = f.logLevel
	}
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if err := config.LoadEnvFile(flags.envPath); err != nil {
		stdlog.Fatal(err)
	}
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		stdlog.Fatal(err)
	}
	flags.apply(&cfg)

	logger, closeLog, err := openLogger(cfg, flags.logFile)
	if err != nil {
		stdlog.Fatal(err)
	}
	if _, err := os.Stat(flags.configPath); err != nil {
		logger.Warnf("no config at %s, using defaults and environment", flags.configPath)
	}

	err = run(cfg, flags.configPath, logger)
	if err != nil {
		logger.Errorf("%v", err)
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

// openLogger picks the log destination. The terminal backend owns the
// screen, so without a log file it logs nowhere.
func openLogger(cfg config.Config, path string) (*log.Logger, func(), error) {
	level := log.ParseLevel(cfg.LogLevel)
	if path == "" {
		if cfg.Backend == config.BackendTerminal {
			return log.New(io.Discard, log.LevelNone), func() {}, nil
		}
		return log.New(os.Stderr, level), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, level), func() { f.Close() }, nil
}

func run(cfg config.Config, configPath string, logger *log.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	bg, err := config.ParseColor(cfg.Background)
	if err != nil {
		return err
	}
	opts, err := cfg.Options(float64(cfg.Width), float64(cfg.Height))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	sim, err := particles.NewSimulation(opts)
	if err != nil {
		return err
	}
	logger.Debugf("options: %+v", opts)

	switch cfg.Backend {
	case config.BackendTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		host, err := terminal.New(screen, sim, cfg.TPS, bg, logger)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := host.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	default:
		game := window.NewGame(sim, window.Settings{
			Title:      "Particle Field",
			TPS:        cfg.TPS,
			Background: bg,
			ShowHUD:    cfg.ShowHUD,
			Cursor:     cfg.Cursor,
			Save:       func() error { return config.Save(configPath, cfg) },
		}, logger)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			game.Stop()
		}()
		return game.Run()
	}
}
