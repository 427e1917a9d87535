package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/ftahirops/ttop/collector"
	"github.com/ftahirops/ttop/config"
	"github.com/ftahirops/ttop/engine"
	"github.com/ftahirops/ttop/ui"
)

// Version is set at build time via ldflags.
var Version = "0.2.0"

func printUsage() {
	fmt.Fprintf(os.Stderr, `ttop v%s — live terminal system-resource monitor

Usage:
  ttop [OPTIONS] [INTERVAL]

Modes:
  (default)         Interactive TUI (fullscreen, q to quit)
  -watch            Plain output mode — clears and redraws the terminal
  -version          Print version and exit

Options:
  -interval N       Sampling interval in seconds (default: 1)
  -top N            Process-table depth (default: 15)
  -count N          Frames to render in -watch mode (0 = until Ctrl+C)
  -metrics ADDR     Serve Prometheus gauges on ADDR (also via config file)
  -debug            Verbose logging on stderr

Positional:
  INTERVAL          First positional arg sets interval: ttop 5 = ttop -interval 5

Config file: %s
`, Version, config.Path())
}

// Run parses flags and drives the selected mode until cancelled.
func Run() error {
	cfg := config.Load()

	interval := flag.Int("interval", cfg.IntervalSec, "sampling interval in seconds")
	topN := flag.Int("top", cfg.TopProcs, "process-table depth")
	watch := flag.Bool("watch", false, "plain output mode")
	count := flag.Int("count", 0, "frames to render in -watch mode (0 = infinite)")
	metricsAddr := flag.String("metrics", "", "serve Prometheus gauges on this address")
	debug := flag.Bool("debug", false, "verbose logging")
	version := flag.Bool("version", false, "print version and exit")
	flag.Usage = printUsage
	flag.Parse()

	if *version {
		fmt.Printf("ttop v%s\n", Version)
		return nil
	}
	if flag.NArg() > 0 {
		if n, err := strconv.Atoi(flag.Arg(0)); err == nil && n > 0 {
			*interval = n
		}
	}
	if *interval <= 0 {
		*interval = 1
	}

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	host := collector.CollectHostInfo()
	log.Info().
		Str("host", host.Hostname).
		Int("cores", host.Cores).
		Str("mem", humanize.IBytes(host.TotalBytes)).
		Msg("starting")

	src := collector.NewSystemSource(log)
	eng := engine.New(src, host.Cores, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	promAddr := *metricsAddr
	if promAddr == "" && cfg.Prometheus.Enabled {
		promAddr = cfg.Prometheus.Addr
	}
	if promAddr != "" {
		store := engine.NewMetricsStore()
		eng.Instrument(store)
		go func() {
			if err := store.Serve(ctx, promAddr, log); err != nil {
				log.Error().Err(err).Msg("metrics endpoint failed")
			}
		}()
	}

	tick := time.Duration(*interval) * time.Second
	if *watch {
		return runWatch(ctx, eng, tick, *topN, *count, log)
	}

	app := ui.NewApp(eng, tick, *topN, log)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
