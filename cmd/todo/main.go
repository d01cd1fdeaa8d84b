// Todo is an interactive task list with undo/redo, driven by an
// immutablectx container.
//
// Usage: todo
//
// Settings come from IMMUTABLECTX_* environment variables; see
// internal/config. With IMMUTABLECTX_METRICS_ADDR set, Prometheus metrics
// are served on /metrics. With IMMUTABLECTX_OTEL_ENDPOINT set, every write
// is traced over OTLP/HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/ergochat/readline"

	"github.com/comalice/immutablectx"
	"github.com/comalice/immutablectx/internal/config"
	"github.com/comalice/immutablectx/internal/production"
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("pending"),
	readline.PcItem("add"),
	readline.PcItem("toggle"),
	readline.PcItem("remove"),
	readline.PcItem("undo"),
	readline.PcItem("redo"),
	readline.PcItem("show"),
	readline.PcItem("history"),
	readline.PcItem("dot"),
	readline.PcItem("yaml"),
	readline.PcItem("quit"),
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "todo:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()
	tp, shutdown, err := production.SetupTracing(ctx, cfg.OTelEndpoint, cfg.ServiceName)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			logger.Warn("tracing shutdown", "error", err)
		}
	}()

	metrics, err := production.NewMetrics(nil)
	if err != nil {
		return err
	}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	history := immutablectx.NewUndoManager[appState](
		immutablectx.WithLimit(cfg.HistoryLimit),
		immutablectx.WithOnMove(metrics.ObserveHistory),
	)
	opts := []immutablectx.Option[appState]{
		immutablectx.WithLogger[appState](logger),
		immutablectx.WithInstrument[appState](production.Instruments{metrics, production.NewTracer(tp)}),
	}
	if level <= slog.LevelDebug {
		opts = append(opts, immutablectx.WithHistoryLogger[appState](logger.With("component", "history")))
	}
	p := immutablectx.NewProvider(
		appState{Items: []toDo{{Text: "Release new version of immutablectx"}}},
		history,
		opts...,
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "todo> ",
		HistoryFile:       cfg.HistoryFile,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()
	rl.CaptureExitSignal()

	// Re-render on every published snapshot.
	unsub := p.Subscribe(func(s appState) {
		fmt.Fprintln(os.Stdout, render(s))
	})
	defer unsub()

	a := newApp(p)
	fmt.Fprintln(os.Stdout, render(p.State()))
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) && len(line) != 0 {
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}

		out, err := a.exec(line)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if out = strings.TrimRight(out, "\n"); out != "" {
			fmt.Fprintln(os.Stdout, out)
		}
	}
}
