// Command shapeme evolves a set of translucent triangles and circles until
// its rendering approximates a target image.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"shapeme/internal/checkpoint"
	"shapeme/internal/config"
	"shapeme/internal/evolve"
	"shapeme/internal/history"
	"shapeme/internal/imageio"
	"shapeme/internal/logger"
	"shapeme/internal/tui"
)

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet("shapeme", flag.ExitOnError)
	cfg.Bind(fs)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] <target image> <state.bin> <out.svg>\n", fs.Name())
		fs.PrintDefaults()
	}
	args := parseArgs(fs, os.Args[1:])
	if len(args) != 3 {
		fs.Usage()
		os.Exit(2)
	}
	targetPath, statePath, svgPath := args[0], args[1], args[2]
	if err := cfg.Normalize(); err != nil {
		log.Fatal(err)
	}

	l, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, l)

	target, format, err := imageio.Load(targetPath, cfg.Resize)
	if err != nil {
		l.Fatal("load target", zap.String("path", targetPath), zap.Error(err))
	}
	l.Info("loaded target",
		zap.String("path", targetPath),
		zap.String("format", format),
		zap.Int("width", target.W),
		zap.Int("height", target.H))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	l.Debug("seed", zap.Int64("seed", seed))

	hist := history.New(history.DefaultLimit)
	out := &outputs{
		cfg:       cfg,
		statePath: statePath,
		svgPath:   svgPath,
		bounds:    target.Bounds(),
		hist:      hist,
		log:       l,
	}

	var prog *tea.Program
	if cfg.TUI {
		prog = tea.NewProgram(tui.New(target), tea.WithAltScreen())
		out.preview = prog.Send
	}

	opt := evolve.New(evolve.Params{
		Kinds:         cfg.Kinds(),
		MaxShapes:     cfg.MaxShapes,
		InitialShapes: cfg.InitialShapes,
		MutationRate:  cfg.MutationRate,
		Workers:       cfg.Workers,
	}, target,
		evolve.WithRand(rand.New(rand.NewSource(seed))),
		evolve.OnAccept(out.accepted),
		evolve.OnPeriodic(out.periodic),
	)
	out.current = opt.Current

	if cfg.Restart {
		l.Info("restart requested, ignoring checkpoint", zap.String("path", statePath))
	} else {
		cp, err := checkpoint.Load(statePath, cfg.MaxShapes)
		switch {
		case errors.Is(err, checkpoint.ErrNoCheckpoint):
			l.Info("no checkpoint, starting fresh", zap.String("path", statePath))
		case err != nil:
			l.Fatal("load checkpoint", zap.String("path", statePath), zap.Error(err))
		default:
			if err := opt.Restore(cp.State, cp.Shapes); err != nil {
				l.Fatal("restore checkpoint", zap.String("path", statePath), zap.Error(err))
			}
			l.Info("resumed",
				zap.String("path", statePath),
				zap.Int64("gen", cp.State.Generation),
				zap.Int("shapes", len(cp.Shapes)),
				zap.Float64("best_diff", cp.State.BestDiff))
		}
	}

	if prog == nil {
		err = opt.Run(ctx)
	} else {
		err = runWithPreview(ctx, stop, prog, opt)
	}
	out.flush(opt.Best())
	if err != nil {
		l.Fatal("evolution stopped", zap.Error(err))
	}
	l.Info("done",
		zap.Int64("gen", opt.State().Generation),
		zap.Float64("best_diff", opt.State().BestDiff),
		zap.String("svg", svgPath))
}

// runWithPreview runs the optimizer next to the terminal preview. Quitting
// the preview stops the optimizer and the other way round.
func runWithPreview(ctx context.Context, stop context.CancelFunc, prog *tea.Program, opt *evolve.Optimizer) error {
	done := make(chan error, 1)
	go func() {
		err := opt.Run(ctx)
		prog.Send(tui.DoneMsg{Err: err})
		done <- err
	}()
	go func() {
		<-ctx.Done()
		prog.Quit()
	}()
	_, uiErr := prog.Run()
	stop()
	err := <-done
	if err == nil && uiErr != nil {
		err = fmt.Errorf("preview: %w", uiErr)
	}
	return err
}

// parseArgs parses flags that may be interleaved with positional
// arguments and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) []string {
	var pos []string
	for {
		// ExitOnError handles the error
		_ = fs.Parse(args)
		args = fs.Args()
		if len(args) == 0 {
			return pos
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.TUI && cfg.LogFile == "" {
		return zap.NewNop(), nil
	}
	return logger.New(cfg.Verbose, cfg.LogFile)
}
