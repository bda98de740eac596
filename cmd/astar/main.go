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
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/gridfile"
	"github.com/pdrpinto/gridastar/internal/tui"
	"github.com/pdrpinto/gridastar/render"
)

var version = "--- set from makefile ---"

// errUnreachable makes the process exit non-zero once every file is reported.
var errUnreachable = errors.New("one or more grids have no path")

type config struct {
	format        string
	pngDir        string
	cellSize      int
	strict        bool
	maxExpansions int
	workers       int
	interactive   bool
}

func main() {
	var (
		cfg         config
		help        = flag.Bool("help", false, "show help message")
		showVersion = flag.Bool("version", false, "show command version")
		logLevel    = flag.String("log-level", "warn", "log level: debug, info, warn or error")
	)
	flag.StringVar(&cfg.format, "format", "text", "output format: text, map or json")
	flag.StringVar(&cfg.pngDir, "png", "", "write a PNG rendering of each grid into this directory")
	flag.IntVar(&cfg.cellSize, "cell", 24, "PNG pixels per grid cell")
	flag.BoolVar(&cfg.strict, "strict", false, "reject grids whose start or end is out of bounds or blocked")
	flag.IntVar(&cfg.maxExpansions, "max-expansions", 0, "abort a search after this many expansions (0 = unlimited)")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "number of grids solved concurrently")
	flag.BoolVar(&cfg.interactive, "tui", false, "step through the search of a single grid in the terminal")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] FILE...\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	if *showVersion {
		fmt.Println(version)
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var err error
	if cfg.interactive {
		err = runInteractive(ctx, cfg, flag.Args())
	} else {
		err = run(ctx, logger, cfg, flag.Args(), os.Stdout)
	}
	if err != nil {
		if !errors.Is(err, errUnreachable) {
			logger.Error("application error", "error", err)
		}
		os.Exit(1)
	}
}

// outcome is the search result for one input file.
type outcome struct {
	file   string
	grid   astar.Grid
	result astar.Result[astar.Position]
	err    error
}

func run(ctx context.Context, logger *slog.Logger, cfg config, files []string, stdout io.Writer) error {
	if len(files) == 0 {
		return errors.New("no grid files given")
	}
	switch cfg.format {
	case "text", "map", "json":
	default:
		return fmt.Errorf("unknown format %q", cfg.format)
	}

	// ----------------------------------------------------------------------------
	// Solve

	outcomes := make([]outcome, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.workers, 1))
	for i, file := range files {
		g.Go(func() error {
			o, err := solve(ctx, logger, cfg, file)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// ----------------------------------------------------------------------------
	// Report

	unreachable := false
	for i, o := range outcomes {
		if o.err != nil {
			unreachable = true
		}
		if err := report(stdout, cfg, o, len(files) > 1, i > 0); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if cfg.pngDir != "" {
			if err := writePNG(cfg, o); err != nil {
				return err
			}
		}
	}
	if unreachable {
		return errUnreachable
	}
	return nil
}

// solve loads and searches one file. Load, validation and context errors are
// returned; a missing path is recorded in the outcome.
func solve(ctx context.Context, logger *slog.Logger, cfg config, file string) (outcome, error) {
	grid, err := gridfile.Load(file)
	if err != nil {
		return outcome{}, err
	}
	if cfg.strict {
		if err := gridfile.Validate(grid); err != nil {
			return outcome{}, fmt.Errorf("%s: %w", file, err)
		}
	}

	log := logger.With("file", file)
	result, err := astar.FindPath(ctx, grid,
		astar.WithMaxExpansions(cfg.maxExpansions),
		astar.WithLogger(log),
	)
	switch {
	case err == nil:
		log.Info("path found", "moves", len(result.Path)-1, "expanded", result.ExpandedNodes)
	case errors.Is(err, astar.ErrNoPath), errors.Is(err, astar.ErrExpansionLimit):
		log.Warn("no path", "reason", err, "expanded", result.ExpandedNodes)
	default:
		return outcome{}, fmt.Errorf("%s: %w", file, err)
	}
	return outcome{file: file, grid: grid, result: result, err: err}, nil
}

func report(w io.Writer, cfg config, o outcome, withHeader, leadingBlank bool) error {
	if cfg.format == "json" {
		return render.JSON(w, render.NewReport(o.file, o.result, o.err))
	}

	if leadingBlank {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if withHeader {
		if _, err := fmt.Fprintf(w, "== %s\n", o.file); err != nil {
			return err
		}
	}
	if o.err != nil {
		_, err := fmt.Fprintf(w, "no path: %v\n", o.err)
		if err != nil || cfg.format != "map" {
			return err
		}
	}
	if cfg.format == "map" {
		return render.Map(w, o.grid, o.result.Path)
	}
	return render.Text(w, o.result.Path)
}

func writePNG(cfg config, o outcome) error {
	if err := os.MkdirAll(cfg.pngDir, 0o755); err != nil {
		return fmt.Errorf("png: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(o.file), filepath.Ext(o.file)) + ".png"
	f, err := os.Create(filepath.Join(cfg.pngDir, name))
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	if err := render.PNG(f, o.grid, o.result.Path, cfg.cellSize); err != nil {
		f.Close()
		return fmt.Errorf("png: %s: %w", name, err)
	}
	return f.Close()
}

func runInteractive(ctx context.Context, cfg config, files []string) error {
	if len(files) != 1 {
		return errors.New("-tui needs exactly one grid file")
	}
	grid, err := gridfile.Load(files[0])
	if err != nil {
		return err
	}
	if cfg.strict {
		if err := gridfile.Validate(grid); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	defer screen.Fini()

	stepper := astar.NewGridStepper(ctx, grid, astar.WithMaxExpansions(cfg.maxExpansions))
	return tui.New(screen, grid, stepper).Run()
}
