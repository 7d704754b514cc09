// Package driver runs the parser over source files, in parallel when
// several are given, and collects a Result per file.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zkcircuit/leoparse/internal/ast"
	"github.com/zkcircuit/leoparse/internal/cli"
	"github.com/zkcircuit/leoparse/internal/diagnostics"
	"github.com/zkcircuit/leoparse/internal/manifest"
	"github.com/zkcircuit/leoparse/internal/parser"
	"github.com/zkcircuit/leoparse/internal/position"
)

// ErrNoInput is returned when there is nothing to parse.
var ErrNoInput = errors.New("no input files")

// Result is the outcome of parsing one file. Err holds a fatal parse error
// or an I/O error; Diagnostics holds recoverable issues. Program is nil
// whenever Err is set.
type Result struct {
	Path        string                   `json:"path"`
	Program     *ast.Program             `json:"program,omitempty"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`
	Err         error                    `json:"-"`
	Elapsed     time.Duration            `json:"-"`

	Source *position.SourceFile `json:"-"`
}

// Failed reports whether the file has a fatal error or error diagnostics.
func (r *Result) Failed() bool {
	if r.Err != nil {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Level == diagnostics.DiagnosticError {
			return true
		}
	}
	return false
}

// AllDiagnostics returns the recoverable diagnostics followed by the fatal
// error, if it is a parse error.
func (r *Result) AllDiagnostics() []diagnostics.Diagnostic {
	out := append([]diagnostics.Diagnostic(nil), r.Diagnostics...)
	var perr *parser.Error
	if errors.As(r.Err, &perr) {
		out = append(out, perr.Diagnostic())
	}
	return out
}

// Render writes every diagnostic of the result with source context.
func (r *Result) Render(w io.Writer, mode diagnostics.ColorMode) error {
	renderer := diagnostics.NewRenderer(w, mode)
	if err := renderer.RenderAll(r.Source, r.AllDiagnostics()); err != nil {
		return err
	}
	var perr *parser.Error
	if r.Err != nil && !errors.As(r.Err, &perr) {
		_, err := fmt.Fprintf(w, "%s: %v\n", r.Path, r.Err)
		return err
	}
	return nil
}

// Options configures a Driver.
type Options struct {
	// Workers bounds concurrent parses; zero means one per CPU.
	Workers int
	// ErrorLimit caps error diagnostics per file; zero is unlimited.
	ErrorLimit int
	Logger     *cli.Logger
}

// Driver parses files with a fixed set of options.
type Driver struct {
	opts Options
}

// New creates a driver.
func New(opts Options) *Driver {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = cli.NewLogger(false, false)
	}
	return &Driver{opts: opts}
}

// ParseSource parses src as a whole program.
func (d *Driver) ParseSource(name, src string) *Result {
	start := time.Now()

	handler := diagnostics.NewHandler()
	handler.SetErrorLimit(d.opts.ErrorLimit)
	p := parser.NewFromSource(src, name, parser.WithHandler(handler))
	program, err := p.ParseProgram()

	res := &Result{
		Path:        name,
		Program:     program,
		Diagnostics: handler.Diagnostics(),
		Err:         err,
		Elapsed:     time.Since(start),
		Source:      position.NewSourceFile(name, src),
	}
	d.opts.Logger.Debug("parsed %s in %s (%d diagnostics)", name, res.Elapsed, len(res.Diagnostics))
	return res
}

// ParseFile reads and parses one file.
func (d *Driver) ParseFile(path string) *Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Result{Path: path, Err: fmt.Errorf("failed to read source: %w", err)}
	}
	return d.ParseSource(path, string(data))
}

// ParseFiles parses every path concurrently and returns the results in
// input order. Per-file failures are recorded in the results; the error
// is only set when ctx is cancelled or paths is empty.
func (d *Driver) ParseFiles(ctx context.Context, paths []string) ([]*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	results := make([]*Result, len(paths))
	sem := make(chan struct{}, d.opts.Workers)
	g, gctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		i, path := i, path

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			results[i] = d.ParseFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.opts.Logger.Info("parsed %d files", len(paths))
	return results, nil
}

// ParsePackage loads the manifest in dir, checks that this parser may
// read it and parses every source file of the package.
func (d *Driver) ParsePackage(ctx context.Context, dir string) (*manifest.Manifest, []*Result, error) {
	m, err := manifest.Load(dir)
	if err != nil {
		return nil, nil, err
	}
	if err := m.CheckParser(cli.Version); err != nil {
		return nil, nil, err
	}

	files, err := m.SourceFiles()
	if err != nil {
		return nil, nil, err
	}
	d.opts.Logger.Info("package %s v%s: %d source files", m.Program, m.SemVer(), len(files))

	results, err := d.ParseFiles(ctx, files)
	if err != nil {
		return nil, nil, fmt.Errorf("package %s: %w", m.Program, err)
	}
	return m, results, nil
}

// ParseSource parses src with default options.
func ParseSource(name, src string) *Result {
	return New(Options{}).ParseSource(name, src)
}

// ParseFiles parses paths with at most workers concurrent parses.
func ParseFiles(ctx context.Context, paths []string, workers int) ([]*Result, error) {
	return New(Options{Workers: workers}).ParseFiles(ctx, paths)
}
