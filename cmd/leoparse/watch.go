package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/zkcircuit/leoparse/internal/driver"
	"github.com/zkcircuit/leoparse/internal/manifest"
	"github.com/zkcircuit/leoparse/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir|file...]",
		Short: "Re-check Leo files whenever they change",
		Long: `Watch prints diagnostics for a file every time it is written.

A package directory is watched through its ` + manifest.SourceDir + ` directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			w, err := watch.New(a.driver(), func(res *driver.Result) {
				if err := res.Render(errOut, a.colorMode()); err != nil {
					a.logger.Error("render %s: %v", res.Path, err)
				}
				status := "ok"
				if res.Failed() {
					status = fmt.Sprintf("%d diagnostics", len(res.AllDiagnostics()))
				}
				fmt.Fprintf(out, "%s: %s (%s)\n", res.Path, status, res.Elapsed.Round(time.Microsecond))
			}, watch.WithDebounce(debounce), watch.WithLogger(a.logger))
			if err != nil {
				return err
			}

			for _, arg := range args {
				if err := w.Add(watchTarget(arg)); err != nil {
					w.Close()
					return err
				}
			}

			a.logger.Info("watching %d paths, press Ctrl-C to stop", len(args))
			err = w.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "delay before reparsing a changed file")
	return cmd
}

// watchTarget maps a package directory to its source directory.
func watchTarget(path string) string {
	if _, err := os.Stat(filepath.Join(path, manifest.FileName)); err != nil {
		return path
	}
	src := filepath.Join(path, manifest.SourceDir)
	if info, err := os.Stat(src); err == nil && info.IsDir() {
		return src
	}
	return path
}
