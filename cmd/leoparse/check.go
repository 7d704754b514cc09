package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zkcircuit/leoparse/internal/driver"
	"github.com/zkcircuit/leoparse/internal/manifest"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file|package...]",
		Short: "Report diagnostics for Leo files or packages",
		Long: `Check parses every input and prints its diagnostics.

A directory argument must hold a ` + manifest.FileName + ` manifest; every .leo file under its
` + manifest.SourceDir + ` directory is checked. With no arguments the current directory is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			drv := a.driver()

			var (
				results []*driver.Result
				files   []string
			)
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					return err
				}
				if !info.IsDir() {
					files = append(files, arg)
					continue
				}
				m, res, err := drv.ParsePackage(cmd.Context(), arg)
				if err != nil {
					return fmt.Errorf("%s: %w", filepath.Clean(arg), err)
				}
				a.logger.Info("checked %s v%s", m.Program, m.SemVer())
				results = append(results, res...)
			}
			if len(files) > 0 {
				res, err := drv.ParseFiles(cmd.Context(), files)
				if err != nil {
					return err
				}
				results = append(results, res...)
			}

			errs, failedFiles := 0, 0
			for _, res := range results {
				if err := res.Render(cmd.ErrOrStderr(), a.colorMode()); err != nil {
					return err
				}
				errs += len(res.AllDiagnostics())
				if res.Failed() {
					failedFiles++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checked %d files: %d diagnostics in %d files\n", len(results), errs, failedFiles)
			if failedFiles > 0 {
				return errFailed
			}
			return nil
		},
	}
}
