package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zkcircuit/leoparse/internal/driver"
	"github.com/zkcircuit/leoparse/internal/server"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		format string
		remote string
	)

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Print the syntax tree of Leo files",
		Long:  "Parse each file and print its syntax tree. With no files, source is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "leo" {
				return fmt.Errorf("unknown format %q: want json or leo", format)
			}
			out := cmd.OutOrStdout()

			if remote != "" {
				return a.parseRemote(cmd.Context(), out, remote, format, args, cmd.InOrStdin())
			}

			var results []*driver.Result
			if len(args) == 0 {
				src, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				results = []*driver.Result{a.driver().ParseSource("<stdin>", string(src))}
			} else {
				var err error
				if results, err = a.driver().ParseFiles(cmd.Context(), args); err != nil {
					return err
				}
			}

			failed := false
			for _, res := range results {
				if err := res.Render(cmd.ErrOrStderr(), a.colorMode()); err != nil {
					return err
				}
				if res.Program == nil {
					failed = true
					continue
				}
				if err := writeProgram(out, format, res); err != nil {
					return err
				}
				failed = failed || res.Failed()
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or leo")
	cmd.Flags().StringVar(&remote, "remote", "", "parse on a leoparse server at this address")
	return cmd
}

func writeProgram(w io.Writer, format string, res *driver.Result) error {
	if format == "leo" {
		_, err := fmt.Fprintln(w, res.Program.String())
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Program)
}

// parseRemote sends every input to a running server and prints the
// returned tree. Diagnostics are printed on one line each since the
// source is not rendered server side.
func (a *app) parseRemote(ctx context.Context, out io.Writer, addr, format string, args []string, stdin io.Reader) error {
	if format != "json" {
		return fmt.Errorf("--remote only supports --format json")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := server.NewClient(addr, nil, 30*time.Second)
	defer c.Close()

	type input struct{ name, src string }
	var inputs []input
	if len(args) == 0 {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return err
		}
		inputs = append(inputs, input{"<stdin>", string(src)})
	}
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		inputs = append(inputs, input{path, string(src)})
	}

	failed := false
	for _, in := range inputs {
		resp, err := c.Parse(ctx, in.name, in.src)
		if err != nil {
			return err
		}
		for _, d := range resp.Diagnostics {
			a.logger.Warn("%s", d)
			failed = true
		}
		if resp.Error != nil {
			a.logger.Error("%s", resp.Error.Diagnostic())
			failed = true
			continue
		}
		if _, err := fmt.Fprintf(out, "%s\n", resp.Program); err != nil {
			return err
		}
	}
	if failed {
		return errFailed
	}
	return nil
}
