package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/zkcircuit/leoparse/internal/diagnostics"
	"github.com/zkcircuit/leoparse/internal/lexer"
	"github.com/zkcircuit/leoparse/internal/parser"
	"github.com/zkcircuit/leoparse/internal/position"
)

const (
	promptMain  = "leo> "
	promptCont  = "...  "
	historyFile = ".leoparse_history"
	replName    = "<repl>"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse Leo statements interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &repl{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), color: a.colorMode()}
			return r.run()
		},
	}
}

// repl parses each entered chunk as a statement list and echoes the
// result.
type repl struct {
	out    io.Writer
	errOut io.Writer
	color  diagnostics.ColorMode

	showTokens bool
	showJSON   bool
}

func (r *repl) run() error {
	fmt.Fprintln(r.out, "leoparse repl. Type :help for help, :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		src, ok := readChunk(ln)
		if !ok {
			fmt.Fprintln(r.out)
			return nil
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if r.command(trimmed) {
				return nil
			}
			continue
		}
		r.eval(src)
	}
}

// readChunk keeps prompting while the input so far ends inside a
// statement.
func readChunk(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src only fails because it ends too early.
func incomplete(src string) bool {
	_, err := parser.NewFromSource(src, replName).ParseStatements()
	var perr *parser.Error
	return errors.As(err, &perr) && perr.Kind == parser.KindUnexpectedEOF
}

// command runs a colon command and reports whether the repl should exit.
func (r *repl) command(line string) bool {
	parts := strings.Fields(line)
	switch parts[0] {
	case ":help", ":h":
		fmt.Fprintln(r.out, "Commands:")
		fmt.Fprintln(r.out, "  :help, :h          Show this help")
		fmt.Fprintln(r.out, "  :quit, :q          Exit")
		fmt.Fprintln(r.out, "  :tokens on|off     Print the token stream of each input")
		fmt.Fprintln(r.out, "  :json on|off       Print statements as JSON")
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "Anything else is parsed as a list of statements.")
	case ":quit", ":q", ":exit":
		return true
	case ":tokens", ":json":
		target := &r.showTokens
		if parts[0] == ":json" {
			target = &r.showJSON
		}
		if len(parts) < 2 {
			fmt.Fprintf(r.out, "%s is %s\n", parts[0], onOff(*target))
			break
		}
		switch parts[1] {
		case "on":
			*target = true
		case "off":
			*target = false
		default:
			fmt.Fprintf(r.out, "usage: %s on|off\n", parts[0])
		}
	default:
		fmt.Fprintf(r.out, "unknown command %s, type :help for help\n", parts[0])
	}
	return false
}

// eval parses src and prints every statement followed by diagnostics.
func (r *repl) eval(src string) {
	if r.showTokens {
		_ = writeTokens(r.out, lexer.Tokenize(src, replName))
	}

	p := parser.NewFromSource(src, replName)
	stmts, err := p.ParseStatements()

	renderer := diagnostics.NewRenderer(r.errOut, r.color)
	file := position.NewSourceFile(replName, src)
	diags := p.Diagnostics()
	var perr *parser.Error
	if errors.As(err, &perr) {
		diags = append(diags, perr.Diagnostic())
	}
	_ = renderer.RenderAll(file, diags)
	if err != nil {
		return
	}

	for _, stmt := range stmts {
		if r.showJSON {
			data, err := json.Marshal(stmt)
			if err != nil {
				fmt.Fprintf(r.errOut, "encode: %v\n", err)
				continue
			}
			fmt.Fprintf(r.out, "%s\n", data)
			continue
		}
		fmt.Fprintln(r.out, stmt.String())
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
