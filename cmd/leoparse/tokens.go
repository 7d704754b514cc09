package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zkcircuit/leoparse/internal/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a Leo file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return writeTokens(cmd.OutOrStdout(), lexer.Tokenize(string(src), args[0]))
		},
	}
}

// writeTokens prints one token per line as position, type and literal.
func writeTokens(w io.Writer, toks []lexer.Token) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tok := range toks {
		start := tok.Span.Start
		fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", start.Line, start.Column, tok.Type, tok.Describe())
	}
	return tw.Flush()
}
