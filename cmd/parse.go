package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bmatsuo/mclisp/internal/render"
	"github.com/bmatsuo/mclisp/lisp"
	"github.com/bmatsuo/mclisp/parser"
	"github.com/bmatsuo/mclisp/parser/lexer"
)

var (
	parseExpression bool
	parseTokens     bool
	parseFormat     string
	parseReader     string
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] FILE ...",
	Short: "Parse lisp code and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := render.ParseFormat(parseFormat)
		if err != nil {
			return err
		}
		names, sources, err := readSources(args, parseExpression)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i := range sources {
			if parseTokens {
				for _, tok := range lexer.Tokenize(names[i], sources[i]) {
					fmt.Fprintln(out, tok)
				}
				continue
			}
			forms, err := parseSource(names[i], sources[i])
			if err != nil {
				return err
			}
			for _, form := range forms {
				err = render.Value(out, form, format)
				if err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func parseSource(name string, source string) ([]*lisp.LVal, error) {
	switch parseReader {
	case "rdparser":
		return parser.ParseForms(name, source)
	case "parsec":
		forms, _, err := parser.ParseLVal([]byte(source))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return forms, nil
	default:
		return nil, fmt.Errorf("unknown reader: %q", parseReader)
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	parseCmd.Flags().BoolVar(&parseTokens, "tokens", false,
		"Print the token stream instead of parsed forms")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "lisp",
		"Output format (lisp, json, yaml)")
	parseCmd.Flags().StringVar(&parseReader, "reader", "rdparser",
		"Reader implementation (rdparser, parsec)")
}
