// Package cmd implements the mclisp command line interface.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bmatsuo/mclisp/interp"
	"github.com/bmatsuo/mclisp/lisp"
)

var (
	rootLogLevel string
	rootMaxDepth int
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "mclisp",
	Short: "A minimal lisp interpreter",
	Long: `A minimal lisp interpreter with the special forms quote, atom, eq, car,
cdr, cons, define, set!, cond and lambda.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(rootLogLevel)
		if err != nil {
			return err
		}
		log.SetOutput(cmd.ErrOrStderr())
		log.SetLevel(level)
		return nil
	},
}

// Execute runs the root command and exits the process with a non-zero status
// if it fails.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.WithError(err).Error("mclisp failed")
		os.Exit(1)
	}
}

func newInterpreter() (*interp.Interpreter, error) {
	return interp.New(
		interp.WithMaxDepth(rootMaxDepth),
		interp.WithLogger(log),
	)
}

// printStackTrace writes the call stack attached to err, if any.
func printStackTrace(w io.Writer, err error) {
	var lerr *lisp.Error
	if !errors.As(err, &lerr) || lerr.Stack.Height() == 0 {
		return
	}
	lerr.Stack.DebugPrint(w)
}

func readSources(args []string, expression bool) (names []string, sources []string, err error) {
	for i, arg := range args {
		if expression {
			names = append(names, fmt.Sprintf("expr%d", i+1))
			sources = append(sources, arg)
			continue
		}
		b, err := os.ReadFile(arg)
		if err != nil {
			return nil, nil, err
		}
		names = append(names, arg)
		sources = append(sources, string(b))
	}
	return names, sources, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "warning",
		"Log level (trace, debug, info, warning, error)")
	rootCmd.PersistentFlags().IntVar(&rootMaxDepth, "max-depth", interp.DefaultMaxDepth,
		"Maximum procedure call depth")
}
