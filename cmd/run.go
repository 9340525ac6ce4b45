package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/bmatsuo/mclisp/environ"
	"github.com/bmatsuo/mclisp/internal/render"
	"github.com/bmatsuo/mclisp/interp"
	"github.com/bmatsuo/mclisp/lisp"
	"github.com/bmatsuo/mclisp/parser"
)

var (
	runExpression bool
	runPrint      bool
	runEnv        bool
	runFormat     string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE ...",
	Short: "Run lisp code",
	Long: `Run lisp code supplied via the command line or a file.  Each
argument is a separate program evaluated in an empty environment.  The value of
the last top-level form is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := render.ParseFormat(runFormat)
		if err != nil {
			return err
		}
		names, sources, err := readSources(args, runExpression)
		if err != nil {
			return err
		}
		in, err := newInterpreter()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i := range sources {
			log.WithField("file", names[i]).Debug("run")
			var v *lisp.LVal
			var env *environ.Environ
			if runPrint {
				v, env, err = runPrintForms(in, out, names[i], sources[i], format)
			} else {
				v, env, err = in.Load(names[i], sources[i], environ.New())
			}
			if err != nil {
				printStackTrace(cmd.ErrOrStderr(), err)
				return err
			}
			if !runPrint {
				err = render.Value(out, v, format)
				if err != nil {
					return err
				}
			}
			if runEnv {
				err = render.Environ(out, env, format)
				if err != nil {
					return err
				}
			}
		}
		return nil
	},
}

// runPrintForms evaluates each top-level form of source and prints its value
// as it is computed.
func runPrintForms(in *interp.Interpreter, w io.Writer, name string, source string, format render.Format) (*lisp.LVal, *environ.Environ, error) {
	forms, err := parser.ParseForms(name, source)
	if err != nil {
		return nil, nil, err
	}
	v := lisp.Nil()
	env := environ.New()
	for _, form := range forms {
		v, env, err = in.Eval(form, env)
		if err != nil {
			return nil, nil, err
		}
		err = render.Value(w, v, format)
		if err != nil {
			return nil, nil, err
		}
	}
	return v, env, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print the value of every top-level form")
	runCmd.Flags().BoolVar(&runEnv, "env", false,
		"Print the final environment of each program")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "lisp",
		"Output format (lisp, json, yaml)")
}
