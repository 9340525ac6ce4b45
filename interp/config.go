package interp

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth is the default limit on nested procedure applications.
const DefaultMaxDepth = 10000

// Config is a function that configures an Interpreter.
type Config func(in *Interpreter) error

// WithMaxDepth returns a Config that prevents an Interpreter from nesting more
// than n procedure applications.  Exceeding the limit raises a StackOverflow
// error instead of exhausting memory.
func WithMaxDepth(n int) Config {
	return func(in *Interpreter) error {
		if n < 1 {
			return fmt.Errorf("invalid maximum depth: %d", n)
		}
		in.maxDepth = n
		return nil
	}
}

// WithLogger returns a Config that makes an Interpreter trace evaluation to
// log.  Special forms and applications are logged at debug level.  By default
// nothing is logged.
func WithLogger(log *logrus.Logger) Config {
	return func(in *Interpreter) error {
		if log == nil {
			log = discardLogger()
		}
		in.log = log
		return nil
	}
}

// WithFile returns a Config that attributes source parsed by Interpret and Run
// to the named file.
func WithFile(name string) Config {
	return func(in *Interpreter) error {
		in.file = name
		return nil
	}
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}
