package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"

	"vela/internal/config"
	"vela/pkg/color"
	"vela/pkg/filter"
	"vela/pkg/interpreter"
	"vela/pkg/value"
)

var errNoInput = errors.New("no input: give a file, -e, -f or -i")

type Runner struct {
	Config      *config.Config // settings from the config file, overridden by flags
	Expression  string         // expression to evaluate (-e)
	Filter      string         // filter expression (-f)
	DataFile    string         // YAML records for the filter (-d)
	Interactive bool           // start the REPL (-i)
	SourceFile  string         // program file to run

	Out    io.Writer // results and PRINT output
	ErrOut io.Writer // evaluation errors
}

// Run executes the selected mode: filter, expression, program file or REPL
func (r *Runner) Run() error {
	if r.Config == nil {
		r.Config = config.Default()
	}
	if r.Out == nil {
		r.Out = os.Stdout
	}
	if r.ErrOut == nil {
		r.ErrOut = os.Stderr
	}

	vela := r.newInterpreter()

	switch {
	case r.Filter != "":
		return r.runFilter(vela)
	case r.Expression != "":
		return r.evaluate(vela, func() (value.Operand, error) { return vela.Expression(r.Expression) })
	case r.SourceFile != "":
		log.Debug("Running file", "file", r.SourceFile)
		return r.evaluate(vela, func() (value.Operand, error) { return vela.ProgramFile(r.SourceFile) })
	case r.Interactive:
		return r.repl(vela)
	default:
		return errNoInput
	}
}

func (r *Runner) newInterpreter() *interpreter.Interpreter {
	return interpreter.NewInterpreter(
		interpreter.WithWriter(r.Out),
		interpreter.WithVerbose(r.Config.Verbose),
		interpreter.WithMaxSteps(r.Config.MaxSteps),
		interpreter.WithSourceDirs(r.Config.SourceDirs...),
	)
}

// evaluate runs one entry point, interrupting it on Ctrl-C, and prints its result
func (r *Runner) evaluate(vela *interpreter.Interpreter, run func() (value.Operand, error)) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vela.Interrupt()
		case <-done:
		}
	}()

	result, err := run()
	if err != nil {
		r.printError(err)
		return fmt.Errorf("evaluation failed: %w", err)
	}

	r.printResult(result)
	return nil
}

func (r *Runner) runFilter(vela *interpreter.Interpreter) error {
	if r.DataFile == "" {
		return errors.New("a filter needs a records file (-d)")
	}

	records, err := filter.LoadRecordsFile(r.DataFile)
	if err != nil {
		return err
	}

	matches, err := filter.Apply(vela, r.Filter, records)
	if err != nil {
		r.printError(err)
		return fmt.Errorf("filter failed: %w", err)
	}

	log.Debug("Filtered records", "total", len(records), "matched", len(matches))
	for _, k := range matches {
		fmt.Fprintf(r.Out, "%d: %s\n", k, formatRecord(records[k]))
	}

	return nil
}

func (r *Runner) printResult(result value.Operand) {
	if result != nil {
		fmt.Fprintln(r.Out, color.CyanText(value.Repr(result)))
	}
}

func (r *Runner) printError(err error) {
	fmt.Fprintln(r.ErrOut, color.Error(err.Error()))
}
