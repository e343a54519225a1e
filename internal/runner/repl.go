package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterh/liner"

	"vela/pkg/color"
	"vela/pkg/interpreter"
	"vela/pkg/value"
)

const (
	banner     = "VeLa REPL. Type :help for help, :quit or Ctrl-D to exit."
	promptMain = "vela> "
	promptCont = "  ... "
)

func (r *Runner) repl(vela *interpreter.Interpreter) error {
	fmt.Fprintln(r.Out, color.BoldText(banner))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(r.Config.HistoryFile); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer r.saveHistory(ln)

	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(r.Out)
			return nil
		}

		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(code, ":") {
			if r.command(vela, code) {
				return nil
			}
			continue
		}

		// errors are reported and the session goes on
		_ = r.evaluate(vela, func() (value.Operand, error) { return vela.Program(code) })
	}
}

// command handles a REPL command and reports whether to quit
func (r *Runner) command(vela *interpreter.Interpreter, line string) bool {
	fields := strings.Fields(line)

	switch strings.ToLower(fields[0]) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(r.Out, "  :help         this message")
		fmt.Fprintln(r.Out, "  :load <file>  run a VeLa file in this session")
		fmt.Fprintln(r.Out, "  :quit         exit")
		fmt.Fprintln(r.Out, "  HELP(name)    describe a function or value")
	case ":load":
		if len(fields) != 2 {
			fmt.Fprintln(r.ErrOut, color.Error("usage: :load <file>"))
			break
		}
		_ = r.evaluate(vela, func() (value.Operand, error) { return vela.ProgramFile(fields[1]) })
	default:
		fmt.Fprintln(r.ErrOut, color.Error("unknown command "+fields[0]+", type :help"))
	}

	return false
}

// readInput reads lines until the brackets of the input balance
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			log.Error("Reading input", "error", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !isIncomplete(b.String()) {
			return b.String(), true
		}
	}
}

func (r *Runner) saveHistory(ln *liner.State) {
	f, err := os.Create(r.Config.HistoryFile)
	if err != nil {
		log.Warn("Cannot save history", "file", r.Config.HistoryFile, "error", err)
		return
	}
	defer f.Close()

	if _, err := ln.WriteHistory(f); err != nil {
		log.Warn("Cannot save history", "file", r.Config.HistoryFile, "error", err)
	}
}
