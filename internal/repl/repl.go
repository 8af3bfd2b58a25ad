package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"glogo/internal/errs"
	"glogo/internal/evaluator"
	"glogo/internal/parser"
)

const (
	promptMain  = ">> "
	promptCont  = ".. "
	historyFile = ".glogo_history"
)

// Start runs an interactive session against a live interpreter. Input is
// executed chunk by chunk; an unterminated TO body keeps the chunk open and
// switches to the continuation prompt. Drawing state persists across chunks
// until :reset or :quit.
func Start(width, height int) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	loadHistory(ln)
	defer saveHistory(ln)

	interp := evaluator.New(width, height)
	fmt.Printf("glogo repl, %dx%d canvas. Type :help for session commands.\n", width, height)

	var pending string
	for {
		prompt := promptMain
		if pending != "" {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			pending = ""
			fmt.Println("(input discarded)")
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if pending == "" {
			if handled, quit, next := session(interp, width, height, line); handled {
				if quit {
					return nil
				}
				interp = next
				continue
			}
		}

		pending += line + "\n"
		program, err := parser.Parse(pending)
		if err != nil {
			var pe *errs.ParseError
			if errors.As(err, &pe) && pe.Incomplete {
				continue
			}
			fmt.Println(err)
			pending = ""
			continue
		}
		pending = ""

		if err := interp.Execute(program); err != nil {
			fmt.Println(err)
			continue
		}
		printState(interp)
	}
}

// session handles :-prefixed commands. Words that are not session commands
// fall through to the language (`:x` alone is a valid expression).
func session(interp *evaluator.Interpreter, width, height int, line string) (handled, quit bool, next *evaluator.Interpreter) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true, true, interp
	case ":reset":
		fmt.Println("(state cleared)")
		return true, false, evaluator.New(width, height)
	case ":vars":
		names := interp.Variables().Names()
		if len(names) == 0 {
			fmt.Println("(no variables defined)")
			return true, false, interp
		}
		for _, name := range names {
			if value, ok := interp.Variables().Get(name); ok {
				fmt.Printf("  %s = %s\n", name, value.String())
			}
		}
		return true, false, interp
	case ":save":
		if len(fields) != 2 {
			fmt.Println("usage: :save <path.svg|path.png>")
			return true, false, interp
		}
		if err := interp.SaveImage(fields[1]); err != nil {
			fmt.Println(err)
		} else {
			fmt.Printf("saved %s\n", fields[1])
		}
		return true, false, interp
	case ":help":
		fmt.Print(`session commands:
  :quit, :q        exit the repl
  :reset           discard all state and start over
  :vars            list defined variables
  :save <path>     write the current drawing (.svg or .png)
  :help            this text
`)
		return true, false, interp
	default:
		return false, false, interp
	}
}

func printState(interp *evaluator.Interpreter) {
	t := interp.Turtle()
	pen := "up"
	if t.IsPenDown() {
		pen = "down"
	}
	fmt.Printf("x=%d y=%d heading=%d color=%d pen=%s segments=%d\n",
		t.X(), t.Y(), t.Heading(), t.PenColor(), pen, t.Canvas().Segments())
}

func loadHistory(ln *liner.State) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	f, err := os.Open(filepath.Join(home, historyFile))
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = ln.ReadHistory(f)
}

func saveHistory(ln *liner.State) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	f, err := os.Create(filepath.Join(home, historyFile))
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = ln.WriteHistory(f)
}
