// Command term is the command-line front end of the quiz term engine: an
// interactive REPL for trying expressions plus one-shot subcommands for
// grading pipelines.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/mathquiz/term"
)

const (
	appName     = "term"
	historyFile = ".term_history"
	prompt      = "==> "
)

var banner = fmt.Sprintf("term %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.", term.Version)

const helpText = `
REPL commands:
  :cmp A ; B    Compare two expressions for equivalence
  :ode A ; B    Compare up to renaming/rescaling of integration constants
  :tex EXPR     Print the TeX rendering of an expression
  :help         Show this help
  :quit         Exit the REPL

Anything else is parsed as an expression and echoed back in parenthesized
form, TeX form, and (when it has no unbound variables) as a value.
`

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "repl":
		os.Exit(cmdRepl())
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "eval":
		os.Exit(cmdEval(os.Args[2:]))
	case "tex":
		os.Exit(cmdTex(os.Args[2:]))
	case "version":
		fmt.Println(term.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s COMMAND [ARGS]

Commands:
  repl                      Interactive expression shell
  check [-ode] REF ANSWER   Exit 0 if ANSWER is equivalent to REF, 1 if not
  eval EXPR [name=value...] Evaluate an expression with variable bindings
  tex EXPR                  Print the TeX rendering of an expression
  version                   Print the engine version
`, appName)
}

func cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	ode := fs.Bool("ode", false, "accept renamed/rescaled integration constants")
	_ = fs.Parse(args)
	rest := fs.Args()
	if len(rest) != 2 {
		fmt.Fprintln(os.Stderr, "check needs exactly two expressions")
		return 2
	}
	ref, err := parseArg(rest[0])
	if err != nil {
		return 2
	}
	ans, err := parseArg(rest[1])
	if err != nil {
		return 2
	}
	ok := false
	if *ode {
		ok = term.CompareODE(ref, ans)
	} else {
		ok = term.Compare(ref, ans)
	}
	if !ok {
		fmt.Println("different")
		return 1
	}
	fmt.Println("equivalent")
	return 0
}

func cmdEval(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "eval needs an expression")
		return 2
	}
	t, err := parseArg(args[0])
	if err != nil {
		return 2
	}
	binds := term.Bindings{}
	for _, kv := range args[1:] {
		name, src, ok := strings.Cut(kv, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "binding %q is not name=value\n", kv)
			return 2
		}
		val, err := evalArg(src)
		if err != nil {
			return 2
		}
		binds[name] = val
	}
	v, err := t.Eval(binds)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	fmt.Println(formatComplex(v))
	return 0
}

func cmdTex(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "tex needs exactly one expression")
		return 2
	}
	t, err := parseArg(args[0])
	if err != nil {
		return 2
	}
	fmt.Println(t.TeXString())
	return 0
}

// parseArg parses a command-line expression and renders parse failures with
// a caret snippet on stderr.
func parseArg(src string) (*term.Term, error) {
	t, err := term.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(term.WrapErrorWithSource(err, src).Error()))
		return nil, err
	}
	return t, nil
}

// evalArg parses and evaluates a binding value, so bindings may themselves
// be expressions: x=1+2i, k=pi/2.
func evalArg(src string) (complex128, error) {
	t, err := parseArg(src)
	if err != nil {
		return 0, err
	}
	v, err := t.Eval(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 0, err
	}
	return v, nil
}

func formatComplex(v complex128) string {
	re, im := real(v), imag(v)
	switch {
	case im == 0:
		return fmt.Sprintf("%g", re)
	case re == 0:
		return fmt.Sprintf("%gi", im)
	case im < 0:
		return fmt.Sprintf("%g-%gi", re, -im)
	default:
		return fmt.Sprintf("%g+%gi", re, im)
	}
}

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if quit := replCommand(line); quit {
				return 0
			}
			continue
		}
		showTerm(line)
	}
}

// replCommand handles one colon-command; it reports whether to exit.
func replCommand(line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)
	switch cmd {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(helpText)
	case ":tex":
		if t, err := replParse(rest); err == nil {
			fmt.Println(t.TeXString())
		}
	case ":cmp", ":ode":
		a, b, ok := strings.Cut(rest, ";")
		if !ok {
			fmt.Fprintln(os.Stderr, red("usage: "+cmd+" A ; B"))
			return false
		}
		ta, err := replParse(a)
		if err != nil {
			return false
		}
		tb, err := replParse(b)
		if err != nil {
			return false
		}
		var eq bool
		if cmd == ":ode" {
			eq = term.CompareODE(ta, tb)
		} else {
			eq = term.Compare(ta, tb)
		}
		if eq {
			fmt.Println(green("equivalent"))
		} else {
			fmt.Println(red("different"))
		}
	default:
		fmt.Println("unknown command. Type :help for commands.")
	}
	return false
}

func replParse(src string) (*term.Term, error) {
	src = strings.TrimSpace(src)
	t, err := term.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(term.WrapErrorWithSource(err, src).Error()))
		return nil, err
	}
	return t, nil
}

// showTerm echoes a parsed expression back in its three serialized forms.
func showTerm(src string) {
	t, err := replParse(src)
	if err != nil {
		return
	}
	fmt.Println(blue(t.DisplayString()))
	fmt.Println(green(t.TeXString()))
	if v, err := t.Eval(nil); err == nil {
		fmt.Println(formatComplex(v))
	}
}
