/*
File   : slovo/repl/repl.go
Package: repl

Package repl implements the interactive Read-Eval-Print Loop, grounded on
the teacher's repl/repl.go (banner, chzyer/readline line editing,
fatih/color output) and its main/main.go `server <port>` mode
(net.Listen/handleClient), generalized onto the new parser/eval stack and
given one Evaluator per session instead of one shared global.
*/
package repl

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/eval"
	"github.com/slovolang/slovo/lexer"
	"github.com/slovolang/slovo/modules"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration shared by every session; each
// session (local or a TCP client's) gets its own Evaluator via NewSession.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	// NewSession builds a fresh, fully wired Evaluator (globals + std
	// builtins installed) for one REPL session. Supplied by cmd/slovo so
	// this package has no import-time dependency on package std.
	NewSession func() *eval.Evaluator
}

func New(banner, version, author, line, license, prompt string, newSession func() *eval.Evaluator) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt, NewSession: newSession}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintf(w, "%s\n", "Welcome to slovo!")
	cyanColor.Fprintf(w, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(w, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs one interactive session on stdin/stdout, using readline for
// history and line editing.
func (r *Repl) Start() {
	r.printBanner(os.Stdout)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	ev := r.NewSession()
	module := modules.NewLoader(".", nil)
	ev.Loader = module

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(os.Stdout, "Good bye!")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(os.Stdout, "Good bye!")
			return
		}
		rl.SaveHistory(line)
		r.evalLine(os.Stdout, line, ev)
	}
}

// ServeTCP listens on addr and spawns one independent REPL session per
// client connection (grounded on the teacher's main.go startServer /
// handleClient), each with its own Evaluator so clients never share state.
func (r *Repl) ServeTCP(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("repl: listen on %s: %w", addr, err)
	}
	cyanColor.Printf("slovo REPL server listening on %s\n", addr)
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] accept: %v\n", err)
			continue
		}
		go r.handleClient(conn)
	}
}

func (r *Repl) handleClient(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("client connected from %s\n", conn.RemoteAddr())
	r.printBanner(conn)

	ev := r.NewSession()
	ev.Loader = modules.NewLoader(".", nil)

	scanner := bufio.NewScanner(conn)
	conn.Write([]byte(r.Prompt))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == ".exit" {
			break
		}
		if line != "" {
			r.evalLine(conn, line, ev)
		}
		conn.Write([]byte(r.Prompt))
	}
	cyanColor.Printf("client disconnected from %s\n", conn.RemoteAddr())
}

// evalLine parses and evaluates one line of input against ev, printing
// either the resulting value or a formatted error. A panic escaping the
// evaluator (a host bug, not a script-level throw) is caught so one bad
// line cannot kill the session.
func (r *Repl) evalLine(w io.Writer, line string, ev *eval.Evaluator) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(w, "[INTERNAL ERROR] %v\n", rec)
		}
	}()

	lx := lexer.New(line, "<repl>")
	p := parser.New(lx)
	prog := p.ParseProgram()
	if len(p.Errors) > 0 {
		for _, pe := range p.Errors {
			redColor.Fprintf(w, "[SYNTAX ERROR] %s\n", pe.Message)
		}
		return
	}

	result, err := ev.EvalProgram(prog, ev.Globals.Child())
	if err != nil {
		if re, ok := err.(*errors.RuntimeError); ok {
			redColor.Fprintf(w, "[%s] %s\n", re.Kind, re.Error())
			if stack := re.FormatStack(); stack != "" {
				redColor.Fprint(w, stack)
			}
		} else {
			redColor.Fprintf(w, "[ERROR] %v\n", err)
		}
		return
	}
	if _, isNone := result.(objects.None); isNone {
		return
	}
	yellowColor.Fprintf(w, "%s\n", result.Inspect())
}
