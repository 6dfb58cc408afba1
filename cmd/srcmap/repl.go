package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli"

	"srcmap/sourcemap"
)

const replPrompt = "srcmap> "

const replHelp = `LINE:COLUMN            look up a generated position
src SOURCE LINE [all]  find generated positions of an original line
:sources               list sources
:help                  show this help
:quit                  leave`

func (r *runner) repl(c *cli.Context) error {
	if c.NArg() != 1 {
		return usageError(c)
	}

	_, doc, err := r.load(c.Args().First())
	if err != nil {
		return r.report(c, err, c.Args().First())
	}

	w := c.App.Writer

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		return complete(doc, line)
	})

	if hist := r.cfg.HistoryFile; hist != "" {
		if f, err := os.Open(hist); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			f, err := os.Create(hist)
			if err != nil {
				r.log.Warn("cannot save history", "file", hist, "err", err)
				return
			}

			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	fmt.Fprintf(w, "%s: %d mappings, %d sources. Type :help for commands.\n",
		doc.URL(), doc.Len(), len(doc.Sources()))

	for {
		line, err := ln.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}

		if err != nil {
			fmt.Fprintln(w)
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ln.AppendHistory(line)

		if r.eval(w, doc, line) {
			return nil
		}
	}
}

// eval runs one REPL line against doc and reports whether the session
// should end.
func (r *runner) eval(w io.Writer, doc *sourcemap.Document, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(w, replHelp)
	case ":sources":
		printSources(w, doc)
	case "src":
		r.evalReverse(w, doc, fields[1:])
	default:
		if strings.HasPrefix(fields[0], ":") {
			fmt.Fprintf(w, "unknown command %s. Type :help for commands.\n", fields[0])
			return false
		}

		l, col, err := parsePosition(strings.Join(fields, ":"))
		if err != nil {
			fmt.Fprintln(w, err)
			return false
		}

		printLookup(w, doc, l, col, true)
	}

	return false
}

func (r *runner) evalReverse(w io.Writer, doc *sourcemap.Document, args []string) {
	if len(args) < 2 || len(args) > 3 || (len(args) == 3 && args[2] != "all") {
		fmt.Fprintln(w, "usage: src SOURCE LINE [all]")
		return
	}

	line, err := parseNonNegative(args[1])
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}

	src, diags := r.resolveSource(doc, args[0])
	if diags != nil {
		printDiagnostics(w, diags)
		return
	}

	printReverse(w, doc, src, line, len(args) == 3)
}

// complete offers commands and, after "src ", source URLs.
func complete(doc *sourcemap.Document, line string) []string {
	var out []string

	if rest, ok := strings.CutPrefix(line, "src "); ok {
		for _, s := range doc.Sources() {
			if strings.HasPrefix(s, rest) {
				out = append(out, "src "+s)
			}
		}

		return out
	}

	for _, cmd := range []string{":help", ":quit", ":sources", "src "} {
		if strings.HasPrefix(cmd, line) {
			out = append(out, cmd)
		}
	}

	return out
}
