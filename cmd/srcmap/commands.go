package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli"

	"srcmap/internal/common"
	"srcmap/internal/config"
	"srcmap/internal/diagnostic"
	"srcmap/internal/extract"
	"srcmap/internal/inspect"
	"srcmap/internal/loader"
	"srcmap/internal/match"
	"srcmap/internal/render"
	"srcmap/sourcemap"
	"srcmap/vlq"
)

// errReported is returned by commands that already printed their failure.
var errReported = errors.New("failed")

// runner holds the state shared by all commands. It is filled by setup
// before any command runs.
type runner struct {
	cfg config.Config
	log *slog.Logger
}

func (r *runner) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if v := c.String("compiled-url"); v != "" {
		cfg.CompiledURL = v
	}

	if c.Bool("no-color") {
		cfg.NoColor = true
	}

	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}

	if c.Bool("verbose") {
		cfg.LogLevel = "debug"
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	if cfg.NoColor {
		render.SetColor(false)
	}

	r.cfg = cfg
	r.log = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))

	return nil
}

// load decodes the map at mapURL with the configured compiled URL.
func (r *runner) load(mapURL string) (*sourcemap.Payload, *sourcemap.Document, error) {
	start := time.Now()

	p, doc, err := loader.LoadPayload(mapURL, r.cfg.CompiledURL)
	if err != nil {
		return p, nil, err
	}

	r.log.Debug("loaded source map",
		"map", mapURL,
		"compiled", doc.CompiledURL(),
		"entries", doc.Len(),
		"sources", len(doc.Sources()),
		"elapsed", time.Since(start))

	return p, doc, nil
}

// report prints err as a diagnostic and returns errReported.
func (r *runner) report(c *cli.Context, err error, document string) error {
	var diags diagnostic.Diagnostics
	diags.AddErr(err, document)

	return r.reportAll(c, &diags)
}

func (r *runner) reportAll(c *cli.Context, diags *diagnostic.Diagnostics) error {
	printDiagnostics(c.App.ErrWriter, diags)

	if diags.HasErrors() {
		return errReported
	}

	return nil
}

func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintln(w, render.Diagnostic(d))
	}
}

func usageError(c *cli.Context) error {
	return fmt.Errorf("%s: usage: %s %s", c.Command.Name, c.Command.Name, c.Command.ArgsUsage)
}

func (r *runner) lookup(c *cli.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return usageError(c)
	}

	_, doc, err := r.load(args.First())
	if err != nil {
		return r.report(c, err, args.First())
	}

	for _, arg := range args.Tail() {
		line, column, err := parsePosition(arg)
		if err != nil {
			return err
		}

		printLookup(c.App.Writer, doc, line, column, c.Bool("snippet"))
	}

	return nil
}

func printLookup(w io.Writer, doc *sourcemap.Document, line, column int, snippet bool) {
	e, ok := doc.FindEntry(line, column)
	if !ok {
		fmt.Fprintf(w, "%d:%d (no mapping)\n", line, column)
		return
	}

	fmt.Fprintln(w, render.Entry(e))

	if !snippet || !e.HasSource() {
		return
	}

	if content, ok := doc.SourceContent(e.SourceURL); ok {
		if s := render.Snippet(e, content); s != "" {
			fmt.Fprintln(w, s)
		}
	}
}

func (r *runner) reverse(c *cli.Context) error {
	args := c.Args()
	if len(args) != 3 {
		return usageError(c)
	}

	_, doc, err := r.load(args.First())
	if err != nil {
		return r.report(c, err, args.First())
	}

	line, err := parseNonNegative(args.Get(2))
	if err != nil {
		return err
	}

	src, diags := r.resolveSource(doc, args.Get(1))
	if diags != nil {
		return r.reportAll(c, diags)
	}

	printReverse(c.App.Writer, doc, src, line, c.Bool("all"))

	return nil
}

func printReverse(w io.Writer, doc *sourcemap.Document, src string, line int, all bool) {
	var entries []sourcemap.Entry

	if all {
		entries = doc.SourceLineMappings(src, line)
	} else if e, ok := doc.FirstSourceLineMapping(src, line); ok {
		entries = append(entries, e)
	}

	if common.IsEmpty(entries) {
		fmt.Fprintf(w, "%s:%d (no mapping)\n", src, line)
		return
	}

	for _, e := range entries {
		fmt.Fprintln(w, render.Entry(e))
	}
}

// resolveSource finds the source URL of doc that query names. An exact URL
// wins; otherwise query must be the unique path suffix of one source. When
// nothing matches the returned diagnostics carry suggestions.
func (r *runner) resolveSource(doc *sourcemap.Document, query string) (string, *diagnostic.Diagnostics) {
	sources := doc.Sources()

	var suffixed []string

	for _, s := range sources {
		if s == query {
			return s, nil
		}

		if strings.HasSuffix(s, "/"+strings.TrimPrefix(query, "/")) {
			suffixed = append(suffixed, s)
		}
	}

	if common.IsSingle(suffixed) {
		return suffixed[0], nil
	}

	diags := &diagnostic.Diagnostics{}

	if common.IsMultiple(suffixed) {
		diags.AddError("ambiguous_source", fmt.Sprintf("source %q matches %d sources", query, len(suffixed)), doc.URL(), "")
		diags.Errors[0].Suggestions = suffixed

		return "", diags
	}

	diags.AddError("unknown_source", fmt.Sprintf("source %q is not referenced by the map", query), doc.URL(), "")
	diags.Errors[0].Suggestions = match.URLs(match.Suggest(query, sources, r.cfg.MaxSuggestions))

	return "", diags
}

func (r *runner) sources(c *cli.Context) error {
	if c.NArg() != 1 {
		return usageError(c)
	}

	_, doc, err := r.load(c.Args().First())
	if err != nil {
		return r.report(c, err, c.Args().First())
	}

	printSources(c.App.Writer, doc)

	return nil
}

func printSources(w io.Writer, doc *sourcemap.Document) {
	for _, s := range doc.Sources() {
		if _, ok := doc.SourceContent(s); ok {
			fmt.Fprintf(w, "%s (inline)\n", s)
		} else {
			fmt.Fprintln(w, s)
		}
	}
}

func (r *runner) dump(c *cli.Context) error {
	if c.NArg() != 1 {
		return usageError(c)
	}

	_, doc, err := r.load(c.Args().First())
	if err != nil {
		return r.report(c, err, c.Args().First())
	}

	if c.Bool("debug") {
		spew.Fdump(c.App.Writer, loader.NewDump(doc))
		return nil
	}

	if out := c.String("out"); out != "" {
		if err := loader.WriteFile(doc, out); err != nil {
			return r.report(c, err, c.Args().First())
		}

		r.log.Info("wrote dump", "file", out)

		return nil
	}

	data, err := loader.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = c.App.Writer.Write(data)

	return err
}

func (r *runner) extract(c *cli.Context) error {
	if c.NArg() != 1 {
		return usageError(c)
	}

	_, doc, err := r.load(c.Args().First())
	if err != nil {
		return r.report(c, err, c.Args().First())
	}

	files, err := extract.WriteSources(doc, c.String("out"))
	if err != nil {
		return r.report(c, err, c.Args().First())
	}

	for _, f := range files {
		fmt.Fprintf(c.App.Writer, "%s -> %s\n", f.URL, f.Path)
	}

	r.log.Info("extracted sources", "count", len(files), "dir", c.String("out"))

	return nil
}

// check decodes every map, then lints the ones that decoded. Infos are
// printed only at debug level.
func (r *runner) check(c *cli.Context) error {
	if c.NArg() == 0 {
		return usageError(c)
	}

	all := &diagnostic.Diagnostics{}

	for _, mapURL := range c.Args() {
		p, doc, err := r.load(mapURL)
		if err != nil {
			all.AddErr(err, mapURL)
			continue
		}

		all.Merge(*inspect.Inspect(p, doc, mapURL))
	}

	if !r.log.Enabled(context.Background(), slog.LevelDebug) {
		all.Infos = nil
	}

	if err := r.reportAll(c, all); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%d map(s) ok, %d warning(s)\n", c.NArg(), len(all.Warnings))

	return nil
}

func (r *runner) encode(c *cli.Context) error {
	if c.NArg() == 0 {
		return usageError(c)
	}

	var out []byte

	for _, arg := range c.Args() {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", arg, err)
		}

		out = vlq.AppendEncode(out, n)
	}

	fmt.Fprintln(c.App.Writer, string(out))

	return nil
}

func (r *runner) decode(c *cli.Context) error {
	if c.NArg() != 1 {
		return usageError(c)
	}

	lines, err := decodeMappings(c.Args().First())
	if err != nil {
		return r.report(c, err, "")
	}

	for i, segments := range lines {
		parts := make([]string, len(segments))
		for j, fields := range segments {
			parts[j] = formatFields(fields)
		}

		fmt.Fprintf(c.App.Writer, "%d: %s\n", i, strings.Join(parts, " "))
	}

	return nil
}

// decodeMappings splits a mappings string into lines and segments and
// decodes the raw delta fields of each segment.
func decodeMappings(mappings string) ([][][]int, error) {
	var out [][][]int

	offset := 0

	for _, group := range strings.Split(mappings, ";") {
		var segments [][]int

		if group != "" {
			for _, seg := range strings.Split(group, ",") {
				fields, err := vlq.DecodeString(seg)
				if err != nil {
					return nil, fmt.Errorf("segment %q at offset %d: %w", seg, offset, err)
				}

				if common.IsEmpty(fields) {
					return nil, fmt.Errorf("empty segment at offset %d: %w", offset, vlq.ErrMalformedDigit)
				}

				segments = append(segments, fields)
				offset += len(seg) + 1
			}
		} else {
			offset++
		}

		out = append(out, segments)
	}

	return out, nil
}

func formatFields(fields []int) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = strconv.Itoa(f)
	}

	return "[" + strings.Join(parts, ",") + "]"
}

// parsePosition parses a zero-based "LINE:COLUMN" pair. A bare "LINE" means
// column 0.
func parsePosition(s string) (int, int, error) {
	lineStr, colStr, found := strings.Cut(strings.TrimSpace(s), ":")

	line, err := parseNonNegative(lineStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid position %q: %w", s, err)
	}

	if !found {
		return line, 0, nil
	}

	column, err := parseNonNegative(colStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid position %q: %w", s, err)
	}

	return line, column, nil
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}

	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}

	return n, nil
}
