// Package main provides the srcmap command.
//
// srcmap decodes source map v3 documents and answers questions about them:
//   - which original position a generated position maps to (lookup)
//   - where an original source line ended up in the output (reverse)
//   - which sources a map references, and their embedded content
//   - whether a map is well formed (check)
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"srcmap/internal/config"
)

// version is set at build time.
var version = "dev"

func main() {
	app := newApp()

	if err := app.Run(os.Args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "srcmap:", err)
		}

		os.Exit(1)
	}
}

func newApp() *cli.App {
	r := &runner{}

	app := cli.NewApp()
	app.Name = "srcmap"
	app.Usage = "decode and query source map v3 documents"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "load configuration from `FILE` (default " + config.DefaultFile + ")",
		},
		cli.StringFlag{
			Name:  "compiled-url",
			Usage: "`URL` of the compiled artifact the map belongs to",
		},
		cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable coloured output",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "one of debug, info, warn, error",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "alias for --log-level debug",
		},
	}
	app.Before = r.setup

	snippetFlag := cli.BoolFlag{
		Name:  "snippet",
		Usage: "print the original source line when the map embeds it",
	}

	app.Commands = []cli.Command{
		{
			Name:      "lookup",
			Aliases:   []string{"l"},
			Usage:     "map generated positions to original positions",
			ArgsUsage: "MAP LINE:COLUMN...",
			Flags:     []cli.Flag{snippetFlag},
			Action:    r.lookup,
		},
		{
			Name:      "reverse",
			Aliases:   []string{"r"},
			Usage:     "find the generated positions of an original source line",
			ArgsUsage: "MAP SOURCE LINE",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "all",
					Usage: "print every mapping on the line, not only the first",
				},
			},
			Action: r.reverse,
		},
		{
			Name:      "sources",
			Usage:     "list the resolved source URLs of a map",
			ArgsUsage: "MAP",
			Action:    r.sources,
		},
		{
			Name:      "dump",
			Usage:     "print the decoded mappings as YAML",
			ArgsUsage: "MAP",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write the dump to `FILE` instead of stdout",
				},
				cli.BoolFlag{
					Name:  "debug",
					Usage: "print the raw decoded structures instead of YAML",
				},
			},
			Action: r.dump,
		},
		{
			Name:      "extract",
			Usage:     "write embedded sources to a directory",
			ArgsUsage: "MAP",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "sources",
					Usage: "output `DIR`",
				},
			},
			Action: r.extract,
		},
		{
			Name:      "check",
			Aliases:   []string{"c"},
			Usage:     "decode maps and report problems",
			ArgsUsage: "MAP...",
			Action:    r.check,
		},
		{
			Name:      "encode",
			Usage:     "encode integers as base64 VLQ",
			ArgsUsage: "INT...",
			Action:    r.encode,
		},
		{
			Name:      "decode",
			Usage:     "decode a mappings string into raw segment fields",
			ArgsUsage: "MAPPINGS",
			Action:    r.decode,
		},
		{
			Name:      "repl",
			Usage:     "query a map interactively",
			ArgsUsage: "MAP",
			Action:    r.repl,
		},
	}

	app.Action = func(c *cli.Context) error {
		return cli.ShowAppHelp(c)
	}

	return app
}
