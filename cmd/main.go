package main

import (
	"LineGrep/internal"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "linegrep",
		Usage:     "Search for regex patterns in files and directories",
		ArgsUsage: "PATTERN [PATH ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "ignore-case",
				Aliases: []string{"i"},
				Usage:   "Case-insensitive matching",
			},
			&cli.BoolFlag{
				Name:    "line-number",
				Aliases: []string{"n"},
				Usage:   "Show 1-based line numbers",
			},
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Search directories recursively",
			},
			&cli.BoolFlag{
				Name:    "word",
				Aliases: []string{"w"},
				Usage:   "Match whole words only (wraps the pattern in \\b...\\b)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable ANSI highlighting of matches",
			},
			&cli.IntFlag{
				Name:    "max-count",
				Aliases: []string{"m"},
				Usage:   "Maximum total matching lines across all files (stop when reached)",
				Value:   -1,
			},
			&cli.BoolFlag{
				Name:  "hidden",
				Usage: "Include hidden files and directories",
			},
			&cli.BoolFlag{
				Name:  "no-ignore",
				Usage: "Do not respect .gitignore/.ignore/exclude files",
			},
			&cli.StringSliceFlag{
				Name:  "glob",
				Usage: "Glob filter for visited files (e.g. --glob '**/*.go'), '!' prefix excludes, can be repeated",
			},
			&cli.BoolFlag{
				Name:  "binary",
				Usage: "Search files that look binary (skipped by default)",
			},
			&cli.BoolFlag{
				Name:  "archives",
				Usage: "Search inside archive entries (.zip,.tar,.gz,...)",
			},
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "Write diagnostics into file instead of stderr",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "warn",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		cli.HandleExitCoder(err)
		os.Exit(2)
	}
}

func run(c *cli.Context) error {
	internal.InitLogger(c.String("logfile"), c.String("log-level"))

	if c.NArg() < 1 {
		return cli.Exit("linegrep: missing PATTERN (see --help)", 2)
	}
	pattern := c.Args().First()
	roots := c.Args().Tail()
	if len(roots) == 0 {
		roots = []string{"."}
	}

	matcher, err := internal.NewMatcher(pattern, c.Bool("ignore-case"), c.Bool("word"))
	if err != nil {
		return cli.Exit("linegrep: "+err.Error(), 2)
	}

	spec := internal.TraversalSpec{
		Recursive:      c.Bool("recursive"),
		Hidden:         c.Bool("hidden"),
		RespectIgnores: !c.Bool("no-ignore"),
		Globs:          c.StringSlice("glob"),
	}
	opts := internal.SearchOptions{
		LineNumber: c.Bool("line-number"),
		Color:      !c.Bool("no-color"),
		MaxCount:   c.Int("max-count"),
		SkipBinary: !c.Bool("binary"),
		Archives:   c.Bool("archives"),
	}

	searcher, err := internal.NewSearcher(matcher, spec, opts, os.Stdout)
	if err != nil {
		return cli.Exit("linegrep: "+err.Error(), 2)
	}

	found, err := searcher.Run(roots)
	if err != nil {
		return cli.Exit("linegrep: "+err.Error(), 2)
	}
	if !found {
		return cli.Exit("", 1)
	}
	return nil
}
