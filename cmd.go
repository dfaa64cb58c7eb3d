// Copyright 2017 Alexey Naidyonov. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/urfave/cli/v3"

	"github.com/growler/go-includelines/includelines"
	"github.com/growler/go-includelines/internal/ctxlog"
)

const version = "0.1.0"

const usage = `go-includelines <command> [options] <file>

Generator reads the lines of <file> and writes them into a Go source file as
an array literal, or writes the number of lines as a constant, so the data is
compiled into the program.

<file> is resolved relative to --root (the current directory by default,
which go:generate sets to the package directory). The package name defaults
to $GOPACKAGE, also set by go:generate.

The typical usage would be:

//go:generate go run github.com/growler/go-includelines static --name Words -o words_lines.go words.txt
package main

import "fmt"

func main() {
    for _, w := range Words {
        fmt.Println(w)
    }
}`

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "go-includelines",
		Usage:     "generate Go declarations from the lines of text files",
		UsageText: usage,
		Version:   version,
		Suggest:   true,
		Commands: []*cli.Command{
			entryCommand("lines", "emit the lines of <file> as a [...]string array", includelines.LinesKind),
			entryCommand("bytes", "emit private copies of the lines of <file> as a [...][]byte array", includelines.BytesKind),
			entryCommand("count", "emit the number of lines in <file> as an integer constant", includelines.CountKind),
			staticCommand(),
			generateCommand(),
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "pkg",
			Usage:   "package name (if not set, the basename of the output directory will be used)",
			Sources: cli.EnvVars("GOPACKAGE"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "generated file `path`",
		},
		&cli.BoolFlag{Name: "strict", Usage: "fail on lines that are not valid UTF-8 instead of skipping them"},
		&cli.BoolFlag{Name: "unexported", Usage: "derive unexported identifiers"},
		&cli.BoolFlag{Name: "no-comments", Usage: "do not emit doc comments"},
		&cli.BoolFlag{Name: "verbose", Usage: "log every file read"},
	}
}

func entryFlags() []cli.Flag {
	return append(outputFlags(),
		&cli.StringFlag{
			Name:  "name",
			Usage: "declared identifier (derived from the file name if not set)",
		},
		&cli.StringFlag{
			Name:  "root",
			Value: ".",
			Usage: "`directory` the file is resolved against",
		},
		&cli.BoolFlag{Name: "expr", Usage: "print only the expression to stdout instead of writing a file"},
	)
}

func entryCommand(name, usage string, kind includelines.Kind) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<file>",
		Flags:     entryFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return emitEntry(ctx, cmd, kind)
		},
	}
}

func staticCommand() *cli.Command {
	return &cli.Command{
		Name:      "static",
		Usage:     "emit a <name>Len constant and an array of the lines of <file> sized by it",
		ArgsUsage: "<file>",
		Flags: append(entryFlags(),
			&cli.BoolFlag{Name: "owned", Usage: "use [NameLen][]byte elements instead of string"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kind := includelines.StaticLinesKind
			if cmd.Bool("owned") {
				kind = includelines.StaticBytesKind
			}
			return emitEntry(ctx, cmd, kind)
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "emit every entry of a YAML or HCL manifest into one file",
		ArgsUsage: "<manifest>",
		Flags:     outputFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := checkArgs(cmd); err != nil {
				return err
			}
			ctx = withLogger(ctx, cmd)
			m, err := includelines.LoadManifest(cmd.Args().First())
			if err != nil {
				return err
			}
			entries, err := m.GeneratorEntries()
			if err != nil {
				return err
			}
			out := m.OutputPath()
			if o := cmd.String("output"); o != "" {
				out = o
			}
			pkg := m.Package
			if pkg == "" {
				pkg = packageName(cmd.String("pkg"), out)
			}
			gen := &includelines.Generator{
				Root:    m.RootDir(),
				Package: pkg,
				Flags:   m.Flags() | optionFlags(cmd),
			}
			return gen.WriteFile(ctx, out, entries)
		},
	}
}

func emitEntry(ctx context.Context, cmd *cli.Command, kind includelines.Kind) error {
	if err := checkArgs(cmd); err != nil {
		return err
	}
	ctx = withLogger(ctx, cmd)
	entry := includelines.Entry{
		Name: cmd.String("name"),
		File: cmd.Args().First(),
		Kind: kind,
	}
	gen := &includelines.Generator{
		Root:  cmd.String("root"),
		Flags: optionFlags(cmd),
	}
	if cmd.Bool("expr") {
		code, err := gen.Expr(ctx, entry)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.Root().Writer, "%#v\n", code)
		return err
	}
	out := cmd.String("output")
	if out == "" {
		out = defaultOutput(entry.File)
	}
	gen.Package = packageName(cmd.String("pkg"), out)
	return gen.WriteFile(ctx, out, []includelines.Entry{entry})
}

func checkArgs(cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%s: expected exactly one %s argument, got %d", cmd.Name, cmd.ArgsUsage, cmd.NArg())
	}
	return nil
}

func optionFlags(cmd *cli.Command) includelines.Flag {
	return includelines.Flag(0).Set(includelines.Strict, cmd.Bool("strict")).
		Set(includelines.Unexported, cmd.Bool("unexported")).
		Set(includelines.NoComments, cmd.Bool("no-comments"))
}

func withLogger(ctx context.Context, cmd *cli.Command) context.Context {
	level := slog.LevelWarn
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: level}))
	return ctxlog.WithLogger(ctx, logger)
}

// defaultOutput names the generated file after the source: words.txt -> words_lines.go.
func defaultOutput(file string) string {
	base := filepath.Base(file)
	return strcase.ToSnake(strings.TrimSuffix(base, filepath.Ext(base))) + "_lines.go"
}

func packageName(pkg, out string) string {
	if pkg != "" {
		return pkg
	}
	dir, err := filepath.Abs(filepath.Dir(out))
	if err != nil {
		return filepath.Base(filepath.Dir(out))
	}
	return filepath.Base(dir)
}

func main() {
	cmd := newCommand()
	cmd.Writer = os.Stdout
	cmd.ErrWriter = os.Stderr
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
