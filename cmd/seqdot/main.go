/*
Command seqdot replays an edit script against a sequence and prints the
result, either as text or as the underlying tree in Graphviz DOT format.

	seqdot [--hide] [--dot] [--trace Debug] script.txt
	seqdot --hide --dot script.txt | dot -Tsvg > tree.svg

With --hide, the script is run against a hide list and deleted items are
kept as tombstones. They are printed in a dimmed color.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/seqtree"
	"github.com/npillmayer/seqtree/aatree"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func main() {
	app := &cli.App{
		Name:      "seqdot",
		Usage:     "replay edits against a sequence tree and print it",
		ArgsUsage: "[script-file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "hide",
				Usage: "use a hide list, turning deletions into tombstones",
			},
			&cli.BoolFlag{
				Name:  "dot",
				Usage: "print the tree in Graphviz DOT format",
			},
			&cli.StringFlag{
				Name:    "trace",
				Usage:   "trace level (Error, Info or Debug)",
				Value:   "Error",
				EnvVars: []string{"SEQDOT_TRACE"},
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "line width for text output; defaults to terminal width",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cctx *cli.Context) error {
	tracer := gologadapter.New()
	tracer.SetTraceLevel(tracing.TraceLevelFromString(cctx.String("trace")))
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace { return tracer }))
	//
	in := io.Reader(os.Stdin)
	if cctx.Args().Present() && cctx.Args().First() != "-" {
		f, err := os.Open(cctx.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	ops, err := ParseScript(in)
	if err != nil {
		return err
	}
	tracer.Infof("replaying %d operations", len(ops))
	width := cctx.Int("width")
	if width <= 0 {
		width = terminalWidth()
	}
	out := os.Stdout
	if cctx.Bool("hide") {
		l := seqtree.NewHideList[string]()
		if err := replayHider(ops, l); err != nil {
			return err
		}
		if cctx.Bool("dot") {
			return aatree.ToDot(l.Tree(), out, hiddenLabel)
		}
		_, err := io.WriteString(out, formatHider(l, width))
		return err
	}
	l := seqtree.NewList[string]()
	if err := replayList(ops, l); err != nil {
		return err
	}
	if cctx.Bool("dot") {
		return aatree.ToDot(l.Tree(), out, nil)
	}
	items := make([]string, 0, l.Len())
	for v := range l.Values() {
		items = append(items, v)
	}
	_, err = io.WriteString(out, wrap(items, width))
	return err
}

func hiddenLabel(n *aatree.Node[aatree.Counts, string]) string {
	switch n.Annotation() {
	case aatree.Counts{}:
		return "⊥"
	case aatree.Counts{0, 1}:
		return fmt.Sprintf("(%s)", n.Value())
	}
	return n.Value()
}

var tombstone = color.New(color.FgHiBlack, color.CrossedOut)

// formatHider lists every item of l, with hidden ones dimmed.
func formatHider(l seqtree.Hider[string], width int) string {
	var items []string
	for v, visible := range l.All() {
		if visible {
			items = append(items, v)
		} else {
			items = append(items, tombstone.Sprint(v))
		}
	}
	return wrap(items, width) + fmt.Sprintf("%d of %d items visible\n", l.Len(), l.TotalLen())
}

// wrap joins items with blanks, breaking lines at width. Escape sequences
// count towards the width.
func wrap(items []string, width int) string {
	var sb strings.Builder
	col := 0
	for _, item := range items {
		if col > 0 && col+1+len(item) > width {
			sb.WriteByte('\n')
			col = 0
		} else if col > 0 {
			sb.WriteByte(' ')
			col++
		}
		sb.WriteString(item)
		col += len(item)
	}
	if col > 0 {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// terminalWidth checks whether stdout is a terminal, and if so returns its
// width. Otherwise a default width is returned.
func terminalWidth() int {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 10 {
			return w
		}
	}
	return 72
}
