package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	texts := make([]string, 2)
	for i, arg := range args {
		root, err := getSpecFile(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		d, err := canonical(root)
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
		texts[i] = string(d) + "\n"
	}
	differs, err := writeLineDiff(cc.Out, texts[0], texts[1], cfg.useColor(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// writeLineDiff writes a unified-style line diff of a and b to w and
// reports whether they differ.
func writeLineDiff(w io.Writer, a, b string, colored bool) (bool, error) {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	add, del := fmt.Sprint, fmt.Sprint
	if colored {
		add = color.New(color.FgGreen).Sprint
		del = color.New(color.FgRed).Sprint
	}
	differs := false
	for _, d := range diffs {
		prefix, paint := "  ", fmt.Sprint
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, paint = "+ ", add
			differs = true
		case diffpatch.DiffDelete:
			prefix, paint = "- ", del
			differs = true
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if _, err := fmt.Fprint(w, paint(prefix+strings.TrimSuffix(line, "\n")), "\n"); err != nil {
				return differs, err
			}
		}
	}
	return differs, nil
}
