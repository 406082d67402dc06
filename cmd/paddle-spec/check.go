package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/paddle-build/paddle-plugin-go/spec"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	ok, bad := fmt.Sprint, fmt.Sprint
	if cfg.useColor(cc.Out) {
		ok = color.New(color.FgGreen).Sprint
		bad = color.New(color.FgRed).Sprint
	}
	failed := 0
	for _, arg := range args {
		root, err := getSpecFile(cfg.MainConfig, cc, arg)
		if err == nil {
			err = spec.Check(root)
		}
		if err != nil {
			failed++
			fmt.Fprintf(cc.Out, "%s: %s\n%v\n", arg, bad("FAIL"), err)
			continue
		}
		fmt.Fprintf(cc.Out, "%s: %s\n", arg, ok("ok"))
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
