package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/paddle-build/paddle-plugin-go/spec"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: get requires a key and at most one file", cli.ErrUsage)
	}
	root, err := getSpecFile(cfg.MainConfig, cc, fileArg(args, 1))
	if err != nil {
		return err
	}
	n, err := spec.NewTree(root).Get(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if n == nil {
		return nil
	}
	return writeNode(cc.Out, n)
}

func nearest(cfg *NearestConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Nearest.Parse(cc, args)
	if err != nil {
		cfg.Nearest.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: nearest requires a key and at most one file", cli.ErrUsage)
	}
	root, err := getSpecFile(cfg.MainConfig, cc, fileArg(args, 1))
	if err != nil {
		return err
	}
	n, rest, err := spec.NewTree(root).GetNearest(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	fmt.Fprintf(cc.Out, "path: %s\nkind: %s\nremainder: %s\n", spec.PathOf(n), n.Kind(), rest)
	return nil
}
