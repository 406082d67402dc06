package main

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/convert"
	"github.com/paddle-build/paddle-plugin-go/spec"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch file and at most one spec file", cli.ErrUsage)
	}
	if args[0] == "-" && fileArg(args, 1) == "-" {
		return fmt.Errorf("%w: patch and spec cannot both be read from stdin", cli.ErrUsage)
	}
	pd, err := readFile(cc, args[0])
	if err != nil {
		return err
	}
	root, err := getSpecFile(cfg.MainConfig, cc, fileArg(args, 1))
	if err != nil {
		return err
	}
	res, err := applyPatch(root, pd, cfg.convOpts()...)
	if err != nil {
		return fmt.Errorf("error patching with %s: %w", args[0], err)
	}
	if cfg.Check {
		if err := spec.Check(res); err != nil {
			return err
		}
	}
	return writeNode(cc.Out, res)
}

// applyPatch applies an RFC 6902 patch to the wire form of root and decodes
// the result back into a spec.
func applyPatch(root *spec.Composite, patchDoc []byte, opts ...convert.Option) (*spec.Composite, error) {
	ops, err := jsonpatch.DecodePatch(patchDoc)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch: %w", err)
	}
	doc, err := canonical(root)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, err
	}
	msg, err := api.ParseCompositeSpec(out)
	if err != nil {
		return nil, fmt.Errorf("patched spec is not a valid message: %w", err)
	}
	return convert.ToSpec(msg, opts...)
}
