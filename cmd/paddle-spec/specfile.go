package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/convert"
	"github.com/paddle-build/paddle-plugin-go/spec"
)

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getSpecFile(cfg *MainConfig, cc *cli.Context, path string) (*spec.Composite, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	msg, err := api.ParseCompositeSpec(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	cs, err := convert.ToSpec(msg, cfg.convOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error converting %s: %w", path, err)
	}
	return cs, nil
}

// canonical returns the indented wire JSON of n.
func canonical(n spec.Node) ([]byte, error) {
	if c, ok := n.(*spec.Composite); ok {
		msg, err := convert.FromSpec(c)
		if err != nil {
			return nil, err
		}
		return msg.MarshalIndent()
	}
	msg, err := convert.FromSpecNode(n)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(msg, "", "  ")
}

func writeNode(w io.Writer, n spec.Node) error {
	d, err := canonical(n)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = w.Write(append(d, '\n'))
	return err
}

// fileArg returns the optional file argument at i, defaulting to stdin.
func fileArg(args []string, i int) string {
	if len(args) <= i {
		return "-"
	}
	return args[i]
}
