package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/paddle-build/paddle-plugin-go/client"
)

// withClient parses the remote options, dials the host and runs f with the
// remaining arguments under the -timeout deadline.
func (cfg *RemoteConfig) withClient(cc *cli.Context, args []string, maxArgs int,
	f func(ctx context.Context, c *client.Client, args []string) error) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		cfg.Cmd.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Project == "" {
		return fmt.Errorf("%w: -project is required", cli.ErrUsage)
	}
	if len(args) > maxArgs {
		return fmt.Errorf("%w: too many arguments %v", cli.ErrUsage, args)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	c, err := client.Dial(ctx, cfg.Addr)
	if err != nil {
		return err
	}
	defer c.Close()
	return f(ctx, c, args)
}

func pull(cfg *RemoteConfig, cc *cli.Context, args []string) error {
	return cfg.withClient(cc, args, 0, func(ctx context.Context, c *client.Client, _ []string) error {
		cs, err := c.GetConfigSpec(ctx, cfg.Project)
		if err != nil {
			return err
		}
		return writeNode(cc.Out, cs)
	})
}

func push(cfg *RemoteConfig, cc *cli.Context, args []string) error {
	return cfg.withClient(cc, args, 1, func(ctx context.Context, c *client.Client, args []string) error {
		cs, err := getSpecFile(cfg.MainConfig, cc, fileArg(args, 0))
		if err != nil {
			return err
		}
		if err := c.UpdateConfigSpec(ctx, cfg.Project, cs); err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "updated %s on %s\n", cfg.Project, cfg.Addr)
		return nil
	})
}
