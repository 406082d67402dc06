package main

import (
	"time"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "paddle-spec").
		WithSynopsis("paddle-spec [opts] command [opts]").
		WithDescription("paddle-spec inspects and exchanges paddle configuration specifications.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return paddleSpecMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			NearestCommand(cfg),
			CheckCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			PullCommand(cfg),
			PushCommand(cfg),
			ServeCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <key> [file]").
		WithDescription("print the spec node at key").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func NearestCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NearestConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Nearest, "nearest").
		WithAliases("n").
		WithSynopsis("nearest <key> [file]").
		WithDescription("print the deepest spec node along key and the unresolved remainder").
		WithRun(func(cc *cli.Context, args []string) error {
			return nearest(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithSynopsis("check [files]").
		WithDescription("decode specs and run consistency checks").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff a b").
		WithDescription("line diff of two specs in canonical form").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithOpts(opts...).
		WithSynopsis("patch [-check] <patch.json> [file]").
		WithDescription("apply an RFC 6902 JSON patch to a spec").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func remoteCommand(mainCfg *MainConfig, name, synopsis, desc string,
	run func(*RemoteConfig, *cli.Context, []string) error) *cli.Command {
	cfg := &RemoteConfig{MainConfig: mainCfg, Addr: "localhost:9140", Timeout: 10 * time.Second}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "timeout",
		Description: "time allowed to reach the host (default 10s)",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.mkTimeout()), "(duration)"),
	})
	return cli.NewCommandAt(&cfg.Cmd, name).
		WithOpts(opts...).
		WithSynopsis(synopsis).
		WithDescription(desc).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func PullCommand(mainCfg *MainConfig) *cli.Command {
	return remoteCommand(mainCfg, "pull",
		"pull [-addr <addr>] -project <id>",
		"fetch a project's spec from a host", pull)
}

func PushCommand(mainCfg *MainConfig) *cli.Command {
	return remoteCommand(mainCfg, "push",
		"push [-addr <addr>] -project <id> [file]",
		"replace a project's spec on a host", push)
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithSynopsis("serve [-addr <addr>] [-config <file>] [-strict] [specs]").
		WithDescription("run a plugin host serving specs; each spec file name is its project id").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}
