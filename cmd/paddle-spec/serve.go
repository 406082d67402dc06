package main

import (
	"fmt"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/paddle-build/paddle-plugin-go/server"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}

	// Start gops agent for debugging
	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
	}

	serverConfig := server.DefaultConfig()
	if cfg.ConfigFile != "" {
		serverConfig, err = server.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cfg.Addr != "" {
		serverConfig.Addr = cfg.Addr
	}
	if cfg.Strict {
		serverConfig.Strict = true
	}

	srv := server.New(&server.Spec{Config: serverConfig})
	host := server.NewMemoryHost(cc.Out, srv.Spec.Log)
	host.Strict = serverConfig.Strict
	srv.Spec.Host = host

	if err := server.SeedProjects(host, serverConfig); err != nil {
		return err
	}
	for _, arg := range args {
		cs, err := server.LoadSpecFile(arg, cfg.convOpts()...)
		if err != nil {
			return err
		}
		host.SetConfigSpec(server.ProjectID(arg), cs)
	}

	if err := srv.StartTCP(serverConfig.Addr); err != nil {
		return fmt.Errorf("failed to start TCP listener: %w", err)
	}
	fmt.Fprintf(cc.Out, "paddle host listening on %s (projects: %v)\n", srv.TCPAddr(), host.Projects())
	defer srv.StopTCP()

	// Block forever
	select {}
}
