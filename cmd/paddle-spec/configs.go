package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/paddle-build/paddle-plugin-go/convert"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='color output'"`
	Lenient bool `cli:"name=lenient desc='drop spec nodes of unsupported kinds instead of failing'"`

	Main *cli.Command
}

func (cfg *MainConfig) convOpts() []convert.Option {
	if !cfg.Lenient {
		return nil
	}
	return []convert.Option{convert.SkipUnsupported(slog.New(slog.NewTextHandler(os.Stderr, nil)))}
}

// useColor reports whether output to w is colored: -color decides when
// given, otherwise color is used on terminals.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type NearestConfig struct {
	*MainConfig

	Nearest *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Check bool `cli:"name=check desc='run consistency checks on the result'"`

	Patch *cli.Command
}

// RemoteConfig configures the pull and push commands.
type RemoteConfig struct {
	*MainConfig
	Addr    string `cli:"name=addr desc='host address' default=localhost:9140"`
	Project string `cli:"name=project desc='project id'"`
	Timeout time.Duration

	Cmd *cli.Command
}

func (cfg *RemoteConfig) mkTimeout() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.Timeout = d
		return d, nil
	}
}

type ServeConfig struct {
	*MainConfig
	Addr       string `cli:"name=addr desc='TCP listen address'"`
	ConfigFile string `cli:"name=config desc='configuration file (yaml)'"`
	Strict     bool   `cli:"name=strict desc='reject spec updates failing consistency checks'"`

	Serve *cli.Command
}
