// Package cli defines the connectgrid command tree.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vk/connectgrid/internal/app"
	"github.com/vk/connectgrid/internal/appconfig"
)

// rootOptions carries the persistent flags shared by all commands.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCmd builds the command tree. outW receives all command output;
// logs go there too so tests can capture everything in one place.
func NewRootCmd(outW io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "connectgrid",
		Short:         "Multi-tenant integration registry and dispatch service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(outW)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file.")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Logging level: debug, info, warn, error.")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log output format: text or json.")

	root.AddCommand(newServeCmd(outW, opts))
	root.AddCommand(newPluginsCmd(outW, opts))

	return root
}

// loadConfig layers flag overrides on top of file and default config.
func (o *rootOptions) loadConfig(extra func(*appconfig.Config)) (*appconfig.Config, error) {
	cfg, err := appconfig.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if extra != nil {
		extra(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp builds an App, converting startup panics into plain errors so
// cobra can print them without a stack trace.
func newApp(outW io.Writer, cfg *appconfig.Config) (a *app.App, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("a critical startup error occurred: %v", r)
		}
	}()
	return app.NewApp(outW, cfg), nil
}
