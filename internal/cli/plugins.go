package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vk/connectgrid/internal/fields"
	"github.com/vk/connectgrid/internal/registry"
)

func newPluginsCmd(outW io.Writer, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect the compiled-in integration plugins",
	}
	cmd.AddCommand(newPluginsListCmd(outW, opts))
	cmd.AddCommand(newPluginsFieldsCmd(outW, opts))
	return cmd
}

func newPluginsListCmd(outW io.Writer, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered plugins",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}
			a, err := newApp(io.Discard, cfg)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(outW, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tNAME\tCATEGORY\tVERIFIED\tACTIONS")
			for _, p := range a.Registry().Plugins() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%d\n",
					p.Slug, p.Name, p.Metadata.Category, p.Metadata.Verified, len(p.Actions))
			}
			return tw.Flush()
		},
	}
}

func newPluginsFieldsCmd(outW io.Writer, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <slug>",
		Short: "Print the derived configuration form fields for one plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}
			a, err := newApp(io.Discard, cfg)
			if err != nil {
				return err
			}

			view, err := a.Registry().Get(args[0])
			if err != nil {
				var nf *registry.NotFoundError
				if errors.As(err, &nf) {
					return fmt.Errorf("%s (try 'connectgrid plugins list')", err)
				}
				return err
			}

			enc := json.NewEncoder(outW)
			enc.SetIndent("", "  ")
			return enc.Encode(fields.Derive(view.Schema()))
		},
	}
}
