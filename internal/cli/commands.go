package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/fittings/internal/property"
	"github.com/vk/fittings/modules/env_vars"
)

func (c *cli) renderCommand() *cobra.Command {
	var (
		name    string
		pairs   []string
		envPref string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Evaluate a property and print the resulting string.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return usageError("render needs --property")
			}
			data := make(property.Data)
			if cmd.Flags().Changed("data-env") {
				for k, v := range env_vars.Data(envPref) {
					data[k] = v
				}
			}
			explicit, err := parseData(pairs)
			if err != nil {
				return err
			}
			for k, v := range explicit {
				data[k] = v
			}

			a, err := c.newApp()
			if err != nil {
				return err
			}
			return a.Render(cmd.Context(), name, data)
		},
	}
	cmd.Flags().StringVarP(&name, "property", "p", "", "property to render")
	cmd.Flags().StringArrayVar(&pairs, "data", nil, "substitution data as KEY=VALUE, repeatable")
	cmd.Flags().StringVar(&envPref, "data-env", "", "also take data from environment variables with this prefix")
	return cmd
}

func (c *cli) libraryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "Resolve the library property and print expose<TAB>path lines.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			return a.Library(cmd.Context())
		},
	}
}

func (c *cli) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print every property with its kind and placeholder keys.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			_, err = a.Inspect(cmd.Context())
			return err
		},
	}
}

func (c *cli) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Activate the framework on an in-memory host and serve HTTP until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			return a.Serve(cmd.Context())
		},
	}
	cmd.Flags().Int(keyPort, 8080, "HTTP port")
	cmd.Flags().String(keyRelayURL, "", "Socket.IO endpoint the SocketRelay listener forwards events to")
	_ = c.v.BindPFlag(keyPort, cmd.Flags().Lookup(keyPort))
	_ = c.v.BindPFlag(keyRelayURL, cmd.Flags().Lookup(keyRelayURL))
	return cmd
}

// parseData turns KEY=VALUE pairs into data. Values may contain '='.
func parseData(pairs []string) (property.Data, error) {
	data := make(property.Data, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, usageError("invalid --data %q: expected KEY=VALUE", pair)
		}
		data[key] = value
	}
	return data, nil
}
