package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/dukerupert/hbnb/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change hbnbctl settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-api <url>",
		Short: "Set the REST API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(args[0])
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("invalid API URL %q", args[0])
			}

			cfg, err := config.ReadCLI(app.ConfigDir)
			if err != nil {
				return err
			}
			cfg.APIBase = args[0]
			if err := cfg.Save(app.ConfigDir); err != nil {
				return err
			}
			app.success("API base set to %s", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadCLI(app.ConfigDir)
			if err != nil {
				return err
			}
			token, err := app.tokens().Get()
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "api_base:   %s\n", cfg.APIBase)
			fmt.Fprintf(app.Out, "config dir: %s\n", app.ConfigDir)
			fmt.Fprintf(app.Out, "logged in:  %t\n", token != "")
			return nil
		},
	})
	return cmd
}
