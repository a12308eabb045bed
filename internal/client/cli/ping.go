package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.newClient(app.config)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping %s: %w", app.config.ServerEndpointAddr, err)
			}
			fmt.Fprintf(app.out, "%s: OK\n", app.config.ServerEndpointAddr)
			return nil
		},
	}
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the document categories accepted by --file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range categoryNames() {
				fmt.Fprintln(app.out, c)
			}
			return nil
		},
	}
}
