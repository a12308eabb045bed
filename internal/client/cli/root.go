package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/radicacion/internal/client/config"
)

// NewRootCommand assembles the radicar command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "radicar",
		Short: "Radicación de soportes",
		Long: `radicar uploads the supporting documents of a radicación straight to storage,
retrying failed files, and reports what the server confirmed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.config.Resolve(cmd.Flags()); err != nil {
				return err
			}
			app.initLogger()
			return nil
		},
	}
	config.BindFlags(cmd.PersistentFlags(), app.config)
	cmd.SetOut(app.out)

	cmd.AddCommand(
		newSubmitCmd(app),
		newPingCmd(app),
		newCategoriesCmd(app),
	)
	return cmd
}
