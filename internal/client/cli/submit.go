package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/client/uploader"
)

func newSubmitCmd(app *App) *cobra.Command {
	var specs []string
	var meta models.SubmissionMetadata
	var quiet bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Upload the documents of a radicación",
		Long: `submit validates every file, opens the radicación, uploads the files in
batches with retries and recovery passes, and asks the server to confirm
what reached storage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := parseFileSpecs(specs)
			if err != nil {
				return err
			}

			c, err := app.newClient(app.config)
			if err != nil {
				return err
			}
			defer c.Close()

			o := uploader.NewOrchestrator(c, app.newTransfer(app.config), app.config.Uploader(), app.logger)

			var progress uploader.ProgressFunc
			if !quiet {
				progress = newProgressPrinter(app.out).update
			}

			res, err := o.Submit(cmd.Context(), meta, files, progress)
			if res != nil {
				printResult(app.out, res)
			}
			var rejected *uploader.BatchRejectedError
			if errors.As(err, &rejected) {
				for _, r := range rejected.Rejections {
					fmt.Fprintf(app.out, "  rechazado %s/%s: %v\n", r.Category, r.Name, r.Err)
				}
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&specs, "file", "f", nil, "document as categoria=ruta, repeatable")
	f.StringVar(&meta.IdentificationType, "id-type", "CC", "patient identification type")
	f.StringVar(&meta.IdentificationNumber, "id-number", "", "patient identification number")
	f.StringVar(&meta.PatientName, "patient", "", "patient name")
	f.StringVar(&meta.Service, "service", "", "requested service")
	f.StringVar(&meta.ServiceCategory, "service-category", "", "service category")
	f.StringVar(&meta.Observations, "observations", "", "free-text observations")
	f.BoolVarP(&quiet, "quiet", "q", false, "do not print per-file progress")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("id-number")
	_ = cmd.MarkFlagRequired("service")

	return cmd
}
