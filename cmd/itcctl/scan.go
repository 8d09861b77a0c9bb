package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/itcguard/itc-api/internal/application/extraction"
	"github.com/itcguard/itc-api/internal/application/usecase"
	"github.com/itcguard/itc-api/internal/domain/repository"
	infraai "github.com/itcguard/itc-api/internal/infrastructure/ai"
	"github.com/itcguard/itc-api/internal/infrastructure/imaging"
)

func (c *cli) scanCmd() *cobra.Command {
	var (
		mediaType string
		save      bool
	)
	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Extract a tax record from an invoice photo with the configured model",
		Example: `  itcctl scan invoice.heic
  itcctl scan --save receipt.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if mediaType == "" {
				if mediaType, err = mediaTypeFor(args[0]); err != nil {
					return err
				}
			}

			model, err := infraai.New(cmd.Context(), c.cfg.AI)
			if err != nil {
				return err
			}
			defer model.Close()

			run := func(repo repository.TaxRecordRepository) error {
				uc := usecase.NewScanUseCase(model, imaging.NewConverter(), extraction.NewNormalizer(), repo, c.cfg.AI.Timeout, c.log)
				out, err := uc.Scan(cmd.Context(), usecase.ScanInput{Image: image, MediaType: mediaType, Save: save})
				if err != nil {
					if xerr, ok := extraction.AsExtractionError(err); ok {
						c.log.Warn().Str("field", xerr.Field).Str("raw", xerr.Raw).Msg("model output rejected")
					}
					return err
				}
				return c.printJSON(out)
			}
			if !save {
				// The store is only touched when saving.
				return run(nil)
			}
			return c.withStore(cmd.Context(), run)
		},
	}
	cmd.Flags().StringVar(&mediaType, "media-type", "", "image media type (default: from extension)")
	cmd.Flags().BoolVar(&save, "save", false, "persist the extracted record")
	return cmd
}
