package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/itcguard/itc-api/internal/application/extraction"
	"github.com/itcguard/itc-api/internal/application/usecase"
	"github.com/itcguard/itc-api/internal/domain/repository"
)

func (c *cli) normalizeCmd() *cobra.Command {
	var mediaType string
	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Normalize a saved model response into a tax record",
		Long: `Reads the raw text a vision model returned for an invoice (fenced or
bare JSON) and prints the tax record it normalizes to. Rejections print
the offending field and exit non-zero.`,
		Example: "  itcctl normalize testdata/response.txt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			record, err := extraction.NewNormalizer().Normalize(string(raw), mediaType)
			if err != nil {
				if xerr, ok := extraction.AsExtractionError(err); ok {
					c.log.Warn().Str("field", xerr.Field).Str("file", args[0]).Msg(xerr.Reason)
				}
				return err
			}
			return c.printJSON(usecase.ToTaxRecordResponse(record))
		},
	}
	cmd.Flags().StringVar(&mediaType, "media-type", "", "media type of the original image, for diagnostics")
	return cmd
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print outstanding, at-risk and safe-to-pay totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd.Context(), func(repo repository.TaxRecordRepository) error {
				out, err := usecase.NewComplianceUseCase(repo, c.log).List(cmd.Context())
				if err != nil {
					return err
				}
				return c.printJSON(out.Stats)
			})
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every record, newest invoice first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd.Context(), func(repo repository.TaxRecordRepository) error {
				out, err := usecase.NewComplianceUseCase(repo, c.log).List(cmd.Context())
				if err != nil {
					return err
				}
				return c.printJSON(out.Records)
			})
		},
	}
}

func (c *cli) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Check a record's GSTIN and mark it Safe or Failed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(repo repository.TaxRecordRepository) error {
				out, err := usecase.NewComplianceUseCase(repo, c.log).Verify(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.printJSON(out)
			})
		},
	}
}

// mediaTypeFor guesses the image type from the file extension.
func mediaTypeFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	case ".webp":
		return "image/webp", nil
	case ".gif":
		return "image/gif", nil
	case ".heic", ".heif":
		return "image/heic", nil
	}
	return "", fmt.Errorf("cannot infer media type of %s; pass --media-type", path)
}
