package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/itcguard/itc-api/internal/application/report"
	"github.com/itcguard/itc-api/internal/domain/repository"
	infrapdf "github.com/itcguard/itc-api/internal/infrastructure/pdf"
)

func (c *cli) reportCmd() *cobra.Command {
	now := time.Now()
	var (
		month, year int
		out         string
	)
	cmd := &cobra.Command{
		Use:     "report",
		Short:   "Render the GSTR-3B summary PDF for a month",
		Example: "  itcctl report --month 3 --year 2024 --out march.pdf",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withStore(cmd.Context(), func(repo repository.TaxRecordRepository) error {
				uc := report.NewGSTR3BUseCase(repo, infrapdf.NewMarotoGSTR3BGenerator(c.cfg.App.Name), c.log)
				doc, err := uc.Generate(cmd.Context(), month, year)
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = doc.Filename
				}
				if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.out, path)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "month 1-12")
	cmd.Flags().IntVar(&year, "year", now.Year(), "four-digit year")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: gstr3b_report_<month>_<year>.pdf)")
	return cmd
}
