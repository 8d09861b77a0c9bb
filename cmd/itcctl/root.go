package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/itcguard/itc-api/internal/domain/repository"
	"github.com/itcguard/itc-api/internal/infrastructure/store"
	"github.com/itcguard/itc-api/pkg/config"
	"github.com/itcguard/itc-api/pkg/logger"
)

// cli is the state shared by every subcommand.
type cli struct {
	cfg      *config.Config
	log      *logger.Logger
	out      io.Writer
	errOut   io.Writer
	logLevel string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "itcctl",
		Short:         "ITC compliance tracker CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := cfg.Log.Level
			if c.logLevel != "" {
				level = c.logLevel
			}
			c.cfg = cfg
			c.log = logger.New(logger.Config{Env: "development", Level: level, Output: c.errOut})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override LOG_LEVEL (trace, debug, info, warn, error)")

	root.AddCommand(
		c.normalizeCmd(),
		c.scanCmd(),
		c.statsCmd(),
		c.listCmd(),
		c.verifyCmd(),
		c.reportCmd(),
		c.tokenCmd(),
	)
	return root
}

// withStore opens the configured store for the duration of fn.
func (c *cli) withStore(ctx context.Context, fn func(repository.TaxRecordRepository) error) error {
	repo, closeStore, err := store.Open(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(repo)
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
