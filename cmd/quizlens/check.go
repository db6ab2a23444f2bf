package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/quizlens/internal/app"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the configured API key is accepted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := app.New(ctx, cfg, nil)
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}
			defer a.Close()
			if err := a.Check(ctx); err != nil {
				return fmt.Errorf("credential check failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key OK (%s, %s)\n", a.Provider.Name(), a.Provider.ModelID())
			return nil
		},
	}
}
