package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/quizlens/internal/app"
	"github.com/hyperifyio/quizlens/internal/report"
	"github.com/hyperifyio/quizlens/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve solve, screenshot and detect triggers over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := app.New(ctx, cfg, report.Discard{})
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}
			defer a.Close()
			addr, _ := cmd.Flags().GetString("addr")
			return server.New(a.Solver).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().String("addr", "127.0.0.1:8787", "Listen address")
	return cmd
}
