package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"NewsletterCurator/internal/app"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var maxCount int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Collect and prune candidate articles without curating them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.ensureConfig()
			if !cmd.Flags().Changed("max") {
				maxCount = cfg.Pipeline.MaxArticles
			}

			return ctx.withApplication(cmd.Context(), cfg, func(application *app.Application) error {
				articles, err := application.Candidates(cmd.Context(), maxCount)
				if err != nil {
					return err
				}
				if len(articles) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No new articles found.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), candidateTable(articles, time.Now()))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&maxCount, "max", 0, "Maximum number of candidate articles (0 disables the limit)")
	return cmd
}
