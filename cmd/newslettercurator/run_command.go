package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"NewsletterCurator/internal/app"
	"NewsletterCurator/internal/usecase"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		title      string
		summary    string
		output     string
		maxCount   int
		skipEnrich bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect articles, curate them interactively and render the newsletter",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.ensureConfig()
			if output != "" {
				cfg.Newsletter.OutputPath = output
			}
			if !cmd.Flags().Changed("max") {
				maxCount = cfg.Pipeline.MaxArticles
			}
			opts := usecase.RunOptions{
				Title:       firstNonEmpty(title, cfg.Newsletter.Title),
				Summary:     firstNonEmpty(summary, cfg.Newsletter.Summary),
				MaxArticles: maxCount,
				SkipEnrich:  skipEnrich,
			}

			printBanner(cmd.OutOrStdout(), ctx.interactive() && cfg.UI.ColorsEnabled())

			return ctx.withApplication(cmd.Context(), cfg, func(application *app.Application) error {
				res, err := application.Run(cmd.Context(), opts)
				if errors.Is(err, usecase.ErrNoCandidates) {
					fmt.Fprintln(cmd.OutOrStdout(), "No new articles found. Nothing to curate.")
					return nil
				}
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Newsletter with %d article(s) written to %s\n",
					len(res.Issue.Articles), color.New(color.Bold).Sprint(res.OutputPath))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Newsletter title")
	cmd.Flags().StringVar(&summary, "summary", "", "Newsletter introduction")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output HTML file")
	cmd.Flags().IntVar(&maxCount, "max", 0, "Maximum number of candidate articles (0 disables the limit)")
	cmd.Flags().BoolVar(&skipEnrich, "skip-enrich", false, "Do not summarise or tag articles")

	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
