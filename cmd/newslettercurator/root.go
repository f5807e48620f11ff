package main

import (
	"github.com/spf13/cobra"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	run := newRunCommand(ctx)

	rootCmd := &cobra.Command{
		Use:           "newslettercurator",
		Short:         "Collect, curate and publish a reading newsletter",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run.RunE,
	}
	// The bare command behaves like "run".
	rootCmd.Flags().AddFlagSet(run.Flags())

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(run)
	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newUsedCommand(ctx))

	return rootCmd
}
