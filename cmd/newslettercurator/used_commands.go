package main

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/spf13/cobra"

	"NewsletterCurator/internal/infrastructure/storage"
)

func newUsedCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "used",
		Short: "Inspect and edit links already published",
	}
	cmd.AddCommand(newUsedAddCommand(ctx))
	cmd.AddCommand(newUsedListCommand(ctx))
	return cmd
}

func newUsedAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <url>...",
		Short: "Mark links as used so they are never offered again",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, link := range args {
				u, err := url.Parse(link)
				if err != nil || u.Scheme == "" || u.Host == "" {
					return fmt.Errorf("not an absolute url: %q", link)
				}
			}

			cfg := ctx.ensureConfig()
			store, closeStore, err := storage.Open(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			if err := store.Add(cmd.Context(), args); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d link(s)\n", len(args))
			return nil
		},
	}
}

func newUsedListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every used link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.ensureConfig()
			store, closeStore, err := storage.Open(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			used, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}

			links := make([]string, 0, len(used))
			for link := range used {
				links = append(links, link)
			}
			sort.Strings(links)
			for _, link := range links {
				fmt.Fprintln(cmd.OutOrStdout(), link)
			}
			return nil
		},
	}
}
