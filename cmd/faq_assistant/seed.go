package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in FAQ corpus into the configured store",
		Long: `Load the built-in FAQ corpus. Records with matching IDs are overwritten,
so running the command twice leaves the same state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			res, err := a.engine.Seed(ctx)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded FAQ corpus: %d created, %d updated\n", res.Created, res.Updated)
			return nil
		},
	}
}
