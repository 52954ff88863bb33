package main

import (
	"fmt"

	"urlnorm/internal/config"
	"urlnorm/internal/normalizer"

	"github.com/spf13/cobra"
)

// equalCommand constructs the 'equal' subcommand that prints whether two URLs
// normalize to the same form.
func equalCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "equal <url> <url>",
		Short: "Reports whether two URLs are equivalent after normalization",
		Args:  cobra.ExactArgs(2), //nolint: mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := normalizer.New(normalizer.Deps{}, normalizer.NewOptions(cfg))
			if err != nil {
				return fmt.Errorf("could not create normalizer: %w", err)
			}

			equal, err := n.Equal(cmd.Context(), args[0], args[1])
			if err != nil {
				return err //nolint: wrapcheck
			}

			fmt.Fprintln(cmd.OutOrStdout(), equal)

			return nil
		},
	}
}
