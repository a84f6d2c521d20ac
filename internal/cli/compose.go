package cli

import (
	"fmt"

	"github.com/serroba/love-letter-go/internal/composer"
	"github.com/spf13/cobra"
)

func newComposeCmd(env EnvFunc) *cobra.Command {
	var (
		flags    letterFlags
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build a share link for a letter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			link, err := e.Composer.Compose(cmd.Context(), flags.letter(), composer.Strategy(strategy))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, err = fmt.Fprintf(out, "%s\n\n%s\n%s\n", link.URL, link.ShareTitle, link.ShareText)

			return err
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&strategy, "strategy", string(composer.StrategyToken), "token or store")

	return cmd
}
