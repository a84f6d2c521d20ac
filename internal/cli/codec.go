package cli

import (
	"encoding/json"
	"fmt"

	"github.com/serroba/love-letter-go/internal/linkcodec"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var flags letterFlags

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the link token for a letter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := flags.letter()
			if err := l.Validate(); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), linkcodec.Encode(l))

			return err
		},
	}

	flags.bind(cmd)

	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>",
		Short: "Print the letter carried by a link token or fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frag := linkcodec.ParseFragment(fragmentOf(args[0]))

			l, err := linkcodec.Decode(frag.Token)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")

			return enc.Encode(l)
		},
	}
}
