package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func authorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "authorize",
		Short: "Start the Discogs OAuth flow",
		Long: "Asks the server for a Discogs authorization URL. Open the URL in a\n" +
			"browser and approve access; Discogs then redirects back to the server,\n" +
			"which stores the delegated credentials.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth, err := newClient().Authorize(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("Open this URL in a browser to authorize:")
			fmt.Println()
			fmt.Println("  " + auth.AuthorizationURL)
			return nil
		},
	}
}
