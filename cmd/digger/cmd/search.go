package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/diggerweb/backend/internal/api/client"
)

func searchCmd() *cobra.Command {
	var (
		releaseType string
		page        int
		perPage     int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the Discogs catalog",
		Example: `  digger search "selected ambient works"
  digger search "warp records" --type label
  digger search "autechre" --type artist --page 2 --per-page 25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newClient().Search(cmd.Context(), args[0], releaseType, page, perPage)
			if err != nil {
				return describeAPIError(err)
			}
			return printJSON(result)
		},
	}
	cmd.Flags().StringVar(&releaseType, "type", "", "result type (release, master, artist, label)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")

	return cmd
}

// describeAPIError surfaces the authorize hint a 401 carries.
func describeAPIError(err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.AuthorizeURL != "" {
		return fmt.Errorf("%s (run 'digger authorize' to connect a Discogs account)", apiErr.Message)
	}
	return err
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
