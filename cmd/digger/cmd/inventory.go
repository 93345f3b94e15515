package cmd

import (
	"github.com/spf13/cobra"
)

func inventoryCmd() *cobra.Command {
	var (
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "inventory <seller>",
		Short: "Search a seller's for-sale inventory",
		Long: "Fetches one page of a seller's for-sale listings, each enriched with\n" +
			"how many copies of the release are currently for sale marketplace-wide.",
		Example: `  digger inventory recordshop
  digger inventory recordshop --page 3 --per-page 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newClient().SearchInventory(cmd.Context(), args[0], page, perPage)
			if err != nil {
				return describeAPIError(err)
			}
			return printJSON(result)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page (max 100)")

	return cmd
}
