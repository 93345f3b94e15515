package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			health, err := newClient().Health(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("alive:", yesNo(health.Alive))
			fmt.Println("ready:", yesNo(health.Ready))
			if !health.Ready {
				return fmt.Errorf("server is not ready")
			}
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
