// Package cmd implements the digger CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/diggerweb/backend/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "digger",
		Short: "CLI client for the diggerweb backend",
		Long: "digger is a command-line client for the diggerweb backend API.\n" +
			"It lets you search the Discogs catalog, browse a seller's enriched\n" +
			"inventory, and drive the OAuth authorization flow from the terminal.",
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.digger.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(inventoryCmd())
	rootCmd.AddCommand(authorizeCmd())
	rootCmd.AddCommand(statusCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".digger")
	}

	viper.SetEnvPrefix("DIGGER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}
