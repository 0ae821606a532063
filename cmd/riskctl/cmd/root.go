package cmd

import (
	"github.com/spf13/cobra"
)

var (
	serverURL string
	authToken string
)

var rootCmd = &cobra.Command{
	Use:   "riskctl",
	Short: "QMS risk backend CLI",
	Long: `riskctl is the command-line companion for the QMS risk backend.

Mint development tokens, seed the fallback stores with sample domain data,
inspect the risk catalog and pull risk reports from a running service.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8086", "base URL of the risk service")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "bearer token for API calls")
}
