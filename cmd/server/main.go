// Package main is the entry point for the dex-api server and tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "dex-api",
	Short:        "Bilingual catalog resolution server",
	Long:         `dex-api resolves zh-TW and English queries into catalog records with image chains, over HTTP or from the command line.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml, toml or json)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(payloadCmd)
}
