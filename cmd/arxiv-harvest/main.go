// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-harvest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-harvest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-harvest",
	Short: "Bulk metadata harvesting from the arXiv OAI-PMH endpoint",
	Long: `arxiv-harvest retrieves bibliographic metadata records from arXiv.org in a
given category and date range, following OAI-PMH resumption tokens across
pages and backing off on rate-limit responses.

Records can be narrowed client-side with field filters and written as a
table, JSON, or a reloadable YAML harvest file.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-harvest.yaml or ~/.config/arxiv-harvest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-harvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-harvest"))
		}
	}

	viper.SetDefault("endpoint", "https://export.arxiv.org/oai2")
	viper.SetDefault("user_agent", "arxiv-harvest/0.1")
	viper.SetDefault("http_timeout", "60s")
	viper.SetDefault("wait", "30s")
	viper.SetDefault("progress_every", "90s")

	viper.SetEnvPrefix("ARXIV_HARVEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
