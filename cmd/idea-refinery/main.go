// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the idea-refinery CLI, a batch
// pipeline that critiques business ideas with Gemini, speaks the critique
// through Gemini TTS, and emails the artifacts via Resend.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/idea-refinery/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup. Resolution
// order for each key is environment variable, then key file, then default.
var loadedSecrets map[string]string

// rootCmd is the base command for the idea-refinery CLI.
var rootCmd = &cobra.Command{
	Use:   "idea-refinery",
	Short: "Critique business ideas with spoken, written, and emailed feedback",
	Long: `idea-refinery processes every business idea waiting in the pending queue:
it asks Gemini for a critique, synthesizes a spoken rendition of it, renders
Markdown and PDF reports, emails all artifacts through Resend, and archives
the source file.

Drop .md files into agent/user-ideas/pending/ and run "idea-refinery run".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; a missing file is not an error.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./idea-refinery.yaml or ~/.config/idea-refinery/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("idea-refinery")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "idea-refinery"))
		}
	}

	viper.SetEnvPrefix("IDEA_REFINERY")
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
