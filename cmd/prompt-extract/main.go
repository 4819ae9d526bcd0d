// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the prompt-extract CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// envFile is loaded into the process environment before configuration is
// read, so PROMPT_EXTRACT_* settings can live next to the image collection.
const envFile = ".env"

// rootCmd is the base command for the prompt-extract CLI.
var rootCmd = &cobra.Command{
	Use:   "prompt-extract",
	Short: "Recover generation prompts embedded in PNG images",
	Long: `prompt-extract reads the text metadata that image generators embed in
PNG files and writes the prompts back out as sidecar .txt files, a single
concatenated prompts.txt, or both.

Run "prompt-extract extract" from the directory that holds input/. Use
"prompt-extract search" to query a prompt index built with --index.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./prompt-extract.yaml or ~/.config/prompt-extract/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("prompt-extract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "prompt-extract"))
		}
	}

	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// configureEnv lets PROMPT_EXTRACT_<KEY> variables override configuration keys.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("PROMPT_EXTRACT")
	v.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
