// Package main provides the entry point for the applicant tracking API.
package main

import (
	"fmt"
	"os"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/config"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/logx"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "ats",
	Short: "Applicant tracking API",
	Long:  "Tracks candidates, their applications to open positions and their progress through each position's interview flow.",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a config file (default: ./config.yaml if present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and initializes the logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	logx.Init(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}
