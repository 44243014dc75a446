package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SELab-2/Dwengo-4-sub000/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "dwengo",
	Short: "Dwengo learning path editor",
	Long: `Edit branching learning paths: lessons in order, and multiple-choice questions
that send learners down a branch per answer.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().String("env-file", "", "Environment file (default .env)")
	rootCmd.PersistentFlags().String("store", "", "Path store: memory, file or redis")
	rootCmd.PersistentFlags().String("dir", "", "Directory of the file store")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address of the redis store")
	rootCmd.PersistentFlags().String("catalog", "", "YAML content catalog")
	rootCmd.PersistentFlags().String("catalog-dir", "", "Directory of markdown content documents")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig reads the configuration and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	envFile, _ := flags.GetString("env-file")

	cfg, err := config.Load(path, envFile)
	if err != nil {
		return cfg, err
	}

	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("store", &cfg.Store.Driver)
	override("dir", &cfg.Store.Dir)
	override("redis-addr", &cfg.Store.Redis.Addr)
	override("catalog", &cfg.Catalog.File)
	override("catalog-dir", &cfg.Catalog.Dir)
	override("log-level", &cfg.LogLevel)
	if flags.Lookup("addr") != nil {
		override("addr", &cfg.HTTP.Addr)
	}
	return cfg, cfg.Validate()
}
