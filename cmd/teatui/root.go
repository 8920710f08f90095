package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/on-the-ground/teatui/config"
	"github.com/on-the-ground/teatui/tea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:           "teatui",
	Short:         "teatui runs Elm-architecture programs in the terminal",
	Long:          `teatui hosts tea programs and wires their update loop to the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	registerFlags(rootCmd.PersistentFlags())
}

func registerFlags(flags *pflag.FlagSet) {
	flags.String("config", "teatui.yaml", "Path to the YAML config file")
	flags.String("log-file", "", "Write logs to this file (disabled when empty)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("effects", "", "Effects mode: sequential, concurrent or partitioned")
	flags.Int("workers", 0, "Concurrent effect limit or number of partitions")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address")
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("log-file") {
		cfg.Log.File, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("effects") {
		raw, _ := flags.GetString("effects")
		mode, err := tea.ParseEffectsMode(raw)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Effects.Mode = mode
	}
	if flags.Changed("workers") {
		cfg.Effects.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr, _ = flags.GetString("metrics-addr")
	}
	cfg.Effects = tea.NewEffectsConfig(cfg.Effects.Mode, cfg.Effects.Workers, cfg.Effects.BufferSize)
	return cfg, nil
}

func printError(err error) {
	out := termenv.NewOutput(os.Stderr)
	label := out.String("error:").Foreground(out.Color("#f87171")).Bold()
	fmt.Fprintf(os.Stderr, "%s %v\n", label, err)
}
