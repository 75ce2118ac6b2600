package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/fredcamaral/simreport/internal/adapters/secondary/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage simreport configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default global configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show [log]",
	Short: "Print the effective configuration for a log",
	Long: `Print the configuration a report of the given log would use, after
merging defaults, config files, SIMREPORT_* variables and flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := config.NewTOMLLoader().GetGlobalPath()

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	written, err := newConfigService().CreateGlobalConfig(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", written)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	logPath := "."
	if len(args) == 1 {
		logPath = args[0]
	}

	cfg, err := loadConfig(cmd, logPath)
	if err != nil {
		return err
	}

	encoder := toml.NewEncoder(cmd.OutOrStdout())
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}
