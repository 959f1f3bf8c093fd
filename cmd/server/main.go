package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suryanavv/ims/internal/config"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	globalConfig = &config.GlobalConfig{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ims",
	Short: "IMS clinic management console",
	Long: `The IMS console signs an operator in to the IMS backend, keeps the
session alive and serves the clinic administration API to the console UI.

Commands:
- serve: Run the console server
- version: Print version information`,
	SilenceUsage: true,
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute adds all child commands to the root command and sets flags appropriately.
func execute() error {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&globalConfig.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&globalConfig.LogFormat, "log-format", "console", "Log format (json, console)")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd.Execute()
}

func initConfig() {
	if err := config.InitializeLogging(globalConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ims %s\n", version)
		},
	}
}
