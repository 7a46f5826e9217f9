// Package cmd implements the command-line interface for gobrief.
// It provides the root command and subcommands for running, scheduling,
// and inspecting daily news briefings.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/gobrief/cmd/history"
	"github.com/jonesrussell/gobrief/cmd/httpd"
	"github.com/jonesrussell/gobrief/cmd/preview"
	"github.com/jonesrussell/gobrief/cmd/run"
	cmdscheduler "github.com/jonesrussell/gobrief/cmd/scheduler"
	"github.com/jonesrussell/gobrief/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands.
	Debug bool

	// rootCmd represents the root command for the gobrief CLI.
	rootCmd = &cobra.Command{
		Use:   "gobrief",
		Short: "A daily news briefing service",
		Long: `A daily news briefing service built with Go. It scrapes current
events, summarizes them with a language model, and delivers the
briefing over WhatsApp.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get the config path before initialization
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gobrief version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(run.Command())
	rootCmd.AddCommand(preview.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(history.Command())
}

// initConfig reads in the config file and environment variables.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over defaults, so enable
	// them before registering defaults.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults(viper.GetViper())

	// The config file is optional: environment variables and defaults
	// cover a full configuration on their own.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := config.BindEnvVars(viper.GetViper()); err != nil {
		return err
	}

	if Debug {
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
	}

	return nil
}
