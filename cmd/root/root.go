// Package root contains the root command for the application
package root

import (
	"steuer-chat/internal/catalog"
	"steuer-chat/internal/config"
	"steuer-chat/internal/payslip"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "steuer-chat",
		Short: "A conversational assistant that estimates German income tax refunds.",
		Long: `steuer-chat walks you through a deduction interview based on your wage
tax statement and estimates your income tax refund, with an auditable
breakdown of every claimed deduction.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to steuer-chat!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			payslip.SetLogger(Log)
			catalog.SetLogger(Log)
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
