package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd assembles the condo-console command tree.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "condo-console",
		Short:         "Building management console",
		Long:          `Manage apartments, residents, accounts and employees through the building management API. The API location is read from CONDO_API_URL, optionally set in a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Confirm removals without prompting")

	rootCmd.AddCommand(
		ApartmentsCmd(),
		ResidentsCmd(),
		AccountsCmd(),
		EmployeesCmd(),
		RelationsCmd(),
		SnapshotCmd(),
		WatchCmd(),
	)
	return rootCmd
}
