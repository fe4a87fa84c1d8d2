package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jjtimmons/olap/config"
)

// settingsCmd prints a settings file with the defaults
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print a settings file with the default settings",
	Long: `Print a TOML settings file with the default settings. Edit it and pass it
to any other command with --settings. Flags override the file.`,
	Example: "  olap settings > olap.toml",
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.Defaults().WriteTOML(cmd.OutOrStdout())
	},
}

func init() {
	RootCmd.AddCommand(settingsCmd)
}
