// Package cmd is for command line interactions with the olap application
package cmd

import (
	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "olap",
	Short: `Find the overlaps between reads from the FM-index search's overlap blocks.
Build a string graph, remove duplicate reads, or correct read errors`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// bound here, rather than in init, so each command binds its own flags
		return viper.BindPFlags(cmd.Flags())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	// settings is an optional settings file. Its values are overridden by flags
	RootCmd.PersistentFlags().StringP("settings", "s", "", "TOML or YAML settings file (see 'olap settings')")
	RootCmd.PersistentFlags().IntP("threads", "t", 0, "number of worker threads (default all CPUs)")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log the settings and every removed read")
	RootCmd.PersistentFlags().BoolP("quiet", "q", false, "hide the progress bar")
	RootCmd.PersistentFlags().Bool("strict", false, "stop on the first read with inconsistent overlap blocks")
}
