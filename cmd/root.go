package cmd

import (
	"fmt"
	"os"

	"github.com/cornichon-db/cornichon/cmd/kv"
	"github.com/cornichon-db/cornichon/cmd/list"
	"github.com/cornichon-db/cornichon/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "cornichon",
		Short: "embedded single-file key-value store",
		Long: fmt.Sprintf(`cornichon (v%s)

An embedded key-value store written in Go, persisting string keys
with scalar values and ordered lists to a single file with pluggable
serialization formats.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of cornichon",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cornichon v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(list.ListCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupStoreFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
