package list

import (
	"github.com/cornichon-db/cornichon/cmd/util"
	"github.com/cornichon-db/cornichon/lib/store"
	"github.com/spf13/cobra"
)

var (
	listStore *store.Store

	// ListCommands represents the list command group
	ListCommands = &cobra.Command{
		Use:               "list",
		Short:             "Perform list operations on a database file",
		PersistentPreRunE: setupStore,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add subcommands
	ListCommands.AddCommand(createCmd)
	ListCommands.AddCommand(addCmd)
	ListCommands.AddCommand(extendCmd)
	ListCommands.AddCommand(getCmd)
	ListCommands.AddCommand(allCmd)
	ListCommands.AddCommand(lenCmd)
	ListCommands.AddCommand(popCmd)
	ListCommands.AddCommand(remValCmd)
	ListCommands.AddCommand(remIdxCmd)
	ListCommands.AddCommand(delCmd)
}

// setupStore opens the database file configured via flags and environment
func setupStore(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	listStore, err = util.OpenStore()
	return err
}
