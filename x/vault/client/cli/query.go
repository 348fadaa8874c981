package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the vault module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "vault",
		Short:                      "Querying commands for the vault module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryVault(),
		CmdQueryVaults(),
		CmdQuerySharePrice(),
		CmdQueryHolderBalance(),
		CmdQueryHarvestHistory(),
	)

	return cmd
}

// CmdQueryVault returns the command to query a vault
func CmdQueryVault() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [vault-id]",
		Short: "Query a vault by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID := args[0]
			fmt.Printf("Vault query for ID: %s requires running node connection\n", vaultID)
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryVaults returns the command to list vaults
func CmdQueryVaults() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Query all vaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Vault list query requires running node connection")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQuerySharePrice returns the command to query price per share
func CmdQuerySharePrice() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share-price [vault-id]",
		Short: "Query the current price per share for a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID := args[0]
			fmt.Printf("Share price query for vault: %s requires running node connection\n", vaultID)
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryHolderBalance returns the command to query a holder's shares
func CmdQueryHolderBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance [vault-id] [holder]",
		Short: "Query a holder's shares and underlying value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Balance query for holder: %s requires running node connection\n", args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryHarvestHistory returns the command to query harvest records
func CmdQueryHarvestHistory() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvests [vault-id]",
		Short: "Query the harvest history for a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID := args[0]
			fmt.Printf("Harvest history query for vault: %s requires running node connection\n", vaultID)
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
