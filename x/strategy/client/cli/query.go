package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the strategy module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "strategy",
		Short:                      "Querying commands for the strategy module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryStrategy(),
		CmdQueryStrategies(),
		CmdQueryPendingChanges(),
		CmdQueryFeeSkimHistory(),
	)

	return cmd
}

// CmdQueryStrategy returns the command to query a strategy
func CmdQueryStrategy() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [strategy-id]",
		Short: "Query a strategy by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategyID := args[0]
			fmt.Printf("Strategy query for ID: %s requires running node connection\n", strategyID)
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryStrategies returns the command to list strategies
func CmdQueryStrategies() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Query all strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Strategy list query requires running node connection")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPendingChanges returns the command to query queued fee changes
func CmdQueryPendingChanges() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending-changes [strategy-id]",
		Short: "Query a strategy's queued fee-parameter changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategyID := args[0]
			fmt.Printf("Pending changes query for strategy: %s requires running node connection\n", strategyID)
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryFeeSkimHistory returns the command to query fee skim records
func CmdQueryFeeSkimHistory() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skims [strategy-id]",
		Short: "Query the fee skim history for a strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategyID := args[0]
			fmt.Printf("Fee skim history query for strategy: %s requires running node connection\n", strategyID)
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
