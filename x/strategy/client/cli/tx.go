package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/yield-vault/x/strategy/types"
)

// GetTxCmd returns the transaction commands for the strategy module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "strategy",
		Short:                      "Strategy module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdInitStrategy(),
		CmdQueueFeeChange(),
		CmdConfirmFeeChange(),
	)

	return cmd
}

// CmdInitStrategy returns the command to initialize a strategy
func CmdInitStrategy() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [strategy-id] [vault-id] [underlying] [venue-id] [position-denom]",
		Short: "Initialize a strategy bound to a vault and venue",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgInitStrategy{
				Authority:     clientCtx.GetFromAddress().String(),
				StrategyID:    args[0],
				VaultID:       args[1],
				Underlying:    args[2],
				VenueID:       args[3],
				PositionDenom: args[4],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdQueueFeeChange returns the command to queue a fee parameter change
func CmdQueueFeeChange() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue-fee-change [strategy-id] [param] [value]",
		Short: "Queue a fee parameter change under the timelock",
		Long: `Queue a fee parameter change under the strategy's timelock.

Valid params: strategist, platform, profit_sharing, timelock_delay.

Examples:
  yieldvaultd tx strategy queue-fee-change usdc-lend platform 300 --from gov
  yieldvaultd tx strategy queue-fee-change usdc-lend timelock_delay 86400 --from gov`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			value, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value: %v", err)
			}

			msg := &types.MsgQueueFeeChange{
				Authority:  clientCtx.GetFromAddress().String(),
				StrategyID: args[0],
				Param:      args[1],
				Value:      value,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdConfirmFeeChange returns the command to confirm a queued fee change
func CmdConfirmFeeChange() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm-fee-change [strategy-id] [param]",
		Short: "Confirm a queued fee change after its timelock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgConfirmFeeChange{
				Authority:  clientCtx.GetFromAddress().String(),
				StrategyID: args[0],
				Param:      args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
