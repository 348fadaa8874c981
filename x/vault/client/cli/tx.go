package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// GetTxCmd returns the transaction commands for the vault module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "vault",
		Short:                      "Vault module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreateVault(),
		CmdDeposit(),
		CmdWithdraw(),
		CmdTransferShares(),
		CmdApproveShares(),
		CmdDoHardWork(),
		CmdSetInvestFraction(),
		CmdAnnounceStrategySwitch(),
		CmdFinalizeStrategySwitch(),
		CmdScheduleUpgrade(),
		CmdFinalizeUpgrade(),
		CmdSalvage(),
	)

	return cmd
}

// CmdCreateVault returns the command to create a vault
func CmdCreateVault() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-vault [vault-id] [underlying] [decimals]",
		Short: "Create a new vault for an underlying token",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			decimals, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid decimals: %v", err)
			}

			harvestOnDeposit, _ := cmd.Flags().GetBool("harvest-on-deposit")
			harvestOnWithdraw, _ := cmd.Flags().GetBool("harvest-on-withdraw")

			msg := &types.MsgCreateVault{
				Authority:             clientCtx.GetFromAddress().String(),
				VaultID:               args[0],
				Underlying:            args[1],
				Decimals:              uint32(decimals),
				AutoHarvestOnDeposit:  harvestOnDeposit,
				AutoHarvestOnWithdraw: harvestOnWithdraw,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().Bool("harvest-on-deposit", false, "Run a harvest before each deposit")
	cmd.Flags().Bool("harvest-on-withdraw", false, "Run a harvest before each withdrawal")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDeposit returns the command to deposit underlying
func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [vault-id] [amount]",
		Short: "Deposit underlying into a vault",
		Long: `Deposit underlying tokens into a vault and receive shares.

Examples:
  yieldvaultd tx vault deposit usdc-vault 1000000 --from alice
  yieldvaultd tx vault deposit usdc-vault 1000000 --beneficiary cosmos1... --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			beneficiary, _ := cmd.Flags().GetString("beneficiary")
			if beneficiary == "" {
				beneficiary = clientCtx.GetFromAddress().String()
			}

			msg := &types.MsgDeposit{
				Depositor:   clientCtx.GetFromAddress().String(),
				VaultID:     args[0],
				Beneficiary: beneficiary,
				Amount:      args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String("beneficiary", "", "Credit shares to this address instead of the sender")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdraw returns the command to redeem shares
func CmdWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [vault-id] [shares]",
		Short: "Burn shares and receive underlying",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			from := clientCtx.GetFromAddress().String()
			owner, _ := cmd.Flags().GetString("owner")
			if owner == "" {
				owner = from
			}
			receiver, _ := cmd.Flags().GetString("receiver")
			if receiver == "" {
				receiver = from
			}

			msg := &types.MsgWithdraw{
				Caller:   from,
				VaultID:  args[0],
				Owner:    owner,
				Receiver: receiver,
				Shares:   args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String("owner", "", "Burn shares owned by this address (requires allowance)")
	cmd.Flags().String("receiver", "", "Send underlying to this address instead of the sender")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransferShares returns the command to transfer shares
func CmdTransferShares() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-shares [vault-id] [to] [shares]",
		Short: "Transfer vault shares to another holder",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgTransferShares{
				From:    clientCtx.GetFromAddress().String(),
				VaultID: args[0],
				To:      args[1],
				Shares:  args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApproveShares returns the command to grant a withdrawal allowance
func CmdApproveShares() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve-shares [vault-id] [spender] [amount]",
		Short: "Allow a spender to withdraw against your shares",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgApproveShares{
				Owner:   clientCtx.GetFromAddress().String(),
				VaultID: args[0],
				Spender: args[1],
				Amount:  args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDoHardWork returns the command to run a harvest cycle
func CmdDoHardWork() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do-hard-work [vault-id]",
		Short: "Settle strategy fees and invest idle funds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgDoHardWork{
				Caller:  clientCtx.GetFromAddress().String(),
				VaultID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetInvestFraction returns the command to set the invest fraction
func CmdSetInvestFraction() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-invest-fraction [vault-id] [numerator] [denominator]",
		Short: "Set the target invested fraction of total value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			numerator, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid numerator: %v", err)
			}
			denominator, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid denominator: %v", err)
			}

			msg := &types.MsgSetInvestFraction{
				Authority:   clientCtx.GetFromAddress().String(),
				VaultID:     args[0],
				Numerator:   numerator,
				Denominator: denominator,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAnnounceStrategySwitch returns the command to announce a strategy switch
func CmdAnnounceStrategySwitch() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announce-strategy-switch [vault-id] [strategy-id]",
		Short: "Start the timelock for replacing the active strategy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgAnnounceStrategySwitch{
				Authority:  clientCtx.GetFromAddress().String(),
				VaultID:    args[0],
				StrategyID: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdFinalizeStrategySwitch returns the command to finalize a strategy switch
func CmdFinalizeStrategySwitch() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize-strategy-switch [vault-id] [strategy-id]",
		Short: "Install the announced strategy after its timelock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgFinalizeStrategySwitch{
				Authority:  clientCtx.GetFromAddress().String(),
				VaultID:    args[0],
				StrategyID: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdScheduleUpgrade returns the command to schedule an implementation upgrade
func CmdScheduleUpgrade() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule-upgrade [vault-id] [implementation]",
		Short: "Start the timelock for an implementation upgrade",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgScheduleUpgrade{
				Authority:      clientCtx.GetFromAddress().String(),
				VaultID:        args[0],
				Implementation: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdFinalizeUpgrade returns the command to finalize a scheduled upgrade
func CmdFinalizeUpgrade() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize-upgrade [vault-id]",
		Short: "Commit the scheduled implementation after its timelock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgFinalizeUpgrade{
				Authority: clientCtx.GetFromAddress().String(),
				VaultID:   args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSalvage returns the command to recover stray tokens
func CmdSalvage() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salvage [vault-id] [token] [amount] [recipient]",
		Short: "Recover stray tokens from vault custody",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgSalvage{
				Authority: clientCtx.GetFromAddress().String(),
				VaultID:   args[0],
				Token:     args[1],
				Amount:    args[2],
				Recipient: args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
