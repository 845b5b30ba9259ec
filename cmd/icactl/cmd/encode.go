package cmd

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

const (
	flagTx   = "tx"
	flagMemo = "memo"
)

// parseTransaction parses a transaction in the form <value>,<data>,<target>.
// The data field may itself contain commas.
func parseTransaction(s string) (types.Transaction, error) {
	first := strings.Index(s, ",")
	last := strings.LastIndex(s, ",")
	if first < 0 || first == last {
		return types.Transaction{}, errors.Errorf("invalid transaction %q: expected <value>,<data>,<target>", s)
	}

	value, ok := sdk.NewIntFromString(s[:first])
	if !ok {
		return types.Transaction{}, errors.Errorf("invalid transaction value %q", s[:first])
	}

	return types.NewTransaction(value, s[first+1:last], s[last+1:]), nil
}

func parseEVMMessage(txs []string) (types.EVMMessage, error) {
	msg := types.NewEVMMessage()
	for i, tx := range txs {
		transaction, err := parseTransaction(tx)
		if err != nil {
			return types.EVMMessage{}, errors.Wrapf(err, "transaction %d", i)
		}

		msg.Messages = append(msg.Messages, transaction)
	}

	if err := msg.ValidateBasic(); err != nil {
		return types.EVMMessage{}, err
	}

	return msg, nil
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "ABI encode a transaction batch",
		Long: `ABI encode a batch of EVM transactions as (uint256 value, string data, string target)[].

Transactions are given in order with repeated --tx flags. Without any --tx flag the
canonical encoding of the empty batch is printed.

Examples:
  icactl encode --tx 100,0xabc,0x5B38Da6a701c568545dCfcB03FcB875f56beddC4
  icactl encode --tx 0,0x,0xT1 --tx 1,0x,0xT2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txs, err := cmd.Flags().GetStringArray(flagTx)
			if err != nil {
				return err
			}

			msg, err := parseEVMMessage(txs)
			if err != nil {
				return err
			}

			bz, err := msg.Encode()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(bz))
			return err
		},
	}

	cmd.Flags().StringArray(flagTx, nil, "transaction as <value>,<data>,<target> (repeatable)")

	return cmd
}

func newPacketDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packet-data",
		Short: "Build the interchain account packet data for a transaction batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			txs, err := cmd.Flags().GetStringArray(flagTx)
			if err != nil {
				return err
			}

			memo, err := cmd.Flags().GetString(flagMemo)
			if err != nil {
				return err
			}

			msg, err := parseEVMMessage(txs)
			if err != nil {
				return err
			}

			packetData, err := types.NewInterchainAccountPacketData(msg, memo)
			if err != nil {
				return err
			}

			if err := packetData.ValidateBasic(); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(packetData.GetBytes()))
			return err
		},
	}

	cmd.Flags().StringArray(flagTx, nil, "transaction as <value>,<data>,<target> (repeatable)")
	cmd.Flags().String(flagMemo, "", "packet memo")

	return cmd
}
