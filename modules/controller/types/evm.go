package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	icatypes "github.com/cosmos/ibc-go/v3/modules/apps/27-interchain-accounts/types"
)

// maxValueBitLen is the width of the solidity uint256 the value is encoded as
const maxValueBitLen = 256

// Transaction is a single call executed by the interchain account on the EVM host chain.
type Transaction struct {
	// Value is the amount of native currency sent with the call
	Value sdk.Int `json:"value" yaml:"value"`
	// Data is the calldata of the call
	Data string `json:"data" yaml:"data"`
	// Target is the address the call is sent to
	Target string `json:"target" yaml:"target"`
}

// NewTransaction creates a new Transaction instance
func NewTransaction(value sdk.Int, data, target string) Transaction {
	return Transaction{
		Value:  value,
		Data:   data,
		Target: target,
	}
}

// ValidateBasic checks the transaction value fits into a solidity uint256.
func (tx Transaction) ValidateBasic() error {
	if tx.Value.IsNil() {
		return sdkerrors.Wrap(ErrInvalidTransaction, "value cannot be nil")
	}
	if tx.Value.IsNegative() {
		return sdkerrors.Wrapf(ErrInvalidTransaction, "value cannot be negative: %s", tx.Value)
	}
	if tx.Value.BigInt().BitLen() > maxValueBitLen {
		return sdkerrors.Wrapf(ErrInvalidTransaction, "value exceeds %d bits: %s", maxValueBitLen, tx.Value)
	}
	return nil
}

// EVMMessage is an ordered batch of transactions executed in sequence on the host chain.
type EVMMessage struct {
	Messages []Transaction `json:"messages" yaml:"messages"`
}

// NewEVMMessage creates a new EVMMessage instance
func NewEVMMessage(txs ...Transaction) EVMMessage {
	return EVMMessage{
		Messages: txs,
	}
}

// ValidateBasic validates every transaction in the batch.
func (m EVMMessage) ValidateBasic() error {
	for i, tx := range m.Messages {
		if err := tx.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "transaction %d", i)
		}
	}

	return nil
}

// abiTransaction mirrors the solidity tuple (uint256 value, string data, string target).
type abiTransaction struct {
	Value  *big.Int `json:"value"`
	Data   string   `json:"data"`
	Target string   `json:"target"`
}

// getEVMMessageABI returns an abi.Arguments slice describing a single dynamic array of transaction tuples.
func getEVMMessageABI() abi.Arguments {
	// The Solidity types used are:
	// - uint256 for Value.
	// - string for Data and Target.
	batchType, err := abi.NewType("tuple[]", "", []abi.ArgumentMarshaling{
		{
			Name: "value",
			Type: "uint256",
		},
		{
			Name: "data",
			Type: "string",
		},
		{
			Name: "target",
			Type: "string",
		},
	})
	if err != nil {
		panic(err)
	}

	return abi.Arguments{
		{
			Type: batchType,
		},
	}
}

// Encode returns the solidity ABI encoding of the batch as a dynamic array of
// (uint256, string, string) tuples. The output only depends on the ordered input.
func (m EVMMessage) Encode() ([]byte, error) {
	if err := m.ValidateBasic(); err != nil {
		return nil, err
	}

	txs := make([]abiTransaction, len(m.Messages))
	for i, tx := range m.Messages {
		txs[i] = abiTransaction{
			Value:  tx.Value.BigInt(),
			Data:   tx.Data,
			Target: tx.Target,
		}
	}

	bz, err := getEVMMessageABI().Pack(txs)
	if err != nil {
		return nil, sdkerrors.Wrapf(ErrAbiEncoding, "failed to pack transactions: %s", err)
	}

	return bz, nil
}

// DecodeEVMMessage decodes a solidity ABI encoded transaction batch produced by EVMMessage.Encode.
func DecodeEVMMessage(bz []byte) (EVMMessage, error) {
	values, err := getEVMMessageABI().Unpack(bz)
	if err != nil {
		return EVMMessage{}, sdkerrors.Wrapf(ErrAbiEncoding, "failed to unpack data: %s", err)
	}

	txs, ok := values[0].([]struct {
		Value  *big.Int `json:"value"`
		Data   string   `json:"data"`
		Target string   `json:"target"`
	})
	if !ok {
		return EVMMessage{}, sdkerrors.Wrapf(ErrAbiEncoding, "failed to parse transactions from %T", values[0])
	}

	msg := EVMMessage{Messages: make([]Transaction, len(txs))}
	for i, tx := range txs {
		msg.Messages[i] = NewTransaction(sdk.NewIntFromBigInt(tx.Value), tx.Data, tx.Target)
	}

	return msg, nil
}

// NewInterchainAccountPacketData wraps the encoded batch into ICS-27 packet data.
func NewInterchainAccountPacketData(msg EVMMessage, memo string) (icatypes.InterchainAccountPacketData, error) {
	bz, err := msg.Encode()
	if err != nil {
		return icatypes.InterchainAccountPacketData{}, err
	}

	return icatypes.InterchainAccountPacketData{
		Type: icatypes.EXECUTE_TX,
		Data: bz,
		Memo: memo,
	}, nil
}
