package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"gopkg.in/yaml.v2"
)

// CallbackCounter tallies the acknowledgements received for packets sent by the controller.
type CallbackCounter struct {
	Success uint64 `json:"success" yaml:"success"`
	Error   uint64 `json:"error" yaml:"error"`
}

// RecordSuccess records a successful acknowledgement.
func (cc *CallbackCounter) RecordSuccess() {
	cc.Success++
}

// RecordError records an error acknowledgement.
func (cc *CallbackCounter) RecordError() {
	cc.Error++
}

// Total returns the number of acknowledgements recorded.
func (cc CallbackCounter) Total() uint64 {
	return cc.Success + cc.Error
}

// String implements the fmt.Stringer interface
func (cc CallbackCounter) String() string {
	out, _ := yaml.Marshal(cc)
	return string(out)
}

// Marshal encodes the counter as two big endian uint64 values.
func (cc CallbackCounter) Marshal() []byte {
	return append(sdk.Uint64ToBigEndian(cc.Success), sdk.Uint64ToBigEndian(cc.Error)...)
}

// UnmarshalCallbackCounter decodes bytes produced by CallbackCounter.Marshal.
func UnmarshalCallbackCounter(bz []byte) (CallbackCounter, error) {
	if len(bz) != 16 {
		return CallbackCounter{}, sdkerrors.Wrapf(ErrCorruptedState, "callback counter must be 16 bytes, got %d", len(bz))
	}

	return CallbackCounter{
		Success: sdk.BigEndianToUint64(bz[:8]),
		Error:   sdk.BigEndianToUint64(bz[8:]),
	}, nil
}
