package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// GenesisState defines the controller genesis state
type GenesisState struct {
	Params          Params          `json:"params" yaml:"params"`
	CallbackCounter CallbackCounter `json:"callback_counter" yaml:"callback_counter"`
	// ChannelState and ActiveChannel are unset until a channel handshake completes.
	ChannelState  *ChannelState  `json:"channel_state,omitempty" yaml:"channel_state,omitempty"`
	ActiveChannel *ActiveChannel `json:"active_channel,omitempty" yaml:"active_channel,omitempty"`
}

// NewGenesisState creates and returns a new GenesisState instance from the provided arguments
func NewGenesisState(params Params, counter CallbackCounter, channelState *ChannelState, activeChannel *ActiveChannel) *GenesisState {
	return &GenesisState{
		Params:          params,
		CallbackCounter: counter,
		ChannelState:    channelState,
		ActiveChannel:   activeChannel,
	}
}

// DefaultGenesisState returns a GenesisState with a zeroed counter and no channel
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// Validate performs basic validation of the GenesisState
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	if (gs.ChannelState == nil) != (gs.ActiveChannel == nil) {
		return sdkerrors.Wrap(ErrInvalidActiveChannel, "channel state and active channel must be set together")
	}

	if gs.ChannelState != nil {
		if err := gs.ChannelState.Validate(); err != nil {
			return err
		}

		if err := gs.ActiveChannel.Validate(); err != nil {
			return err
		}
	}

	return nil
}
