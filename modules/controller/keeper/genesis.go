package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

// InitGenesis initializes the controller state. The callback counter is always written so
// acknowledgements can be processed from the first packet on.
func (k Keeper) InitGenesis(ctx sdk.Context, state types.GenesisState) {
	if err := state.Validate(); err != nil {
		panic(fmt.Errorf("invalid controller genesis state: %w", err))
	}

	k.SetParams(ctx, state.Params)
	k.SetCallbackCounter(ctx, state.CallbackCounter)

	if state.ActiveChannel != nil {
		k.SetActiveChannel(ctx, *state.ActiveChannel)
		if err := k.SetChannelState(ctx, *state.ChannelState); err != nil {
			panic(err)
		}
	}
}

// ExportGenesis returns the controller exported genesis.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	counter, err := k.GetCallbackCounter(ctx)
	if err != nil {
		panic(err)
	}

	genesisState := types.NewGenesisState(k.GetParams(ctx), counter, nil, nil)

	activeChannel, err := k.GetActiveChannel(ctx)
	switch {
	case sdkerrors.IsOf(err, types.ErrActiveChannelNotFound):
		return genesisState
	case err != nil:
		panic(err)
	}

	channelState, err := k.GetChannelState(ctx)
	if err != nil {
		panic(err)
	}

	genesisState.ActiveChannel = &activeChannel
	genesisState.ChannelState = &channelState

	return genesisState
}
