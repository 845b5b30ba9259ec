package keeper

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/log"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"

	host "github.com/cosmos/ibc-go/v3/modules/core/24-host"

	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

// Keeper defines the IBC interchain accounts EVM controller keeper
type Keeper struct {
	storeKey   sdk.StoreKey
	paramSpace paramtypes.Subspace

	ics4Wrapper   types.ICS4Wrapper
	channelKeeper types.ChannelKeeper
	scopedKeeper  types.ScopedKeeper
}

// NewKeeper creates a new interchain accounts EVM controller Keeper instance
func NewKeeper(
	key sdk.StoreKey, paramSpace paramtypes.Subspace,
	ics4Wrapper types.ICS4Wrapper, channelKeeper types.ChannelKeeper, scopedKeeper types.ScopedKeeper,
) Keeper {
	// set KeyTable if it has not already been set
	if !paramSpace.HasKeyTable() {
		paramSpace = paramSpace.WithKeyTable(types.ParamKeyTable())
	}

	return Keeper{
		storeKey:      key,
		paramSpace:    paramSpace,
		ics4Wrapper:   ics4Wrapper,
		channelKeeper: channelKeeper,
		scopedKeeper:  scopedKeeper,
	}
}

// Logger returns the application logger, scoped to the associated module
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s-%s", host.ModuleName, types.ModuleName))
}

// ClaimCapability wraps the scopedKeeper's ClaimCapability function
func (k Keeper) ClaimCapability(ctx sdk.Context, cap *capabilitytypes.Capability, name string) error {
	return k.scopedKeeper.ClaimCapability(ctx, cap, name)
}

// GetChannelState loads the controller channel state. ErrStateNotFound is returned
// if no channel handshake has completed yet.
func (k Keeper) GetChannelState(ctx sdk.Context) (types.ChannelState, error) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get([]byte(types.ChannelStateKey))
	if bz == nil {
		return types.ChannelState{}, sdkerrors.Wrap(types.ErrStateNotFound, "channel state")
	}

	return types.UnmarshalChannelState(bz)
}

// SetChannelState stores the controller channel state
func (k Keeper) SetChannelState(ctx sdk.Context, channelState types.ChannelState) error {
	bz, err := channelState.Marshal()
	if err != nil {
		return err
	}

	store := ctx.KVStore(k.storeKey)
	store.Set([]byte(types.ChannelStateKey), bz)
	return nil
}

// CloseChannel transitions the stored channel state to CLOSED. Closing an already
// closed channel leaves the state untouched.
func (k Keeper) CloseChannel(ctx sdk.Context) error {
	channelState, err := k.GetChannelState(ctx)
	if err != nil {
		return err
	}

	if !channelState.IsOpen() {
		return nil
	}

	channelState.Close()
	if err := k.SetChannelState(ctx, channelState); err != nil {
		return err
	}

	EmitChannelClosedEvent(ctx)
	k.Logger(ctx).Info("controller channel closed")

	return nil
}

// GetCallbackCounter loads the acknowledgement callback counter
func (k Keeper) GetCallbackCounter(ctx sdk.Context) (types.CallbackCounter, error) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get([]byte(types.CallbackCounterKey))
	if bz == nil {
		return types.CallbackCounter{}, sdkerrors.Wrap(types.ErrStateNotFound, "callback counter")
	}

	return types.UnmarshalCallbackCounter(bz)
}

// SetCallbackCounter stores the acknowledgement callback counter
func (k Keeper) SetCallbackCounter(ctx sdk.Context, counter types.CallbackCounter) {
	store := ctx.KVStore(k.storeKey)
	store.Set([]byte(types.CallbackCounterKey), counter.Marshal())
}

// GetActiveChannel returns the port and channel identifiers the controller sends on
func (k Keeper) GetActiveChannel(ctx sdk.Context) (types.ActiveChannel, error) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get([]byte(types.ActiveChannelKey))
	if bz == nil {
		return types.ActiveChannel{}, types.ErrActiveChannelNotFound
	}

	return types.ParseActiveChannel(string(bz))
}

// SetActiveChannel stores the port and channel identifiers the controller sends on
func (k Keeper) SetActiveChannel(ctx sdk.Context, activeChannel types.ActiveChannel) {
	store := ctx.KVStore(k.storeKey)
	store.Set([]byte(types.ActiveChannelKey), []byte(activeChannel.String()))
}

// IsActiveChannelOpen returns true if an active channel is stored and its state is OPEN
func (k Keeper) IsActiveChannelOpen(ctx sdk.Context) bool {
	if _, err := k.GetActiveChannel(ctx); err != nil {
		return false
	}

	channelState, err := k.GetChannelState(ctx)
	return err == nil && channelState.IsOpen()
}
