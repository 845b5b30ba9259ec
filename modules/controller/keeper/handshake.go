package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"

	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"
	host "github.com/cosmos/ibc-go/v3/modules/core/24-host"

	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

// OnChanOpenInit performs basic validation of channel initialization.
// The channel must be ORDERED and no other open channel may be active for the controller.
// An empty version selects the default controller version.
func (k Keeper) OnChanOpenInit(
	ctx sdk.Context,
	order channeltypes.Order,
	connectionHops []string,
	portID string,
	channelID string,
	chanCap *capabilitytypes.Capability,
	counterparty channeltypes.Counterparty,
	version string,
) error {
	if order != channeltypes.ORDERED {
		return sdkerrors.Wrapf(channeltypes.ErrInvalidChannelOrdering, "expected %s channel, got %s", channeltypes.ORDERED, order)
	}

	if version == "" {
		version = types.Version
	}

	if version != types.Version {
		return sdkerrors.Wrapf(types.ErrInvalidVersion, "expected %s, got %s", types.Version, version)
	}

	if k.IsActiveChannelOpen(ctx) {
		activeChannel, _ := k.GetActiveChannel(ctx)
		return sdkerrors.Wrapf(types.ErrActiveChannelAlreadySet, "existing active channel %s", activeChannel)
	}

	// Claim channel capability passed back by IBC module
	if err := k.ClaimCapability(ctx, chanCap, host.ChannelCapabilityPath(portID, channelID)); err != nil {
		return err
	}

	return nil
}

// OnChanOpenAck records the channel as the active controller channel and sets its state to OPEN.
func (k Keeper) OnChanOpenAck(
	ctx sdk.Context,
	portID,
	channelID string,
	counterpartyVersion string,
) error {
	if counterpartyVersion != types.Version {
		return sdkerrors.Wrapf(types.ErrInvalidVersion, "expected counterparty version %s, got %s", types.Version, counterpartyVersion)
	}

	activeChannel := types.NewActiveChannel(portID, channelID)
	if err := activeChannel.Validate(); err != nil {
		return err
	}

	if k.IsActiveChannelOpen(ctx) {
		existing, _ := k.GetActiveChannel(ctx)
		return sdkerrors.Wrapf(types.ErrActiveChannelAlreadySet, "existing active channel %s", existing)
	}

	k.SetActiveChannel(ctx, activeChannel)
	if err := k.SetChannelState(ctx, types.NewOpenChannelState()); err != nil {
		return err
	}

	k.Logger(ctx).Info("controller channel opened", "port-id", portID, "channel-id", channelID)

	return nil
}

// OnChanCloseConfirm closes the controller channel state if the channel being closed is the active channel.
func (k Keeper) OnChanCloseConfirm(
	ctx sdk.Context,
	portID,
	channelID string,
) error {
	activeChannel, err := k.GetActiveChannel(ctx)
	if err != nil {
		if sdkerrors.IsOf(err, types.ErrActiveChannelNotFound) {
			return nil
		}
		return err
	}

	if activeChannel != types.NewActiveChannel(portID, channelID) {
		return nil
	}

	return k.CloseChannel(ctx)
}
