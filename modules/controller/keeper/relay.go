package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"

	clienttypes "github.com/cosmos/ibc-go/v3/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"

	"github.com/interchain-evm/ica-controller/modules/controller/internal/telemetry"
	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

// SendTx encodes the transaction batch and sends it as ICS-27 packet data on the active channel.
// The packet sequence for the outgoing packet is returned as a result.
// An appropriate absolute timeoutTimestamp must be provided. If the packet is timed out, the channel will be closed
// and no further packets can be sent by the controller.
func (k Keeper) SendTx(ctx sdk.Context, chanCap *capabilitytypes.Capability, msg types.EVMMessage, memo string, timeoutTimestamp uint64) (uint64, error) {
	if !k.IsControllerEnabled(ctx) {
		return 0, types.ErrControllerSubModuleDisabled
	}

	activeChannel, err := k.GetActiveChannel(ctx)
	if err != nil {
		return 0, err
	}

	channelState, err := k.GetChannelState(ctx)
	if err != nil {
		return 0, err
	}

	if !channelState.IsOpen() {
		return 0, sdkerrors.Wrapf(types.ErrChannelClosed, "cannot send packet on %s", activeChannel)
	}

	sourceChannelEnd, found := k.channelKeeper.GetChannel(ctx, activeChannel.PortID, activeChannel.ChannelID)
	if !found {
		return 0, sdkerrors.Wrap(channeltypes.ErrChannelNotFound, activeChannel.String())
	}

	if uint64(ctx.BlockTime().UnixNano()) >= timeoutTimestamp {
		return 0, types.ErrInvalidTimeoutTimestamp
	}

	packetData, err := types.NewInterchainAccountPacketData(msg, memo)
	if err != nil {
		return 0, err
	}

	if err := packetData.ValidateBasic(); err != nil {
		return 0, sdkerrors.Wrap(err, "invalid interchain account packet data")
	}

	sequence, found := k.channelKeeper.GetNextSequenceSend(ctx, activeChannel.PortID, activeChannel.ChannelID)
	if !found {
		return 0, sdkerrors.Wrapf(
			channeltypes.ErrSequenceSendNotFound,
			"failed to retrieve next sequence send for channel %s on port %s", activeChannel.ChannelID, activeChannel.PortID,
		)
	}

	packet := channeltypes.NewPacket(
		packetData.GetBytes(),
		sequence,
		activeChannel.PortID,
		activeChannel.ChannelID,
		sourceChannelEnd.Counterparty.PortId,
		sourceChannelEnd.Counterparty.ChannelId,
		clienttypes.ZeroHeight(),
		timeoutTimestamp,
	)

	if err := k.ics4Wrapper.SendPacket(ctx, chanCap, packet); err != nil {
		return 0, err
	}

	telemetry.ReportSendTx(activeChannel.PortID, activeChannel.ChannelID, len(msg.Messages))
	k.Logger(ctx).Debug("sent evm transaction batch", "sequence", sequence, "transactions", len(msg.Messages))

	return sequence, nil
}

// OnAcknowledgementPacket decodes the acknowledgement and records its outcome in the callback counter.
// The packet identity and the acknowledgement payload do not alter the outcome beyond success or error.
// A malformed acknowledgement returns ErrInvalidAcknowledgement and leaves the counter unchanged.
func (k Keeper) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, acknowledgement []byte) error {
	ack, err := types.DecodeAcknowledgement(acknowledgement)
	if err != nil {
		return err
	}

	counter, err := k.GetCallbackCounter(ctx)
	if err != nil {
		return err
	}

	switch ack.(type) {
	case types.ResultAcknowledgement:
		counter.RecordSuccess()
	case types.ErrorAcknowledgement:
		counter.RecordError()
	}

	k.SetCallbackCounter(ctx, counter)

	EmitAcknowledgementEvent(ctx, packet, ack)
	telemetry.ReportAcknowledgement(packet.GetSourcePort(), packet.GetSourceChannel(), ack.Success())
	k.Logger(ctx).Info("acknowledgement processed", "sequence", packet.GetSequence(), "success", ack.Success())

	return nil
}

// OnTimeoutPacket closes the controller channel. Due to the semantics of ORDERED channels a single
// timeout closes the underlying channel end, regardless of which packet timed out.
// Timeouts for packets sent on a previous channel leave the active channel untouched.
func (k Keeper) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet) error {
	activeChannel, err := k.GetActiveChannel(ctx)
	if err != nil {
		return err
	}

	if activeChannel != types.NewActiveChannel(packet.GetSourcePort(), packet.GetSourceChannel()) {
		k.Logger(ctx).Info("ignoring timeout for inactive channel", "port-id", packet.GetSourcePort(), "channel-id", packet.GetSourceChannel(), "sequence", packet.GetSequence())
		return nil
	}

	if err := k.CloseChannel(ctx); err != nil {
		return err
	}

	EmitTimeoutEvent(ctx, packet)
	telemetry.ReportTimeout(packet.GetSourcePort(), packet.GetSourceChannel())
	k.Logger(ctx).Info("packet timed out", "sequence", packet.GetSequence())

	return nil
}

// OnRecvPacket aborts unconditionally. A controller never receives packets, so a delivery means the
// host routed a packet to the wrong application. The panic is not a recoverable error return.
func (k Keeper) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet) {
	k.Logger(ctx).Error("received packet on controller chain", "sequence", packet.GetSequence())
	panic(sdkerrors.Wrap(types.ErrInvalidChannelFlow, "cannot receive packet on controller chain"))
}
