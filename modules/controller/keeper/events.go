package keeper

import (
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"

	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

// EmitAcknowledgementEvent emits an event signalling the outcome of a packet sent by the controller.
func EmitAcknowledgementEvent(ctx sdk.Context, packet channeltypes.Packet, ack types.Acknowledgement) {
	attributes := []sdk.Attribute{
		sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		sdk.NewAttribute(channeltypes.AttributeKeySrcPort, packet.GetSourcePort()),
		sdk.NewAttribute(channeltypes.AttributeKeySrcChannel, packet.GetSourceChannel()),
		sdk.NewAttribute(channeltypes.AttributeKeySequence, fmt.Sprint(packet.GetSequence())),
		sdk.NewAttribute(types.AttributeKeyAckSuccess, strconv.FormatBool(ack.Success())),
	}

	if errAck, ok := ack.(types.ErrorAcknowledgement); ok {
		attributes = append(attributes, sdk.NewAttribute(types.AttributeKeyAckError, errAck.Error))
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAcknowledgement,
			attributes...,
		),
	)
}

// EmitTimeoutEvent emits an event signalling a packet sent by the controller timed out.
func EmitTimeoutEvent(ctx sdk.Context, packet channeltypes.Packet) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTimeout,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
			sdk.NewAttribute(channeltypes.AttributeKeySrcPort, packet.GetSourcePort()),
			sdk.NewAttribute(channeltypes.AttributeKeySrcChannel, packet.GetSourceChannel()),
			sdk.NewAttribute(channeltypes.AttributeKeySequence, fmt.Sprint(packet.GetSequence())),
		),
	)
}

// EmitChannelClosedEvent emits an event signalling the controller channel state is now CLOSED.
func EmitChannelClosedEvent(ctx sdk.Context) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeChannelClosed,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		),
	)
}
