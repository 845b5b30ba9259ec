package types

import (
	"fmt"
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/interchain-evm/ica-controller/internal/validate"
)

const (
	// ModuleName defines the interchain accounts EVM controller module name
	ModuleName = "icaevm"

	// StoreKey is the store key string for the interchain accounts EVM controller module
	StoreKey = ModuleName

	// PortID is the default port id the controller binds to
	PortID = "icaevm-controller"

	// Version defines the current version the controller supports on the channel handshake
	Version = "ica-evm-1"

	// ChannelStateKey is the store key for the controller channel state
	ChannelStateKey = "channelState"

	// CallbackCounterKey is the store key for the acknowledgement callback counter
	CallbackCounterKey = "callbackCounter"

	// ActiveChannelKey is the store key for the port and channel identifiers the controller sends on
	ActiveChannelKey = "activeChannel"

	// EventTypeAcknowledgement is emitted for every processed acknowledgement
	EventTypeAcknowledgement = "icaevm_acknowledgement"
	// EventTypeTimeout is emitted for every processed packet timeout
	EventTypeTimeout = "icaevm_timeout"
	// EventTypeChannelClosed is emitted when the controller channel state transitions to CLOSED
	EventTypeChannelClosed = "icaevm_channel_closed"

	AttributeKeyAckSuccess = "success"
	AttributeKeyAckError   = "error"
	AttributeKeyChannelID  = "channel_id"
	AttributeKeyPortID     = "port_id"
)

// ActiveChannel identifies the single channel end the controller sends packets on.
type ActiveChannel struct {
	PortID    string `json:"port_id" yaml:"port_id"`
	ChannelID string `json:"channel_id" yaml:"channel_id"`
}

// NewActiveChannel creates a new ActiveChannel instance
func NewActiveChannel(portID, channelID string) ActiveChannel {
	return ActiveChannel{
		PortID:    portID,
		ChannelID: channelID,
	}
}

// String returns the "<port>/<channel>" form stored under ActiveChannelKey.
func (ac ActiveChannel) String() string {
	return fmt.Sprintf("%s/%s", ac.PortID, ac.ChannelID)
}

// Validate performs a basic validation of the port and channel identifiers
func (ac ActiveChannel) Validate() error {
	if err := validate.ChannelEnd(ac.PortID, ac.ChannelID); err != nil {
		return sdkerrors.Wrap(ErrInvalidActiveChannel, err.Error())
	}

	return nil
}

// ParseActiveChannel parses the value stored under ActiveChannelKey.
func ParseActiveChannel(value string) (ActiveChannel, error) {
	split := strings.Split(value, "/")
	if len(split) != 2 {
		return ActiveChannel{}, sdkerrors.Wrapf(
			ErrCorruptedState, "active channel has incorrect format: expected <port>/<channel>, got %s", value,
		)
	}

	return NewActiveChannel(split[0], split[1]), nil
}
