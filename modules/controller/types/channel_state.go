package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Status defines the lifecycle state of the controller channel end.
type Status byte

const (
	// UNINITIALIZED is the zero value and is never persisted.
	UNINITIALIZED Status = iota
	// OPEN indicates the ordered channel can carry packets.
	OPEN
	// CLOSED indicates the ordered channel is dead, usually after a packet timeout.
	CLOSED
)

// String implements the fmt.Stringer interface
func (s Status) String() string {
	switch s {
	case OPEN:
		return "STATE_OPEN"
	case CLOSED:
		return "STATE_CLOSED"
	default:
		return "STATE_UNINITIALIZED_UNSPECIFIED"
	}
}

// MarshalYAML renders the status by name.
func (s Status) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// ChannelState tracks whether the controller channel is open or closed.
// Once CLOSED it is never reopened: a new handshake creates a new channel.
type ChannelState struct {
	Status Status `json:"status" yaml:"status"`
}

// NewOpenChannelState returns the state recorded when a channel handshake completes.
func NewOpenChannelState() ChannelState {
	return ChannelState{Status: OPEN}
}

// Close transitions the channel state to CLOSED. It is a no-op if already closed.
func (cs *ChannelState) Close() {
	cs.Status = CLOSED
}

// IsOpen returns true if the channel may carry new packets.
func (cs ChannelState) IsOpen() bool {
	return cs.Status == OPEN
}

// Validate returns an error if the status is not a persistable value.
func (cs ChannelState) Validate() error {
	switch cs.Status {
	case OPEN, CLOSED:
		return nil
	default:
		return sdkerrors.Wrapf(ErrInvalidChannelState, "unknown status %d", cs.Status)
	}
}

// Marshal encodes the channel state as a single status byte.
func (cs ChannelState) Marshal() ([]byte, error) {
	if err := cs.Validate(); err != nil {
		return nil, err
	}

	return []byte{byte(cs.Status)}, nil
}

// UnmarshalChannelState decodes bytes produced by ChannelState.Marshal.
func UnmarshalChannelState(bz []byte) (ChannelState, error) {
	if len(bz) != 1 {
		return ChannelState{}, sdkerrors.Wrapf(ErrCorruptedState, "channel state must be 1 byte, got %d", len(bz))
	}

	cs := ChannelState{Status: Status(bz[0])}
	if err := cs.Validate(); err != nil {
		return ChannelState{}, sdkerrors.Wrap(ErrCorruptedState, err.Error())
	}

	return cs, nil
}
