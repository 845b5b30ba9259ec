package mock

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"

	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"
	ibcexported "github.com/cosmos/ibc-go/v3/modules/core/exported"

	"github.com/interchain-evm/ica-controller/modules/controller/types"
)

var (
	_ types.ChannelKeeper = (*ChannelKeeper)(nil)
	_ types.ICS4Wrapper   = (*ICS4Wrapper)(nil)
	_ types.ScopedKeeper  = (*ScopedKeeper)(nil)
)

// ErrSendPacket is returned by ICS4Wrapper.SendPacket when sending is configured to fail.
var ErrSendPacket = errors.New("mock send packet failed")

func channelKey(portID, channelID string) string {
	return fmt.Sprintf("%s/%s", portID, channelID)
}

// ChannelKeeper is an in-memory channel keeper holding channel ends and send sequences.
type ChannelKeeper struct {
	channels      map[string]channeltypes.Channel
	nextSequences map[string]uint64
}

// NewChannelKeeper returns an empty ChannelKeeper.
func NewChannelKeeper() *ChannelKeeper {
	return &ChannelKeeper{
		channels:      make(map[string]channeltypes.Channel),
		nextSequences: make(map[string]uint64),
	}
}

// SetChannel stores the channel end and starts its send sequence at 1.
func (ck *ChannelKeeper) SetChannel(portID, channelID string, channel channeltypes.Channel) {
	key := channelKey(portID, channelID)
	ck.channels[key] = channel
	if _, ok := ck.nextSequences[key]; !ok {
		ck.nextSequences[key] = 1
	}
}

// DeleteNextSequenceSend removes the send sequence of the channel.
func (ck *ChannelKeeper) DeleteNextSequenceSend(portID, channelID string) {
	delete(ck.nextSequences, channelKey(portID, channelID))
}

// GetChannel implements types.ChannelKeeper
func (ck *ChannelKeeper) GetChannel(_ sdk.Context, srcPort, srcChan string) (channeltypes.Channel, bool) {
	channel, ok := ck.channels[channelKey(srcPort, srcChan)]
	return channel, ok
}

// GetNextSequenceSend implements types.ChannelKeeper
func (ck *ChannelKeeper) GetNextSequenceSend(_ sdk.Context, portID, channelID string) (uint64, bool) {
	sequence, ok := ck.nextSequences[channelKey(portID, channelID)]
	return sequence, ok
}

// ICS4Wrapper records sent packets and advances the send sequence of the ChannelKeeper.
type ICS4Wrapper struct {
	channelKeeper *ChannelKeeper

	SentPackets []ibcexported.PacketI
	// Fail makes SendPacket return ErrSendPacket.
	Fail bool
}

// NewICS4Wrapper returns an ICS4Wrapper bound to the provided ChannelKeeper.
func NewICS4Wrapper(channelKeeper *ChannelKeeper) *ICS4Wrapper {
	return &ICS4Wrapper{
		channelKeeper: channelKeeper,
	}
}

// SendPacket implements types.ICS4Wrapper
func (w *ICS4Wrapper) SendPacket(_ sdk.Context, _ *capabilitytypes.Capability, packet ibcexported.PacketI) error {
	if w.Fail {
		return ErrSendPacket
	}

	key := channelKey(packet.GetSourcePort(), packet.GetSourceChannel())
	if packet.GetSequence() != w.channelKeeper.nextSequences[key] {
		return fmt.Errorf("packet sequence %d does not match next sequence send %d", packet.GetSequence(), w.channelKeeper.nextSequences[key])
	}

	w.channelKeeper.nextSequences[key]++
	w.SentPackets = append(w.SentPackets, packet)

	return nil
}

// ScopedKeeper is an in-memory capability keeper.
type ScopedKeeper struct {
	capabilities map[string]*capabilitytypes.Capability
}

// NewScopedKeeper returns an empty ScopedKeeper.
func NewScopedKeeper() *ScopedKeeper {
	return &ScopedKeeper{
		capabilities: make(map[string]*capabilitytypes.Capability),
	}
}

// GetCapability implements types.ScopedKeeper
func (sk *ScopedKeeper) GetCapability(_ sdk.Context, name string) (*capabilitytypes.Capability, bool) {
	capability, ok := sk.capabilities[name]
	return capability, ok
}

// ClaimCapability implements types.ScopedKeeper
func (sk *ScopedKeeper) ClaimCapability(_ sdk.Context, capability *capabilitytypes.Capability, name string) error {
	if capability == nil {
		return capabilitytypes.ErrNilCapability
	}

	if _, ok := sk.capabilities[name]; ok {
		return capabilitytypes.ErrOwnerClaimed
	}

	sk.capabilities[name] = capability
	return nil
}
