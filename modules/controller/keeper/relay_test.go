package keeper_test

import (
	"math/rand"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"

	icatypes "github.com/cosmos/ibc-go/v3/modules/apps/27-interchain-accounts/types"
	clienttypes "github.com/cosmos/ibc-go/v3/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"
	host "github.com/cosmos/ibc-go/v3/modules/core/24-host"

	"github.com/interchain-evm/ica-controller/modules/controller/types"
	ibctesting "github.com/interchain-evm/ica-controller/testing"
	"github.com/interchain-evm/ica-controller/testing/mock"
)

func (suite *KeeperTestSuite) newPacket(sequence uint64) channeltypes.Packet {
	return channeltypes.NewPacket(
		[]byte("packetData"),
		sequence,
		types.PortID,
		channelID,
		counterpartyPortID,
		counterpartyChannelID,
		clienttypes.ZeroHeight(),
		^uint64(0),
	)
}

func errorAcknowledgement(msg string) []byte {
	ack := channeltypes.Acknowledgement{
		Response: &channeltypes.Acknowledgement_Error{Error: msg},
	}
	return ack.Acknowledgement()
}

func (suite *KeeperTestSuite) TestSendTx() {
	var (
		msg              types.EVMMessage
		timeoutTimestamp uint64
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success", func() {}, nil,
		},
		{
			"success: empty batch", func() {
				msg = types.NewEVMMessage()
			}, nil,
		},
		{
			"controller submodule disabled", func() {
				suite.app.ControllerKeeper.SetParams(suite.ctx, types.NewParams(false))
			}, types.ErrControllerSubModuleDisabled,
		},
		{
			"active channel not found", func() {
				suite.store().Delete([]byte(types.ActiveChannelKey))
			}, types.ErrActiveChannelNotFound,
		},
		{
			"channel state closed", func() {
				suite.Require().NoError(suite.app.ControllerKeeper.CloseChannel(suite.ctx))
			}, types.ErrChannelClosed,
		},
		{
			"channel end does not exist", func() {
				suite.app.ControllerKeeper.SetActiveChannel(suite.ctx, types.NewActiveChannel(types.PortID, "channel-100"))
			}, channeltypes.ErrChannelNotFound,
		},
		{
			"timeout timestamp is not in the future", func() {
				timeoutTimestamp = uint64(suite.ctx.BlockTime().UnixNano())
			}, types.ErrInvalidTimeoutTimestamp,
		},
		{
			"invalid transaction", func() {
				msg = types.NewEVMMessage(types.NewTransaction(sdk.NewInt(-1), "0x", "0xT1"))
			}, types.ErrInvalidTransaction,
		},
		{
			"next sequence send not found", func() {
				suite.channelKeeper.DeleteNextSequenceSend(types.PortID, channelID)
			}, channeltypes.ErrSequenceSendNotFound,
		},
		{
			"send packet fails", func() {
				suite.ics4Wrapper.Fail = true
			}, mock.ErrSendPacket,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.openChannel()

			msg = types.NewEVMMessage(types.NewTransaction(sdk.NewInt(100), "0xabc", "0xT1"))
			timeoutTimestamp = uint64(suite.ctx.BlockTime().Add(time.Hour).UnixNano())

			tc.malleate()

			chanCap := &capabilitytypes.Capability{Index: 1}
			sequence, err := suite.app.ControllerKeeper.SendTx(suite.ctx, chanCap, msg, "", timeoutTimestamp)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(uint64(1), sequence)
				suite.Require().Len(suite.ics4Wrapper.SentPackets, 1)

				packet := suite.ics4Wrapper.SentPackets[0]
				suite.Require().Equal(types.PortID, packet.GetSourcePort())
				suite.Require().Equal(channelID, packet.GetSourceChannel())
				suite.Require().Equal(counterpartyPortID, packet.GetDestPort())
				suite.Require().Equal(counterpartyChannelID, packet.GetDestChannel())
				suite.Require().Equal(timeoutTimestamp, packet.GetTimeoutTimestamp())

				var packetData icatypes.InterchainAccountPacketData
				err := icatypes.ModuleCdc.UnmarshalJSON(packet.GetData(), &packetData)
				suite.Require().NoError(err)
				suite.Require().Equal(icatypes.EXECUTE_TX, packetData.Type)

				expData, err := msg.Encode()
				suite.Require().NoError(err)
				suite.Require().Equal(expData, packetData.Data)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Zero(sequence)
				suite.Require().Empty(suite.ics4Wrapper.SentPackets)
			}
		})
	}
}

func (suite *KeeperTestSuite) TestSendTxSequences() {
	suite.openChannel()

	chanCap := &capabilitytypes.Capability{Index: 1}
	timeoutTimestamp := uint64(suite.ctx.BlockTime().Add(time.Hour).UnixNano())
	msg := types.NewEVMMessage(types.NewTransaction(sdk.NewInt(1), "0x", "0xT1"))

	for expSequence := uint64(1); expSequence <= 3; expSequence++ {
		sequence, err := suite.app.ControllerKeeper.SendTx(suite.ctx, chanCap, msg, "", timeoutTimestamp)
		suite.Require().NoError(err)
		suite.Require().Equal(expSequence, sequence)
	}

	// one timeout closes the channel for all subsequent sends
	suite.Require().NoError(suite.app.ControllerKeeper.OnTimeoutPacket(suite.ctx, suite.newPacket(2)))

	_, err := suite.app.ControllerKeeper.SendTx(suite.ctx, chanCap, msg, "", timeoutTimestamp)
	suite.Require().ErrorIs(err, types.ErrChannelClosed)
	suite.Require().Len(suite.ics4Wrapper.SentPackets, 3)
}

func (suite *KeeperTestSuite) TestOnAcknowledgementPacket() {
	var (
		ack        []byte
		expCounter types.CallbackCounter
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success: result acknowledgement", func() {
				expCounter = types.CallbackCounter{Success: 1, Error: 0}
			}, nil,
		},
		{
			"success: error acknowledgement", func() {
				ack = errorAcknowledgement("failed")
				expCounter = types.CallbackCounter{Success: 0, Error: 1}
			}, nil,
		},
		{
			"success: result acknowledgement after prior outcomes", func() {
				suite.app.ControllerKeeper.SetCallbackCounter(suite.ctx, types.CallbackCounter{Success: 4, Error: 2})
				expCounter = types.CallbackCounter{Success: 5, Error: 2}
			}, nil,
		},
		{
			"success: empty result payload is not inspected", func() {
				ack = []byte(`{"result":""}`)
				expCounter = types.CallbackCounter{Success: 1, Error: 0}
			}, nil,
		},
		{
			"neither result nor error present", func() {
				ack = []byte(`{}`)
			}, types.ErrInvalidAcknowledgement,
		},
		{
			"acknowledgement is not json", func() {
				ack = []byte("ack")
			}, types.ErrInvalidAcknowledgement,
		},
		{
			"callback counter not found", func() {
				suite.store().Delete([]byte(types.CallbackCounterKey))
			}, types.ErrStateNotFound,
		},
		{
			"callback counter corrupted", func() {
				suite.store().Set([]byte(types.CallbackCounterKey), []byte{0x01})
			}, types.ErrCorruptedState,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.openChannel()

			ack = channeltypes.NewResultAcknowledgement([]byte{byte(1)}).Acknowledgement()
			expCounter = types.CallbackCounter{}

			tc.malleate()

			channelStateBefore, err := suite.app.ControllerKeeper.GetChannelState(suite.ctx)
			suite.Require().NoError(err)

			storeBefore := suite.store().Get([]byte(types.CallbackCounterKey))

			err = suite.app.ControllerKeeper.OnAcknowledgementPacket(suite.ctx, suite.newPacket(1), ack)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				counter, err := suite.app.ControllerKeeper.GetCallbackCounter(suite.ctx)
				suite.Require().NoError(err)
				suite.Require().Equal(expCounter, counter)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal(storeBefore, suite.store().Get([]byte(types.CallbackCounterKey)))
			}

			// acknowledgements never alter the channel state
			channelState, err := suite.app.ControllerKeeper.GetChannelState(suite.ctx)
			suite.Require().NoError(err)
			suite.Require().Equal(channelStateBefore, channelState)
		})
	}
}

func (suite *KeeperTestSuite) TestOnAcknowledgementPacketScenario() {
	suite.openChannel()

	resultAck := channeltypes.NewResultAcknowledgement([]byte{byte(1)}).Acknowledgement()
	err := suite.app.ControllerKeeper.OnAcknowledgementPacket(suite.ctx, suite.newPacket(1), resultAck)
	suite.Require().NoError(err)

	counter, err := suite.app.ControllerKeeper.GetCallbackCounter(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.CallbackCounter{Success: 1, Error: 0}, counter)

	err = suite.app.ControllerKeeper.OnAcknowledgementPacket(suite.ctx, suite.newPacket(2), errorAcknowledgement("failed"))
	suite.Require().NoError(err)

	counter, err = suite.app.ControllerKeeper.GetCallbackCounter(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.CallbackCounter{Success: 1, Error: 1}, counter)

	err = suite.app.ControllerKeeper.OnAcknowledgementPacket(suite.ctx, suite.newPacket(3), []byte(`{"unknown":"field"}`))
	suite.Require().ErrorIs(err, types.ErrInvalidAcknowledgement)

	counter, err = suite.app.ControllerKeeper.GetCallbackCounter(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.CallbackCounter{Success: 1, Error: 1}, counter)
}

func (suite *KeeperTestSuite) TestOnAcknowledgementPacketSequence() {
	suite.openChannel()

	r := rand.New(rand.NewSource(42))
	resultAck := channeltypes.NewResultAcknowledgement([]byte{byte(1)}).Acknowledgement()

	var expCounter types.CallbackCounter
	for sequence := uint64(1); sequence <= 200; sequence++ {
		var (
			ack       []byte
			malformed bool
		)

		switch r.Intn(3) {
		case 0:
			ack = resultAck
			expCounter.Success++
		case 1:
			ack = errorAcknowledgement("failed")
			expCounter.Error++
		default:
			ack = []byte("malformed")
			malformed = true
		}

		err := suite.app.ControllerKeeper.OnAcknowledgementPacket(suite.ctx, suite.newPacket(sequence), ack)
		if malformed {
			suite.Require().ErrorIs(err, types.ErrInvalidAcknowledgement)
		} else {
			suite.Require().NoError(err)
		}

		counter, err := suite.app.ControllerKeeper.GetCallbackCounter(suite.ctx)
		suite.Require().NoError(err)
		suite.Require().Equal(expCounter, counter)
	}
}

func (suite *KeeperTestSuite) TestOnAcknowledgementPacketEvents() {
	suite.openChannel()

	err := suite.app.ControllerKeeper.OnAcknowledgementPacket(suite.ctx, suite.newPacket(7), errorAcknowledgement("failed"))
	suite.Require().NoError(err)

	expectedEvents := sdk.Events{
		sdk.NewEvent(
			types.EventTypeAcknowledgement,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
			sdk.NewAttribute(channeltypes.AttributeKeySrcPort, types.PortID),
			sdk.NewAttribute(channeltypes.AttributeKeySrcChannel, channelID),
			sdk.NewAttribute(channeltypes.AttributeKeySequence, "7"),
			sdk.NewAttribute(types.AttributeKeyAckSuccess, "false"),
			sdk.NewAttribute(types.AttributeKeyAckError, "failed"),
		),
	}

	ibctesting.AssertEvents(&suite.Suite, expectedEvents, suite.ctx.EventManager().Events())

	success, err := ibctesting.ParseAckSuccessFromEvents(suite.ctx.EventManager().Events())
	suite.Require().NoError(err)
	suite.Require().False(success)
}

func (suite *KeeperTestSuite) TestOnAcknowledgementPacketLogs() {
	logger := mock.NewRecordingLogger()
	suite.ctx = suite.ctx.WithLogger(logger)
	suite.openChannel()

	ack := channeltypes.NewResultAcknowledgement([]byte{byte(1)}).Acknowledgement()
	suite.Require().NoError(suite.app.ControllerKeeper.OnAcknowledgementPacket(suite.ctx, suite.newPacket(3), ack))

	suite.Require().Equal([]interface{}{"module", "x/" + host.ModuleName + "-" + types.ModuleName}, logger.Context)

	entry, found := logger.Last()
	suite.Require().True(found)
	suite.Require().Equal(mock.LevelInfo, entry.Level)
	suite.Require().Equal("acknowledgement processed", entry.Message)
	suite.Require().Equal([]interface{}{"sequence", uint64(3), "success", true}, entry.Params)

	suite.Require().Panics(func() {
		suite.app.ControllerKeeper.OnRecvPacket(suite.ctx, suite.newPacket(4))
	})

	entry, found = logger.Last()
	suite.Require().True(found)
	suite.Require().Equal(mock.LevelError, entry.Level)
	suite.Require().Equal("received packet on controller chain", entry.Message)
}

func (suite *KeeperTestSuite) TestOnTimeoutPacket() {
	err := suite.app.ControllerKeeper.OnTimeoutPacket(suite.ctx, suite.newPacket(1))
	suite.Require().ErrorIs(err, types.ErrActiveChannelNotFound)

	suite.openChannel()
	suite.app.ControllerKeeper.SetCallbackCounter(suite.ctx, types.CallbackCounter{Success: 2, Error: 1})

	err = suite.app.ControllerKeeper.OnTimeoutPacket(suite.ctx, suite.newPacket(1))
	suite.Require().NoError(err)

	channelState, err := suite.app.ControllerKeeper.GetChannelState(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.CLOSED, channelState.Status)

	// a second timeout, for any packet, leaves the channel closed
	err = suite.app.ControllerKeeper.OnTimeoutPacket(suite.ctx, suite.newPacket(42))
	suite.Require().NoError(err)

	channelState, err = suite.app.ControllerKeeper.GetChannelState(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.CLOSED, channelState.Status)

	// timeouts never touch the callback counter
	counter, err := suite.app.ControllerKeeper.GetCallbackCounter(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.CallbackCounter{Success: 2, Error: 1}, counter)
}

func (suite *KeeperTestSuite) TestOnTimeoutPacketInactiveChannel() {
	suite.openChannel()
	suite.Require().NoError(suite.app.ControllerKeeper.CloseChannel(suite.ctx))

	err := suite.app.ControllerKeeper.OnChanOpenAck(suite.ctx, types.PortID, "channel-1", types.Version)
	suite.Require().NoError(err)

	// timeout on close for a packet sent on the previous channel
	ctx := suite.ctx.WithEventManager(sdk.NewEventManager())
	err = suite.app.ControllerKeeper.OnTimeoutPacket(ctx, suite.newPacket(5))
	suite.Require().NoError(err)
	suite.Require().True(suite.app.ControllerKeeper.IsActiveChannelOpen(suite.ctx))
	suite.Require().Zero(ibctesting.CountEvents(ctx.EventManager().Events(), types.EventTypeTimeout))

	activeChannel, err := suite.app.ControllerKeeper.GetActiveChannel(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewActiveChannel(types.PortID, "channel-1"), activeChannel)

	ctx = suite.ctx.WithEventManager(sdk.NewEventManager())
	packet := suite.newPacket(1)
	packet.SourceChannel = "channel-1"
	suite.Require().NoError(suite.app.ControllerKeeper.OnTimeoutPacket(ctx, packet))
	suite.Require().False(suite.app.ControllerKeeper.IsActiveChannelOpen(suite.ctx))
	suite.Require().Equal(1, ibctesting.CountEvents(ctx.EventManager().Events(), types.EventTypeTimeout))
}

func (suite *KeeperTestSuite) TestOnRecvPacket() {
	suite.openChannel()
	suite.app.ControllerKeeper.SetCallbackCounter(suite.ctx, types.CallbackCounter{Success: 1, Error: 1})

	suite.Require().PanicsWithError(
		"cannot receive packet on controller chain: invalid message sent to channel end",
		func() {
			suite.app.ControllerKeeper.OnRecvPacket(suite.ctx, suite.newPacket(1))
		},
	)

	channelState, err := suite.app.ControllerKeeper.GetChannelState(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().True(channelState.IsOpen())

	counter, err := suite.app.ControllerKeeper.GetCallbackCounter(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.CallbackCounter{Success: 1, Error: 1}, counter)
}
